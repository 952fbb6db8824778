package lintmap

import "lintmap/internal/source"

type declState uint8

const (
	declPending  declState = iota // known from parsing, not attributed yet
	declComputed                  // lint spans available
)

type declEntry struct {
	span  source.Span
	state declState
	lints []LintSpan // only when declComputed
}

// FileInfo tracks one source file: whether parsing finished and, per
// top-level declaration, whether its lint spans are known.
type FileInfo struct {
	parsed bool
	decls  []declEntry
}

// find returns the entry whose span equals sp.
func (fi *FileInfo) find(sp source.Span) *declEntry {
	for i := range fi.decls {
		d := &fi.decls[i]
		if d.span.Start == sp.Start && d.span.End == sp.End {
			return d
		}
	}
	return nil
}

// declAt returns the top-level declaration containing pos.
// Top-level declarations don't overlap, a linear scan is enough.
func (fi *FileInfo) declAt(pos uint32) *declEntry {
	for i := range fi.decls {
		if fi.decls[i].span.Contains(pos) {
			return &fi.decls[i]
		}
	}
	return nil
}

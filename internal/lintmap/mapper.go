// Package lintmap maps source positions to the lint configuration in
// effect there.
//
// The map is filled in step with the compiler: StartParsingFile and
// FinishParsingFile register a file's top-level declarations, and
// CalculateLints fills in one declaration at a time once it has been
// attributed. LintAt answers at every intermediate state. When the answer
// depends on work that has not happened yet it reports "unknown" rather
// than guessing.
package lintmap

import (
	"fmt"
	"sync"

	"lintmap/internal/lint"
	"lintmap/internal/source"
	"lintmap/internal/trace"
	"lintmap/internal/tree"
)

// Mapper owns the FileInfo of every file in one compilation.
// It is safe for concurrent use.
type Mapper struct {
	mu     sync.RWMutex
	root   *lint.Lint
	files  map[source.FileID]*FileInfo
	tracer trace.Tracer
}

// New creates a Mapper whose default configuration is root.
// A nil tracer disables tracing.
func New(root *lint.Lint, tracer trace.Tracer) *Mapper {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Mapper{
		root:   root,
		files:  make(map[source.FileID]*FileInfo),
		tracer: tracer,
	}
}

// Root returns the default lint configuration.
func (m *Mapper) Root() *lint.Lint {
	return m.root
}

// StartParsingFile registers file with no declarations yet.
// Calling it again for the same file discards the previous state.
func (m *Mapper) StartParsingFile(file source.FileID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[file] = &FileInfo{}
	trace.Point(m.tracer, trace.ScopeFile, "lint.start-parsing", fileAttr(file))
}

// FinishParsingFile marks file as parsed and records the span of every
// top-level module, package and class declaration in decls. Other nodes,
// imports for instance, are ignored.
func (m *Mapper) FinishParsingFile(file source.FileID, decls []tree.Node, ends tree.EndPositions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fi, ok := m.files[file]
	if !ok {
		return fmt.Errorf("file %d: %w", file, ErrNotStarted)
	}
	if fi.parsed || len(fi.decls) > 0 {
		return fmt.Errorf("file %d: %w", file, ErrAlreadyFinished)
	}

	fi.parsed = true
	for _, decl := range decls {
		if !decl.Kind().IsTopLevel() {
			continue
		}
		sp := tree.Extent(decl, ends)
		if fi.find(sp) != nil {
			continue
		}
		fi.decls = append(fi.decls, declEntry{span: sp, state: declPending})
	}

	trace.Point(m.tracer, trace.ScopeFile, "lint.finish-parsing", fileAttr(file), trace.Int("decls", len(fi.decls)))
	return nil
}

// CalculateLints computes the lint spans of one top-level declaration
// and stores them. Each declaration is calculated exactly once.
func (m *Mapper) CalculateLints(file source.FileID, decl tree.Node, ends tree.EndPositions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fi, ok := m.files[file]
	if !ok || !fi.parsed {
		return fmt.Errorf("file %d: %w", file, ErrNotParsed)
	}
	sp := tree.Extent(decl, ends)
	entry := fi.find(sp)
	if entry == nil {
		return fmt.Errorf("file %d, decl %s: %w", file, sp, ErrUnknownDecl)
	}
	if entry.state != declPending {
		return fmt.Errorf("file %d, decl %s: %w", file, sp, ErrAlreadyCalculated)
	}

	span := trace.Begin(m.tracer, trace.ScopeDecl, "lint.calculate", 0, fileAttr(file), trace.String("decl", sp.String()))
	entry.lints = Calculate(m.root, decl, ends)
	entry.state = declComputed
	span.End(trace.Int("spans", len(entry.lints)))
	return nil
}

// LintAt returns the lint configuration in effect at pos in file.
//
// ok is false when the answer is not known yet: the file was never seen,
// its parsing has not finished, or the declaration containing pos has not
// been attributed. Callers should defer and ask again later.
// Positions outside every top-level declaration get the root configuration.
func (m *Mapper) LintAt(file source.FileID, pos uint32) (l *lint.Lint, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fi, found := m.files[file]
	if !found || !fi.parsed {
		return nil, false
	}
	decl := fi.declAt(pos)
	if decl == nil {
		return m.root, true
	}
	if decl.state == declPending {
		return nil, false
	}
	if best := narrowest(decl.lints, pos); best != nil {
		return best.Lint, true
	}
	return m.root, true
}

// Pending lists the top-level declarations of file still awaiting
// CalculateLints, in source order.
func (m *Mapper) Pending(file source.FileID) []source.Span {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fi, ok := m.files[file]
	if !ok {
		return nil
	}
	var out []source.Span
	for _, d := range fi.decls {
		if d.state == declPending {
			out = append(out, d.span)
		}
	}
	return out
}

// Files reports how many files are tracked.
func (m *Mapper) Files() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Clear drops every FileInfo so the Mapper can serve a new compilation.
func (m *Mapper) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[source.FileID]*FileInfo)
	trace.Point(m.tracer, trace.ScopePhase, "lint.clear")
}

func fileAttr(file source.FileID) trace.Attr {
	return trace.Uint("file", uint64(file))
}

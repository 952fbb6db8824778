// Package outline reads declaration outlines: TOML files that describe the
// top-level declarations of one source file, their nesting, annotations and
// the lint warnings a checker would raise in it.
//
//	source = "Sample.java"
//
//	[[decl]]
//	kind = "class"
//	name = "Sample"
//	start = 0
//	end = 120
//	suppress = ["unchecked"]
//
//	  [[decl.decl]]
//	  kind = "method"
//	  name = "run"
//	  start = 40
//	  end = 90
//	  deprecated = true
//
//	[[warning]]
//	category = "rawtypes"
//	at = 60
//	message = "found raw type: List"
//
// Offsets are bytes into the source. A declaration may carry tree_end, the
// end offset as recorded separately by a parser; it then overrides end.
package outline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"lintmap/internal/lint"
	"lintmap/internal/source"
	"lintmap/internal/tree"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid outline")

// Outline is one parsed outline file.
type Outline struct {
	// Path of the outline file, empty for Parse.
	Path string
	// Source is the path of the described file, resolved against the
	// outline's directory. Empty when Text is used instead.
	Source string
	// Text is inline source content.
	Text     string
	Decls    []*tree.Decl
	Ends     tree.EndTable
	Warnings []Warning
}

// Warning is a lint warning raised at a position.
type Warning struct {
	Category  lint.Category
	At        uint32
	Message   string
	Mandatory bool
}

type outlineFile struct {
	Source  string        `toml:"source"`
	Text    string        `toml:"text"`
	Decls   []declFile    `toml:"decl"`
	Warning []warningFile `toml:"warning"`
}

type declFile struct {
	Kind       string     `toml:"kind"`
	Name       string     `toml:"name"`
	Start      int64      `toml:"start"`
	End        *int64     `toml:"end"`
	TreeEnd    *int64     `toml:"tree_end"`
	Suppress   []string   `toml:"suppress"`
	Deprecated bool       `toml:"deprecated"`
	Unresolved bool       `toml:"unresolved"`
	Decls      []declFile `toml:"decl"`
}

type warningFile struct {
	Category  string `toml:"category"`
	At        int64  `toml:"at"`
	Message   string `toml:"message"`
	Mandatory bool   `toml:"mandatory"`
}

// Load reads and validates the outline at path.
func Load(path string) (*Outline, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.Path = path
	if o.Source != "" && !filepath.IsAbs(o.Source) {
		o.Source = filepath.Join(filepath.Dir(path), filepath.FromSlash(o.Source))
	}
	return o, nil
}

// Parse decodes and validates outline TOML.
func Parse(data []byte) (*Outline, error) {
	var raw outlineFile
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if raw.Source != "" && raw.Text != "" {
		return nil, fmt.Errorf("%w: source and text are mutually exclusive", ErrInvalid)
	}

	o := &Outline{
		Source: raw.Source,
		Text:   raw.Text,
		Ends:   make(tree.EndTable),
	}
	for i := range raw.Decls {
		d, err := o.build(&raw.Decls[i], nil)
		if err != nil {
			return nil, err
		}
		o.Decls = append(o.Decls, d)
	}
	if err := o.checkTopLevel(); err != nil {
		return nil, err
	}
	for i, w := range raw.Warning {
		cat, ok := lint.ParseCategory(w.Category)
		if !ok {
			return nil, fmt.Errorf("%w: warning %d: unknown lint category %q", ErrInvalid, i+1, w.Category)
		}
		at, err := offset(w.At)
		if err != nil {
			return nil, fmt.Errorf("%w: warning %d: %w", ErrInvalid, i+1, err)
		}
		o.Warnings = append(o.Warnings, Warning{Category: cat, At: at, Message: w.Message, Mandatory: w.Mandatory})
	}
	return o, nil
}

func (o *Outline) build(raw *declFile, parent *tree.Decl) (*tree.Decl, error) {
	kind, ok := tree.ParseKind(raw.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: decl %q: unknown kind %q", ErrInvalid, raw.Name, raw.Kind)
	}
	start, err := offset(raw.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: decl %q: start: %w", ErrInvalid, raw.Name, err)
	}
	end := start
	if raw.End != nil {
		if end, err = offset(*raw.End); err != nil {
			return nil, fmt.Errorf("%w: decl %q: end: %w", ErrInvalid, raw.Name, err)
		}
	}
	if end < start {
		return nil, fmt.Errorf("%w: decl %q: end %d before start %d", ErrInvalid, raw.Name, end, start)
	}

	d := &tree.Decl{K: kind, Name: raw.Name, Sp: source.Span{Start: start, End: end}}
	if !raw.Unresolved {
		d.Sym = &tree.Symbol{Suppress: raw.Suppress, Deprecated: raw.Deprecated}
	}
	if raw.TreeEnd != nil {
		treeEnd, err := offset(*raw.TreeEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: decl %q: tree_end: %w", ErrInvalid, raw.Name, err)
		}
		if treeEnd < start {
			return nil, fmt.Errorf("%w: decl %q: tree_end %d before start %d", ErrInvalid, raw.Name, treeEnd, start)
		}
		o.Ends[d] = treeEnd
	}

	if parent != nil {
		outer, inner := tree.Extent(parent, o.Ends), tree.Extent(d, o.Ends)
		if !outer.ContainsSpan(inner) || sameRange(outer, inner) {
			return nil, fmt.Errorf("%w: decl %q [%d,%d) is not strictly inside %q [%d,%d)",
				ErrInvalid, d.Name, inner.Start, inner.End, parent.Name, outer.Start, outer.End)
		}
	}
	for i := range raw.Decls {
		child, err := o.build(&raw.Decls[i], d)
		if err != nil {
			return nil, err
		}
		if len(d.Nodes) > 0 {
			if err := o.checkSiblings(d.Nodes[len(d.Nodes)-1].(*tree.Decl), child); err != nil {
				return nil, err
			}
		}
		d.Nodes = append(d.Nodes, child)
	}
	return d, nil
}

// checkSiblings requires next to start at or after the end of prev, and the
// two not to be the same range.
func (o *Outline) checkSiblings(prev, next *tree.Decl) error {
	a, b := tree.Extent(prev, o.Ends), tree.Extent(next, o.Ends)
	if b.Start < a.End || sameRange(a, b) {
		return fmt.Errorf("%w: %q overlaps or precedes %q", ErrInvalid, next.Name, prev.Name)
	}
	return nil
}

func sameRange(a, b source.Span) bool {
	return a.Start == b.Start && a.End == b.End
}

// checkTopLevel rejects overlapping or identical top-level declarations.
func (o *Outline) checkTopLevel() error {
	var prev *tree.Decl
	for _, d := range o.Decls {
		if !d.K.IsTopLevel() {
			continue
		}
		if prev != nil {
			if err := o.checkSiblings(prev, d); err != nil {
				return err
			}
		}
		prev = d
	}
	return nil
}

// Nodes returns the top-level declarations as tree nodes, in source order.
func (o *Outline) Nodes() []tree.Node {
	nodes := make([]tree.Node, len(o.Decls))
	for i, d := range o.Decls {
		nodes[i] = d
	}
	return nodes
}

// Content returns the described source: Text, or the file at Source.
// Without either it returns a blank buffer long enough for every offset in
// the outline, so positions still resolve to line 1.
func (o *Outline) Content() ([]byte, error) {
	switch {
	case o.Text != "":
		return []byte(o.Text), nil
	case o.Source != "":
		// #nosec G304 -- path comes from the outline file
		return os.ReadFile(o.Source)
	}
	var maxOff uint32
	for _, d := range o.Decls {
		tree.Walk(d, func(n tree.Node) {
			maxOff = max(maxOff, tree.Extent(n, o.Ends).End)
		}, nil)
	}
	for _, w := range o.Warnings {
		maxOff = max(maxOff, w.At+1)
	}
	return []byte(strings.Repeat(" ", int(maxOff))), nil
}

func offset(v int64) (uint32, error) {
	off, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("offset %d out of range: %w", v, err)
	}
	return off, nil
}

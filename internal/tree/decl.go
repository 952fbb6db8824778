package tree

import (
	"lintmap/internal/lint"
	"lintmap/internal/source"
)

// Decl is a plain Node used by outlines and tests.
type Decl struct {
	K     Kind
	Name  string
	Sp    source.Span
	Sym   lint.Symbol // nil = unresolved
	Nodes []Node
}

func (d *Decl) Kind() Kind          { return d.K }
func (d *Decl) Span() source.Span   { return d.Sp }
func (d *Decl) Symbol() lint.Symbol { return d.Sym }
func (d *Decl) Children() []Node    { return d.Nodes }

// Symbol carries @SuppressWarnings values and the @Deprecated flag.
type Symbol struct {
	Suppress   []string
	Deprecated bool
}

func (s *Symbol) SuppressedWarnings() []string { return s.Suppress }
func (s *Symbol) IsDeprecated() bool           { return s.Deprecated }

// EndTable is a map-backed EndPositions.
type EndTable map[Node]uint32

func (t EndTable) EndPos(n Node) (uint32, bool) {
	end, ok := t[n]
	return end, ok
}

// Package tree defines the minimal view of a syntax tree needed to compute
// lint spans: node kind, source extent, resolved symbol and children.
package tree

import (
	"lintmap/internal/lint"
	"lintmap/internal/source"
)

// Kind classifies nodes.
type Kind uint8

const (
	KindOther Kind = iota // statements, expressions, blocks, ...
	KindModule
	KindPackage
	KindImport
	KindClass
	KindMethod
	KindVariable
)

var kindNames = [...]string{
	KindOther:    "other",
	KindModule:   "module",
	KindPackage:  "package",
	KindImport:   "import",
	KindClass:    "class",
	KindMethod:   "method",
	KindVariable: "variable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindOther, false
}

// IsDecl reports whether nodes of this kind can carry lint metadata.
func (k Kind) IsDecl() bool {
	switch k {
	case KindModule, KindPackage, KindClass, KindMethod, KindVariable:
		return true
	}
	return false
}

// IsTopLevel reports whether the kind is a top-level declaration of a
// compilation unit. Imports are not.
func (k Kind) IsTopLevel() bool {
	switch k {
	case KindModule, KindPackage, KindClass:
		return true
	}
	return false
}

// Node is one syntax tree node.
type Node interface {
	Kind() Kind
	// Span is the node's extent as known to the parser.
	Span() source.Span
	// Symbol returns the resolved symbol, or nil when resolution failed.
	Symbol() lint.Symbol
	// Children are returned in source order.
	Children() []Node
}

// EndPositions supplies end offsets recorded separately by the parser.
type EndPositions interface {
	EndPos(n Node) (uint32, bool)
}

// Extent returns the full extent of n, preferring ends when it knows n.
func Extent(n Node, ends EndPositions) source.Span {
	sp := n.Span()
	if ends == nil {
		return sp
	}
	if end, ok := ends.EndPos(n); ok && end >= sp.Start {
		sp.End = end
	}
	return sp
}

// Walk visits n and its descendants depth-first. pre is called before the
// children and post after them; either may be nil.
func Walk(n Node, pre, post func(Node)) {
	if pre != nil {
		pre(n)
	}
	for _, c := range n.Children() {
		Walk(c, pre, post)
	}
	if post != nil {
		post(n)
	}
}

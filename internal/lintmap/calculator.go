package lintmap

import (
	"lintmap/internal/lint"
	"lintmap/internal/tree"
)

// Calculate walks one top-level declaration and returns the spans where
// the effective lint differs from the enclosing one, sorted by position.
//
// Each declaration node augments the active lint with its symbol; nodes
// with unresolved symbols keep the enclosing lint. A span is emitted for a
// declaration only when augmentation changed something, and it covers the
// declaration's full extent even if it has no children.
func Calculate(root *lint.Lint, decl tree.Node, ends tree.EndPositions) []LintSpan {
	c := calculator{ends: ends, active: root}
	c.visit(decl)
	sortSpans(c.out)
	return c.out
}

type calculator struct {
	ends   tree.EndPositions
	active *lint.Lint
	out    []LintSpan
}

func (c *calculator) visit(n tree.Node) {
	if !n.Kind().IsDecl() {
		c.visitChildren(n)
		return
	}

	saved := c.active
	changed := false
	if sym := n.Symbol(); sym != nil {
		aug := c.active.Augment(sym)
		c.active, changed = aug.Lint, aug.Changed
	}

	c.visitChildren(n)

	if changed {
		c.out = append(c.out, LintSpan{Span: tree.Extent(n, c.ends), Lint: c.active})
	}
	c.active = saved
}

func (c *calculator) visitChildren(n tree.Node) {
	for _, child := range n.Children() {
		c.visit(child)
	}
}

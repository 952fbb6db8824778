// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"lintmap/internal/lintmap"
	"lintmap/internal/source"
)

// CheckLintSpans runs the structural invariants of one declaration's lint
// spans:
// 1) every span lies within extent, the declaration's full extent
// 2) spans are sorted by start, outer before inner at equal start
// 3) no two spans are identical
// 4) any two spans are either disjoint or nested
// 5) every span carries a lint
func CheckLintSpans(spans []lintmap.LintSpan, extent source.Span) error {
	var union source.Span
	for i, ls := range spans {
		sp := ls.Span
		if ls.Lint == nil {
			return fmt.Errorf("span %v has no lint", sp)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("inverted span %v", sp)
		}
		// 1) span inside declaration
		if !extent.ContainsSpan(sp) {
			return fmt.Errorf("span %v is outside declaration %v", sp, extent)
		}
		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
		if i == 0 {
			continue
		}

		prev := spans[i-1].Span
		// 2) order
		if prev.Start > sp.Start || (prev.Start == sp.Start && prev.End < sp.End) {
			return fmt.Errorf("spans out of order: %v before %v", prev, sp)
		}
		// 3) identical
		if prev.Start == sp.Start && prev.End == sp.End {
			return fmt.Errorf("identical spans %v", sp)
		}
	}

	// 4) nesting: after sorting, a span that starts inside an earlier one
	// must end inside it too
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i].Span, spans[j].Span
			if b.Start >= a.End {
				continue
			}
			if !a.ContainsSpan(b) {
				return fmt.Errorf("spans %v and %v overlap without nesting", a, b)
			}
		}
	}

	if len(spans) > 0 && !extent.ContainsSpan(union) {
		return fmt.Errorf("declaration %v does not cover its spans %v", extent, union)
	}
	return nil
}

package lintmap

import (
	"fmt"
	"slices"

	"lintmap/internal/lint"
	"lintmap/internal/source"
)

// LintSpan is a source range with the lint configuration in effect there.
type LintSpan struct {
	Span source.Span
	Lint *lint.Lint
}

func (ls LintSpan) String() string {
	return fmt.Sprintf("%s %s", ls.Span, ls.Lint)
}

// sortSpans orders by start, outer spans before the spans they contain.
func sortSpans(spans []LintSpan) {
	slices.SortStableFunc(spans, func(a, b LintSpan) int {
		if a.Span.Start != b.Span.Start {
			return int(a.Span.Start) - int(b.Span.Start)
		}
		return int(b.Span.End) - int(a.Span.End)
	})
}

// narrowest returns the innermost span containing pos, or nil.
// Spans form a properly nested tree, so among the candidates each one is
// contained in the previous best.
func narrowest(spans []LintSpan, pos uint32) *LintSpan {
	var best *LintSpan
	for i := range spans {
		ls := &spans[i]
		if !ls.Span.Contains(pos) {
			continue
		}
		if best == nil || best.Span.ContainsSpan(ls.Span) {
			best = ls
		}
	}
	return best
}

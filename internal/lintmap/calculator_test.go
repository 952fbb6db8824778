package lintmap

import (
	"testing"

	"lintmap/internal/lint"
	"lintmap/internal/source"
	"lintmap/internal/tree"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func suppress(names ...string) *tree.Symbol {
	return &tree.Symbol{Suppress: names}
}

func TestCalculateNoMetadata(t *testing.T) {
	root := lint.New(lint.Unchecked)
	cls := &tree.Decl{K: tree.KindClass, Sp: span(0, 100), Sym: &tree.Symbol{}, Nodes: []tree.Node{
		&tree.Decl{K: tree.KindMethod, Sp: span(10, 50), Sym: &tree.Symbol{}},
	}}

	if got := Calculate(root, cls, nil); len(got) != 0 {
		t.Errorf("Calculate = %v, want no spans", got)
	}
}

func TestCalculateNested(t *testing.T) {
	root := lint.New(lint.Unchecked, lint.Rawtypes, lint.Deprecation)

	field := &tree.Decl{K: tree.KindVariable, Sp: span(45, 55), Sym: suppress("rawtypes")}
	method := &tree.Decl{K: tree.KindMethod, Sp: span(40, 60), Sym: suppress("unchecked"), Nodes: []tree.Node{
		&tree.Decl{K: tree.KindOther, Sp: span(42, 58), Nodes: []tree.Node{field}},
	}}
	cls := &tree.Decl{K: tree.KindClass, Sp: span(0, 100), Sym: &tree.Symbol{Deprecated: true}, Nodes: []tree.Node{method}}

	got := Calculate(root, cls, nil)
	if len(got) != 3 {
		t.Fatalf("Calculate returned %d spans: %v", len(got), got)
	}

	wantSpans := []source.Span{span(0, 100), span(40, 60), span(45, 55)}
	for i, ls := range got {
		if ls.Span != wantSpans[i] {
			t.Errorf("span %d = %v, want %v", i, ls.Span, wantSpans[i])
		}
	}

	// каждый уровень наследует подавления внешнего
	inner := got[2].Lint
	for _, c := range []lint.Category{lint.Deprecation, lint.Unchecked, lint.Rawtypes} {
		if !inner.IsSuppressed(c) {
			t.Errorf("%s not suppressed in innermost span: %v", c, inner)
		}
	}
	if got[0].Lint.IsSuppressed(lint.Unchecked) {
		t.Errorf("class span must not see method suppressions: %v", got[0].Lint)
	}
	if root.IsSuppressed(lint.Deprecation) {
		t.Error("root mutated")
	}
}

func TestCalculateUnresolvedKeepsEnclosing(t *testing.T) {
	root := lint.New(lint.Unchecked)
	unresolved := &tree.Decl{K: tree.KindMethod, Sp: span(10, 20), Nodes: []tree.Node{
		&tree.Decl{K: tree.KindVariable, Sp: span(12, 18), Sym: suppress("unchecked")},
	}}
	cls := &tree.Decl{K: tree.KindClass, Sp: span(0, 30), Sym: suppress("serial"), Nodes: []tree.Node{unresolved}}

	got := Calculate(root, cls, nil)
	if len(got) != 2 {
		t.Fatalf("Calculate = %v", got)
	}
	if got[0].Span != span(0, 30) || got[1].Span != span(12, 18) {
		t.Errorf("spans = %v", got)
	}
	// the variable augments the class lint, not root
	if !got[1].Lint.IsSuppressed(lint.Serial) || !got[1].Lint.IsSuppressed(lint.Unchecked) {
		t.Errorf("variable lint = %v", got[1].Lint)
	}
}

func TestCalculateZeroWidthLeaf(t *testing.T) {
	root := lint.New(lint.Unchecked)
	leaf := &tree.Decl{K: tree.KindVariable, Sp: span(7, 7), Sym: suppress("unchecked")}
	cls := &tree.Decl{K: tree.KindClass, Sp: span(0, 20), Nodes: []tree.Node{leaf}}

	got := Calculate(root, cls, nil)
	if len(got) != 1 || got[0].Span != span(7, 7) {
		t.Fatalf("Calculate = %v, want one empty span at 7", got)
	}
	if !got[0].Lint.IsSuppressed(lint.Unchecked) {
		t.Errorf("lint = %v", got[0].Lint)
	}
}

func TestCalculateUsesEndPositions(t *testing.T) {
	root := lint.New(lint.Unchecked)
	method := &tree.Decl{K: tree.KindMethod, Sp: span(10, 11), Sym: suppress("unchecked")}
	cls := &tree.Decl{K: tree.KindClass, Sp: span(0, 1), Nodes: []tree.Node{method}}
	ends := tree.EndTable{method: 30, cls: 50}

	got := Calculate(root, cls, ends)
	if len(got) != 1 || got[0].Span != span(10, 30) {
		t.Errorf("Calculate = %v, want 10-30", got)
	}
}

func TestCalculateSpansNeverIdentical(t *testing.T) {
	root := lint.New(lint.Unchecked, lint.Rawtypes, lint.Cast)
	inner := &tree.Decl{K: tree.KindVariable, Sp: span(5, 15), Sym: suppress("cast")}
	other := &tree.Decl{K: tree.KindVariable, Sp: span(20, 25), Sym: suppress("rawtypes")}
	method := &tree.Decl{K: tree.KindMethod, Sp: span(2, 40), Sym: suppress("unchecked"), Nodes: []tree.Node{inner, other}}
	cls := &tree.Decl{K: tree.KindClass, Sp: span(0, 50), Sym: suppress("serial"), Nodes: []tree.Node{method}}

	got := Calculate(root, cls, nil)
	seen := make(map[source.Span]bool)
	for _, ls := range got {
		if seen[ls.Span] {
			t.Errorf("duplicate span %v in %v", ls.Span, got)
		}
		seen[ls.Span] = true
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Span.Start > got[i].Span.Start {
			t.Errorf("spans not sorted: %v", got)
		}
	}
}

func TestNarrowest(t *testing.T) {
	l1 := lint.New(lint.Cast)
	l2 := lint.New(lint.Try)
	spans := []LintSpan{
		{Span: span(0, 100), Lint: l1},
		{Span: span(40, 60), Lint: l2},
	}

	tests := []struct {
		pos  uint32
		want *lint.Lint
	}{
		{pos: 0, want: l1},
		{pos: 10, want: l1},
		{pos: 40, want: l2},
		{pos: 50, want: l2},
		{pos: 60, want: l1},
		{pos: 99, want: l1},
		{pos: 100, want: nil},
	}
	for _, tt := range tests {
		got := narrowest(spans, tt.pos)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("narrowest(%d) = %v, want none", tt.pos, got)
		case tt.want != nil && (got == nil || got.Lint != tt.want):
			t.Errorf("narrowest(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

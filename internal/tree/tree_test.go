package tree

import (
	"slices"
	"testing"

	"lintmap/internal/source"
)

func TestKindClassification(t *testing.T) {
	tests := []struct {
		kind     Kind
		decl     bool
		topLevel bool
	}{
		{kind: KindModule, decl: true, topLevel: true},
		{kind: KindPackage, decl: true, topLevel: true},
		{kind: KindClass, decl: true, topLevel: true},
		{kind: KindMethod, decl: true},
		{kind: KindVariable, decl: true},
		{kind: KindImport},
		{kind: KindOther},
	}
	for _, tt := range tests {
		if tt.kind.IsDecl() != tt.decl || tt.kind.IsTopLevel() != tt.topLevel {
			t.Errorf("%s: IsDecl=%v IsTopLevel=%v", tt.kind, tt.kind.IsDecl(), tt.kind.IsTopLevel())
		}
		if k, ok := ParseKind(tt.kind.String()); !ok || k != tt.kind {
			t.Errorf("ParseKind(%q) = %v, %v", tt.kind.String(), k, ok)
		}
	}
	if _, ok := ParseKind("interface"); ok {
		t.Error("unknown kind must not parse")
	}
}

func TestExtent(t *testing.T) {
	d := &Decl{K: KindClass, Sp: source.Span{Start: 10, End: 12}}
	other := &Decl{K: KindClass, Sp: source.Span{Start: 50, End: 60}}
	ends := EndTable{d: 40, other: 5}

	if got := Extent(d, nil); got != d.Sp {
		t.Errorf("Extent without table = %v", got)
	}
	if got := Extent(d, ends); got.Start != 10 || got.End != 40 {
		t.Errorf("Extent = %v, want 10-40", got)
	}
	// end before start is ignored
	if got := Extent(other, ends); got != other.Sp {
		t.Errorf("Extent = %v, want %v", got, other.Sp)
	}
}

func TestWalkOrder(t *testing.T) {
	leaf1 := &Decl{Name: "a"}
	leaf2 := &Decl{Name: "b"}
	mid := &Decl{Name: "m", Nodes: []Node{leaf1, leaf2}}
	root := &Decl{Name: "r", Nodes: []Node{mid}}

	var pre, post []string
	Walk(root,
		func(n Node) { pre = append(pre, n.(*Decl).Name) },
		func(n Node) { post = append(post, n.(*Decl).Name) })

	if !slices.Equal(pre, []string{"r", "m", "a", "b"}) {
		t.Errorf("pre = %v", pre)
	}
	if !slices.Equal(post, []string{"a", "b", "m", "r"}) {
		t.Errorf("post = %v", post)
	}
}

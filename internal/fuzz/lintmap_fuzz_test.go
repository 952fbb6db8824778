package fuzztests

import (
	"context"
	"testing"

	"lintmap/internal/lint"
	"lintmap/internal/lintmap"
	"lintmap/internal/outline"
	"lintmap/internal/session"
	"lintmap/internal/testkit"
	"lintmap/internal/tree"
)

// maxQueries bounds the LintAt sweep per input.
const maxQueries = 4096

func FuzzOutlineLintMap(f *testing.F) {
	addOutlineSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		o, err := outline.Parse(clampInput(input))
		if err != nil || o.Source != "" {
			return
		}

		root := lint.Default()
		for _, d := range o.Decls {
			if !d.K.IsTopLevel() {
				continue
			}
			spans := lintmap.Calculate(root, d, o.Ends)
			if err := testkit.CheckLintSpans(spans, tree.Extent(d, o.Ends)); err != nil {
				t.Fatalf("decl %q: %v", d.Name, err)
			}
		}

		sess := session.New(session.Options{Lint: root})
		res, err := sess.RunOutline(context.Background(), o, nil)
		if err != nil {
			t.Fatalf("RunOutline: %v", err)
		}
		content, err := o.Content()
		if err != nil {
			return
		}
		// после атрибуции все позиции известны
		for pos := 0; pos <= len(content) && pos < maxQueries; pos++ {
			if _, ok := sess.Lints.LintAt(res.File, uint32(pos)); !ok {
				t.Fatalf("LintAt(%d) unknown after attribution", pos)
			}
		}
	})
}

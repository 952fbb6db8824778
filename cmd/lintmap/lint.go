package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lintmap/internal/diag"
	"lintmap/internal/lint"
	"lintmap/internal/logging"
	"lintmap/internal/outline"
	"lintmap/internal/session"
	"lintmap/internal/source"
	"lintmap/internal/trace"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] OUTLINE.toml",
	Short: "Show the lint configuration in effect at source positions",
	Long: `lint replays the parse and attribute phases over a declaration outline,
reports the outline's warnings through lint gating, and prints the effective
lint configuration at every --at position. Positions are byte offsets or
LINE:COL pairs.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringSlice("at", nil, "positions to query (OFFSET or LINE:COL), comma separated")
	lintCmd.Flags().StringSlice("xlint", nil, "-Xlint values (all, none, CATEGORY, -CATEGORY); overrides [lint].xlint")
	lintCmd.Flags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

type lintReport struct {
	Path     string
	Root     *lint.Lint
	Result   session.Result
	Queries  []lintQuery
	Pending  []source.Span
	Warnings string
	Omitted  int
}

type lintQuery struct {
	Input string
	Pos   source.LineCol
	Lint  *lint.Lint
	Known bool
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root, err := rootLintFor(cmd)
	if err != nil {
		return err
	}
	positions, err := cmd.Flags().GetStringSlice("at")
	if err != nil {
		return fmt.Errorf("failed to get at flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	o, err := outline.Load(args[0])
	if err != nil {
		return err
	}
	sess := session.New(session.Options{
		Lint:   root,
		Tracer: trace.FromContext(ctx),
		Log:    logging.FromContext(ctx),
	})

	bag := diag.NewBag(maxDiagnostics)
	res, err := sess.RunOutline(ctx, o, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	if err != nil {
		return err
	}

	report := lintReport{
		Path:    args[0],
		Root:    root,
		Result:  res,
		Pending: sess.Lints.Pending(res.File),
	}
	for _, in := range positions {
		off, err := parsePosition(sess.Files, res.File, in)
		if err != nil {
			return err
		}
		l, known := sess.Lints.LintAt(res.File, off)
		lc, _ := sess.Files.Resolve(source.Span{File: res.File, Start: off, End: off})
		report.Queries = append(report.Queries, lintQuery{Input: in, Pos: lc, Lint: l, Known: known})
	}
	bag.Sort()
	report.Warnings = diag.FormatShort(bag.Items(), sess.Files, true)
	report.Omitted = bag.Omitted()

	renderLintReport(cmd.OutOrStdout(), report, !color.NoColor)
	return nil
}

// parsePosition accepts a byte offset or a 1-based LINE:COL.
func parsePosition(fs *source.FileSet, file source.FileID, s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if line, col, ok := strings.Cut(s, ":"); ok {
		l, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid line in position %q: %w", s, err)
		}
		c, err := strconv.ParseUint(col, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid column in position %q: %w", s, err)
		}
		return fs.Offset(file, source.LineCol{Line: uint32(l), Col: uint32(c)})
	}
	off, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	// позиция сразу за последним байтом допустима
	if ext := fs.Extent(file); off > uint64(ext.End) {
		return 0, fmt.Errorf("position %d is past the end of %s", off, fs.Get(file).Path)
	}
	return uint32(off), nil
}

func renderLintReport(out io.Writer, r lintReport, useColor bool) {
	heading := lipgloss.NewStyle()
	dim := lipgloss.NewStyle()
	unknown := lipgloss.NewStyle()
	if useColor {
		heading = heading.Bold(true).Foreground(lipgloss.Color("6"))
		dim = dim.Foreground(lipgloss.Color("8"))
		unknown = unknown.Foreground(lipgloss.Color("3"))
	}

	fmt.Fprintln(out, heading.Render("lint map: "+r.Path))
	fmt.Fprintf(out, "%s %s\n", dim.Render("root"), r.Root)
	fmt.Fprintf(out, "%s %d top-level, %d names, %d warnings deferred, %d dropped\n",
		dim.Render("decls"), r.Result.Decls, r.Result.Names, r.Result.Deferred, r.Result.Dropped)
	for _, sp := range r.Pending {
		fmt.Fprintf(out, "%s %d-%d\n", unknown.Render("pending"), sp.Start, sp.End)
	}

	if len(r.Queries) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, heading.Render("positions"))
		for _, q := range r.Queries {
			where := fmt.Sprintf("%-8s %s", q.Input, q.Pos)
			if !q.Known {
				fmt.Fprintf(out, "  %s  %s\n", where, unknown.Render("unknown"))
				continue
			}
			fmt.Fprintf(out, "  %s  %s\n", where, q.Lint)
		}
	}

	if r.Warnings != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, heading.Render("warnings"))
		fmt.Fprintln(out, r.Warnings)
	}
	if r.Omitted > 0 {
		fmt.Fprintf(out, "%s\n", dim.Render(fmt.Sprintf("... %d more not shown (--max-diagnostics)", r.Omitted)))
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"lintmap/internal/diag"
	"lintmap/internal/logging"
	"lintmap/internal/mutf8"
	"lintmap/internal/names"
	"lintmap/internal/session"
	"lintmap/internal/source"
)

var namesCmd = &cobra.Command{
	Use:   "names [flags] FILE",
	Short: "Intern the whitespace-separated names of a modified UTF-8 file",
	Long: `names splits FILE on ASCII whitespace, interns every word into a name
table and lists the table. Words that fail validation are reported and
skipped. The table can be saved to and restored from a msgpack snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runNames,
}

func init() {
	namesCmd.Flags().String("validation", "none", "validation policy (none|lenient|strict)")
	namesCmd.Flags().String("snapshot", "", "write the resulting table to this file")
	namesCmd.Flags().String("restore", "", "start from a table snapshot instead of an empty table")
	namesCmd.Flags().Bool("all", false, "list predefined names too")
	namesCmd.Flags().Int("width", 40, "truncate names wider than this many columns (0=never)")
}

// word is a whitespace-delimited run of bytes at offset Start.
type word struct {
	Start int
	Bytes []byte
}

func splitWords(data []byte) []word {
	var out []word
	start := -1
	for i, b := range data {
		space := b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
		switch {
		case space && start >= 0:
			out = append(out, word{Start: start, Bytes: data[start:i]})
			start = -1
		case !space && start < 0:
			start = i
		}
	}
	if start >= 0 {
		out = append(out, word{Start: start, Bytes: data[start:]})
	}
	return out
}

func runNames(cmd *cobra.Command, args []string) error {
	v, err := validationFor(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	snapshotPath, _ := flags.GetString("snapshot")
	restorePath, _ := flags.GetString("restore")
	all, _ := flags.GetBool("all")
	width, _ := flags.GetInt("width")

	sess := session.New(session.Options{Validation: v, Log: logging.FromContext(cmd.Context())})
	if restorePath != "" {
		table, err := restoreTable(restorePath)
		if err != nil {
			return err
		}
		sess.Names.Dispose()
		sess.Names = table
	}

	file, err := sess.Files.Load(args[0])
	if err != nil {
		return err
	}
	bag := diag.NewBag(100)
	interned := internWords(sess, file, diag.BagReporter{Bag: bag})
	sess.Log.Debug("interned", "words", interned, "table", sess.Names.Len())

	out := cmd.OutOrStdout()
	first := sess.Names.Predefined().FirstUser()
	if all {
		first = 1
	}
	listNames(out, sess.Names, first, width)
	if bag.Len() > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShort(bag.Items(), sess.Files, false))
	}

	if snapshotPath != "" {
		if err := writeSnapshot(snapshotPath, sess.Names); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", color.GreenString("snapshot"), snapshotPath)
	}
	return nil
}

// internWords interns every valid word of file and reports the rest.
// It returns the number of words interned.
func internWords(sess *session.Session, file source.FileID, r diag.Reporter) int {
	n := 0
	for _, w := range splitWords(sess.Files.Get(file).Content) {
		if _, err := sess.Names.FromUtf(w.Bytes, sess.Validation); err != nil {
			b := diag.ReportError(r, diag.Utf8BadName, wordSpan(file, w), err.Error())
			var de *mutf8.DecodeError
			if errors.As(err, &de) && de.Offset > 0 {
				at := wordSpan(file, word{Start: w.Start + de.Offset})
				b.WithNote(at, "malformed sequence starts here")
			}
			b.Emit()
			continue
		}
		n++
	}
	return n
}

func wordSpan(file source.FileID, w word) source.Span {
	start, err := safecast.Conv[uint32](w.Start)
	if err != nil {
		panic(fmt.Errorf("word offset overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](w.Start + len(w.Bytes))
	if err != nil {
		panic(fmt.Errorf("word end overflow: %w", err))
	}
	return source.Span{File: file, Start: start, End: end}
}

// listNames prints index, name and byte length, with the name column
// padded to the widest name in display cells.
func listNames(out io.Writer, table *names.Table, first uint32, width int) {
	type row struct {
		index uint32
		text  string
		size  int
	}
	var rows []row
	col := 0
	for id := first; int(id) < table.Len(); id++ {
		n, ok := table.Lookup(id)
		if !ok {
			break
		}
		text := n.String()
		if width > 0 && runewidth.StringWidth(text) > width {
			text = runewidth.Truncate(text, width, "...")
		}
		rows = append(rows, row{index: id, text: text, size: len(n.Bytes())})
		col = max(col, runewidth.StringWidth(text))
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%5d  %s  %d\n", r.index, runewidth.FillRight(r.text, col), r.size)
	}
}

func restoreTable(path string) (*names.Table, error) {
	// #nosec G304 -- path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	table, err := names.ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func writeSnapshot(path string, table *names.Table) error {
	// #nosec G304 -- path is provided by the user
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := table.WriteSnapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

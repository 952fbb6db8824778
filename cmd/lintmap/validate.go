package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lintmap/internal/diag"
	"lintmap/internal/logging"
	"lintmap/internal/mutf8"
	"lintmap/internal/source"
	"lintmap/internal/trace"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] FILE...",
	Short: "Check that files are well-formed modified UTF-8",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("validation", "strict", "validation policy (none|lenient|strict)")
	validateCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
}

type validateResult struct {
	Path  string
	File  source.FileID
	Chars int
	Err   error
}

var errInvalidFiles = errors.New("some files are not valid modified UTF-8")

func runValidate(cmd *cobra.Command, args []string) error {
	v, err := validationFor(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("validation") && configFrom(cmd.Context()).Names.Validation == "" {
		v = mutf8.Strict
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	fs := source.NewFileSet()
	results, err := validateFiles(cmd.Context(), fs, args, v, jobs)
	if err != nil {
		return err
	}
	if printValidation(cmd.OutOrStdout(), fs, results) > 0 {
		return errInvalidFiles
	}
	return nil
}

// validateFiles reads every path and validates it under v on up to jobs
// goroutines. Per-file problems are recorded in the results; the returned
// error is for cancellation only.
func validateFiles(ctx context.Context, fs *source.FileSet, paths []string, v mutf8.Validation, jobs int) ([]validateResult, error) {
	results := make([]validateResult, len(paths))
	// читаем последовательно, чтобы FileID шли в порядке аргументов
	for i, path := range paths {
		results[i].Path = path
		// #nosec G304 -- path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].File = fs.Add(path, data, 0)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "validate", trace.ParentFrom(ctx),
		trace.Int("files", len(paths)), trace.Int("jobs", jobs))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data := fs.Get(results[i].File).Content
			if err := mutf8.Validate(data, v); err != nil {
				results[i].Err = err
				trace.Point(tracer, trace.ScopeFile, "validate.file", trace.String("path", results[i].Path), trace.String("error", err.Error()))
				return nil
			}
			results[i].Chars = mutf8.CountChars(data)
			trace.Point(tracer, trace.ScopeFile, "validate.file", trace.String("path", results[i].Path), trace.Int("chars", results[i].Chars))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("validated", "files", len(paths), "validation", v)
	return results, nil
}

// printValidation writes one line per file and returns the failure count.
func printValidation(out io.Writer, fs *source.FileSet, results []validateResult) int {
	bag := diag.NewBag(len(results))
	for _, r := range results {
		var de *mutf8.DecodeError
		switch {
		case r.Err == nil:
			fmt.Fprintf(out, "%s %s (%d chars)\n", color.GreenString("ok"), r.Path, r.Chars)
		case errors.As(r.Err, &de):
			off, err := safecast.Conv[uint32](de.Offset)
			if err != nil {
				panic(fmt.Errorf("decode offset overflow: %w", err))
			}
			bag.Add(diag.New(diag.SevError, diag.Utf8Malformed, source.Span{File: r.File, Start: off, End: off + 1}, r.Err.Error()))
		default:
			fmt.Fprintf(out, "%s %s: %v\n", color.RedString("error"), r.Path, r.Err)
		}
	}
	if bag.Len() > 0 {
		fmt.Fprintln(out, diag.FormatShort(bag.Items(), fs, false))
	}
	failed := bag.Len()
	for _, r := range results {
		if r.Err != nil && !errors.As(r.Err, new(*mutf8.DecodeError)) {
			failed++
		}
	}
	return failed
}

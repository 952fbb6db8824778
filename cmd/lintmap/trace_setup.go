package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lintmap/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// Flags win over the [trace] section of the config. The returned cleanup
// closes the driver span and the tracer; when the command failed and the
// tracer keeps a ring buffer, the ring is dumped to stderr first.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	root := cmd.Root()
	cfg := configFrom(cmd.Context())

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if !root.PersistentFlags().Changed("trace") && cfg.Trace.Output != "" {
		traceOutput = cfg.Trace.Output
	}

	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if !root.PersistentFlags().Changed("trace-level") && cfg.Trace.Level != "" {
		levelStr = cfg.Trace.Level
	}

	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает трассировку фаз
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, cmd.Name(), 0, trace.String("level", level.String()))
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(trace.WithSpan(ctx, span))

	cleanup := func(failed bool) {
		span.End(trace.String("failed", fmt.Sprint(failed)))
		if ring := trace.RingOf(tracer); failed && ring != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before failure:")
			if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

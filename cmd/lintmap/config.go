package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"lintmap/internal/lint"
	"lintmap/internal/mutf8"
)

const configFileName = "lintmap.toml"

type config struct {
	// Path is where the config was read from, empty for defaults.
	Path  string      `toml:"-"`
	Lint  lintConfig  `toml:"lint"`
	Names namesConfig `toml:"names"`
	Trace traceConfig `toml:"trace"`
}

type lintConfig struct {
	Xlint []string `toml:"xlint"`
}

type namesConfig struct {
	Validation string `toml:"validation"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (config, error) {
	var cfg config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return config{}, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("names", "validation") {
		if _, err := mutf8.ParseValidation(cfg.Names.Validation); err != nil {
			return config{}, fmt.Errorf("%s: [names].validation: %w", path, err)
		}
	}
	if _, err := lint.FromOptions(cfg.Lint.Xlint); err != nil {
		return config{}, fmt.Errorf("%s: [lint].xlint: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// resolveConfig loads --config when given, otherwise the nearest
// lintmap.toml above the working directory. No file means defaults.
func resolveConfig(cmd *cobra.Command) (config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config{}, err
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return config{}, err
		}
		path = found
	}
	return loadConfig(path)
}

type configKey struct{}

func withConfig(ctx context.Context, cfg config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) config {
	if ctx == nil {
		return config{}
	}
	cfg, _ := ctx.Value(configKey{}).(config)
	return cfg
}

// validationFor returns --validation when set on cmd, else the configured
// policy.
func validationFor(cmd *cobra.Command) (mutf8.Validation, error) {
	if f := cmd.Flags().Lookup("validation"); f != nil && f.Changed {
		return mutf8.ParseValidation(f.Value.String())
	}
	return mutf8.ParseValidation(configFrom(cmd.Context()).Names.Validation)
}

// rootLintFor returns the root lint from --xlint when set, else from config.
func rootLintFor(cmd *cobra.Command) (*lint.Lint, error) {
	opts := configFrom(cmd.Context()).Lint.Xlint
	if cmd.Flags().Changed("xlint") {
		values, err := cmd.Flags().GetStringSlice("xlint")
		if err != nil {
			return nil, err
		}
		opts = values
	}
	return lint.FromOptions(opts)
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintmap/internal/logging"
	"lintmap/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lintmap",
	Short: "Modified UTF-8 names and lint span inspection",
	Long: `lintmap exposes the name table and the lint span mapper of a Java-style
compiler front end: decode and validate modified UTF-8, intern names, and
ask which -Xlint configuration is in effect at a source position.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// main registers subcommands and persistent flags, then executes the root
// command. A failing command exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Current().Version

	err := rootCmd.Execute()
	// трейс сбрасываем и при ошибке команды
	traceCleanup(err != nil)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to lintmap.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|file|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
}

// setupCommand runs before every subcommand: colour, logging, config and
// tracing, in that order.
func setupCommand(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	levelFlag, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return err
	}
	if _, err := logging.ParseLevel(levelFlag); err != nil {
		return err
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), levelFlag)
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SetContext(withConfig(cmd.Context(), cfg))
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return nil
}

var traceCleanup = func(bool) {}

func resolveColor(flag string, tty bool) (bool, error) {
	switch flag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return tty, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected: auto|on|off)", flag)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

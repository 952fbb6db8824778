package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lintmap/internal/logging"
	"lintmap/internal/mutf8"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] FILE",
	Short: "Decode a modified UTF-8 file and print its text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().String("validation", "none", "validation policy (none|lenient|strict)")
	decodeCmd.Flags().Bool("count", false, "print the UTF-16 length instead of the text")
}

func runDecode(cmd *cobra.Command, args []string) error {
	v, err := validationFor(cmd)
	if err != nil {
		return err
	}
	count, err := cmd.Flags().GetBool("count")
	if err != nil {
		return fmt.Errorf("failed to get count flag: %w", err)
	}

	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Debug("decoding", "path", args[0], "bytes", len(data), "validation", v)

	text, err := mutf8.DecodeString(data, v)
	if err != nil {
		var de *mutf8.DecodeError
		if errors.As(err, &de) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: byte %#02x at offset %d\n",
				color.RedString("error"), args[0], data[de.Offset], de.Offset)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if count {
		fmt.Fprintln(out, mutf8.CountChars(data))
		return nil
	}
	fmt.Fprint(out, text)
	return nil
}

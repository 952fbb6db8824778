package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"lintmap/internal/mutf8"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] FILE",
	Short: "Convert a text file to modified UTF-8",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().String("input-encoding", "utf-8", "input charset (utf-8|utf-16|utf-16le|utf-16be)")
	encodeCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	charset, err := cmd.Flags().GetString("input-encoding")
	if err != nil {
		return fmt.Errorf("failed to get input-encoding flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	text, err := toUTF8(data, charset)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	encoded := mutf8.EncodeString(text)

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(encoded)
		return err
	}
	return os.WriteFile(outPath, encoded, 0o600)
}

// inputEncoding maps a charset name to its decoder. A leading BOM is
// honoured and stripped for every charset.
func inputEncoding(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "":
		return unicode.UTF8BOM, nil
	case "utf-16":
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q (expected: utf-8|utf-16|utf-16le|utf-16be)", charset)
	}
}

func toUTF8(data []byte, charset string) (string, error) {
	enc, err := inputEncoding(charset)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s input: %w", charset, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("input is not valid %s", charset)
	}
	return string(out), nil
}

package fuzztests

import (
	"bytes"
	"testing"

	"lintmap/internal/mutf8"
	"lintmap/internal/names"
)

func FuzzDecodePolicies(f *testing.F) {
	addCodecSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		// None никогда не отказывает
		none, err := mutf8.Decode(input, mutf8.None)
		if err != nil {
			t.Fatalf("None rejected input: %v", err)
		}
		strict, strictErr := mutf8.Decode(input, mutf8.Strict)
		_, lenientErr := mutf8.Decode(input, mutf8.Lenient)
		if strictErr == nil && lenientErr != nil {
			t.Fatalf("Strict accepted what Lenient rejected: %v", lenientErr)
		}
		if strictErr != nil {
			return
		}

		// строгий вход кодируется ровно так же
		if got := mutf8.Encode(strict); !bytes.Equal(got, input) {
			t.Fatalf("re-encoding %x gave %x", input, got)
		}
		if len(none) != len(strict) || mutf8.CountChars(input) != len(strict) {
			t.Fatalf("length mismatch: none=%d strict=%d count=%d", len(none), len(strict), mutf8.CountChars(input))
		}
		if mutf8.EncodedLen(strict) != len(input) {
			t.Fatalf("EncodedLen = %d, want %d", mutf8.EncodedLen(strict), len(input))
		}
	})
}

func FuzzNamesIntern(f *testing.F) {
	addCodecSeeds(f)
	table := names.NewTable()
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		a := table.Intern(input)
		b := table.Intern(append([]byte(nil), input...))
		if a != b {
			t.Fatalf("Intern not idempotent for %x", input)
		}
		if !bytes.Equal(a.Bytes(), input) {
			t.Fatalf("Bytes = %x, want %x", a.Bytes(), input)
		}
		_ = a.String()

		if n, err := table.FromUtf(input, mutf8.Strict); err == nil && n != a {
			t.Fatalf("FromUtf returned a different name for %x", input)
		}
	})
}

package mutf8

import (
	"fmt"
	"strings"
)

// Validation selects which byte sequences Decode accepts.
type Validation uint8

const (
	// None accepts anything; malformed input is decoded best-effort.
	None Validation = iota
	// Lenient accepts a bare 0x00 byte as NUL and over-long encodings.
	Lenient
	// Strict allows exactly one encoding per character.
	Strict
)

// String returns the lowercase name of the policy.
func (v Validation) String() string {
	switch v {
	case None:
		return "none"
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseValidation converts a flag or config value into a Validation.
func ParseValidation(s string) (Validation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return None, fmt.Errorf("invalid validation: %q (expected: none|lenient|strict)", s)
	}
}

// DecodeError reports malformed Modified UTF-8.
// Offset is the position of the first byte of the offending sequence.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid modified UTF-8 at offset %d", e.Offset)
}

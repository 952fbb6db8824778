// Package mutf8 converts between UTF-16 code units and Modified UTF-8,
// the encoding used for identifiers and constant-pool strings.
//
// Every UTF-16 code unit is encoded on its own, so a surrogate pair becomes
// two 3-byte sequences and NUL is always written as C0 80. Decoding is
// parameterised by a Validation policy which decides how much of the
// historical slack in the format is tolerated.
package mutf8

import "unicode/utf16"

// next decodes the character starting at b[off].
// It returns the code unit and the number of bytes consumed, or ok=false
// if the sequence is rejected by v. Under None it never fails.
func next(b []byte, off int, v Validation) (c uint16, n int, ok bool) {
	b1 := b[off]
	switch {
	case b1 < 0x80:
		// одиночный 0x00 допустим только вне Strict
		if b1 == 0 && v == Strict {
			return 0, 0, false
		}
		return uint16(b1), 1, true

	case b1&0xE0 == 0xC0:
		if off+1 >= len(b) {
			if v != None {
				return 0, 0, false
			}
			return uint16(b1&0x1F) << 6, 1, true
		}
		b2 := b[off+1]
		if v != None && b2&0xC0 != 0x80 {
			return 0, 0, false
		}
		c = uint16(b1&0x1F)<<6 | uint16(b2&0x3F)
		// C0 80 is the only valid NUL encoding, everything else below 0x80 is over-long.
		if v == Strict && c != 0 && c < 0x80 {
			return 0, 0, false
		}
		return c, 2, true

	case b1&0xF0 == 0xE0:
		var b2, b3 byte
		n = 1
		if off+1 < len(b) {
			b2 = b[off+1]
			n++
		}
		if off+2 < len(b) {
			b3 = b[off+2]
			n++
		}
		if v != None && (n < 3 || b2&0xC0 != 0x80 || b3&0xC0 != 0x80) {
			return 0, 0, false
		}
		c = uint16(b1&0x0F)<<12 | uint16(b2&0x3F)<<6 | uint16(b3&0x3F)
		if v == Strict && c < 0x800 {
			return 0, 0, false
		}
		return c, n, true

	default:
		// stray continuation byte or 4-byte lead: not part of the format
		if v != None {
			return 0, 0, false
		}
		return uint16(b1 & 0x7F), 1, true
	}
}

// Decode converts Modified UTF-8 bytes into UTF-16 code units.
// Under None it never fails; otherwise a malformed sequence yields a
// *DecodeError carrying the offset of the sequence start.
func Decode(b []byte, v Validation) ([]uint16, error) {
	out := make([]uint16, 0, CountChars(b))
	for off := 0; off < len(b); {
		c, n, ok := next(b, off, v)
		if !ok {
			return nil, &DecodeError{Offset: off}
		}
		out = append(out, c)
		off += n
	}
	return out, nil
}

// Validate performs the checks of Decode without producing output.
func Validate(b []byte, v Validation) error {
	if v == None {
		return nil
	}
	for off := 0; off < len(b); {
		_, n, ok := next(b, off, v)
		if !ok {
			return &DecodeError{Offset: off}
		}
		off += n
	}
	return nil
}

// DecodeString decodes b and converts the code units into a Go string.
// Unpaired surrogates become U+FFFD.
func DecodeString(b []byte, v Validation) (string, error) {
	chars, err := Decode(b, v)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(chars)), nil
}

// EncodedLen reports how many bytes Encode will produce for chars.
func EncodedLen(chars []uint16) int {
	n := 0
	for _, c := range chars {
		switch {
		case c >= 0x01 && c <= 0x7F:
			n++
		case c <= 0x7FF:
			n += 2
		default:
			n += 3
		}
	}
	return n
}

// AppendEncode appends the encoding of chars to dst.
func AppendEncode(dst []byte, chars []uint16) []byte {
	for _, c := range chars {
		switch {
		case c >= 0x01 && c <= 0x7F:
			dst = append(dst, byte(c))
		case c <= 0x7FF:
			dst = append(dst,
				byte(0xC0|(c>>6)&0x1F),
				byte(0x80|c&0x3F))
		default:
			dst = append(dst,
				byte(0xE0|(c>>12)&0x0F),
				byte(0x80|(c>>6)&0x3F),
				byte(0x80|c&0x3F))
		}
	}
	return dst
}

// Encode converts UTF-16 code units into Modified UTF-8. It always succeeds.
func Encode(chars []uint16) []byte {
	return AppendEncode(make([]byte, 0, EncodedLen(chars)), chars)
}

// EncodeString encodes a Go string via its UTF-16 form.
func EncodeString(s string) []byte {
	return Encode(utf16.Encode([]rune(s)))
}

// CountChars counts the characters in b by looking only at lead bytes.
// It does not validate and is meant as a cheap length estimate.
func CountChars(b []byte) int {
	n := 0
	for i := 0; i < len(b); n++ {
		switch c := b[i]; {
		case c >= 0xE0:
			i += 3
		case c >= 0xC0:
			i += 2
		default:
			i++
		}
	}
	return n
}

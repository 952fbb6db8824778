package names

import (
	"fmt"
	"strings"

	"lintmap/internal/mutf8"
)

// Name is an interned identifier. The zero value belongs to no table.
type Name struct {
	table *Table
	id    uint32
}

// Table returns the table that created n.
func (n Name) Table() *Table { return n.table }

// Index is stable for the lifetime of the table and unique within it.
func (n Name) Index() uint32 { return n.id }

// IsEmpty reports whether n is the empty name.
func (n Name) IsEmpty() bool { return n.id == 0 }

func (n Name) raw() string {
	if n.table == nil {
		return ""
	}
	return n.table.raw(n.id)
}

// String decodes the name. Stored bytes were accepted when interned, so no
// validation is applied.
func (n Name) String() string {
	s, _ := mutf8.DecodeString([]byte(n.raw()), mutf8.None) //nolint:errcheck // None never fails
	return s
}

// GoString implements fmt.GoStringer.
func (n Name) GoString() string {
	return fmt.Sprintf("names.Name(%d, %q)", n.id, n.String())
}

// Bytes returns a copy of the Modified UTF-8 encoding.
func (n Name) Bytes() []byte {
	return []byte(n.raw())
}

// Utf8Len returns the length of the encoding in bytes.
func (n Name) Utf8Len() int {
	return len(n.raw())
}

// WriteUtf8 copies the encoding into dst starting at off and returns the
// number of bytes written. dst must have room for Utf8Len bytes.
func (n Name) WriteUtf8(dst []byte, off int) int {
	return copy(dst[off:], n.raw())
}

// HasPrefix reports whether the encoding of n begins with that of prefix.
func (n Name) HasPrefix(prefix Name) bool {
	return strings.HasPrefix(n.raw(), prefix.raw())
}

// LastIndexByte returns the byte offset of the last b, or -1.
// Used to split qualified names on '.' or '/'.
func (n Name) LastIndexByte(b byte) int {
	return strings.LastIndexByte(n.raw(), b)
}

// SubName interns bytes [start, end) of n in the same table.
func (n Name) SubName(start, end int) Name {
	return n.table.Intern([]byte(n.raw()[start:end]))
}

// Concat interns the concatenation of n and other in n's table.
func (n Name) Concat(other Name) Name {
	return n.table.Intern([]byte(n.raw() + other.raw()))
}

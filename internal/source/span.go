package source

import (
	"fmt"
)

// Span is a lexical range in one file.
// Start is always contained, End never is (see Contains).
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether pos lies in the span.
// The start position is contained even for an empty span; the end position
// never is. The file is not compared.
func (s Span) Contains(pos uint32) bool {
	return pos == s.Start || (s.Start < pos && pos < s.End)
}

// ContainsSpan reports whether other lies entirely within s.
// Equal spans contain each other.
func (s Span) ContainsSpan(other Span) bool {
	return s.Start <= other.Start && s.End >= other.End
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

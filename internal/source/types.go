package source

import "strconv"

type (
	// FileID identifies a file within one FileSet, in order of addition.
	FileID uint32
	// FileFlags records how the content was obtained and normalised.
	FileFlags uint8
)

const (
	FileVirtual        FileFlags = 1 << iota // outline text, stdin or tests
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // \r\n was rewritten to \n
)

// File is one loaded source. Content is what offsets in a Span refer to.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return strconv.FormatUint(uint64(lc.Line), 10) + ":" + strconv.FormatUint(uint64(lc.Col), 10)
}

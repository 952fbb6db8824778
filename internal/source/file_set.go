package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns the files of one session. Re-adding a path creates a new
// version with a new FileID; older versions stay addressable so spans that
// point at them keep resolving. It is safe for concurrent use.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID // path -> latest version
}

func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add stores content as given under path and returns its new FileID.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	f := &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f.ID = FileID(n)
	fileSet.files = append(fileSet.files, f)
	fileSet.index[f.Path] = f.ID
	return f.ID
}

// Load reads path, strips a UTF-8 BOM, rewrites \r\n to \n and adds the
// result. Callers that need the bytes untouched use Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds content that did not come from disk.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file with the given ID. It panics on an unknown ID.
func (fileSet *FileSet) Get(id FileID) *File {
	f, ok := fileSet.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("source: unknown file %d", id))
	}
	return f
}

// Lookup is Get for IDs that may come from another FileSet.
func (fileSet *FileSet) Lookup(id FileID) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil, false
	}
	return fileSet.files[id], true
}

// Len reports the number of files, superseded versions included.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// GetLatest returns the newest version of path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Extent is the span of the whole file. Its End is the one offset past the
// content that lint queries may still ask about.
func (fileSet *FileSet) Extent(id FileID) Span {
	end, err := safecast.Conv[uint32](len(fileSet.Get(id).Content))
	if err != nil {
		panic(fmt.Errorf("file %d too large: %w", id, err))
	}
	return Span{File: id, Start: 0, End: end}
}

// Resolve converts both ends of span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Offset converts a 1-based line/column back into a byte offset.
func (fileSet *FileSet) Offset(id FileID, lc LineCol) (uint32, error) {
	f := fileSet.Get(id)
	off, ok := fromLineCol(f.LineIdx, fileSet.Extent(id).End, lc)
	if !ok {
		return 0, fmt.Errorf("%s: position %s out of range", f.Path, lc)
	}
	return off, nil
}

package lintmap

import "errors"

// The Mapper returns these when compiler phases call it out of order.
// They indicate a bug in the caller and are not meant to be recovered from.
var (
	ErrNotStarted        = errors.New("lintmap: parsing of file was not started")
	ErrAlreadyFinished   = errors.New("lintmap: parsing of file already finished")
	ErrNotParsed         = errors.New("lintmap: file is not parsed")
	ErrUnknownDecl       = errors.New("lintmap: unknown top-level declaration")
	ErrAlreadyCalculated = errors.New("lintmap: lints already calculated for declaration")
)

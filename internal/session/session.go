// Package session holds the per-compilation state shared by all phases:
// source files, the name table, the lint map, tracing and logging.
//
// Nothing here is global. A tool that compiles several times creates one
// Session and calls Reset between compilations, or creates a new Session.
package session

import (
	"sync"

	"github.com/charmbracelet/log"

	"lintmap/internal/lint"
	"lintmap/internal/lintmap"
	"lintmap/internal/logging"
	"lintmap/internal/mutf8"
	"lintmap/internal/names"
	"lintmap/internal/source"
	"lintmap/internal/trace"
)

// Options configure a Session. Zero values select defaults.
type Options struct {
	// Lint is the root configuration; nil means lint.Default().
	Lint *lint.Lint
	// Validation applies to names read from input.
	Validation mutf8.Validation
	Tracer     trace.Tracer
	Log        *log.Logger
}

type Session struct {
	mu sync.Mutex

	Files      *source.FileSet
	Names      *names.Table
	Lints      *lintmap.Mapper
	Validation mutf8.Validation
	Tracer     trace.Tracer
	Log        *log.Logger
}

func New(opts Options) *Session {
	root := opts.Lint
	if root == nil {
		root = lint.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	logger := opts.Log
	if logger == nil {
		logger = logging.Default()
	}
	return &Session{
		Files:      source.NewFileSet(),
		Names:      names.NewTable(),
		Lints:      lintmap.New(root, tracer),
		Validation: opts.Validation,
		Tracer:     tracer,
		Log:        logger,
	}
}

// Reset prepares the session for another compilation: the lint map is
// cleared, and the name table and file set are replaced. Names obtained
// before Reset must not be used afterwards.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Lints.Clear()
	s.Names.Dispose()
	s.Names = names.NewTable()
	s.Files = source.NewFileSet()
	trace.Point(s.Tracer, trace.ScopeDriver, "session.reset")
	s.Log.Debug("session reset")
}

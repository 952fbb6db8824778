package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"lintmap/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line, as
// "severity CODE path:line:col message", sorted by location.
// Notes follow as "note" lines when includeNotes is set.
// Diagnostics whose file is not in fs are skipped.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []shortDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	msg := sanitizeMessage(d.Message)
	if cat, ok := d.Code.Category(); ok {
		msg = "[" + cat.String() + "] " + msg
	}
	if path, lc, ok := resolveSpan(fs, d.Primary); ok {
		out = append(out, shortDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     path,
			Line:     lc.Line,
			Column:   lc.Col,
			Message:  msg,
		})
	}

	if includeNotes {
		for _, note := range d.Notes {
			path, lc, ok := resolveSpan(fs, note.Span)
			if !ok {
				continue
			}
			out = append(out, shortDiagnostic{
				Severity: SevNote.String(),
				Code:     d.Code.ID(),
				Path:     path,
				Line:     lc.Line,
				Column:   lc.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func resolveSpan(fs *source.FileSet, span source.Span) (path string, lc source.LineCol, ok bool) {
	file, found := fs.Lookup(span.File)
	if !found {
		return "", source.LineCol{}, false
	}
	start, _ := fs.Resolve(span)
	return filepath.ToSlash(file.Path), start, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}

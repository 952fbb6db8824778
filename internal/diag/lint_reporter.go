package diag

import (
	"sync"

	"lintmap/internal/lint"
	"lintmap/internal/source"
)

// LintSource answers which lint configuration is in effect at a position.
// ok is false while the answer is not known yet.
type LintSource interface {
	LintAt(file source.FileID, pos uint32) (l *lint.Lint, ok bool)
}

// LintReporter forwards lint warnings to next only when their category is
// enabled and not suppressed at the warning's start position. Diagnostics
// without a lint category, and errors, pass through unchanged.
type LintReporter struct {
	next  Reporter
	lints LintSource

	mu       sync.Mutex
	deferred []Diagnostic
	dropped  int
}

func NewLintReporter(next Reporter, lints LintSource) *LintReporter {
	return &LintReporter{next: next, lints: lints}
}

func (r *LintReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	d := Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes}
	cat, ok := code.Category()
	if !ok || sev >= SevError {
		emit(r.next, d)
		return
	}

	l, known := r.lints.LintAt(primary.File, primary.Start)
	if !known {
		r.mu.Lock()
		r.deferred = append(r.deferred, d)
		r.mu.Unlock()
		return
	}
	r.gate(d, cat, l)
}

// gate reports d unless l disables or suppresses cat.
func (r *LintReporter) gate(d Diagnostic, cat lint.Category, l *lint.Lint) {
	if l.IsSuppressed(cat) || (d.Severity < SevMandatoryWarning && !l.IsEnabled(cat)) {
		r.mu.Lock()
		r.dropped++
		r.mu.Unlock()
		return
	}
	emit(r.next, d)
}

// Flush retries every deferred warning in report order. Warnings whose
// position is still unknown are forwarded as if their category were enabled.
func (r *LintReporter) Flush() {
	r.mu.Lock()
	pending := r.deferred
	r.deferred = nil
	r.mu.Unlock()

	for _, d := range pending {
		cat, _ := d.Code.Category()
		l, known := r.lints.LintAt(d.Primary.File, d.Primary.Start)
		if !known {
			emit(r.next, d)
			continue
		}
		r.gate(d, cat, l)
	}
}

// Deferred reports how many warnings wait for Flush.
func (r *LintReporter) Deferred() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deferred)
}

// Dropped reports how many warnings were filtered out so far.
func (r *LintReporter) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

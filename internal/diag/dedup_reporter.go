package diag

import "lintmap/internal/source"

// dedupKey identifies "the same diagnostic" for DedupReporter and Bag.Dedup.
type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

func keyOf(code Code, primary source.Span, msg string) dedupKey {
	return dedupKey{code: code, span: primary, msg: msg}
}

// DedupReporter drops a diagnostic already seen with the same code,
// primary span and message. A repeat is forwarded only when it is more
// severe than every earlier copy, so a warning later promoted to a
// mandatory warning still gets through.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]Severity
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]Severity)}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := keyOf(code, primary, msg)
	if prev, ok := r.seen[key]; ok && prev >= sev {
		return
	}
	r.seen[key] = sev
	emit(r.next, Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

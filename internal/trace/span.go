package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// Span is an open begin/end pair. A Span from a disabled tracer is inert
// and all of its methods are no-ops.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// Begin opens a span under parent (0 for a root span) and emits its begin
// event carrying attrs.
func Begin(t Tracer, scope Scope, name string, parent uint64, attrs ...Attr) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
		Attrs:    attrs,
	})
	return s
}

// Add queues attrs for the end event.
func (s *Span) Add(attrs ...Attr) *Span {
	if s.live() {
		s.attrs = append(s.attrs, attrs...)
	}
	return s
}

// End emits the end event with the queued attrs followed by attrs, and
// returns the span's duration.
func (s *Span) End(attrs ...Attr) time.Duration {
	if !s.live() {
		return 0
	}
	dur := time.Since(s.started)
	all := append(s.attrs, attrs...)
	all = append(all, String("dur", dur.Round(time.Microsecond).String()))
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Attrs:    all,
	})
	s.tracer = nil
	return dur
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name string, attrs ...Attr) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:  time.Now(),
		Kind:  KindPoint,
		Scope: scope,
		Name:  name,
		Attrs: attrs,
	})
}

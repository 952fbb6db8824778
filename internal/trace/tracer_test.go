package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopeDecl, false},
		{LevelDebug, ScopeDecl, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelOff, LevelPhase, LevelFile, LevelDebug} {
		got, err := ParseLevel(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelFile, FormatText)

	span := Begin(tr, ScopePhase, "attribute", 0, String("path", "Foo.java"))
	Point(tr, ScopeFile, "lint.finish-parsing", Uint("file", 1), Int("decls", 2))
	Point(tr, ScopeDecl, "lint.calculate")
	span.Add(Int("decls", 3)).End(String("note", "two words"))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ attribute path=Foo.java") {
		t.Errorf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "  • lint.finish-parsing file=1 decls=2") {
		t.Errorf("point line: %q", lines[1])
	}
	if !strings.Contains(lines[2], `← attribute decls=3 note="two words" dur=`) {
		t.Errorf("end line: %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDecl, "lint.calculate", String("decl", "10-100"))
	if buf.Len() != 0 {
		t.Error("point events must stay buffered until Flush")
	}
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}

	var ev jsonEvent
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev.Kind != "point" || ev.Scope != "decl" || ev.Name != "lint.calculate" {
		t.Errorf("unexpected event %+v", ev)
	}
	if len(ev.Attrs) != 1 || ev.Attrs[0] != (jsonAttr{Key: "decl", Value: "10-100"}) {
		t.Errorf("attrs = %+v", ev.Attrs)
	}
}

func TestSpanEndsOnce(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	span := Begin(ring, ScopePhase, "parse", 7)
	if span.End() < 0 {
		t.Error("negative duration")
	}
	span.End()

	snap := ring.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("events = %d, want begin and one end", len(snap))
	}
	if snap[1].ParentID != 7 || snap[1].SpanID != span.ID() {
		t.Errorf("end event = %+v", snap[1])
	}
	if _, ok := snap[1].Attr("dur"); !ok {
		t.Error("end event has no duration")
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeFile, name)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Errorf("New(off) = %v, %v", tr, err)
	}
	// Begin on a disabled tracer is safe
	Begin(tr, ScopeDriver, "x", 0).End()
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("expected Nop without tracer")
	}
	ring := NewRingTracer(1, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Error("tracer not propagated")
	}
	if FromContext(WithTracer(ctx, nil)) != Nop {
		t.Error("nil tracer must become Nop")
	}

	if ParentFrom(ctx) != 0 {
		t.Error("no parent expected")
	}
	span := Begin(ring, ScopeDriver, "lint", 0)
	if got := ParentFrom(WithSpan(ctx, span)); got != span.ID() || got == 0 {
		t.Errorf("ParentFrom = %d, want %d", got, span.ID())
	}
	inert := Begin(Nop, ScopeDriver, "lint", 0)
	if ParentFrom(WithSpan(ctx, inert)) != 0 {
		t.Error("inert span must not become a parent")
	}
}

func TestMultiTracer(t *testing.T) {
	a, b := NewRingTracer(4, LevelDebug), NewRingTracer(4, LevelPhase)
	m := NewMultiTracer(LevelDebug, a, b)
	Point(m, ScopeDecl, "x")
	Point(m, ScopePhase, "y")

	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 1 {
		t.Errorf("a=%d b=%d", len(a.Snapshot()), len(b.Snapshot()))
	}
	if err := m.Close(); err != nil {
		t.Error(err)
	}
	if RingOf(m) != a {
		t.Error("RingOf must find the first ring")
	}
	if RingOf(Nop) != nil {
		t.Error("Nop keeps no ring")
	}
}

func TestParseNames(t *testing.T) {
	if m, err := ParseMode(" Ring "); err != nil || m != ModeRing {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil || !strings.Contains(err.Error(), "stream|ring|both") {
		t.Errorf("ParseMode(disk) error = %v", err)
	}
	for in, want := range map[string]Format{"": FormatAuto, "json": FormatNDJSON, "text": FormatText} {
		if f, err := ParseFormat(in); err != nil || f != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, f, err)
		}
	}
	if Scope(99).String() != "unknown" || Level(9).ShouldEmit(ScopeDriver) {
		t.Error("out-of-range values must be inert")
	}
}

func TestRingOverwritten(t *testing.T) {
	tr := NewRingTracer(2, LevelPhase)
	for range 5 {
		Point(tr, ScopePhase, "p")
	}
	if got := tr.Overwritten(); got != 3 {
		t.Errorf("Overwritten = %d, want 3", got)
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Seq >= snap[1].Seq {
		t.Errorf("snapshot = %+v", snap)
	}
}

package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes events to w as they arrive. Output is buffered and
// flushed whenever a driver or phase span ends, and on Flush/Close.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, buf: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// seq под локом, чтобы порядок в файле совпадал с нумерацией
	ev.Seq = nextSeq()
	// ошибки записи трейса не должны ронять команду
	_, _ = t.buf.Write(FormatEvent(ev, t.format))
	if ev.Kind == KindSpanEnd && ev.Scope <= ScopePhase {
		_ = t.buf.Flush()
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Flush()
}

// Close flushes and closes w if it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

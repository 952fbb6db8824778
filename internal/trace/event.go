package trace

import (
	"strconv"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = []string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return nameOf(kindNames, k) }

// Scope is the granularity of an event. Coarser scopes have lower values,
// so a Level can filter with a single comparison.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command, session reset
	ScopePhase                   // parse / attribute
	ScopeFile                    // lint map file transitions
	ScopeDecl                    // one CalculateLints call
)

var scopeNames = []string{
	ScopeDriver: "driver",
	ScopePhase:  "phase",
	ScopeFile:   "file",
	ScopeDecl:   "decl",
}

func (s Scope) String() string { return nameOf(scopeNames, s) }

// Attr is one key/value pair attached to an event. Attrs keep the order in
// which they were added.
type Attr struct {
	Key   string
	Value string
}

func String(key, value string) Attr { return Attr{Key: key, Value: value} }

func Int(key string, value int) Attr { return Attr{Key: key, Value: strconv.Itoa(value)} }

func Uint(key string, value uint64) Attr {
	return Attr{Key: key, Value: strconv.FormatUint(value, 10)}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Name     string // "lint.calculate", "parse", ...
	Attrs    []Attr
}

// Attr returns the value of the last attribute named key.
func (ev *Event) Attr(key string) (string, bool) {
	for i := len(ev.Attrs) - 1; i >= 0; i-- {
		if ev.Attrs[i].Key == key {
			return ev.Attrs[i].Value, true
		}
	}
	return "", false
}

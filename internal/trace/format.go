package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects how events are rendered.
type Format uint8

const (
	FormatAuto   Format = iota // from the output path
	FormatText                 // one line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = []string{FormatAuto: "auto", FormatText: "text", FormatNDJSON: "ndjson"}

func (f Format) String() string { return nameOf(formatNames, f) }

// ParseFormat accepts "json" as an alias of "ndjson".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	return parseName[Format]("trace format", formatNames, s)
}

// formatFor picks NDJSON for *.ndjson and *.json outputs.
func formatFor(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent renders ev as one newline-terminated record.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonAttr struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

type jsonEvent struct {
	Time   string     `json:"time"`
	Seq    uint64     `json:"seq"`
	Kind   string     `json:"kind"`
	Scope  string     `json:"scope"`
	Span   uint64     `json:"span,omitempty"`
	Parent uint64     `json:"parent,omitempty"`
	Name   string     `json:"name"`
	Attrs  []jsonAttr `json:"attrs,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	out := jsonEvent{
		Time:   ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.SpanID,
		Parent: ev.ParentID,
		Name:   ev.Name,
	}
	for _, a := range ev.Attrs {
		out.Attrs = append(out.Attrs, jsonAttr(a))
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// formatText renders "#seq scope  → name key=value ...". Child spans and
// points are indented by one step.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%-5d %-6s ", ev.Seq, ev.Scope)
	if ev.ParentID > 0 || ev.Kind == KindPoint {
		sb.WriteString("  ")
	}
	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	default:
		sb.WriteString("• ")
	}
	sb.WriteString(ev.Name)
	for _, a := range ev.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		if strings.ContainsAny(a.Value, " \t\"") {
			sb.WriteString(fmt.Sprintf("%q", a.Value))
		} else {
			sb.WriteString(a.Value)
		}
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

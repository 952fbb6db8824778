package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit. Diagnostics past the limit are
// counted but not stored.
type Bag struct {
	items   []Diagnostic
	max     int
	omitted int
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add stores d and reports whether it fit under the limit.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.omitted++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int { return b.max }

// Omitted is the number of diagnostics rejected by Add.
func (b *Bag) Omitted() int { return b.omitted }

func (b *Bag) HasErrors() bool {
	return b.count(SevError) > 0
}

// Warnings counts warnings, mandatory ones included.
func (b *Bag) Warnings() int {
	return b.count(SevWarning) - b.count(SevError)
}

func (b *Bag) count(atLeast Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= atLeast {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the stored diagnostics. The slice is shared with the Bag.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by file and span, then by severity (highest first), then by
// code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first of every group of diagnostics that share code,
// primary span and message.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		key := keyOf(d.Code, d.Primary, d.Message)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		return false
	})
}

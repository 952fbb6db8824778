// Package lint models lint (warning) configurations.
//
// A Lint is immutable. Narrowing it for a nested declaration through
// Augment produces a new value, or reports that nothing changed so callers
// can keep sharing the parent configuration.
package lint

import (
	"fmt"
	"strings"
)

// Lint is an immutable set of enabled and suppressed categories.
type Lint struct {
	enabled    Set
	suppressed Set
}

// defaultSet is what is enabled when no -Xlint option is given.
var defaultSet = SetOf(DepAnn, Strictfp, RequiresTransitiveAutomatic, Opens, Module, Removal, Preview)

// Default returns the configuration used without -Xlint options.
func Default() *Lint {
	return &Lint{enabled: defaultSet}
}

// New returns a configuration with exactly the given categories enabled.
func New(enabled ...Category) *Lint {
	return &Lint{enabled: SetOf(enabled...)}
}

// FromOptions applies -Xlint option values over the default set.
// Values are processed in order: "all", "none", "<cat>" or "-<cat>".
func FromOptions(opts []string) (*Lint, error) {
	enabled := defaultSet
	for _, raw := range opts {
		opt := strings.TrimSpace(raw)
		switch opt {
		case "all":
			enabled = allSet
			continue
		case "none":
			enabled = 0
			continue
		}

		name, negate := strings.CutPrefix(opt, "-")
		c, ok := ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown lint category %q", raw)
		}
		if negate {
			enabled = enabled.Without(c)
		} else {
			enabled = enabled.With(c)
		}
	}
	return &Lint{enabled: enabled}, nil
}

// IsEnabled reports whether warnings of c should be emitted.
func (l *Lint) IsEnabled(c Category) bool {
	return l.enabled.Has(c)
}

// IsSuppressed reports whether c was explicitly suppressed, e.g. through
// @SuppressWarnings. A category can be neither enabled nor suppressed.
func (l *Lint) IsSuppressed(c Category) bool {
	return l.suppressed.Has(c)
}

// Enabled returns the enabled categories.
func (l *Lint) Enabled() []Category { return l.enabled.Slice() }

// Suppressed returns the suppressed categories.
func (l *Lint) Suppressed() []Category { return l.suppressed.Slice() }

// Suppress returns l with cs disabled and marked suppressed.
func (l *Lint) Suppress(cs ...Category) *Lint {
	next := *l
	for _, c := range cs {
		next.enabled = next.enabled.Without(c)
		next.suppressed = next.suppressed.With(c)
	}
	return &next
}

func (l *Lint) String() string {
	return fmt.Sprintf("Lint[enabled=%s suppressed=%s]", joinSet(l.enabled), joinSet(l.suppressed))
}

func joinSet(s Set) string {
	if s == 0 {
		return "{}"
	}
	parts := make([]string, 0, s.Len())
	for _, c := range s.Slice() {
		parts = append(parts, c.String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

package lint

// Symbol is the lint-relevant view of a resolved declaration.
type Symbol interface {
	// SuppressedWarnings returns the raw @SuppressWarnings values.
	SuppressedWarnings() []string
	// IsDeprecated reports whether the declaration is @Deprecated.
	IsDeprecated() bool
}

// Augmented is the result of Lint.Augment.
// When Changed is false, Lint is the receiver itself.
type Augmented struct {
	Lint    *Lint
	Changed bool
}

// Augment narrows l with the metadata of sym:
// every recognised @SuppressWarnings name is suppressed, and a deprecated
// declaration suppresses deprecation warnings inside it.
// Unknown names are ignored.
func (l *Lint) Augment(sym Symbol) Augmented {
	enabled, suppressed := l.enabled, l.suppressed
	for _, name := range sym.SuppressedWarnings() {
		if c, ok := ParseCategory(name); ok {
			enabled = enabled.Without(c)
			suppressed = suppressed.With(c)
		}
	}
	if sym.IsDeprecated() {
		enabled = enabled.Without(Deprecation)
		suppressed = suppressed.With(Deprecation)
	}

	if enabled == l.enabled && suppressed == l.suppressed {
		return Augmented{Lint: l}
	}
	return Augmented{Lint: &Lint{enabled: enabled, suppressed: suppressed}, Changed: true}
}

package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote is for informational diagnostics.
	SevNote Severity = iota
	// SevWarning is for optional lint warnings.
	SevWarning
	// SevMandatoryWarning is a warning that cannot be disabled by -Xlint,
	// only suppressed in source.
	SevMandatoryWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevMandatoryWarning:
		return "mandatory-warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

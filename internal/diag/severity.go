package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// SeverityOf is the fixed severity of a problem kind: unused definitions
// warn, everything else is an error.
func SeverityOf(p Problem) Severity {
	if _, ok := p.(*UnusedDef); ok {
		return SevWarning
	}
	return SevError
}

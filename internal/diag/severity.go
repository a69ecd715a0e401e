package diag

// Severity ranks how serious a diagnostic is.
type Severity uint8

const (
	// SevInfo marks purely informational output.
	SevInfo Severity = iota
	// SevWarning marks a finding that does not fail the check.
	SevWarning
	// SevError marks a finding that fails the check.
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

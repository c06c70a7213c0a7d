package domain

// Severity cutoffs. Each cutoff is inclusive for the band below it.
const (
	LowUpperBound    = 1064.395
	MediumUpperBound = 1303.75
)

// Severity is the pollution band of a predicted index.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// ClassifySeverity maps a predicted value to its band.
func ClassifySeverity(value float64) Severity {
	switch {
	case value <= LowUpperBound:
		return SeverityLow
	case value <= MediumUpperBound:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Label is the user-facing band name, e.g. "Medium Severity".
func (s Severity) Label() string {
	return s.String() + " Severity"
}

// MarshalText encodes the severity as its lowercase name.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityLow:
		return []byte("low"), nil
	case SeverityMedium:
		return []byte("medium"), nil
	case SeverityHigh:
		return []byte("high"), nil
	default:
		return []byte("unknown"), nil
	}
}

package algorithms

// Severity grades how badly one removal fragments the graph
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityLow
	SeverityModerate
	SeverityHigh
	SeverityCritical
)

// Classification thresholds on the component-count increase
const (
	CriticalThreshold = 50
	HighThreshold     = 10
	ModerateThreshold = 2
	LowThreshold      = 1
)

// Severities lists every level from least to most severe
var Severities = []Severity{SeverityMinor, SeverityLow, SeverityModerate, SeverityHigh, SeverityCritical}

// Classify maps a component-count increase to a severity.
func Classify(increase int) Severity {
	switch {
	case increase >= CriticalThreshold:
		return SeverityCritical
	case increase >= HighThreshold:
		return SeverityHigh
	case increase >= ModerateThreshold:
		return SeverityModerate
	case increase == LowThreshold:
		return SeverityLow
	default:
		return SeverityMinor
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityLow:
		return "low"
	case SeverityModerate:
		return "moderate"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by String
func (s *Severity) UnmarshalText(text []byte) error {
	for _, candidate := range Severities {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return NewError("ParseSeverity").Context("%q", text).Cause(ErrUnknownSeverity).Err()
}

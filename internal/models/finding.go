package models

import "strings"

// Severity is a scanner-reported severity label.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityUnknown  Severity = "UNKNOWN"
)

// NormalizeSeverity uppercases a scanner label and maps the empty string
// to UNKNOWN.
func NormalizeSeverity(s string) Severity {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return SeverityUnknown
	}
	return Severity(s)
}

// SeverityScale totally orders severity labels. Scanner scales differ, so
// the ordering is a configuration point rather than a constant; labels
// absent from the scale rank lowest.
type SeverityScale map[Severity]int

// DefaultSeverityScale orders the common four-level scale.
func DefaultSeverityScale() SeverityScale {
	return SeverityScale{
		SeverityCritical: 4,
		SeverityHigh:     3,
		SeverityMedium:   2,
		SeverityLow:      1,
		SeverityUnknown:  0,
	}
}

// Rank returns the configured rank for s.
func (sc SeverityScale) Rank(s Severity) int {
	return sc[s]
}

// Max returns the higher-ranked of a and b. Ties keep a.
func (sc SeverityScale) Max(a, b Severity) Severity {
	if sc.Rank(b) > sc.Rank(a) {
		return b
	}
	return a
}

// VulnerabilityFinding is one scan result for a vulnerable coordinate:
// advisory identity, the vulnerable version (inside Coordinate) and the
// candidate fixed versions as the scanner reported them, not yet ranked.
type VulnerabilityFinding struct {
	ID            string     `json:"id"`
	Aliases       []string   `json:"aliases,omitempty"` // ids merged in from duplicate advisories
	Coordinate    Coordinate `json:"coordinate"`
	FixedVersions []string   `json:"fixed_versions"`
	Severity      Severity   `json:"severity"`
	Description   string     `json:"description,omitempty"`
}

package domain

import "strings"

// Severity is the derived tier of a weather alert.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Keyword tiers checked in priority order; the first tier with any match
// wins. Matching is a case-insensitive substring test.
var (
	severeKeywords   = []string{"extreme", "emergency", "severe", "warning"}
	moderateKeywords = []string{"watch", "advisory", "moderate"}
)

// ClassifySeverity maps an alert's free-text description to a severity
// tier. Descriptions matching no keyword are minor.
func ClassifySeverity(description string) Severity {
	lower := strings.ToLower(description)
	for _, kw := range severeKeywords {
		if strings.Contains(lower, kw) {
			return SeveritySevere
		}
	}
	for _, kw := range moderateKeywords {
		if strings.Contains(lower, kw) {
			return SeverityModerate
		}
	}
	return SeverityMinor
}

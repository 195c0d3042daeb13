package analysis

import (
	"strings"

	"InterviewScanner/internal/domain"
)

// DetermineUrgency runs the ordered urgency rule cascade; the first matching
// rule wins.
func DetermineUrgency(text string, sentimentScore float64, flags domain.CategoryFlags, thresholds domain.ThresholdSettings) domain.UrgencyLevel {
	for _, keyword := range thresholds.Urgency.HighKeywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return domain.UrgencyHigh
		}
	}

	if flags[domain.CategoryHealth] && sentimentScore < -0.3 {
		return domain.UrgencyHigh
	}
	if flags[domain.CategoryRelationship] && sentimentScore < -0.4 {
		return domain.UrgencyHigh
	}

	for _, keyword := range thresholds.Urgency.MediumKeywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return domain.UrgencyMedium
		}
	}

	if sentimentScore < -0.2 {
		return domain.UrgencyMedium
	}

	// Three or more flagged categories signal a complex, multi-issue case.
	flagged := 0
	for _, set := range flags {
		if set {
			flagged++
		}
	}
	if flagged >= 3 {
		return domain.UrgencyMedium
	}

	return domain.UrgencyLow
}

package domain

// RiskTier classifies a person's overall standing from the weighted score.
type RiskTier string

const (
	TierGreen  RiskTier = "Green"
	TierYellow RiskTier = "Yellow"
	TierRed    RiskTier = "Red"
)

// RiskFactor is one of the five inputs to the weighted risk score. Value is
// the raw 0-100 factor score before weighting; Description renders the
// concrete counts behind it for auditability.
type RiskFactor struct {
	Name        string
	Value       float64
	Weight      float64
	Description string
}

// RiskResult is the per-person risk assessment over their full record history.
type RiskResult struct {
	Score   int // [0, 100]
	Tier    RiskTier
	Factors []RiskFactor
}

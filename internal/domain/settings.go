package domain

// CategoryDict maps each category key to its trigger keywords. Supplied per
// group as configuration; immutable during an analysis run.
type CategoryDict map[CategoryKey][]string

// SentimentDict holds the four keyword lists driving sentiment scoring.
type SentimentDict struct {
	Positive    []string
	Negative    []string
	Negation    []string
	Intensifier []string
}

// RiskTierThresholds are the cut points on the 0-100 risk scale.
type RiskTierThresholds struct {
	Yellow int
	Red    int
}

// UrgencyKeywords configure the first and fourth rules of the urgency cascade.
type UrgencyKeywords struct {
	HighKeywords   []string
	MediumKeywords []string
}

// RiskWeights sets the relative importance of the five risk factors.
type RiskWeights struct {
	VolumeIncrease        float64
	SentimentDecline      float64
	HighRiskCategory      float64
	OpenCases             float64
	UnresolvedExpressions float64
}

// ThresholdSettings bundles tier cut points, urgency keywords, and risk
// factor weights. Group-scoped configuration.
type ThresholdSettings struct {
	RiskTier    RiskTierThresholds
	Urgency     UrgencyKeywords
	RiskWeights RiskWeights
}

// NotificationSettings control outbound alerts keyed on analysis outcomes.
type NotificationSettings struct {
	Enabled              bool
	TriggerOnRed         bool
	TriggerOnHighUrgency bool
}

// AppSettings is the full analysis configuration for one group.
type AppSettings struct {
	Dict          CategoryDict
	SentimentDict SentimentDict
	Thresholds    ThresholdSettings
	Notifications NotificationSettings
}

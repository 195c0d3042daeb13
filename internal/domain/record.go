package domain

import "time"

// Row is a normalized input row handed over by a row-parsing source.
// Date stays a raw string here; parsing happens in the analysis layer.
type Row struct {
	Date    string
	Name    string
	Staff   string
	Content string
	Action  string
	Sheet   string
	Index   int
}

// CategoryKey identifies one of the seven fixed consultation categories.
type CategoryKey string

const (
	CategoryProcedure       CategoryKey = "procedure"
	CategoryRelationship    CategoryKey = "relationship"
	CategoryWork            CategoryKey = "work"
	CategoryHealth          CategoryKey = "health"
	CategoryLife            CategoryKey = "life"
	CategoryLanguageCulture CategoryKey = "language_culture"
	CategoryOther           CategoryKey = "other"
)

// CategoryKeys lists all categories in declaration order.
var CategoryKeys = []CategoryKey{
	CategoryProcedure,
	CategoryRelationship,
	CategoryWork,
	CategoryHealth,
	CategoryLife,
	CategoryLanguageCulture,
	CategoryOther,
}

// CategoryFlags marks every category a record touches; several may be set.
type CategoryFlags map[CategoryKey]bool

// UrgencyLevel is the case-worker-facing follow-up priority of a record.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "Low"
	UrgencyMedium UrgencyLevel = "Medium"
	UrgencyHigh   UrgencyLevel = "High"
)

// SentimentEvidence keeps the dictionary hits behind a sentiment score for
// audit and UI display; it feeds no further computation.
type SentimentEvidence struct {
	PositiveHits []string
	NegativeHits []string
	Negations    []string
	Intensifiers []string
}

// SentimentResult is a bounded dictionary-based sentiment estimate.
type SentimentResult struct {
	Score      float64 // [-1, 1]
	Confidence float64 // [0, 1]
	Evidence   SentimentEvidence
}

// AnalysisResult is the per-record output of the analysis pipeline.
type AnalysisResult struct {
	TextAll       string
	CategoryMain  CategoryKey
	CategoryFlags CategoryFlags
	Keywords      []string
	Sentiment     SentimentResult
	Urgency       UrgencyLevel
}

// WordCount pairs a keyword surface form with its aggregate frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// InterviewRecord is one analyzed consultation entry attributed to a person.
type InterviewRecord struct {
	Person   string
	Staff    string
	Date     *time.Time
	Content  string
	Action   string
	Analysis AnalysisResult
}

// CaseStatus tracks follow-up cases opened for a person.
type CaseStatus string

const (
	CaseOpen       CaseStatus = "Open"
	CaseInProgress CaseStatus = "InProgress"
	CasePending    CaseStatus = "Pending"
	CaseResolved   CaseStatus = "Resolved"
)

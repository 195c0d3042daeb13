package aggregate

import (
	"math"
	"time"

	"InterviewScanner/internal/domain"
)

// PhaseData summarizes one tenure phase of a person's record history.
type PhaseData struct {
	Phase        string
	Range        string
	Count        int
	AvgSentiment float64
	TopCategory  domain.CategoryKey
}

type phaseRange struct {
	label   string
	rng     string
	min     int
	max     int // -1 = open-ended
}

var phaseRanges = []phaseRange{
	{label: "入社直後", rng: "0-30日", min: 0, max: 30},
	{label: "適応期", rng: "31-90日", min: 31, max: 90},
	{label: "安定期前期", rng: "91-180日", min: 91, max: 180},
	{label: "安定期後期", rng: "181日以上", min: 181, max: -1},
}

// AnalyzePhases buckets records into fixed tenure phases relative to the
// person's start date. Returns nil when the start date is unknown; undated
// and pre-start records are skipped.
func AnalyzePhases(records []domain.InterviewRecord, startDate *time.Time) []PhaseData {
	if startDate == nil {
		return nil
	}

	phases := make([]PhaseData, len(phaseRanges))
	sentiments := make([][]float64, len(phaseRanges))
	categories := make([]map[domain.CategoryKey]int, len(phaseRanges))
	for i, p := range phaseRanges {
		phases[i] = PhaseData{Phase: p.label, Range: p.rng, TopCategory: domain.CategoryOther}
		categories[i] = map[domain.CategoryKey]int{}
	}

	for _, r := range records {
		if r.Date == nil {
			continue
		}
		tenureDays := int(r.Date.Sub(*startDate).Hours() / 24)
		if tenureDays < 0 {
			continue
		}
		idx := -1
		for i, p := range phaseRanges {
			if tenureDays >= p.min && (p.max < 0 || tenureDays <= p.max) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		phases[idx].Count++
		sentiments[idx] = append(sentiments[idx], r.Analysis.Sentiment.Score)
		categories[idx][r.Analysis.CategoryMain]++
	}

	for i := range phases {
		if len(sentiments[i]) > 0 {
			sum := 0.0
			for _, s := range sentiments[i] {
				sum += s
			}
			phases[i].AvgSentiment = math.Round(sum/float64(len(sentiments[i]))*100) / 100
		}
		topCount := 0
		for _, key := range domain.CategoryKeys {
			if count := categories[i][key]; count > topCount {
				phases[i].TopCategory, topCount = key, count
			}
		}
	}

	return phases
}

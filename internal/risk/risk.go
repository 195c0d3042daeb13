// Package risk folds a person's full record history into a weighted
// five-factor risk score and a Green/Yellow/Red tier.
package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
)

// DefaultLookbackDays separates "recent" from "older" records in the volume
// and sentiment trend factors.
const DefaultLookbackDays = 60

const (
	day   = 24 * time.Hour
	month = 30 * day
)

// Record is the per-record view the scorer needs; Date nil means undated and
// excluded from date-ordered factors.
type Record struct {
	Date           *time.Time
	SentimentScore *float64
	CategoryMain   domain.CategoryKey
	TextAll        string
}

// Input bundles one person's history with their open-case count.
type Input struct {
	Records       []Record
	OpenCaseCount int
	Thresholds    domain.ThresholdSettings
	LookbackDays  int
	Now           time.Time
}

var highRiskCategories = map[domain.CategoryKey]bool{
	domain.CategoryHealth:       true,
	domain.CategoryRelationship: true,
}

// Calculate produces the five factors in fixed order, their weighted
// combination clamped to [0, 100], and the threshold-determined tier.
// Recomputation is always over the full history, never incremental.
func Calculate(input Input) domain.RiskResult {
	lookbackDays := input.LookbackDays
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	weights := input.Thresholds.RiskWeights

	sorted := make([]Record, 0, len(input.Records))
	for _, r := range input.Records {
		if r.Date != nil {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(*sorted[j].Date)
	})

	cutoff := now.Add(-time.Duration(lookbackDays) * day)
	var recent, older []Record
	for _, r := range sorted {
		if r.Date.Before(cutoff) {
			older = append(older, r)
		} else {
			recent = append(recent, r)
		}
	}

	factors := make([]domain.RiskFactor, 0, 5)

	// Factor 1: volume increase. Rewards acceleration, not raw volume.
	recentRate := float64(len(recent)) / math.Max(float64(lookbackDays)/30, 1)
	olderMonths := 1.0
	if len(sorted) > 0 {
		olderMonths = float64(cutoff.Sub(*sorted[0].Date)) / float64(month)
	}
	olderRate := float64(len(older)) / math.Max(olderMonths, 1)
	var volumeScore float64
	if olderRate > 0 {
		volumeScore = math.Min(100, (recentRate-olderRate)/math.Max(olderRate, 0.5)*100)
	} else if len(recent) > 2 {
		volumeScore = 60
	} else {
		volumeScore = float64(len(recent)) * 20
	}
	factors = append(factors, domain.RiskFactor{
		Name:        "相談件数増加",
		Value:       math.Max(0, volumeScore),
		Weight:      weights.VolumeIncrease,
		Description: fmt.Sprintf("直近%d日: %d件", lookbackDays, len(recent)),
	})

	// Factor 2: sentiment decline across the recent window's halves, with an
	// absolute-severity override when the overall average is very negative.
	var scores []float64
	for _, r := range recent {
		if r.SentimentScore != nil {
			scores = append(scores, *r.SentimentScore)
		}
	}
	var declineScore float64
	if len(scores) >= 2 {
		half := len(scores) / 2
		decline := mean(scores[:half]) - mean(scores[half:])
		declineScore = math.Max(0, math.Min(100, decline*200))
	} else if len(scores) == 1 && scores[0] < -0.3 {
		declineScore = 50
	}
	avgSentiment := 0.0
	if len(scores) > 0 {
		avgSentiment = mean(scores)
	}
	if avgSentiment < -0.5 {
		declineScore = math.Max(declineScore, 70)
	}
	factors = append(factors, domain.RiskFactor{
		Name:        "感情スコア低下",
		Value:       declineScore,
		Weight:      weights.SentimentDecline,
		Description: fmt.Sprintf("平均感情: %.2f", avgSentiment),
	})

	// Factor 3: share of recent records in the health/relationship categories.
	highRiskCount := 0
	for _, r := range recent {
		if highRiskCategories[r.CategoryMain] {
			highRiskCount++
		}
	}
	highRiskRatio := 0.0
	if len(recent) > 0 {
		highRiskRatio = float64(highRiskCount) / float64(len(recent))
	}
	factors = append(factors, domain.RiskFactor{
		Name:        "高リスクカテゴリ比率",
		Value:       math.Min(100, highRiskRatio*100),
		Weight:      weights.HighRiskCategory,
		Description: fmt.Sprintf("%d/%d件が健康/人間関係", highRiskCount, len(recent)),
	})

	// Factor 4: currently open cases.
	factors = append(factors, domain.RiskFactor{
		Name:        "未解決ケース",
		Value:       math.Min(100, float64(input.OpenCaseCount)*30),
		Weight:      weights.OpenCases,
		Description: fmt.Sprintf("%d件が未解決", input.OpenCaseCount),
	})

	// Factor 5: "still unresolved" idioms in recent text, each expression
	// counted at most once regardless of repetition.
	var texts []string
	for _, r := range recent {
		texts = append(texts, r.TextAll)
	}
	allText := strings.Join(texts, " ")
	unresolvedHits := 0
	for _, expr := range analysis.UnresolvedExpressions() {
		if strings.Contains(allText, expr) {
			unresolvedHits++
		}
	}
	factors = append(factors, domain.RiskFactor{
		Name:        "未解決表現",
		Value:       math.Min(100, float64(unresolvedHits)*25),
		Weight:      weights.UnresolvedExpressions,
		Description: fmt.Sprintf("%d個の未解決表現を検出", unresolvedHits),
	})

	var totalWeight, weightedSum float64
	for _, f := range factors {
		totalWeight += f.Weight
		weightedSum += f.Value * f.Weight
	}
	score := 0
	if totalWeight > 0 {
		score = int(math.Round(math.Min(100, math.Max(0, weightedSum/totalWeight))))
	}

	tier := domain.TierGreen
	switch {
	case score >= input.Thresholds.RiskTier.Red:
		tier = domain.TierRed
	case score >= input.Thresholds.RiskTier.Yellow:
		tier = domain.TierYellow
	}

	return domain.RiskResult{Score: score, Tier: tier, Factors: factors}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

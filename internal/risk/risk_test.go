package risk

import (
	"testing"
	"time"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
)

var factorNames = []string{"相談件数増加", "感情スコア低下", "高リスクカテゴリ比率", "未解決ケース", "未解決表現"}

func scorePtr(v float64) *float64 { return &v }

func on(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCalculateEmptyHistory(t *testing.T) {
	t.Parallel()

	res := Calculate(Input{
		Thresholds: analysis.DefaultThresholds(),
		Now:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	if res.Score != 0 {
		t.Fatalf("score = %d, want 0", res.Score)
	}
	if res.Tier != domain.TierGreen {
		t.Fatalf("tier = %s, want %s", res.Tier, domain.TierGreen)
	}
	if len(res.Factors) != 5 {
		t.Fatalf("factors = %d, want 5", len(res.Factors))
	}
	for i, f := range res.Factors {
		if f.Name != factorNames[i] {
			t.Fatalf("factor %d name = %q, want %q", i, f.Name, factorNames[i])
		}
		if f.Value != 0 {
			t.Fatalf("factor %q value = %v, want 0", f.Name, f.Value)
		}
	}
}

func TestCalculateRedTier(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	input := Input{
		Records: []Record{
			{Date: on(2024, time.May, 1), SentimentScore: scorePtr(0.5), CategoryMain: domain.CategoryHealth, TextAll: "体調の相談"},
			{Date: on(2024, time.May, 8), SentimentScore: scorePtr(0.4), CategoryMain: domain.CategoryHealth, TextAll: "通院に同行"},
			{Date: on(2024, time.May, 15), SentimentScore: scorePtr(-0.8), CategoryMain: domain.CategoryHealth, TextAll: "症状が悪化、未解決のまま"},
			{Date: on(2024, time.May, 22), SentimentScore: scorePtr(-0.9), CategoryMain: domain.CategoryHealth, TextAll: "まだ眠れないとのこと"},
		},
		OpenCaseCount: 5,
		Thresholds:    analysis.DefaultThresholds(),
		Now:           now,
	}

	res := Calculate(input)

	// Four recent records, a sharp sentiment drop between window halves, all
	// records in a high-risk category, five open cases, one unresolved idiom:
	// (60*1.0 + 100*1.5 + 100*1.2 + 100*1.0 + 25*0.8) / 5.5 = 81.8.
	if res.Score != 82 {
		t.Fatalf("score = %d, want 82", res.Score)
	}
	if res.Tier != domain.TierRed {
		t.Fatalf("tier = %s, want %s", res.Tier, domain.TierRed)
	}
	if res.Factors[0].Description != "直近60日: 4件" {
		t.Fatalf("volume description = %q", res.Factors[0].Description)
	}
	if res.Factors[4].Value != 25 {
		t.Fatalf("unresolved factor = %v, want 25", res.Factors[4].Value)
	}
}

func TestCalculateYellowTier(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	input := Input{
		Records: []Record{
			{Date: on(2024, time.May, 5), CategoryMain: domain.CategoryHealth},
			{Date: on(2024, time.May, 12), CategoryMain: domain.CategoryRelationship},
			{Date: on(2024, time.May, 19), CategoryMain: domain.CategoryHealth},
		},
		OpenCaseCount: 2,
		Thresholds:    analysis.DefaultThresholds(),
		Now:           now,
	}

	res := Calculate(input)

	// (60*1.0 + 100*1.2 + 60*1.0) / 5.5 = 43.6.
	if res.Score != 44 {
		t.Fatalf("score = %d, want 44", res.Score)
	}
	if res.Tier != domain.TierYellow {
		t.Fatalf("tier = %s, want %s", res.Tier, domain.TierYellow)
	}
}

func TestCalculateSeverityOverride(t *testing.T) {
	t.Parallel()

	// A single very negative record cannot show a decline between halves, but
	// the absolute-severity override still raises the factor.
	res := Calculate(Input{
		Records: []Record{
			{Date: on(2024, time.May, 20), SentimentScore: scorePtr(-0.6), CategoryMain: domain.CategoryOther},
		},
		Thresholds: analysis.DefaultThresholds(),
		Now:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	if res.Factors[1].Value != 70 {
		t.Fatalf("sentiment factor = %v, want 70", res.Factors[1].Value)
	}
	if res.Factors[1].Description != "平均感情: -0.60" {
		t.Fatalf("sentiment description = %q", res.Factors[1].Description)
	}
}

func TestCalculateIgnoresUndatedRecords(t *testing.T) {
	t.Parallel()

	res := Calculate(Input{
		Records: []Record{
			{Date: nil, SentimentScore: scorePtr(-0.9), CategoryMain: domain.CategoryHealth, TextAll: "未解決"},
		},
		Thresholds: analysis.DefaultThresholds(),
		Now:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	if res.Factors[0].Value != 0 {
		t.Fatalf("volume factor = %v, want 0 for undated history", res.Factors[0].Value)
	}
	if res.Factors[1].Value != 0 {
		t.Fatalf("sentiment factor = %v, want 0 for undated history", res.Factors[1].Value)
	}
}

func TestCalculateOpenCasesMonotonic(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	prev := -1
	for open := 0; open <= 5; open++ {
		res := Calculate(Input{
			OpenCaseCount: open,
			Thresholds:    analysis.DefaultThresholds(),
			Now:           now,
		})
		if res.Score < prev {
			t.Fatalf("score decreased from %d to %d at %d open cases", prev, res.Score, open)
		}
		prev = res.Score
	}
}

func TestCalculateZeroWeights(t *testing.T) {
	t.Parallel()

	thresholds := analysis.DefaultThresholds()
	thresholds.RiskWeights = domain.RiskWeights{}

	res := Calculate(Input{
		OpenCaseCount: 5,
		Thresholds:    thresholds,
		Now:           time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	if res.Score != 0 || res.Tier != domain.TierGreen {
		t.Fatalf("got score %d tier %s, want 0 green", res.Score, res.Tier)
	}
}

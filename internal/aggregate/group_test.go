package aggregate

import (
	"strings"
	"testing"
	"time"

	"InterviewScanner/internal/domain"
)

func on(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func rec(date *time.Time, main domain.CategoryKey, score float64, urgency domain.UrgencyLevel, text string) domain.InterviewRecord {
	return domain.InterviewRecord{
		Person: "person",
		Date:   date,
		Analysis: domain.AnalysisResult{
			TextAll:      text,
			CategoryMain: main,
			Sentiment:    domain.SentimentResult{Score: score},
			Urgency:      urgency,
		},
	}
}

func TestAggregateGroupStats(t *testing.T) {
	t.Parallel()

	input := GroupInput{
		Records: []domain.InterviewRecord{
			rec(on(2024, time.April, 10), domain.CategoryHealth, -0.4, domain.UrgencyHigh, "体調の相談。残業続き。"),
			rec(on(2024, time.April, 20), domain.CategoryHealth, -0.2, domain.UrgencyMedium, "通院に同行した。残業の話も。"),
			rec(on(2024, time.May, 5), domain.CategoryWork, 0.3, domain.UrgencyLow, "残業が減って改善。"),
			rec(nil, domain.CategoryOther, 0, domain.UrgencyLow, ""), // empty analysis
		},
		PersonTiers:   []domain.RiskTier{domain.TierRed, domain.TierGreen, domain.TierYellow},
		OpenCaseCount: 2,
	}

	stats := AggregateGroupStats(input)

	if stats.TotalRecords != 4 || stats.TotalPersons != 3 {
		t.Fatalf("totals = %d/%d, want 4/3", stats.TotalRecords, stats.TotalPersons)
	}
	// Empty-text records stay out of the sentiment average: (-0.4-0.2+0.3)/3.
	if stats.AvgSentiment != -0.1 {
		t.Fatalf("avgSentiment = %v, want -0.1", stats.AvgSentiment)
	}
	if stats.RedAlertCount != 1 || stats.YellowAlertCount != 1 {
		t.Fatalf("alerts = %d red / %d yellow, want 1/1", stats.RedAlertCount, stats.YellowAlertCount)
	}
	if stats.HighUrgencyCount != 1 {
		t.Fatalf("highUrgency = %d, want 1", stats.HighUrgencyCount)
	}
	if stats.OpenCaseCount != 2 {
		t.Fatalf("openCases = %d, want 2", stats.OpenCaseCount)
	}

	if len(stats.TrendData) != 2 {
		t.Fatalf("trend = %v, want two months", stats.TrendData)
	}
	if stats.TrendData[0].Date != "2024-04" || stats.TrendData[0].Count != 2 {
		t.Fatalf("trend[0] = %+v", stats.TrendData[0])
	}
	if stats.TrendData[1].Date != "2024-05" || stats.TrendData[1].Count != 1 {
		t.Fatalf("trend[1] = %+v", stats.TrendData[1])
	}

	if len(stats.CategoryTrend) != 2 {
		t.Fatalf("categoryTrend = %v, want two months", stats.CategoryTrend)
	}
	if stats.CategoryTrend[0].Categories[domain.CategoryHealth] != 2 {
		t.Fatalf("categoryTrend[0] = %+v", stats.CategoryTrend[0])
	}

	if len(stats.CategoryDistribution) == 0 || stats.CategoryDistribution[0].Category != "健康・メンタル" {
		t.Fatalf("distribution = %+v", stats.CategoryDistribution)
	}
	if stats.CategoryDistribution[0].Count != 2 || stats.CategoryDistribution[0].Percentage != 50 {
		t.Fatalf("top share = %+v", stats.CategoryDistribution[0])
	}

	if len(stats.TopKeywords) == 0 || stats.TopKeywords[0].Word != "残業" || stats.TopKeywords[0].Count != 3 {
		t.Fatalf("topKeywords = %v", stats.TopKeywords)
	}

	if len(stats.Insights) == 0 || !strings.Contains(stats.Insights[0], "3名") {
		t.Fatalf("insights = %v", stats.Insights)
	}
}

func TestAggregateGroupStatsEmpty(t *testing.T) {
	t.Parallel()

	stats := AggregateGroupStats(GroupInput{})

	if stats.TotalRecords != 0 || stats.AvgSentiment != 0 {
		t.Fatalf("empty batch produced %+v", stats)
	}
	if len(stats.TrendData) != 0 || len(stats.CategoryDistribution) != 0 {
		t.Fatalf("empty batch produced trend data: %+v", stats)
	}
	if len(stats.Insights) == 0 {
		t.Fatalf("insights missing for empty batch")
	}
}

// Package aggregate folds analyzed records and risk outputs into batch-level
// statistics for reporting.
package aggregate

import (
	"math"
	"sort"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
)

// TrendPoint counts records in one calendar month.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM
	Count int    `json:"count"`
}

// CategoryTrendPoint counts records per category in one calendar month.
type CategoryTrendPoint struct {
	Date       string                     `json:"date"`
	Categories map[domain.CategoryKey]int `json:"categories"`
}

// CategoryShare is one slice of the category distribution.
type CategoryShare struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// GroupStats is the batch-level rollup handed to reporting and the optional
// narrative-summary collaborator.
type GroupStats struct {
	TotalRecords         int                  `json:"totalRecords"`
	TotalPersons         int                  `json:"totalPersons"`
	AvgSentiment         float64              `json:"avgSentiment"`
	RedAlertCount        int                  `json:"redAlertCount"`
	YellowAlertCount     int                  `json:"yellowAlertCount"`
	HighUrgencyCount     int                  `json:"highUrgencyCount"`
	OpenCaseCount        int                  `json:"openCaseCount"`
	TrendData            []TrendPoint         `json:"trendData"`
	CategoryTrend        []CategoryTrendPoint `json:"categoryTrend"`
	CategoryDistribution []CategoryShare      `json:"categoryDistribution"`
	TopKeywords          []domain.WordCount   `json:"topKeywords"`
	Insights             []string             `json:"insights"`
}

// GroupInput carries everything the rollup reads.
type GroupInput struct {
	Records       []domain.InterviewRecord
	PersonTiers   []domain.RiskTier
	OpenCaseCount int
}

// AggregateGroupStats reduces a batch of analyzed records into group-level
// statistics: sentiment average, alert counts, monthly trends, category
// distribution, top keywords, and generated insight strings.
func AggregateGroupStats(input GroupInput) GroupStats {
	records := input.Records
	stats := GroupStats{
		TotalRecords:  len(records),
		TotalPersons:  len(input.PersonTiers),
		OpenCaseCount: input.OpenCaseCount,
	}

	var sentimentSum float64
	sentimentCount := 0
	for _, r := range records {
		if r.Analysis.TextAll != "" {
			sentimentSum += r.Analysis.Sentiment.Score
			sentimentCount++
		}
		if r.Analysis.Urgency == domain.UrgencyHigh {
			stats.HighUrgencyCount++
		}
	}
	if sentimentCount > 0 {
		stats.AvgSentiment = math.Round(sentimentSum/float64(sentimentCount)*100) / 100
	}

	for _, tier := range input.PersonTiers {
		switch tier {
		case domain.TierRed:
			stats.RedAlertCount++
		case domain.TierYellow:
			stats.YellowAlertCount++
		}
	}

	stats.TrendData = monthlyTrend(records)
	stats.CategoryTrend = monthlyCategoryTrend(records)

	catCounts := map[domain.CategoryKey]int{}
	for _, r := range records {
		catCounts[r.Analysis.CategoryMain]++
	}
	topCategory := domain.CategoryOther
	topCategoryCount := 0
	for _, key := range domain.CategoryKeys {
		count := catCounts[key]
		if count == 0 {
			continue
		}
		percentage := 0
		if stats.TotalRecords > 0 {
			percentage = int(math.Round(float64(count) / float64(stats.TotalRecords) * 100))
		}
		stats.CategoryDistribution = append(stats.CategoryDistribution, CategoryShare{
			Category:   analysis.CategoryLabel(key),
			Count:      count,
			Percentage: percentage,
		})
		if count > topCategoryCount {
			topCategory, topCategoryCount = key, count
		}
	}
	sort.SliceStable(stats.CategoryDistribution, func(i, j int) bool {
		return stats.CategoryDistribution[i].Count > stats.CategoryDistribution[j].Count
	})

	var texts []string
	for _, r := range records {
		if r.Analysis.TextAll != "" {
			texts = append(texts, r.Analysis.TextAll)
		}
	}
	stats.TopKeywords = analysis.ExtractBatchKeywords(texts, 20)

	stats.Insights = GenerateGroupInsights(InsightData{
		TotalRecords:     stats.TotalRecords,
		TotalPersons:     stats.TotalPersons,
		AvgSentiment:     stats.AvgSentiment,
		RedAlertCount:    stats.RedAlertCount,
		YellowAlertCount: stats.YellowAlertCount,
		TopCategory:      topCategory,
		TopCategoryCount: topCategoryCount,
		HighUrgencyCount: stats.HighUrgencyCount,
		OpenCaseCount:    stats.OpenCaseCount,
	})

	return stats
}

func monthKey(r domain.InterviewRecord) (string, bool) {
	if r.Date == nil {
		return "", false
	}
	return r.Date.Format("2006-01"), true
}

func monthlyTrend(records []domain.InterviewRecord) []TrendPoint {
	byMonth := map[string]int{}
	for _, r := range records {
		if key, ok := monthKey(r); ok {
			byMonth[key]++
		}
	}
	points := make([]TrendPoint, 0, len(byMonth))
	for key, count := range byMonth {
		points = append(points, TrendPoint{Date: key, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func monthlyCategoryTrend(records []domain.InterviewRecord) []CategoryTrendPoint {
	byMonth := map[string]map[domain.CategoryKey]int{}
	for _, r := range records {
		key, ok := monthKey(r)
		if !ok {
			continue
		}
		if byMonth[key] == nil {
			byMonth[key] = map[domain.CategoryKey]int{}
		}
		byMonth[key][r.Analysis.CategoryMain]++
	}
	points := make([]CategoryTrendPoint, 0, len(byMonth))
	for key, cats := range byMonth {
		points = append(points, CategoryTrendPoint{Date: key, Categories: cats})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

package analysis

import "InterviewScanner/internal/domain"

// AnalyzeRecord runs the full per-record pipeline: normalize, categorize,
// score sentiment, extract keywords, classify urgency. Pure function of its
// inputs and the settings dictionaries.
func AnalyzeRecord(content, action string, settings domain.AppSettings) domain.AnalysisResult {
	textAll := NormalizeText(content, action)
	if textAll == "" {
		return emptyResult()
	}

	main, flags := ClassifyCategory(textAll, settings.Dict)
	sentiment := AnalyzeSentiment(textAll, settings.SentimentDict)
	keywords := ExtractKeywords(textAll, 10)
	urgency := DetermineUrgency(textAll, sentiment.Score, flags, settings.Thresholds)

	return domain.AnalysisResult{
		TextAll:       textAll,
		CategoryMain:  main,
		CategoryFlags: flags,
		Keywords:      keywords,
		Sentiment:     sentiment,
		Urgency:       urgency,
	}
}

// emptyResult is the defined short-circuit for records without any text.
func emptyResult() domain.AnalysisResult {
	flags := domain.CategoryFlags{}
	for _, key := range domain.CategoryKeys {
		flags[key] = false
	}
	flags[domain.CategoryOther] = true

	return domain.AnalysisResult{
		TextAll:       "",
		CategoryMain:  domain.CategoryOther,
		CategoryFlags: flags,
		Keywords:      []string{},
		Sentiment: domain.SentimentResult{
			Score:      0,
			Confidence: 0,
			Evidence: domain.SentimentEvidence{
				PositiveHits: []string{},
				NegativeHits: []string{},
				Negations:    []string{},
				Intensifiers: []string{},
			},
		},
		Urgency: domain.UrgencyLow,
	}
}

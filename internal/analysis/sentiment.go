package analysis

import (
	"math"
	"strings"

	"InterviewScanner/internal/domain"
)

// AnalyzeSentiment scores text against the sentiment dictionary with negation
// and intensifier adjustment. Score is damped by a +3 constant so a handful
// of hits cannot saturate the [-1, 1] range; confidence grows with hit count.
func AnalyzeSentiment(text string, dict domain.SentimentDict) domain.SentimentResult {
	evidence := domain.SentimentEvidence{
		PositiveHits: []string{},
		NegativeHits: []string{},
		Negations:    []string{},
		Intensifiers: []string{},
	}

	var posCount, negCount float64

	for _, word := range dict.Intensifier {
		if strings.Contains(text, word) {
			evidence.Intensifiers = append(evidence.Intensifiers, word)
		}
	}
	boost := 1.0
	if len(evidence.Intensifiers) > 0 {
		boost = 1.3
	}

	// Idioms like 問題ない read as negated but mean "no problem"; they win
	// over the generic negation check below.
	hasPositiveNegation := false
	for _, pn := range positiveNegations {
		if strings.Contains(text, pn) {
			hasPositiveNegation = true
			evidence.Negations = append(evidence.Negations, pn)
			evidence.PositiveHits = append(evidence.PositiveHits, pn)
			posCount++
		}
	}

	for _, word := range dict.Positive {
		if !strings.Contains(text, word) {
			continue
		}
		if isNegated(text, word, dict.Negation) && !hasPositiveNegation {
			negCount++
			evidence.NegativeHits = append(evidence.NegativeHits, word+"(否定)")
			evidence.Negations = append(evidence.Negations, word+"→否定")
		} else {
			posCount++
			evidence.PositiveHits = append(evidence.PositiveHits, word)
		}
	}

	for _, word := range dict.Negative {
		if !strings.Contains(text, word) {
			continue
		}
		if isNegated(text, word, dict.Negation) {
			// Negating a negative flips polarity, but weakly.
			posCount += 0.5
			evidence.PositiveHits = append(evidence.PositiveHits, word+"(二重否定)")
			evidence.Negations = append(evidence.Negations, word+"→二重否定")
		} else {
			negCount++
			evidence.NegativeHits = append(evidence.NegativeHits, word)
		}
	}

	posCount *= boost
	negCount *= boost

	raw := (posCount - negCount) / (posCount + negCount + 3)
	score := math.Max(-1, math.Min(1, raw))
	confidence := math.Min(1, (posCount+negCount)/5)

	return domain.SentimentResult{
		Score:      math.Round(score*1000) / 1000,
		Confidence: math.Round(confidence*100) / 100,
		Evidence:   evidence,
	}
}

// isNegated reports whether a short negation word (at most 3 runes) appears
// within 5 runes after or 3 runes before the word's first occurrence. This is
// a proximity heuristic, not syntactic parsing; a negation belonging to a
// neighboring clause can trigger it.
func isNegated(text, word string, negationWords []string) bool {
	runes := []rune(text)
	idx := runeIndex(runes, []rune(word))
	if idx < 0 {
		return false
	}

	end := idx + len([]rune(word))
	afterEnd := end + 5
	if afterEnd > len(runes) {
		afterEnd = len(runes)
	}
	after := string(runes[end:afterEnd])

	beforeStart := idx - 3
	if beforeStart < 0 {
		beforeStart = 0
	}
	before := string(runes[beforeStart:idx])

	for _, neg := range negationWords {
		if len([]rune(neg)) > 3 {
			continue
		}
		if strings.Contains(after, neg) || strings.Contains(before, neg) {
			return true
		}
	}
	return false
}

// runeIndex finds the first occurrence of needle in haystack, in runes.
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

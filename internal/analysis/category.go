package analysis

import (
	"strings"

	"InterviewScanner/internal/domain"
)

// categoryPriority orders main-category selection; the first flagged entry
// (other excluded) wins.
var categoryPriority = []domain.CategoryKey{
	domain.CategoryHealth,
	domain.CategoryRelationship,
	domain.CategoryWork,
	domain.CategoryProcedure,
	domain.CategoryLife,
	domain.CategoryLanguageCulture,
	domain.CategoryOther,
}

// ClassifyCategory flags every category whose dictionary keyword appears as a
// case-insensitive substring of the text. Substring containment, not word
// boundaries; short keywords can over-match.
func ClassifyCategory(text string, dict domain.CategoryDict) (domain.CategoryKey, domain.CategoryFlags) {
	flags := domain.CategoryFlags{}
	for _, key := range domain.CategoryKeys {
		flags[key] = false
	}

	lower := strings.ToLower(text)
	for _, key := range domain.CategoryKeys {
		for _, keyword := range dict[key] {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				flags[key] = true
				break
			}
		}
	}

	main := domain.CategoryOther
	for _, cat := range categoryPriority {
		if cat != domain.CategoryOther && flags[cat] {
			main = cat
			break
		}
	}
	if main == domain.CategoryOther {
		flags[domain.CategoryOther] = true
	}

	return main, flags
}

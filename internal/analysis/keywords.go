package analysis

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"InterviewScanner/internal/domain"
)

// The tokenizer loads its dictionary once per process; concurrent first use
// shares a single in-flight initialization and read-only access afterwards.
var loadTokenizer = sync.OnceValues(func() (*tokenizer.Tokenizer, error) {
	return tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
})

var numericToken = regexp.MustCompile(`^\d+$`)

// ExtractKeywords tokenizes text morphologically, keeps topical tokens, and
// returns up to topN surface forms ranked by frequency (ties resolved by
// first-seen order). Falls back to punctuation splitting when the tokenizer
// cannot load; never fails.
func ExtractKeywords(text string, topN int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	t, err := loadTokenizer()
	if err != nil {
		return fallbackExtract(text, topN)
	}

	counts := newWordCounter()
	countTokens(counts, t.Tokenize(text))

	words := make([]string, 0, topN)
	for _, wc := range counts.ranked(topN) {
		words = append(words, wc.Word)
	}
	return words
}

// ExtractBatchKeywords aggregates token frequencies across many documents
// before ranking; used for batch-level top keyword reporting.
func ExtractBatchKeywords(texts []string, topN int) []domain.WordCount {
	t, err := loadTokenizer()
	if err != nil {
		return []domain.WordCount{}
	}

	counts := newWordCounter()
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		countTokens(counts, t.Tokenize(text))
	}
	return counts.ranked(topN)
}

// countTokens applies the shared part-of-speech and surface filters.
func countTokens(counts *wordCounter, tokens []tokenizer.Token) {
	for _, tok := range tokens {
		pos := tok.POS()
		if len(pos) == 0 {
			continue
		}
		if pos[0] != "名詞" && pos[0] != "動詞" && pos[0] != "形容詞" {
			continue
		}
		// Dependent and suffix morphemes carry little topical signal.
		if len(pos) > 1 && (pos[1] == "非自立" || pos[1] == "接尾") {
			continue
		}
		if !keepSurface(tok.Surface) {
			continue
		}
		counts.add(tok.Surface)
	}
}

// keepSurface is the post-filter shared by the morphological and fallback
// paths, so the two cannot diverge on length/number/stopword rules.
func keepSurface(word string) bool {
	if utf8.RuneCountInString(word) < 2 {
		return false
	}
	if numericToken.MatchString(word) {
		return false
	}
	if _, stopped := stopwords[word]; stopped {
		return false
	}
	return true
}

var sentenceDelims = regexp.MustCompile(`[。、！？\s]+`)

// fallbackExtract is the degraded path used when the morphological tokenizer
// is unavailable: split on Japanese sentence punctuation and whitespace, then
// apply the shared post-filter.
func fallbackExtract(text string, topN int) []string {
	counts := newWordCounter()
	for _, w := range strings.Fields(sentenceDelims.ReplaceAllString(text, " ")) {
		if keepSurface(w) {
			counts.add(w)
		}
	}

	words := make([]string, 0, topN)
	for _, wc := range counts.ranked(topN) {
		words = append(words, wc.Word)
	}
	return words
}

// wordCounter counts surface forms while remembering first-seen order, which
// doubles as the deterministic tie-break for equal frequencies.
type wordCounter struct {
	counts map[string]int
	order  []string
}

func newWordCounter() *wordCounter {
	return &wordCounter{counts: map[string]int{}}
}

func (c *wordCounter) add(word string) {
	if _, seen := c.counts[word]; !seen {
		c.order = append(c.order, word)
	}
	c.counts[word]++
}

func (c *wordCounter) ranked(topN int) []domain.WordCount {
	ranked := make([]domain.WordCount, 0, len(c.order))
	for _, word := range c.order {
		ranked = append(ranked, domain.WordCount{Word: word, Count: c.counts[word]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

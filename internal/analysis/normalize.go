package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText cleans content and action independently and joins the
// non-empty parts with a single space. Both empty yields "".
func NormalizeText(content, action string) string {
	var parts []string
	for _, t := range []string{content, action} {
		if t == "" {
			continue
		}
		if cleaned := CleanText(t); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// CleanText unifies line endings, converts fullwidth spaces, and collapses
// whitespace runs to a single space.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "　", " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitCellLines separates a cell into its first line and the rest joined by
// spaces; spreadsheet cells often stack a date and a staff name.
func SplitCellLines(value string) (primary, secondary string) {
	var lines []string
	for _, l := range strings.Split(value, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	if len(lines) == 1 {
		return lines[0], ""
	}
	return lines[0], strings.Join(lines[1:], " ")
}

var staffParens = regexp.MustCompile(`[（(](?:担当[：:]?\s*)?(.+?)[）)]`)

// ExtractStaff pulls a staff name out of a cell, either from lines after the
// first or from a parenthesized (担当: ...) annotation.
func ExtractStaff(value string) string {
	if value == "" {
		return ""
	}
	if _, secondary := SplitCellLines(value); secondary != "" {
		return secondary
	}
	if m := staffParens.FindStringSubmatch(value); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Date patterns tried in order against the first line of a cell.
var datePatterns = []struct {
	re    *regexp.Regexp
	reiwa bool
}{
	{re: regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)},
	{re: regexp.MustCompile(`(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})`)},
	{re: regexp.MustCompile(`R(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{1,2})`), reiwa: true},
	{re: regexp.MustCompile(`令和(\d{1,2})年(\d{1,2})月(\d{1,2})日`), reiwa: true},
}

var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01/02/2006",
}

// ParseDate interprets loosely formatted date cells: Excel serial day counts,
// Japanese calendar and slash/dash/dot formats, and Reiwa era notation. Only
// the first line of a multi-line cell is considered. Returns false instead of
// failing when nothing matches.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	firstLine := strings.TrimSpace(strings.SplitN(value, "\n", 2)[0])
	if firstLine == "" {
		return time.Time{}, false
	}

	// A bare number is a spreadsheet serial, not a calendar string.
	if serial, err := strconv.ParseFloat(firstLine, 64); err == nil {
		return ParseSerialDate(serial)
	}

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(firstLine)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if p.reiwa {
			year += 2018
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, firstLine); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// excelEpoch is the conventional spreadsheet epoch (serial 1 = 1900-01-01).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseSerialDate converts an Excel-style day count, fractional days rounded
// via millisecond arithmetic.
func ParseSerialDate(serial float64) (time.Time, bool) {
	ms := math.Round(serial * 86400000)
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return excelEpoch.Add(time.Duration(ms) * time.Millisecond), true
}

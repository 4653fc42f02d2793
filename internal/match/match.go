// Package match scores extracted résumé text against a list of skill keywords.
package match

import (
	"errors"
	"strings"
)

// ErrInvalidArgument is returned when the keyword list is empty.
var ErrInvalidArgument = errors.New("keyword list is empty")

// Result is the outcome of a single scan.
type Result struct {
	Matched    []string `json:"matched"`
	Percentage int      `json:"percentage"`
}

// MatchKeywords reports which keywords occur in text as case-insensitive
// substrings and what share of the list matched.
//
// Keywords keep their original casing and order in Matched, and duplicates
// are tested and counted independently. There is no word-boundary check, so
// "java" matches inside "javascript".
func MatchKeywords(text string, keywords []string) (Result, error) {
	if len(keywords) == 0 {
		return Result{}, ErrInvalidArgument
	}

	lowerText := strings.ToLower(text)
	matched := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if strings.Contains(lowerText, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}

	return Result{
		Matched:    matched,
		Percentage: percentage(len(matched), len(keywords)),
	}, nil
}

// percentage rounds 100*matched/total half up without going through floats.
func percentage(matched, total int) int {
	return (200*matched + total) / (2 * total)
}

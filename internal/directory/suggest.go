package directory

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SuggestName returns the participant name closest to query by edit distance,
// comparing case-folded text against the whole name and each of its words.
// It returns "" when nothing is within a third of the query length in characters.
func SuggestName(full []Participant, query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return ""
	}
	limit := (utf8.RuneCountInString(query) + 2) / 3
	best, bestDist := "", limit+1
	for _, p := range full {
		if p.Name == "" {
			continue
		}
		lower := strings.ToLower(p.Name)
		candidates := append([]string{lower}, strings.Fields(lower)...)
		for _, c := range candidates {
			if d := levenshtein.ComputeDistance(query, c); d < bestDist {
				best, bestDist = p.Name, d
			}
		}
	}
	if bestDist > limit {
		return ""
	}
	return best
}

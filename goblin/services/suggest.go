package services

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SuggestItems returns up to limit candidates that fuzzily match query, best
// match first. Candidates equal up to case are reported once, as their first
// occurrence in candidates.
func SuggestItems(query string, candidates []string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(candidates) == 0 {
		return nil
	}

	var (
		lowered  []string
		original []string
		seen     = make(map[string]bool, len(candidates))
	)
	for _, c := range candidates {
		l := strings.ToLower(c)
		if seen[l] {
			continue
		}
		seen[l] = true
		lowered = append(lowered, l)
		original = append(original, c)
	}

	var out []string
	for _, m := range fuzzy.Find(query, lowered) {
		out = append(out, original[m.Index])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

package search

import "strings"

// Relevance tiers. The title tiers are mutually exclusive; the description
// bonus is additive.
const (
	scoreTitleExact   = 100
	scoreTitlePrefix  = 50
	scoreTitleContain = 25
	scoreDescContain  = 10
)

// Score rates how well a record's title and description match the query.
// Deterministic, always >= 1 so that browse-all results keep a usable sort key.
func Score(query, title, description string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 1
	}

	lowerTitle := strings.ToLower(title)
	lowerDesc := strings.ToLower(description)

	var score float64
	switch {
	case lowerTitle == q:
		score += scoreTitleExact
	case strings.HasPrefix(lowerTitle, q):
		score += scoreTitlePrefix
	case strings.Contains(lowerTitle, q):
		score += scoreTitleContain
	}
	if strings.Contains(lowerDesc, q) {
		score += scoreDescContain
	}

	if score < 1 {
		return 1
	}
	return score
}

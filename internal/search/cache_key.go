package search

import (
	"encoding/json"
	"sort"

	"soundstageBack/internal/models"
)

// CacheKey serializes a query deterministically so that structurally identical
// requests share one cache entry. Struct marshaling fixes the field order;
// type lists are sorted so their order does not change the key. The requesting
// user is not part of the key.
func CacheKey(q models.SearchQuery) string {
	q.Filters.Types = sortedTypes(q.Filters.Types)
	q.IncludeTypes = sortedTypes(q.IncludeTypes)
	q.ExcludeTypes = sortedTypes(q.ExcludeTypes)
	q.UserID = ""
	payload, _ := json.Marshal(q)
	return string(payload)
}

func sortedTypes(types []models.SearchResultType) []models.SearchResultType {
	if len(types) < 2 {
		return types
	}
	out := make([]models.SearchResultType, len(types))
	copy(out, types)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

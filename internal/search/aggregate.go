package search

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"soundstageBack/internal/models"
)

// aggregate sorts the merged pool, computes facets over all of it, and slices
// the requested page. The returned total reflects the pool before slicing.
func aggregate(pool []models.SearchResult, filters models.SearchFilters, limit, offset int) ([]models.SearchResult, int, models.SearchFacets) {
	sortResults(pool, filters.SortBy, filters.SortOrder)
	facets := computeFacets(pool)
	total := len(pool)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.SearchResult{}, total, facets
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]models.SearchResult, end-offset)
	copy(page, pool[offset:end])
	return page, total, facets
}

// sortResults stable-sorts in place. Descending order negates the ascending
// comparator by swapping its arguments rather than reversing the sorted list,
// so equal keys keep their pre-sort relative order in both directions.
func sortResults(results []models.SearchResult, sortBy, sortOrder string) {
	if len(results) < 2 {
		return
	}
	less := ascendingLess(sortBy)
	descending := sortOrder != models.SortOrderAsc
	sort.SliceStable(results, func(i, j int) bool {
		if descending {
			return less(results[j], results[i])
		}
		return less(results[i], results[j])
	})
}

func ascendingLess(sortBy string) func(a, b models.SearchResult) bool {
	switch sortBy {
	case models.SortByDate:
		return func(a, b models.SearchResult) bool {
			return sortDate(a).Before(sortDate(b))
		}
	case models.SortByRating:
		return func(a, b models.SearchResult) bool {
			return derefFloat(a.Rating) < derefFloat(b.Rating)
		}
	case models.SortByPrice:
		return func(a, b models.SearchResult) bool {
			return derefFloat(a.Price) < derefFloat(b.Price)
		}
	case models.SortByName:
		// A collator is stateful, so each sort gets its own.
		c := collate.New(language.English)
		return func(a, b models.SearchResult) bool {
			return c.CompareString(a.Title, b.Title) < 0
		}
	default:
		return func(a, b models.SearchResult) bool {
			return a.RelevanceScore < b.RelevanceScore
		}
	}
}

// sortDate treats a missing date as epoch zero so undated results sort earliest.
func sortDate(r models.SearchResult) time.Time {
	if r.Date == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.Date
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// computeFacets counts the whole candidate pool by type, category and
// location. Category and location are skipped when absent.
func computeFacets(pool []models.SearchResult) models.SearchFacets {
	facets := models.SearchFacets{
		Types:      make(map[string]int),
		Categories: make(map[string]int),
		Locations:  make(map[string]int),
	}
	for _, r := range pool {
		facets.Types[string(r.Type)]++
		if r.Category != "" {
			facets.Categories[r.Category]++
		}
		if r.Location != "" {
			facets.Locations[r.Location]++
		}
	}
	return facets
}

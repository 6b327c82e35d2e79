package models

import "time"

// SearchResultType tags a search result with the record source it came from.
type SearchResultType string

const (
	SearchTypeEvent        SearchResultType = "event"
	SearchTypeBusiness     SearchResultType = "business"
	SearchTypeContent      SearchResultType = "content"
	SearchTypeUser         SearchResultType = "user"
	SearchTypeOrganization SearchResultType = "organization"
	SearchTypeProduct      SearchResultType = "product"
)

// SearchableTypes returns the result types that have a backing record source.
func SearchableTypes() []SearchResultType {
	return []SearchResultType{
		SearchTypeEvent,
		SearchTypeBusiness,
		SearchTypeContent,
		SearchTypeUser,
		SearchTypeOrganization,
	}
}

// AllowedSearchTypes returns the closed set of valid result types keyed for lookups.
func AllowedSearchTypes() map[SearchResultType]struct{} {
	return map[SearchResultType]struct{}{
		SearchTypeEvent:        {},
		SearchTypeBusiness:     {},
		SearchTypeContent:      {},
		SearchTypeUser:         {},
		SearchTypeOrganization: {},
		SearchTypeProduct:      {},
	}
}

// Sort keys accepted by the aggregator.
const (
	SortByRelevance = "relevance"
	SortByDate      = "date"
	SortByRating    = "rating"
	SortByPrice     = "price"
	SortByName      = "name"
)

// Sort directions.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// IsValidSortKey reports whether the given sort key is supported.
func IsValidSortKey(key string) bool {
	switch key {
	case SortByRelevance, SortByDate, SortByRating, SortByPrice, SortByName:
		return true
	}
	return false
}

// IsValidSortOrder reports whether the given sort direction is supported.
func IsValidSortOrder(order string) bool {
	return order == SortOrderAsc || order == SortOrderDesc
}

// SearchFilters narrows a search request. All fields are optional; adapters
// apply the ones their record type can express.
type SearchFilters struct {
	Types     []SearchResultType `json:"types,omitempty"`
	Location  string             `json:"location,omitempty"`
	Category  string             `json:"category,omitempty"`
	DateFrom  *time.Time         `json:"date_from,omitempty"`
	DateTo    *time.Time         `json:"date_to,omitempty"`
	PriceMin  *float64           `json:"price_min,omitempty"`
	PriceMax  *float64           `json:"price_max,omitempty"`
	MinRating *float64           `json:"min_rating,omitempty"`
	SortBy    string             `json:"sort_by,omitempty"`
	SortOrder string             `json:"sort_order,omitempty"`
}

// SearchQuery describes one global search call.
type SearchQuery struct {
	Query        string             `json:"query"`
	Filters      SearchFilters      `json:"filters,omitempty"`
	Limit        int                `json:"limit,omitempty"`
	Offset       int                `json:"offset,omitempty"`
	IncludeTypes []SearchResultType `json:"include_types,omitempty"`
	ExcludeTypes []SearchResultType `json:"exclude_types,omitempty"`
	UserID       string             `json:"-"`
}

// SearchResult is the canonical shape every record source normalizes into.
type SearchResult struct {
	ID             string                 `json:"id"`
	Type           SearchResultType       `json:"type"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	URL            string                 `json:"url"`
	ImageURL       string                 `json:"image_url,omitempty"`
	Location       string                 `json:"location,omitempty"`
	Date           *time.Time             `json:"date,omitempty"`
	Rating         *float64               `json:"rating,omitempty"`
	Price          *float64               `json:"price,omitempty"`
	Category       string                 `json:"category,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	RelevanceScore float64                `json:"relevance_score"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// SearchFacets counts the full (pre-pagination) result pool by dimension.
type SearchFacets struct {
	Types      map[string]int `json:"types"`
	Categories map[string]int `json:"categories"`
	Locations  map[string]int `json:"locations"`
}

// SearchResponse is a fully assembled page of global search results.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	TotalCount  int            `json:"total_count"`
	SearchTime  int64          `json:"search_time_ms"`
	Suggestions []string       `json:"suggestions"`
	Facets      SearchFacets   `json:"facets"`
}

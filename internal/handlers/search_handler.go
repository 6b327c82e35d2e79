package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"soundstageBack/internal/models"
	"soundstageBack/internal/search"
)

// SearchHandler exposes the federated search endpoints.
type SearchHandler struct {
	Service    *search.Service
	SigningKey string
}

// Search executes a federated search across all resolved record types.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "service unavailable", http.StatusInternalServerError)
		return
	}

	params := r.URL.Query()

	filterTypes, err := parseTypeList(params.Get("types"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	includeTypes, err := parseTypeList(params.Get("include_types"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	excludeTypes, err := parseTypeList(params.Get("exclude_types"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sortBy := params.Get("sort_by")
	if sortBy != "" && !models.IsValidSortKey(sortBy) {
		http.Error(w, "unsupported sort key: "+sortBy, http.StatusBadRequest)
		return
	}
	sortOrder := params.Get("sort_order")
	if sortOrder != "" && !models.IsValidSortOrder(sortOrder) {
		http.Error(w, "unsupported sort order: "+sortOrder, http.StatusBadRequest)
		return
	}

	query := models.SearchQuery{
		Query: strings.TrimSpace(params.Get("q")),
		Filters: models.SearchFilters{
			Types:     filterTypes,
			Location:  strings.TrimSpace(params.Get("location")),
			Category:  strings.TrimSpace(params.Get("category")),
			DateFrom:  parseDate(params.Get("date_from")),
			DateTo:    parseDate(params.Get("date_to")),
			PriceMin:  parseOptionalFloat(params.Get("price_min")),
			PriceMax:  parseOptionalFloat(params.Get("price_max")),
			MinRating: parseOptionalFloat(params.Get("min_rating")),
			SortBy:    sortBy,
			SortOrder: sortOrder,
		},
		Limit:        parsePositiveInt(params.Get("limit"), 0),
		Offset:       parseNonNegativeInt(params.Get("offset")),
		IncludeTypes: includeTypes,
		ExcludeTypes: excludeTypes,
		UserID:       h.extractUserID(r),
	}

	response, err := h.Service.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrSearchUnavailable) {
			http.Error(w, "search temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// Suggestions serves the autocomplete branch on its own.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "service unavailable", http.StatusInternalServerError)
		return
	}

	suggestions := h.Service.Suggest(r.Context(), r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"suggestions": suggestions})
}

// PopularSearches returns the most frequent queries of the trailing window.
func (h *SearchHandler) PopularSearches(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "service unavailable", http.StatusInternalServerError)
		return
	}

	limit := parsePositiveInt(r.URL.Query().Get("limit"), 0)
	popular := h.Service.GetPopularSearches(r.Context(), limit)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"popular_searches": popular})
}

// ClearCache empties the response cache. Admin-only, wired behind the admin
// middleware chain.
func (h *SearchHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "service unavailable", http.StatusInternalServerError)
		return
	}

	h.Service.ClearCache(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "cache cleared"})
}

func parseTypeList(input string) ([]models.SearchResultType, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	allowed := models.AllowedSearchTypes()
	parts := strings.Split(input, ",")
	seen := make(map[models.SearchResultType]struct{}, len(parts))
	types := make([]models.SearchResultType, 0, len(parts))
	for _, part := range parts {
		trimmed := models.SearchResultType(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		if _, ok := allowed[trimmed]; !ok {
			return nil, errors.New("unsupported search type: " + string(trimmed))
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		types = append(types, trimmed)
	}
	if len(types) == 0 {
		return nil, nil
	}
	return types, nil
}

func parsePositiveInt(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil && value > 0 {
		return value
	}
	return fallback
}

func parseNonNegativeInt(input string) int {
	if input == "" {
		return 0
	}
	if value, err := strconv.Atoi(input); err == nil && value >= 0 {
		return value
	}
	return 0
}

func parseOptionalFloat(input string) *float64 {
	if input == "" {
		return nil
	}
	if value, err := strconv.ParseFloat(input, 64); err == nil {
		return &value
	}
	return nil
}

func parseDate(input string) *time.Time {
	if input == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if value, err := time.Parse(layout, input); err == nil {
			return &value
		}
	}
	return nil
}

// extractUserID reads the optional bearer token so analytics rows can be
// attributed. Anonymous or invalid tokens yield an empty user id.
func (h *SearchHandler) extractUserID(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	tokenString := strings.TrimSpace(header[len("Bearer "):])
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.SigningKey), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.UserID
}

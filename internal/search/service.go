package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"soundstageBack/internal/models"
)

// Logger is the minimal logging interface required by the search module.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// AnalyticsStore appends query analytics rows and aggregates them.
type AnalyticsStore interface {
	Insert(ctx context.Context, row models.SearchAnalytics) error
	PopularQueries(ctx context.Context, since time.Time, limit int) ([]models.PopularQuery, error)
}

const (
	defaultPageSize = 20
	// perSourceFloor keeps totals and facets meaningful when the requested
	// page is small: each source fetches at least this many candidates.
	perSourceFloor      = 50
	popularWindowDays   = 30
	defaultPopularLimit = 10
)

// fallbackPopularSearches is served when the analytics aggregation is unavailable.
var fallbackPopularSearches = []string{
	"bass competition",
	"subwoofers",
	"car audio shop",
	"SPL event",
	"sound quality",
}

// Service is the public entry point of the federated search core. It checks
// the response cache, fans the query out to every resolved source adapter,
// aggregates, and records analytics as a detached side effect.
type Service struct {
	adapters    []SourceAdapter
	suggestions *SuggestionGenerator
	cache       ResponseCache
	analytics   AnalyticsStore
	log         Logger
	now         func() time.Time

	// track dispatches the fire-and-forget analytics write.
	track func(query string, resultCount int, userID string)
}

func NewService(adapters []SourceAdapter, suggestions *SuggestionGenerator, cache ResponseCache, analytics AnalyticsStore, log Logger) *Service {
	s := &Service{
		adapters:    adapters,
		suggestions: suggestions,
		cache:       cache,
		analytics:   analytics,
		log:         log,
		now:         time.Now,
	}
	s.track = s.dispatchTrack
	return s
}

// Search runs one federated search call. The only error it can return is
// models.ErrSearchUnavailable, raised when every resolved source failed;
// individual source failures are contained and logged.
func (s *Service) Search(ctx context.Context, q models.SearchQuery) (models.SearchResponse, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	key := CacheKey(q)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	start := s.now()
	adapters := s.resolveAdapters(q)

	perSourceLimit := q.Offset + q.Limit
	if perSourceLimit < perSourceFloor {
		perSourceLimit = perSourceFloor
	}

	outcomes := make([][]models.SearchResult, len(adapters))
	errs := make([]error, len(adapters))
	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func(i int, adapter SourceAdapter) {
			defer wg.Done()
			outcomes[i], errs[i] = adapter.Search(ctx, q.Query, q.Filters, perSourceLimit)
		}(i, adapter)
	}

	var suggestions []string
	wg.Add(1)
	go func() {
		defer wg.Done()
		suggestions = s.suggestions.Suggest(ctx, q.Query)
	}()
	wg.Wait()

	failed := 0
	var merged []models.SearchResult
	for i := range adapters {
		if errs[i] != nil {
			failed++
			s.log.Errorf("search: %s adapter failed: %v", adapters[i].Type(), errs[i])
			continue
		}
		merged = append(merged, outcomes[i]...)
	}
	if len(adapters) > 0 && failed == len(adapters) {
		return models.SearchResponse{}, models.ErrSearchUnavailable
	}

	page, total, facets := aggregate(merged, q.Filters, q.Limit, q.Offset)

	response := models.SearchResponse{
		Results:     page,
		TotalCount:  total,
		SearchTime:  s.now().Sub(start).Milliseconds(),
		Suggestions: suggestions,
		Facets:      facets,
	}
	s.cache.Set(ctx, key, response)

	if strings.TrimSpace(q.Query) != "" {
		s.track(q.Query, total, q.UserID)
	}
	return response, nil
}

// Suggest exposes the autocomplete branch on its own.
func (s *Service) Suggest(ctx context.Context, query string) []string {
	return s.suggestions.Suggest(ctx, query)
}

// GetPopularSearches returns the most frequent queries over the trailing
// 30-day window, falling back to a fixed list when the aggregation fails.
func (s *Service) GetPopularSearches(ctx context.Context, limit int) []string {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	since := s.now().AddDate(0, 0, -popularWindowDays)
	popular, err := s.analytics.PopularQueries(ctx, since, limit)
	if err != nil {
		s.log.Errorf("search: popular query aggregation failed: %v", err)
		fallback := fallbackPopularSearches
		if limit < len(fallback) {
			fallback = fallback[:limit]
		}
		return append([]string(nil), fallback...)
	}
	queries := make([]string, 0, len(popular))
	for _, p := range popular {
		queries = append(queries, p.Query)
	}
	return queries
}

// TrackSearch appends one analytics row. Failures are logged as warnings and
// swallowed; this never reports an error to its caller.
func (s *Service) TrackSearch(ctx context.Context, query string, resultCount int, userID string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return
	}
	row := models.SearchAnalytics{
		ID:          uuid.NewString(),
		Query:       trimmed,
		ResultCount: resultCount,
		SearchedAt:  s.now().UTC(),
	}
	if userID != "" {
		row.UserID = &userID
	}
	if err := s.analytics.Insert(ctx, row); err != nil {
		s.log.Errorf("search: analytics write failed: %v", err)
	}
}

// ClearCache unconditionally empties the response cache.
func (s *Service) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
	s.log.Infof("search: response cache cleared")
}

func (s *Service) dispatchTrack(query string, resultCount int, userID string) {
	go s.TrackSearch(context.Background(), query, resultCount, userID)
}

// resolveAdapters narrows the built-in sources: intersect with the filter
// type list and the include list when given, then drop the excluded ones.
func (s *Service) resolveAdapters(q models.SearchQuery) []SourceAdapter {
	typeFilter := typeSet(q.Filters.Types)
	include := typeSet(q.IncludeTypes)
	exclude := typeSet(q.ExcludeTypes)

	resolved := make([]SourceAdapter, 0, len(s.adapters))
	for _, adapter := range s.adapters {
		t := adapter.Type()
		if len(typeFilter) > 0 {
			if _, ok := typeFilter[t]; !ok {
				continue
			}
		}
		if len(include) > 0 {
			if _, ok := include[t]; !ok {
				continue
			}
		}
		if _, ok := exclude[t]; ok {
			continue
		}
		resolved = append(resolved, adapter)
	}
	return resolved
}

func typeSet(types []models.SearchResultType) map[models.SearchResultType]struct{} {
	if len(types) == 0 {
		return nil
	}
	set := make(map[models.SearchResultType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

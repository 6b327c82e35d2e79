package search

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"soundstageBack/internal/models"
)

type stubAdapter struct {
	typ models.SearchResultType
	fn  func(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.SearchResult, error)

	mu    sync.Mutex
	calls int
}

func (s *stubAdapter) Type() models.SearchResultType { return s.typ }

func (s *stubAdapter) Search(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.SearchResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fn == nil {
		return nil, nil
	}
	return s.fn(ctx, query, filters, limit)
}

func (s *stubAdapter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubAnalytics struct {
	mu         sync.Mutex
	rows       []models.SearchAnalytics
	insertErr  error
	popular    []models.PopularQuery
	popularErr error
}

func (s *stubAnalytics) Insert(ctx context.Context, row models.SearchAnalytics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return s.insertErr
}

func (s *stubAnalytics) PopularQueries(ctx context.Context, since time.Time, limit int) ([]models.PopularQuery, error) {
	return s.popular, s.popularErr
}

func (s *stubAnalytics) recorded() []models.SearchAnalytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SearchAnalytics(nil), s.rows...)
}

func failingAdapter(typ models.SearchResultType) *stubAdapter {
	return &stubAdapter{typ: typ, fn: func(context.Context, string, models.SearchFilters, int) ([]models.SearchResult, error) {
		return nil, errors.New("connection refused")
	}}
}

func fixedAdapter(typ models.SearchResultType, results ...models.SearchResult) *stubAdapter {
	return &stubAdapter{typ: typ, fn: func(context.Context, string, models.SearchFilters, int) ([]models.SearchResult, error) {
		return results, nil
	}}
}

// newTestService wires a service with a synchronous analytics dispatch so
// tests can assert on recorded rows without sleeping.
func newTestService(adapters ...SourceAdapter) (*Service, *stubAnalytics) {
	analytics := &stubAnalytics{}
	gen := NewSuggestionGenerator(&stubSuggestionSource{}, testLogger{})
	svc := NewService(adapters, gen, NewMemoryCache(ResponseTTL), analytics, testLogger{})
	svc.track = func(query string, resultCount int, userID string) {
		svc.TrackSearch(context.Background(), query, resultCount, userID)
	}
	return svc, analytics
}

func TestSearchRanksAcrossSources(t *testing.T) {
	events := &stubAdapter{typ: models.SearchTypeEvent, fn: func(_ context.Context, query string, _ models.SearchFilters, _ int) ([]models.SearchResult, error) {
		return []models.SearchResult{normalizeEvent(query, models.Event{
			ID: "evt-1", Title: "Speaker Off 2024", Description: "Annual SPL shootout",
		})}, nil
	}}
	businesses := &stubAdapter{typ: models.SearchTypeBusiness, fn: func(_ context.Context, query string, _ models.SearchFilters, _ int) ([]models.SearchResult, error) {
		return []models.SearchResult{normalizeBusiness(query, models.Business{
			ID: "biz-1", Name: "World of Speakers", Description: "Best speakers in town",
		})}, nil
	}}

	svc, _ := newTestService(events, businesses)
	response, err := svc.Search(context.Background(), models.SearchQuery{Query: "speaker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.TotalCount != 2 || len(response.Results) != 2 {
		t.Fatalf("expected both results, got %d of %d", len(response.Results), response.TotalCount)
	}
	if response.Results[0].Title != "Speaker Off 2024" {
		t.Fatalf("expected the title-prefix match first, got %q", response.Results[0].Title)
	}
	if response.Results[0].RelevanceScore != 50 {
		t.Fatalf("expected prefix score 50, got %v", response.Results[0].RelevanceScore)
	}
	if response.Results[1].RelevanceScore != 35 {
		t.Fatalf("expected contains+description score 35, got %v", response.Results[1].RelevanceScore)
	}
}

func TestSearchContainsSingleSourceFailure(t *testing.T) {
	healthy := fixedAdapter(models.SearchTypeBusiness, models.SearchResult{
		ID: "biz-1", Type: models.SearchTypeBusiness, Title: "Bass Works", RelevanceScore: 25,
	})
	svc, _ := newTestService(failingAdapter(models.SearchTypeEvent), healthy)

	response, err := svc.Search(context.Background(), models.SearchQuery{Query: "bass"})
	if err != nil {
		t.Fatalf("one failing source must not fail the search: %v", err)
	}
	if response.TotalCount != 1 {
		t.Fatalf("expected the healthy source's result, got %d", response.TotalCount)
	}
}

func TestSearchAllSourcesFailed(t *testing.T) {
	svc, _ := newTestService(
		failingAdapter(models.SearchTypeEvent),
		failingAdapter(models.SearchTypeBusiness),
	)

	_, err := svc.Search(context.Background(), models.SearchQuery{Query: "bass"})
	if !errors.Is(err, models.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestSearchEmptyQueryBrowsesAndFacets(t *testing.T) {
	mk := func(typ models.SearchResultType, n int) []models.SearchResult {
		out := make([]models.SearchResult, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, models.SearchResult{
				ID: string(typ) + string(rune('0'+i)), Type: typ, Title: string(typ), RelevanceScore: 1,
			})
		}
		return out
	}
	svc, analytics := newTestService(
		fixedAdapter(models.SearchTypeEvent, mk(models.SearchTypeEvent, 5)...),
		fixedAdapter(models.SearchTypeBusiness, mk(models.SearchTypeBusiness, 4)...),
		fixedAdapter(models.SearchTypeOrganization, mk(models.SearchTypeOrganization, 3)...),
	)

	response, err := svc.Search(context.Background(), models.SearchQuery{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(response.Results) != 5 {
		t.Fatalf("expected a page of 5, got %d", len(response.Results))
	}
	if response.TotalCount != 12 {
		t.Fatalf("expected total 12, got %d", response.TotalCount)
	}
	typeTotal := 0
	for _, count := range response.Facets.Types {
		typeTotal += count
	}
	if typeTotal != 12 {
		t.Fatalf("type facets must sum to the total, got %d", typeTotal)
	}
	if rows := analytics.recorded(); len(rows) != 0 {
		t.Fatalf("empty queries must not be tracked, got %d rows", len(rows))
	}
}

func TestSearchResolvesIncludeAndExclude(t *testing.T) {
	events := fixedAdapter(models.SearchTypeEvent)
	businesses := fixedAdapter(models.SearchTypeBusiness)
	users := fixedAdapter(models.SearchTypeUser)

	svc, _ := newTestService(events, businesses, users)
	_, err := svc.Search(context.Background(), models.SearchQuery{
		Query:        "bass",
		IncludeTypes: []models.SearchResultType{models.SearchTypeEvent, models.SearchTypeBusiness},
		ExcludeTypes: []models.SearchResultType{models.SearchTypeBusiness},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if events.callCount() != 1 {
		t.Fatal("included adapter must run")
	}
	if businesses.callCount() != 0 {
		t.Fatal("excluded adapter must not run")
	}
	if users.callCount() != 0 {
		t.Fatal("non-included adapter must not run")
	}
}

func TestSearchCacheHitReturnsStoredResponse(t *testing.T) {
	adapter := fixedAdapter(models.SearchTypeEvent, models.SearchResult{
		ID: "evt-1", Type: models.SearchTypeEvent, Title: "Bass Championship", RelevanceScore: 100,
	})
	svc, _ := newTestService(adapter)

	query := models.SearchQuery{Query: "bass championship"}
	first, err := svc.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The source changes, but the cached response must be replayed verbatim.
	adapter.fn = func(context.Context, string, models.SearchFilters, int) ([]models.SearchResult, error) {
		return nil, errors.New("connection refused")
	}
	second, err := svc.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached response differs:\nfirst  %+v\nsecond %+v", first, second)
	}
	if adapter.callCount() != 1 {
		t.Fatalf("expected no recomputation on a cache hit, adapter ran %d times", adapter.callCount())
	}
}

func TestSearchCacheExpiryRecomputes(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(ResponseTTL)
	cache.now = func() time.Time { return now }

	adapter := fixedAdapter(models.SearchTypeEvent, models.SearchResult{
		ID: "evt-1", Type: models.SearchTypeEvent, Title: "Bass Championship", RelevanceScore: 100,
	})
	gen := NewSuggestionGenerator(&stubSuggestionSource{}, testLogger{})
	svc := NewService([]SourceAdapter{adapter}, gen, cache, &stubAnalytics{}, testLogger{})
	svc.track = func(string, int, string) {}

	query := models.SearchQuery{Query: "bass championship"}
	if _, err := svc.Search(context.Background(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Search(context.Background(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter.callCount() != 1 {
		t.Fatalf("expected a cache hit inside the TTL, adapter ran %d times", adapter.callCount())
	}

	now = now.Add(ResponseTTL + time.Second)
	if _, err := svc.Search(context.Background(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter.callCount() != 2 {
		t.Fatalf("expected a recomputation after the TTL, adapter ran %d times", adapter.callCount())
	}
}

func TestSearchTracksNonEmptyQueries(t *testing.T) {
	svc, analytics := newTestService(fixedAdapter(models.SearchTypeEvent, models.SearchResult{
		ID: "evt-1", Type: models.SearchTypeEvent, Title: "Bass Championship", RelevanceScore: 100,
	}))

	_, err := svc.Search(context.Background(), models.SearchQuery{Query: "bass", UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := analytics.recorded()
	if len(rows) != 1 {
		t.Fatalf("expected one analytics row, got %d", len(rows))
	}
	if rows[0].Query != "bass" || rows[0].ResultCount != 1 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
	if rows[0].UserID == nil || *rows[0].UserID != "user-1" {
		t.Fatalf("expected the user to be attributed, got %+v", rows[0].UserID)
	}
}

func TestTrackSearchSwallowsErrors(t *testing.T) {
	svc, analytics := newTestService()
	analytics.insertErr = errors.New("connection refused")

	svc.TrackSearch(context.Background(), "bass", 3, "")

	if len(analytics.recorded()) != 1 {
		t.Fatal("expected the write to be attempted")
	}
}

func TestTrackSearchIgnoresEmptyQuery(t *testing.T) {
	svc, analytics := newTestService()
	svc.TrackSearch(context.Background(), "   ", 3, "")
	if len(analytics.recorded()) != 0 {
		t.Fatal("blank queries must not be recorded")
	}
}

func TestGetPopularSearches(t *testing.T) {
	svc, analytics := newTestService()
	analytics.popular = []models.PopularQuery{
		{Query: "subwoofers", Count: 12},
		{Query: "bass competition", Count: 7},
	}

	got := svc.GetPopularSearches(context.Background(), 5)
	if len(got) != 2 || got[0] != "subwoofers" || got[1] != "bass competition" {
		t.Fatalf("unexpected popular searches %v", got)
	}
}

func TestGetPopularSearchesFallsBack(t *testing.T) {
	svc, analytics := newTestService()
	analytics.popularErr = errors.New("connection refused")

	got := svc.GetPopularSearches(context.Background(), 3)
	if len(got) != 3 {
		t.Fatalf("expected the fallback list capped to the limit, got %v", got)
	}
	if got[0] != fallbackPopularSearches[0] {
		t.Fatalf("unexpected fallback %v", got)
	}
}

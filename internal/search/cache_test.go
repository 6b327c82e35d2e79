package search

import (
	"context"
	"testing"
	"time"

	"soundstageBack/internal/models"
)

func TestMemoryCacheTTL(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(ResponseTTL)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	response := models.SearchResponse{TotalCount: 3, SearchTime: 42}
	cache.Set(ctx, "key", response)

	now = now.Add(ResponseTTL - time.Second)
	got, ok := cache.Get(ctx, "key")
	if !ok {
		t.Fatal("expected a hit inside the TTL window")
	}
	if got.TotalCount != 3 || got.SearchTime != 42 {
		t.Fatalf("cached response must be returned verbatim, got %+v", got)
	}

	now = now.Add(2 * time.Second)
	if _, ok := cache.Get(ctx, "key"); ok {
		t.Fatal("expected a miss once the TTL elapsed")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(ResponseTTL)
	cache.Set(ctx, "a", models.SearchResponse{TotalCount: 1})
	cache.Set(ctx, "b", models.SearchResponse{TotalCount: 2})

	cache.Clear(ctx)

	if _, ok := cache.Get(ctx, "a"); ok {
		t.Fatal("expected cache to be empty after Clear")
	}
	if _, ok := cache.Get(ctx, "b"); ok {
		t.Fatal("expected cache to be empty after Clear")
	}
}

func TestCacheKeyIgnoresTypeListOrder(t *testing.T) {
	a := models.SearchQuery{
		Query:        "subwoofer",
		Limit:        10,
		IncludeTypes: []models.SearchResultType{models.SearchTypeEvent, models.SearchTypeBusiness},
	}
	b := models.SearchQuery{
		Query:        "subwoofer",
		Limit:        10,
		IncludeTypes: []models.SearchResultType{models.SearchTypeBusiness, models.SearchTypeEvent},
	}
	if CacheKey(a) != CacheKey(b) {
		t.Fatal("type list order must not change the cache key")
	}
}

func TestCacheKeyIgnoresUser(t *testing.T) {
	a := models.SearchQuery{Query: "subwoofer", UserID: "user-1"}
	b := models.SearchQuery{Query: "subwoofer", UserID: "user-2"}
	if CacheKey(a) != CacheKey(b) {
		t.Fatal("the requesting user must not change the cache key")
	}
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
	base := models.SearchQuery{Query: "subwoofer", Limit: 10}

	differentQuery := base
	differentQuery.Query = "amplifier"
	if CacheKey(base) == CacheKey(differentQuery) {
		t.Fatal("different query text must produce a different key")
	}

	differentOffset := base
	differentOffset.Offset = 10
	if CacheKey(base) == CacheKey(differentOffset) {
		t.Fatal("different offset must produce a different key")
	}

	minRating := 4.0
	differentFilters := base
	differentFilters.Filters.MinRating = &minRating
	if CacheKey(base) == CacheKey(differentFilters) {
		t.Fatal("different filters must produce a different key")
	}
}

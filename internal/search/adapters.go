package search

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"soundstageBack/internal/models"
)

// SourceAdapter fetches records of one type and normalizes them into the
// canonical result shape. A failing source reports its error to the
// orchestrator, which contains it; it must never abort the other sources.
type SourceAdapter interface {
	Type() models.SearchResultType
	Search(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.SearchResult, error)
}

// contentExcerptLimit caps descriptions derived from rich CMS bodies.
const contentExcerptLimit = 200

var htmlPolicy = bluemonday.StrictPolicy()

type eventSource interface {
	SearchEvents(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.Event, error)
}

type businessSource interface {
	SearchBusinesses(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.Business, error)
}

type contentSource interface {
	SearchContentPages(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.ContentPage, error)
}

type profileSource interface {
	SearchProfiles(ctx context.Context, query string, limit int) ([]models.Profile, error)
}

type organizationSource interface {
	SearchOrganizations(ctx context.Context, query string, limit int) ([]models.Organization, error)
}

type eventAdapter struct {
	repo eventSource
}

func NewEventAdapter(repo eventSource) SourceAdapter {
	return &eventAdapter{repo: repo}
}

func (a *eventAdapter) Type() models.SearchResultType { return models.SearchTypeEvent }

func (a *eventAdapter) Search(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.SearchResult, error) {
	events, err := a.repo.SearchEvents(ctx, query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("event source: %w", err)
	}
	results := make([]models.SearchResult, 0, len(events))
	for _, ev := range events {
		results = append(results, normalizeEvent(query, ev))
	}
	return results, nil
}

func normalizeEvent(query string, ev models.Event) models.SearchResult {
	metadata := map[string]interface{}{
		"is_featured": ev.IsFeatured,
	}
	if ev.VenueName != nil {
		metadata["venue_name"] = *ev.VenueName
	}
	return models.SearchResult{
		ID:             ev.ID,
		Type:           models.SearchTypeEvent,
		Title:          ev.Title,
		Description:    ev.Description,
		URL:            "/events/" + ev.ID,
		ImageURL:       derefString(ev.ImageURL),
		Location:       joinLocation(ev.City, ev.State),
		Date:           ev.StartDate,
		Price:          ev.EntryFee,
		Category:       derefString(ev.EventType),
		RelevanceScore: Score(query, ev.Title, ev.Description),
		Metadata:       metadata,
	}
}

type businessAdapter struct {
	repo businessSource
}

func NewBusinessAdapter(repo businessSource) SourceAdapter {
	return &businessAdapter{repo: repo}
}

func (a *businessAdapter) Type() models.SearchResultType { return models.SearchTypeBusiness }

func (a *businessAdapter) Search(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.SearchResult, error) {
	businesses, err := a.repo.SearchBusinesses(ctx, query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("business source: %w", err)
	}
	results := make([]models.SearchResult, 0, len(businesses))
	for _, biz := range businesses {
		results = append(results, normalizeBusiness(query, biz))
	}
	return results, nil
}

func normalizeBusiness(query string, biz models.Business) models.SearchResult {
	metadata := map[string]interface{}{
		"review_count": biz.ReviewCount,
		"is_featured":  biz.IsFeatured,
	}
	if biz.Phone != nil {
		metadata["phone"] = *biz.Phone
	}
	if biz.Website != nil {
		metadata["website"] = *biz.Website
	}
	return models.SearchResult{
		ID:             biz.ID,
		Type:           models.SearchTypeBusiness,
		Title:          biz.Name,
		Description:    biz.Description,
		URL:            "/directory/" + biz.ID,
		ImageURL:       derefString(biz.LogoURL),
		Location:       joinLocation(biz.City, biz.State),
		Rating:         biz.Rating,
		Category:       derefString(biz.Category),
		RelevanceScore: Score(query, biz.Name, biz.Description),
		Metadata:       metadata,
	}
}

type contentAdapter struct {
	repo contentSource
}

func NewContentAdapter(repo contentSource) SourceAdapter {
	return &contentAdapter{repo: repo}
}

func (a *contentAdapter) Type() models.SearchResultType { return models.SearchTypeContent }

func (a *contentAdapter) Search(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.SearchResult, error) {
	pages, err := a.repo.SearchContentPages(ctx, query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("content source: %w", err)
	}
	results := make([]models.SearchResult, 0, len(pages))
	for _, page := range pages {
		results = append(results, normalizeContentPage(query, page))
	}
	return results, nil
}

func normalizeContentPage(query string, page models.ContentPage) models.SearchResult {
	description := derefString(page.Excerpt)
	if description == "" {
		description = truncateText(stripMarkup(page.Body), contentExcerptLimit)
	}
	return models.SearchResult{
		ID:             page.ID,
		Type:           models.SearchTypeContent,
		Title:          page.Title,
		Description:    description,
		URL:            "/page/" + page.Slug,
		ImageURL:       derefString(page.ImageURL),
		Date:           &page.UpdatedAt,
		Category:       derefString(page.Category),
		Tags:           splitTags(page.Tags),
		RelevanceScore: Score(query, page.Title, description),
		Metadata: map[string]interface{}{
			"slug": page.Slug,
		},
	}
}

type userAdapter struct {
	repo profileSource
}

func NewUserAdapter(repo profileSource) SourceAdapter {
	return &userAdapter{repo: repo}
}

func (a *userAdapter) Type() models.SearchResultType { return models.SearchTypeUser }

func (a *userAdapter) Search(ctx context.Context, query string, _ models.SearchFilters, limit int) ([]models.SearchResult, error) {
	profiles, err := a.repo.SearchProfiles(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("profile source: %w", err)
	}
	results := make([]models.SearchResult, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, normalizeProfile(query, profile))
	}
	return results, nil
}

func normalizeProfile(query string, profile models.Profile) models.SearchResult {
	bio := derefString(profile.Bio)
	metadata := map[string]interface{}{}
	if profile.TeamName != nil {
		metadata["team_name"] = *profile.TeamName
	}
	return models.SearchResult{
		ID:             profile.ID,
		Type:           models.SearchTypeUser,
		Title:          profile.DisplayName,
		Description:    bio,
		URL:            "/profile/" + profile.ID,
		ImageURL:       derefString(profile.AvatarURL),
		Location:       joinLocation(profile.City, profile.State),
		RelevanceScore: Score(query, profile.DisplayName, bio),
		Metadata:       metadata,
	}
}

type organizationAdapter struct {
	repo organizationSource
}

func NewOrganizationAdapter(repo organizationSource) SourceAdapter {
	return &organizationAdapter{repo: repo}
}

func (a *organizationAdapter) Type() models.SearchResultType { return models.SearchTypeOrganization }

func (a *organizationAdapter) Search(ctx context.Context, query string, _ models.SearchFilters, limit int) ([]models.SearchResult, error) {
	orgs, err := a.repo.SearchOrganizations(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("organization source: %w", err)
	}
	results := make([]models.SearchResult, 0, len(orgs))
	for _, org := range orgs {
		results = append(results, normalizeOrganization(query, org))
	}
	return results, nil
}

func normalizeOrganization(query string, org models.Organization) models.SearchResult {
	return models.SearchResult{
		ID:             org.ID,
		Type:           models.SearchTypeOrganization,
		Title:          org.Name,
		Description:    org.Description,
		URL:            "/organizations/" + org.ID,
		ImageURL:       derefString(org.LogoURL),
		Location:       joinLocation(org.City, org.State),
		Category:       derefString(org.OrgType),
		RelevanceScore: Score(query, org.Name, org.Description),
		Metadata: map[string]interface{}{
			"member_count": org.MemberCount,
		},
	}
}

// joinLocation renders "{city}, {state}" when both parts are present.
func joinLocation(city, state *string) string {
	if city == nil || state == nil || *city == "" || *state == "" {
		return ""
	}
	return *city + ", " + *state
}

// stripMarkup reduces an HTML body to plain text with collapsed whitespace.
func stripMarkup(body string) string {
	sanitized := htmlPolicy.Sanitize(body)
	unescaped := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(unescaped), " ")
}

func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func splitTags(raw *string) []string {
	if raw == nil {
		return nil
	}
	parts := strings.Split(*raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

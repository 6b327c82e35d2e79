package repositories

import (
	"context"
	"database/sql"

	"soundstageBack/internal/models"
)

type ContentRepository struct {
	DB *sql.DB
}

// SearchContentPages returns up to limit published CMS pages matching the query.
func (r *ContentRepository) SearchContentPages(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.ContentPage, error) {
	b := &condBuilder{}
	b.add("status = 'published'")
	b.matchAny(query, "title", "body", "tags")
	if filters.Category != "" {
		b.add("category ILIKE " + b.bind(filters.Category))
	}

	q := `
                SELECT id, slug, title, body, excerpt, category, tags, image_url, updated_at
                FROM content_pages` + b.where() + `
                ORDER BY updated_at DESC
                LIMIT ` + b.bind(limit)

	rows, err := r.DB.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.ContentPage
	for rows.Next() {
		var page models.ContentPage
		if err := rows.Scan(
			&page.ID, &page.Slug, &page.Title, &page.Body, &page.Excerpt,
			&page.Category, &page.Tags, &page.ImageURL, &page.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

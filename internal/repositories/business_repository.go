package repositories

import (
	"context"
	"database/sql"

	"soundstageBack/internal/models"
)

type BusinessRepository struct {
	DB *sql.DB
}

// SearchBusinesses returns up to limit approved directory listings matching the query.
func (r *BusinessRepository) SearchBusinesses(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.Business, error) {
	b := &condBuilder{}
	b.add("status = 'approved'")
	b.matchAny(query, "name", "description", "city", "state", "category")
	if filters.Category != "" {
		b.add("category ILIKE " + b.bind(filters.Category))
	}
	if filters.MinRating != nil {
		b.add("rating >= " + b.bind(*filters.MinRating))
	}

	q := `
                SELECT id, name, description, category, city, state, phone, website,
                       logo_url, rating, review_count, is_featured, created_at
                FROM businesses` + b.where() + `
                ORDER BY is_featured DESC, rating DESC NULLS LAST
                LIMIT ` + b.bind(limit)

	rows, err := r.DB.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		var biz models.Business
		if err := rows.Scan(
			&biz.ID, &biz.Name, &biz.Description, &biz.Category, &biz.City,
			&biz.State, &biz.Phone, &biz.Website, &biz.LogoURL, &biz.Rating,
			&biz.ReviewCount, &biz.IsFeatured, &biz.CreatedAt,
		); err != nil {
			return nil, err
		}
		businesses = append(businesses, biz)
	}
	return businesses, rows.Err()
}

// SuggestNames returns up to limit distinct approved business names containing
// the query. Used by the autocomplete branch of the global search.
func (r *BusinessRepository) SuggestNames(ctx context.Context, query string, limit int) ([]string, error) {
	b := &condBuilder{}
	b.add("status = 'approved'")
	b.matchAny(query, "name")

	q := `SELECT DISTINCT name FROM businesses` + b.where() + ` ORDER BY name ASC LIMIT ` + b.bind(limit)

	rows, err := r.DB.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

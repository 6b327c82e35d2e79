package repositories

import (
	"context"
	"database/sql"
	"time"

	"soundstageBack/internal/models"
)

type SearchAnalyticsRepository struct {
	DB *sql.DB
}

// Insert appends one row to the search analytics log.
func (r *SearchAnalyticsRepository) Insert(ctx context.Context, row models.SearchAnalytics) error {
	_, err := r.DB.ExecContext(ctx, `
                INSERT INTO search_analytics (id, query, result_count, user_id, searched_at)
                VALUES ($1, $2, $3, $4, $5)
        `, row.ID, row.Query, row.ResultCount, row.UserID, row.SearchedAt)
	return err
}

// PopularQueries aggregates logged queries since the given time, most frequent
// first, ties broken by recency.
func (r *SearchAnalyticsRepository) PopularQueries(ctx context.Context, since time.Time, limit int) ([]models.PopularQuery, error) {
	rows, err := r.DB.QueryContext(ctx, `
                SELECT LOWER(TRIM(query)) AS q, COUNT(*) AS cnt
                FROM search_analytics
                WHERE searched_at >= $1 AND TRIM(query) <> ''
                GROUP BY q
                ORDER BY cnt DESC, MAX(searched_at) DESC
                LIMIT $2
        `, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popular []models.PopularQuery
	for rows.Next() {
		var p models.PopularQuery
		if err := rows.Scan(&p.Query, &p.Count); err != nil {
			return nil, err
		}
		popular = append(popular, p)
	}
	return popular, rows.Err()
}

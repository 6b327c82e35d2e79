package repositories

import (
	"context"
	"database/sql"

	"soundstageBack/internal/models"
)

type EventRepository struct {
	DB *sql.DB
}

// SearchEvents returns up to limit published public events matching the query.
// The substring match is ORed across the event's text fields.
func (r *EventRepository) SearchEvents(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.Event, error) {
	b := &condBuilder{}
	b.add("status = 'published'")
	b.add("is_public = TRUE")
	b.matchAny(query, "title", "description", "city", "state", "venue_name")
	if filters.Category != "" {
		b.add("event_type ILIKE " + b.bind(filters.Category))
	}
	if filters.DateFrom != nil {
		b.add("start_date >= " + b.bind(*filters.DateFrom))
	}
	if filters.DateTo != nil {
		b.add("start_date <= " + b.bind(*filters.DateTo))
	}
	if filters.PriceMin != nil {
		b.add("entry_fee >= " + b.bind(*filters.PriceMin))
	}
	if filters.PriceMax != nil {
		b.add("entry_fee <= " + b.bind(*filters.PriceMax))
	}

	q := `
                SELECT id, title, description, event_type, start_date, city, state,
                       venue_name, image_url, entry_fee, is_featured, created_at
                FROM events` + b.where() + `
                ORDER BY start_date ASC NULLS LAST, created_at DESC
                LIMIT ` + b.bind(limit)

	rows, err := r.DB.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.EventType, &ev.StartDate,
			&ev.City, &ev.State, &ev.VenueName, &ev.ImageURL, &ev.EntryFee,
			&ev.IsFeatured, &ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

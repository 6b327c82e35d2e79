package models

import "time"

// SearchAnalytics is one appended row of the search analytics log.
type SearchAnalytics struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	UserID      *string   `json:"user_id,omitempty"`
	SearchedAt  time.Time `json:"searched_at"`
}

// PopularQuery is one row of the trailing-window query frequency aggregation.
type PopularQuery struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

package models

import "time"

// Event is a published competition event row.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventType   *string    `json:"event_type,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	City        *string    `json:"city,omitempty"`
	State       *string    `json:"state,omitempty"`
	VenueName   *string    `json:"venue_name,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	EntryFee    *float64   `json:"entry_fee,omitempty"`
	IsFeatured  bool       `json:"is_featured"`
	CreatedAt   time.Time  `json:"created_at"`
}

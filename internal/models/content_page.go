package models

import "time"

// ContentPage is a published CMS page row. Body carries the raw HTML.
type ContentPage struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Tags      *string   `json:"tags,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

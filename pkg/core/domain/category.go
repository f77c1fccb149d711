package domain

import "time"

// Category owns products; every product belongs to exactly one category
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProductIDs  []int64   `json:"product_ids,omitempty"` // Populated by graph loads only
}

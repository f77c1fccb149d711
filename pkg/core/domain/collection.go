package domain

import "time"

// Collection is a curated, slugged group of products (many-to-many via ProductCollection)
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"` // Empty when auto-created during reconciliation
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProductIDs  []int64   `json:"product_ids,omitempty"` // Populated by graph loads only
}

// ProductCollection is the membership of a product in a collection.
// Identity is the (ProductID, CollectionID) pair.
type ProductCollection struct {
	ProductID    int64 `json:"product_id"`
	CollectionID int64 `json:"collection_id"`
}

// CollectionRef names a desired collection on a product write, either by id
// or by name (find-or-create).
type CollectionRef struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

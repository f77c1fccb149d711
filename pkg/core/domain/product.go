package domain

import "time"

// Product is a sellable item. Relations are held as ids; images and links
// are owned by the product and replaced wholesale on update.
type Product struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Price       int64                `json:"price"` // Minor currency units
	Stock       *int64               `json:"stock,omitempty"`
	Description string               `json:"description"`
	CategoryID  int64                `json:"category_id"`
	Images      []*ProductImage      `json:"images"`
	Links       []*ProductCollection `json:"links"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProductImage is one image of a product. Display order is Position
// ascending with nil positions last.
type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	ImageURL  string `json:"image_url"`
	Position  *int   `json:"position,omitempty"`
}

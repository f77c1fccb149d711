package domain

import "time"

// Write payloads. The validate tags are enforced by the transport layer
// before a request reaches the services.

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type CollectionRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Price       int64           `json:"price" validate:"gte=0"`
	Stock       *int64          `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Description string          `json:"description" validate:"required"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	Images      []string        `json:"images" validate:"dive,omitempty,url"`
	Collections []CollectionRef `json:"collections"`
}

type ProductCollectionRequest struct {
	ProductID    int64 `json:"product_id" validate:"required,gt=0"`
	CollectionID int64 `json:"collection_id" validate:"required,gt=0"`
}

type OrderRequest struct {
	Quantity   int64     `json:"quantity" validate:"gt=0"`
	OrderDate  time.Time `json:"order_date" validate:"required"`
	Total      int64     `json:"total" validate:"gte=0"`
	ProductID  int64     `json:"product_id" validate:"required,gt=0"`
	CustomerID int64     `json:"customer_id" validate:"required,gt=0"`
}

type OrderProductRequest struct {
	OrderID   int64 `json:"order_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"gt=0"`
	Price     int64 `json:"price" validate:"gte=0"`
}

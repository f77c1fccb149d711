package domain

import "time"

// CategoryResponse is the flattened category tuple exposed to callers
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
}

// CollectionResponse has the same shape as CategoryResponse
type CollectionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
}

type ProductResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Price       int64                `json:"price"`
	Stock       *int64               `json:"stock"`
	Description string               `json:"description"`
	Images      []string             `json:"images"`
	Category    *CategoryResponse    `json:"category"`
	Collections []CollectionResponse `json:"collections"`
}

type CategoryWithProductsResponse struct {
	CategoryResponse
	Products []ProductResponse `json:"products"`
}

type CollectionWithProductsResponse struct {
	CollectionResponse
	Products []ProductResponse `json:"products"`
}

type OrderResponse struct {
	ID         int64     `json:"id"`
	Quantity   int64     `json:"quantity"`
	OrderDate  time.Time `json:"order_date"`
	Total      int64     `json:"total"`
	ProductID  int64     `json:"product_id"`
	CustomerID int64     `json:"customer_id"`
}

type OrderProductResponse struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

// CatalogDump is the export/import document used by the CLI
type CatalogDump struct {
	Categories    []Category     `json:"categories"`
	Collections   []Collection   `json:"collections"`
	Products      []Product      `json:"products"`
	Orders        []Order        `json:"orders"`
	OrderProducts []OrderProduct `json:"order_products"`
}

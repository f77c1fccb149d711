package domain

import "time"

// Order references a product and a customer. Customers live outside this service.
type Order struct {
	ID         int64     `json:"id"`
	Quantity   int64     `json:"quantity"`
	OrderDate  time.Time `json:"order_date"`
	Total      int64     `json:"total"`
	ProductID  int64     `json:"product_id"`
	CustomerID int64     `json:"customer_id"`
}

// OrderProduct is an order line keyed by (OrderID, ProductID). Price is a
// snapshot taken when the line was written.
type OrderProduct struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

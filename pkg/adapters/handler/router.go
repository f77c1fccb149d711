package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/config"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

// Services bundles what the router serves
type Services struct {
	Categories         ports.CategoryService
	Collections        ports.CollectionService
	Products           ports.ProductService
	ProductCollections ports.ProductCollectionService
	Orders             ports.OrderService
	OrderProducts      ports.OrderProductService
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, log *zap.Logger, svc Services) http.Handler {
	v := NewValidator()

	// Initialize Handlers
	categories := NewCategoryHandler(svc.Categories, v)
	collections := NewCollectionHandler(svc.Collections, v)
	products := NewProductHandler(svc.Products, v)
	links := NewProductCollectionHandler(svc.ProductCollections, v)
	orders := NewOrderHandler(svc.Orders, svc.OrderProducts, v)

	mw := NewMiddleware(cfg, log)
	authHandler := NewAuthHandler(cfg, log)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	mux.HandleFunc("GET /api/v1/categories", categories.List)
	mux.HandleFunc("GET /api/v1/categories/{id}", categories.Get)
	mux.HandleFunc("GET /api/v1/categories/slug/{slug}", categories.GetBySlug)

	mux.HandleFunc("GET /api/v1/collections", collections.ListCollections)
	mux.HandleFunc("GET /api/v1/collections/products", collections.ListWithProducts)
	mux.HandleFunc("GET /api/v1/collections/{id}", collections.GetCollection)

	mux.HandleFunc("GET /api/v1/products", products.List)
	mux.HandleFunc("GET /api/v1/products/search", products.Search)
	mux.HandleFunc("GET /api/v1/products/{id}", products.Get)
	mux.HandleFunc("GET /api/v1/products/category/{slug}", products.ListByCategory)
	mux.HandleFunc("GET /api/v1/products/collection/{slug}", products.ListByCollection)

	// Protected Routes (catalog administration)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/v1/categories", categories.Create)
	protectedMux.HandleFunc("PUT /api/v1/categories/{id}", categories.Update)
	protectedMux.HandleFunc("DELETE /api/v1/categories/{id}", categories.Delete)

	protectedMux.HandleFunc("POST /api/v1/collections", collections.CreateCollection)
	protectedMux.HandleFunc("PUT /api/v1/collections/{id}", collections.UpdateCollection)
	protectedMux.HandleFunc("DELETE /api/v1/collections/{id}", collections.DeleteCollection)

	protectedMux.HandleFunc("POST /api/v1/products", products.Create)
	protectedMux.HandleFunc("PUT /api/v1/products/{id}", products.Update)
	protectedMux.HandleFunc("DELETE /api/v1/products/{id}", products.Delete)

	protectedMux.HandleFunc("GET /api/v1/product-collections", links.List)
	protectedMux.HandleFunc("POST /api/v1/product-collections", links.Create)
	protectedMux.HandleFunc("DELETE /api/v1/product-collections/{productID}/{collectionID}", links.Delete)

	protectedMux.HandleFunc("GET /api/v1/orders", orders.ListOrders)
	protectedMux.HandleFunc("POST /api/v1/orders", orders.CreateOrder)
	protectedMux.HandleFunc("GET /api/v1/orders/{id}", orders.GetOrder)
	protectedMux.HandleFunc("PUT /api/v1/orders/{id}", orders.UpdateOrder)
	protectedMux.HandleFunc("DELETE /api/v1/orders/{id}", orders.DeleteOrder)

	protectedMux.HandleFunc("GET /api/v1/order-products", orders.ListLines)
	protectedMux.HandleFunc("POST /api/v1/order-products", orders.CreateLine)
	protectedMux.HandleFunc("GET /api/v1/order-products/{orderID}/{productID}", orders.GetLine)
	protectedMux.HandleFunc("PUT /api/v1/order-products/{orderID}/{productID}", orders.UpdateLine)
	protectedMux.HandleFunc("DELETE /api/v1/order-products/{orderID}/{productID}", orders.DeleteLine)

	// Anything under /api/v1/ not matched by a public GET above goes through auth.
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return mw.RequestLogger(mux)
}

package ports

import (
	"context"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

// CatalogRepository defines storage operations for categories, collections and products.
// Lookups of absent rows return (nil, nil).
type CatalogRepository interface {
	// Categories
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) error // Upsert; assigns ID
	DeleteCategory(ctx context.Context, id int64) error

	// Collections
	GetCollection(ctx context.Context, id int64) (*domain.Collection, error)
	FindCollectionByName(ctx context.Context, name string) (*domain.Collection, error)
	CollectionsBySlugs(ctx context.Context, slugs []string) ([]domain.Collection, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	SaveCollection(ctx context.Context, collection *domain.Collection) error
	DeleteCollection(ctx context.Context, id int64) error

	// Products. SaveProduct replaces the stored images and links with the ones on product.
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SaveProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error // Cascades images and links
	ListProductIDs(ctx context.Context) ([]int64, error)
	SearchProducts(ctx context.Context, term string) ([]int64, error)
	ProductIDsByCategorySlug(ctx context.Context, slug string) ([]int64, error)
	ProductIDsByCollectionSlug(ctx context.Context, slug string) ([]int64, error)

	// Graph loads return the roots in slug order plus every entity needed to
	// assemble them, fully populated.
	LoadCategoryGraph(ctx context.Context, slugs []string) ([]*domain.Category, *domain.Graph, error)
	LoadCollectionGraph(ctx context.Context, slugs []string) ([]*domain.Collection, *domain.Graph, error)
	LoadProductGraph(ctx context.Context, productIDs []int64) (*domain.Graph, error)

	// Product-collection links
	ProductCollectionExists(ctx context.Context, productID, collectionID int64) (bool, error)
	CreateProductCollection(ctx context.Context, link *domain.ProductCollection) error
	DeleteProductCollection(ctx context.Context, productID, collectionID int64) error
	ListProductCollections(ctx context.Context) ([]domain.ProductCollection, error)
}

// OrderRepository defines storage operations for orders and order lines
type OrderRepository interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SaveOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, id int64) error // Cascades order lines

	GetOrderProduct(ctx context.Context, orderID, productID int64) (*domain.OrderProduct, error)
	OrderProductExists(ctx context.Context, orderID, productID int64) (bool, error)
	ListOrderProducts(ctx context.Context) ([]domain.OrderProduct, error)
	SaveOrderProduct(ctx context.Context, line *domain.OrderProduct) error
	DeleteOrderProduct(ctx context.Context, orderID, productID int64) error
}

// DumpRepository is used by the CLI for migration
type DumpRepository interface {
	Dump(ctx context.Context) (*domain.CatalogDump, error)
	Restore(ctx context.Context, dump *domain.CatalogDump) (int, error)
}

// CategoryService defines category composition operations
type CategoryService interface {
	ListWithProductsBySlugs(ctx context.Context, rawSlugs []string) ([]domain.CategoryWithProductsResponse, error)
	Create(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error)
	Update(ctx context.Context, id int64, req domain.CategoryRequest) (*domain.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.CategoryResponse, error)
	GetBySlug(ctx context.Context, rawSlug string) (*domain.CategoryResponse, error)
	List(ctx context.Context) ([]domain.CategoryResponse, error)
}

// CollectionService defines collection composition operations
type CollectionService interface {
	ListBySlugs(ctx context.Context, rawSlugs []string) ([]domain.CollectionResponse, error)
	ListWithProductsBySlugs(ctx context.Context, rawSlugs []string) ([]domain.CollectionWithProductsResponse, error)
	Create(ctx context.Context, req domain.CollectionRequest) (*domain.CollectionResponse, error)
	Update(ctx context.Context, id int64, req domain.CollectionRequest) (*domain.CollectionResponse, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.CollectionResponse, error)
	List(ctx context.Context) ([]domain.CollectionResponse, error)
}

// ProductService defines product composition operations
type ProductService interface {
	Create(ctx context.Context, req domain.ProductRequest) (*domain.ProductResponse, error)
	Update(ctx context.Context, id int64, req domain.ProductRequest) (*domain.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.ProductResponse, error)
	List(ctx context.Context) ([]domain.ProductResponse, error)
	Search(ctx context.Context, term string) ([]domain.ProductResponse, error)
	ListByCategorySlug(ctx context.Context, rawSlug string) ([]domain.ProductResponse, error)
	ListByCollectionSlug(ctx context.Context, rawSlug string) ([]domain.ProductResponse, error)
}

// ProductCollectionService manages direct product-collection links
type ProductCollectionService interface {
	Create(ctx context.Context, req domain.ProductCollectionRequest) (*domain.ProductCollection, error)
	Delete(ctx context.Context, productID, collectionID int64) error
	List(ctx context.Context) ([]domain.ProductCollection, error)
}

// OrderService defines order operations
type OrderService interface {
	Create(ctx context.Context, req domain.OrderRequest) (*domain.OrderResponse, error)
	Get(ctx context.Context, id int64) (*domain.OrderResponse, error)
	List(ctx context.Context) ([]domain.OrderResponse, error)
	Update(ctx context.Context, id int64, req domain.OrderRequest) (*domain.OrderResponse, error)
	Delete(ctx context.Context, id int64) error
}

// OrderProductService defines order line operations
type OrderProductService interface {
	Create(ctx context.Context, req domain.OrderProductRequest) (*domain.OrderProductResponse, error)
	Get(ctx context.Context, orderID, productID int64) (*domain.OrderProductResponse, error)
	List(ctx context.Context) ([]domain.OrderProductResponse, error)
	Update(ctx context.Context, orderID, productID int64, req domain.OrderProductRequest) (*domain.OrderProductResponse, error)
	Delete(ctx context.Context, orderID, productID int64) error
}

// Package assembler turns loaded catalog graphs into nested response
// structures. It never mutates what it reads: nil elements are skipped, nil
// slices are empty, and relationships are resolved by id through the graph.
package assembler

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

// Assembler is stateless; build one at startup and share it.
type Assembler struct{}

func New() *Assembler {
	return &Assembler{}
}

// Category flattens c, returning nil for a nil category.
func (a *Assembler) Category(c *domain.Category) *domain.CategoryResponse {
	if c == nil {
		return nil
	}
	return &domain.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		Image:       c.Image,
	}
}

// Collection flattens c, returning nil for a nil collection.
func (a *Assembler) Collection(c *domain.Collection) *domain.CollectionResponse {
	if c == nil {
		return nil
	}
	return &domain.CollectionResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		Image:       c.Image,
	}
}

// Product assembles p with its images, category and collections.
// A product whose category is not in the graph is reported as
// domain.ErrInconsistentState.
func (a *Assembler) Product(g *domain.Graph, p *domain.Product) (*domain.ProductResponse, error) {
	if p == nil {
		return nil, nil
	}
	category := g.Category(p.CategoryID)
	if category == nil {
		return nil, fmt.Errorf("%w: product %d has no category (category_id=%d)",
			domain.ErrInconsistentState, p.ID, p.CategoryID)
	}

	return &domain.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		Images:      ImageURLs(p.Images),
		Category:    a.Category(category),
		Collections: a.memberships(g, p.Links),
	}, nil
}

// Products assembles the products with the given ids in order. Ids missing
// from the graph are skipped.
func (a *Assembler) Products(g *domain.Graph, ids []int64) ([]domain.ProductResponse, error) {
	out := make([]domain.ProductResponse, 0, len(ids))
	for _, id := range ids {
		p := g.Product(id)
		if p == nil {
			continue
		}
		resp, err := a.Product(g, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// CategoriesWithProducts assembles each non-nil category with its products.
func (a *Assembler) CategoriesWithProducts(g *domain.Graph, categories []*domain.Category) ([]domain.CategoryWithProductsResponse, error) {
	out := make([]domain.CategoryWithProductsResponse, 0, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		products, err := a.Products(g, c.ProductIDs)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.CategoryWithProductsResponse{
			CategoryResponse: *a.Category(c),
			Products:         products,
		})
	}
	return out, nil
}

// CollectionsWithProducts assembles each non-nil collection with its member products.
func (a *Assembler) CollectionsWithProducts(g *domain.Graph, collections []*domain.Collection) ([]domain.CollectionWithProductsResponse, error) {
	out := make([]domain.CollectionWithProductsResponse, 0, len(collections))
	for _, c := range collections {
		if c == nil {
			continue
		}
		products, err := a.Products(g, c.ProductIDs)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.CollectionWithProductsResponse{
			CollectionResponse: *a.Collection(c),
			Products:           products,
		})
	}
	return out, nil
}

func (a *Assembler) Order(o *domain.Order) *domain.OrderResponse {
	if o == nil {
		return nil
	}
	return &domain.OrderResponse{
		ID:         o.ID,
		Quantity:   o.Quantity,
		OrderDate:  o.OrderDate,
		Total:      o.Total,
		ProductID:  o.ProductID,
		CustomerID: o.CustomerID,
	}
}

func (a *Assembler) OrderProduct(op *domain.OrderProduct) *domain.OrderProductResponse {
	if op == nil {
		return nil
	}
	return &domain.OrderProductResponse{
		OrderID:   op.OrderID,
		ProductID: op.ProductID,
		Quantity:  op.Quantity,
		Price:     op.Price,
	}
}

// memberships flattens the collections behind links; links whose collection
// is not in the graph are dropped.
func (a *Assembler) memberships(g *domain.Graph, links []*domain.ProductCollection) []domain.CollectionResponse {
	out := make([]domain.CollectionResponse, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		if c := a.Collection(g.Collection(link.CollectionID)); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// ImageURLs returns the URLs of images ordered by position ascending, nil
// positions last. Ties keep their input order.
func ImageURLs(images []*domain.ProductImage) []string {
	present := make([]*domain.ProductImage, 0, len(images))
	for _, img := range images {
		if img == nil || strings.TrimSpace(img.ImageURL) == "" {
			continue
		}
		present = append(present, img)
	}

	slices.SortStableFunc(present, func(x, y *domain.ProductImage) int {
		switch {
		case x.Position == nil && y.Position == nil:
			return 0
		case x.Position == nil:
			return 1
		case y.Position == nil:
			return -1
		default:
			return cmp.Compare(*x.Position, *y.Position)
		}
	})

	urls := make([]string, 0, len(present))
	for _, img := range present {
		urls = append(urls, img.ImageURL)
	}
	return urls
}

package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/assembler"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/slug"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

type ProductService struct {
	repo       ports.CatalogRepository
	assembler  *assembler.Assembler
	reconciler *Reconciler
	logger     *zap.Logger
	now        func() time.Time
}

func NewProductService(repo ports.CatalogRepository, asm *assembler.Assembler, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:       repo,
		assembler:  asm,
		reconciler: NewReconciler(repo, logger),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ProductService) Create(ctx context.Context, req domain.ProductRequest) (*domain.ProductResponse, error) {
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	links, err := s.reconciler.Collections(ctx, 0, req.Collections)
	if err != nil {
		return nil, err
	}

	now := s.now()
	product := &domain.Product{
		CreatedAt: now,
	}
	s.apply(product, req, links, now)

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, storageErr("save product", err)
	}

	s.logger.Info("product created",
		zap.Int64("id", product.ID),
		zap.Int("images", len(product.Images)),
		zap.Int("collections", len(product.Links)),
	)
	return s.assemble(ctx, product.ID)
}

// Update replaces every field of the product. Images and collection links
// are rebuilt from the request, discarding what was stored.
func (s *ProductService) Update(ctx context.Context, id int64, req domain.ProductRequest) (*domain.ProductResponse, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storageErr("get product", err)
	}
	if product == nil {
		return nil, notFound("product", id)
	}
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	links, err := s.reconciler.Collections(ctx, id, req.Collections)
	if err != nil {
		return nil, err
	}
	s.apply(product, req, links, s.now())

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, storageErr("save product", err)
	}
	return s.assemble(ctx, product.ID)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return storageErr("get product", err)
	}
	if product == nil {
		return notFound("product", id)
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return storageErr("delete product", err)
	}
	s.logger.Info("product deleted", zap.Int64("id", id))
	return nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.ProductResponse, error) {
	return s.assemble(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]domain.ProductResponse, error) {
	ids, err := s.repo.ListProductIDs(ctx)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	return s.assembleAll(ctx, ids)
}

// Search matches term against product names and descriptions.
func (s *ProductService) Search(ctx context.Context, term string) ([]domain.ProductResponse, error) {
	ids, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		return nil, storageErr("search products", err)
	}
	return s.assembleAll(ctx, ids)
}

func (s *ProductService) ListByCategorySlug(ctx context.Context, rawSlug string) ([]domain.ProductResponse, error) {
	key, err := slug.Normalize(rawSlug)
	if err != nil {
		return nil, err
	}
	ids, err := s.repo.ProductIDsByCategorySlug(ctx, key)
	if err != nil {
		return nil, storageErr("products by category slug", err)
	}
	return s.assembleAll(ctx, ids)
}

func (s *ProductService) ListByCollectionSlug(ctx context.Context, rawSlug string) ([]domain.ProductResponse, error) {
	key, err := slug.Normalize(rawSlug)
	if err != nil {
		return nil, err
	}
	ids, err := s.repo.ProductIDsByCollectionSlug(ctx, key)
	if err != nil {
		return nil, storageErr("products by collection slug", err)
	}
	return s.assembleAll(ctx, ids)
}

func (s *ProductService) apply(p *domain.Product, req domain.ProductRequest, links []*domain.ProductCollection, now time.Time) {
	p.Name = req.Name
	p.Price = req.Price
	p.Stock = req.Stock
	p.Description = req.Description
	p.CategoryID = req.CategoryID
	p.Images = BuildImages(p.ID, req.Images)
	p.Links = links
	p.UpdatedAt = now
}

func (s *ProductService) requireCategory(ctx context.Context, categoryID int64) error {
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return storageErr("get category", err)
	}
	if category == nil {
		return notFound("category", categoryID)
	}
	return nil
}

func (s *ProductService) assemble(ctx context.Context, id int64) (*domain.ProductResponse, error) {
	g, err := s.repo.LoadProductGraph(ctx, []int64{id})
	if err != nil {
		return nil, storageErr("load product", err)
	}
	p := g.Product(id)
	if p == nil {
		return nil, notFound("product", id)
	}
	resp, err := s.assembler.Product(g, p)
	if err != nil {
		return nil, fmt.Errorf("assemble product %d: %w", id, err)
	}
	return resp, nil
}

func (s *ProductService) assembleAll(ctx context.Context, ids []int64) ([]domain.ProductResponse, error) {
	if len(ids) == 0 {
		return []domain.ProductResponse{}, nil
	}
	g, err := s.repo.LoadProductGraph(ctx, ids)
	if err != nil {
		return nil, storageErr("load products", err)
	}
	return s.assembler.Products(g, ids)
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

// ProductCollectionService manages individual membership links outside of a
// product save.
type ProductCollectionService struct {
	repo   ports.CatalogRepository
	logger *zap.Logger
}

func NewProductCollectionService(repo ports.CatalogRepository, logger *zap.Logger) *ProductCollectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCollectionService{repo: repo, logger: logger}
}

func (s *ProductCollectionService) Create(ctx context.Context, req domain.ProductCollectionRequest) (*domain.ProductCollection, error) {
	exists, err := s.repo.ProductCollectionExists(ctx, req.ProductID, req.CollectionID)
	if err != nil {
		return nil, storageErr("product collection exists", err)
	}
	if exists {
		return nil, fmt.Errorf("product %d in collection %d: %w", req.ProductID, req.CollectionID, domain.ErrConflict)
	}

	product, err := s.repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, storageErr("get product", err)
	}
	if product == nil {
		return nil, notFound("product", req.ProductID)
	}
	collection, err := s.repo.GetCollection(ctx, req.CollectionID)
	if err != nil {
		return nil, storageErr("get collection", err)
	}
	if collection == nil {
		return nil, notFound("collection", req.CollectionID)
	}

	link := &domain.ProductCollection{ProductID: req.ProductID, CollectionID: req.CollectionID}
	if err := s.repo.CreateProductCollection(ctx, link); err != nil {
		return nil, storageErr("create product collection", err)
	}
	s.logger.Info("product added to collection",
		zap.Int64("product_id", link.ProductID),
		zap.Int64("collection_id", link.CollectionID),
	)
	return link, nil
}

// Delete removes the link, failing with ErrNotFound and touching nothing when
// it does not exist.
func (s *ProductCollectionService) Delete(ctx context.Context, productID, collectionID int64) error {
	exists, err := s.repo.ProductCollectionExists(ctx, productID, collectionID)
	if err != nil {
		return storageErr("product collection exists", err)
	}
	if !exists {
		return fmt.Errorf("product %d in collection %d: %w", productID, collectionID, domain.ErrNotFound)
	}
	if err := s.repo.DeleteProductCollection(ctx, productID, collectionID); err != nil {
		return storageErr("delete product collection", err)
	}
	return nil
}

func (s *ProductCollectionService) List(ctx context.Context) ([]domain.ProductCollection, error) {
	links, err := s.repo.ListProductCollections(ctx)
	if err != nil {
		return nil, storageErr("list product collections", err)
	}
	if links == nil {
		links = []domain.ProductCollection{}
	}
	return links, nil
}

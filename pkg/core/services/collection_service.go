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

type CollectionService struct {
	repo      ports.CatalogRepository
	assembler *assembler.Assembler
	logger    *zap.Logger
	now       func() time.Time
}

func NewCollectionService(repo ports.CatalogRepository, asm *assembler.Assembler, logger *zap.Logger) *CollectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionService{repo: repo, assembler: asm, logger: logger, now: time.Now}
}

// ListBySlugs returns the flat collections matching rawSlugs in slug order.
// Unlike categories, no usable slug or no match is ErrNotFound.
func (s *CollectionService) ListBySlugs(ctx context.Context, rawSlugs []string) ([]domain.CollectionResponse, error) {
	slugs := slug.NormalizeList(rawSlugs)
	if len(slugs) == 0 {
		return nil, fmt.Errorf("collections: no slugs given: %w", domain.ErrNotFound)
	}

	collections, err := s.repo.CollectionsBySlugs(ctx, slugs)
	if err != nil {
		return nil, storageErr("collections by slugs", err)
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("collections %v: %w", slugs, domain.ErrNotFound)
	}

	out := make([]domain.CollectionResponse, 0, len(collections))
	for i := range collections {
		out = append(out, *s.assembler.Collection(&collections[i]))
	}
	return out, nil
}

// ListWithProductsBySlugs is ListBySlugs with each collection's products nested.
func (s *CollectionService) ListWithProductsBySlugs(ctx context.Context, rawSlugs []string) ([]domain.CollectionWithProductsResponse, error) {
	slugs := slug.NormalizeList(rawSlugs)
	if len(slugs) == 0 {
		return nil, fmt.Errorf("collections: no slugs given: %w", domain.ErrNotFound)
	}

	roots, g, err := s.repo.LoadCollectionGraph(ctx, slugs)
	if err != nil {
		return nil, storageErr("load collections", err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("collections %v: %w", slugs, domain.ErrNotFound)
	}
	return s.assembler.CollectionsWithProducts(g, roots)
}

func (s *CollectionService) Create(ctx context.Context, req domain.CollectionRequest) (*domain.CollectionResponse, error) {
	key, err := slug.Normalize(req.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.CollectionsBySlugs(ctx, []string{key})
	if err != nil {
		return nil, storageErr("collections by slugs", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("collection slug %q: %w", key, domain.ErrConflict)
	}

	now := s.now()
	collection := &domain.Collection{
		Name:        req.Name,
		Description: req.Description,
		Slug:        key,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.SaveCollection(ctx, collection); err != nil {
		return nil, storageErr("save collection", err)
	}

	s.logger.Info("collection created", zap.Int64("id", collection.ID), zap.String("slug", key))
	return s.assembler.Collection(collection), nil
}

// Update keeps the stored slug, including the empty slug of an auto-created collection.
func (s *CollectionService) Update(ctx context.Context, id int64, req domain.CollectionRequest) (*domain.CollectionResponse, error) {
	collection, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, storageErr("get collection", err)
	}
	if collection == nil {
		return nil, notFound("collection", id)
	}

	collection.Name = req.Name
	collection.Description = req.Description
	collection.Image = req.Image
	collection.UpdatedAt = s.now()

	if err := s.repo.SaveCollection(ctx, collection); err != nil {
		return nil, storageErr("save collection", err)
	}
	return s.assembler.Collection(collection), nil
}

func (s *CollectionService) Delete(ctx context.Context, id int64) error {
	collection, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return storageErr("get collection", err)
	}
	if collection == nil {
		return notFound("collection", id)
	}
	if err := s.repo.DeleteCollection(ctx, id); err != nil {
		return storageErr("delete collection", err)
	}
	s.logger.Info("collection deleted", zap.Int64("id", id))
	return nil
}

func (s *CollectionService) Get(ctx context.Context, id int64) (*domain.CollectionResponse, error) {
	collection, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, storageErr("get collection", err)
	}
	if collection == nil {
		return nil, notFound("collection", id)
	}
	return s.assembler.Collection(collection), nil
}

func (s *CollectionService) List(ctx context.Context) ([]domain.CollectionResponse, error) {
	collections, err := s.repo.ListCollections(ctx)
	if err != nil {
		return nil, storageErr("list collections", err)
	}
	out := make([]domain.CollectionResponse, 0, len(collections))
	for i := range collections {
		out = append(out, *s.assembler.Collection(&collections[i]))
	}
	return out, nil
}

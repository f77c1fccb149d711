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

type CategoryService struct {
	repo      ports.CatalogRepository
	assembler *assembler.Assembler
	logger    *zap.Logger
	now       func() time.Time
}

func NewCategoryService(repo ports.CatalogRepository, asm *assembler.Assembler, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{repo: repo, assembler: asm, logger: logger, now: time.Now}
}

// ListWithProductsBySlugs returns the matching categories with their products,
// in the order the slugs were given. No usable slug or no match gives an
// empty list.
func (s *CategoryService) ListWithProductsBySlugs(ctx context.Context, rawSlugs []string) ([]domain.CategoryWithProductsResponse, error) {
	slugs := slug.NormalizeList(rawSlugs)
	if len(slugs) == 0 {
		return []domain.CategoryWithProductsResponse{}, nil
	}

	roots, g, err := s.repo.LoadCategoryGraph(ctx, slugs)
	if err != nil {
		return nil, storageErr("load categories", err)
	}
	return s.assembler.CategoriesWithProducts(g, roots)
}

func (s *CategoryService) Create(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	key, err := slug.Normalize(req.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCategoryBySlug(ctx, key)
	if err != nil {
		return nil, storageErr("get category by slug", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("category slug %q: %w", key, domain.ErrConflict)
	}

	now := s.now()
	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        key,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, storageErr("save category", err)
	}

	s.logger.Info("category created", zap.Int64("id", category.ID), zap.String("slug", key))
	return s.assembler.Category(category), nil
}

// Update changes name, description and image. The slug keeps the value
// derived at creation.
func (s *CategoryService) Update(ctx context.Context, id int64, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storageErr("get category", err)
	}
	if category == nil {
		return nil, notFound("category", id)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Image = req.Image
	category.UpdatedAt = s.now()

	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, storageErr("save category", err)
	}
	return s.assembler.Category(category), nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return storageErr("get category", err)
	}
	if category == nil {
		return notFound("category", id)
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return storageErr("delete category", err)
	}
	s.logger.Info("category deleted", zap.Int64("id", id))
	return nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.CategoryResponse, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storageErr("get category", err)
	}
	if category == nil {
		return nil, notFound("category", id)
	}
	return s.assembler.Category(category), nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, rawSlug string) (*domain.CategoryResponse, error) {
	key, err := slug.Normalize(rawSlug)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.GetCategoryBySlug(ctx, key)
	if err != nil {
		return nil, storageErr("get category by slug", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %q: %w", key, domain.ErrNotFound)
	}
	return s.assembler.Category(category), nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	out := make([]domain.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *s.assembler.Category(&categories[i]))
	}
	return out, nil
}

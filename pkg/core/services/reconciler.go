package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

// Reconciler resolves the desired collection membership of a product into
// the link set that replaces the stored one.
type Reconciler struct {
	repo   ports.CatalogRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewReconciler(repo ports.CatalogRepository, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{repo: repo, logger: logger, now: time.Now}
}

// Collections returns one link per distinct collection in refs, in first-seen
// order. A ref by id must exist. A ref by name is found or created; a created
// collection is persisted immediately and stays even if the caller's save
// fails afterwards. Refs with neither are skipped.
func (r *Reconciler) Collections(ctx context.Context, productID int64, refs []domain.CollectionRef) ([]*domain.ProductCollection, error) {
	links := make([]*domain.ProductCollection, 0, len(refs))
	seen := make(map[int64]struct{}, len(refs))

	for _, ref := range refs {
		collectionID, ok, err := r.resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, dup := seen[collectionID]; dup {
			continue
		}
		seen[collectionID] = struct{}{}
		links = append(links, &domain.ProductCollection{ProductID: productID, CollectionID: collectionID})
	}
	return links, nil
}

func (r *Reconciler) resolve(ctx context.Context, ref domain.CollectionRef) (int64, bool, error) {
	if ref.ID != nil {
		c, err := r.repo.GetCollection(ctx, *ref.ID)
		if err != nil {
			return 0, false, storageErr("get collection", err)
		}
		if c == nil {
			return 0, false, notFound("collection", *ref.ID)
		}
		return c.ID, true, nil
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return 0, false, nil
	}

	c, err := r.repo.FindCollectionByName(ctx, name)
	if err != nil {
		return 0, false, storageErr("find collection by name", err)
	}
	if c != nil {
		return c.ID, true, nil
	}

	now := r.now()
	c = &domain.Collection{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := r.repo.SaveCollection(ctx, c); err != nil {
		return 0, false, storageErr(fmt.Sprintf("create collection %q", name), err)
	}
	// Created without a slug, so slug lookups will not find it until one is set.
	r.logger.Warn("collection auto-created without slug",
		zap.Int64("collection_id", c.ID),
		zap.String("name", name),
	)
	return c.ID, true, nil
}

// BuildImages positions urls 0, 1, 2... in submission order. Blank URLs are dropped.
func BuildImages(productID int64, urls []string) []*domain.ProductImage {
	images := make([]*domain.ProductImage, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		pos := len(images)
		images = append(images, &domain.ProductImage{ProductID: productID, ImageURL: u, Position: &pos})
	}
	return images
}

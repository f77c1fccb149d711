package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

// Dump reads the whole catalog for export
func (r *SQLiteRepository) Dump(ctx context.Context) (*domain.CatalogDump, error) {
	dump := &domain.CatalogDump{}
	var err error

	if dump.Categories, err = listCategories(ctx, r.db); err != nil {
		return nil, err
	}
	if dump.Collections, err = r.ListCollections(ctx); err != nil {
		return nil, err
	}

	ids, err := r.ListProductIDs(ctx)
	if err != nil {
		return nil, err
	}
	products, err := loadProducts(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		dump.Products = append(dump.Products, *p)
	}

	if dump.Orders, err = listOrders(ctx, r.db); err != nil {
		return nil, err
	}
	if dump.OrderProducts, err = listOrderProducts(ctx, r.db); err != nil {
		return nil, err
	}
	return dump, nil
}

// Restore merges a dump into the target. Categories and collections whose
// slug already exists are reused rather than written. Every other row keeps
// its dumped id when that id is free and draws a fresh one otherwise;
// references are rewritten to the ids actually used. Returns the number of
// rows written.
func (r *SQLiteRepository) Restore(ctx context.Context, dump *domain.CatalogDump) (int, error) {
	count := 0
	err := r.withTx(ctx, "restore", func(tx *sql.Tx) error {
		categories := idMap{}
		for _, c := range dump.Categories {
			existing, err := idBySlug(ctx, tx, "categories", c.Slug)
			if err != nil {
				return err
			}
			if existing != 0 {
				categories[c.ID] = existing
				continue
			}
			dumped := c.ID
			if c.ID, err = freeID(ctx, tx, "categories", c.ID); err != nil {
				return err
			}
			if err := saveCategory(ctx, tx, &c); err != nil {
				return err
			}
			categories[dumped] = c.ID
			count++
		}

		collections := idMap{}
		for _, c := range dump.Collections {
			if c.Slug != "" {
				existing, err := idBySlug(ctx, tx, "collections", c.Slug)
				if err != nil {
					return err
				}
				if existing != 0 {
					collections[c.ID] = existing
					continue
				}
			}
			dumped := c.ID
			var err error
			if c.ID, err = freeID(ctx, tx, "collections", c.ID); err != nil {
				return err
			}
			if err := saveCollection(ctx, tx, &c); err != nil {
				return err
			}
			collections[dumped] = c.ID
			count++
		}

		products := idMap{}
		for _, p := range dump.Products {
			dumped := p.ID
			var err error
			if p.CategoryID, err = categories.resolve("category", p.CategoryID); err != nil {
				return err
			}

			images := make([]*domain.ProductImage, 0, len(p.Images))
			for _, img := range p.Images {
				if img == nil {
					continue
				}
				images = append(images, &domain.ProductImage{ImageURL: img.ImageURL, Position: img.Position})
			}
			links := make([]*domain.ProductCollection, 0, len(p.Links))
			for _, link := range p.Links {
				if link == nil {
					continue
				}
				collectionID, err := collections.resolve("collection", link.CollectionID)
				if err != nil {
					return err
				}
				links = append(links, &domain.ProductCollection{CollectionID: collectionID})
			}
			p.Images, p.Links = images, links

			if p.ID, err = freeID(ctx, tx, "products", p.ID); err != nil {
				return err
			}
			if err := saveProduct(ctx, tx, &p); err != nil {
				return err
			}
			products[dumped] = p.ID
			count++
		}

		orders := idMap{}
		for _, o := range dump.Orders {
			dumped := o.ID
			var err error
			if o.ProductID, err = products.resolve("product", o.ProductID); err != nil {
				return err
			}
			if o.ID, err = freeID(ctx, tx, "orders", o.ID); err != nil {
				return err
			}
			if err := saveOrder(ctx, tx, &o); err != nil {
				return err
			}
			orders[dumped] = o.ID
			count++
		}

		for _, line := range dump.OrderProducts {
			var err error
			if line.OrderID, err = orders.resolve("order", line.OrderID); err != nil {
				return err
			}
			if line.ProductID, err = products.resolve("product", line.ProductID); err != nil {
				return err
			}
			if err := saveOrderProduct(ctx, tx, &line); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// idMap maps ids found in a dump to the ids the rows were written under
type idMap map[int64]int64

func (m idMap) resolve(kind string, id int64) (int64, error) {
	target, ok := m[id]
	if !ok {
		return 0, fmt.Errorf("restore: %s %d is not part of the dump: %w", kind, id, domain.ErrInvalidInput)
	}
	return target, nil
}

func idBySlug(ctx context.Context, q querier, table, slug string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE slug = ?`, slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapErr("restore "+table, err)
	}
	return id, nil
}

// freeID returns id when no row in table holds it, otherwise 0 so the insert
// draws a fresh one.
func freeID(ctx context.Context, q querier, table string, id int64) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	taken, err := exists(ctx, q, "restore "+table, `SELECT 1 FROM `+table+` WHERE id = ?`, id)
	if err != nil || taken {
		return 0, err
	}
	return id, nil
}

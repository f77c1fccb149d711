package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

const productColumns = `id, name, price, stock, description, category_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	var stock sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &stock, &p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if stock.Valid {
		p.Stock = &stock.Int64
	}
	return &p, nil
}

// GetProduct returns the product with its ordered images and its links
func (r *SQLiteRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	products, err := loadProducts(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

// SaveProduct upserts the product row and replaces its images and links in
// one transaction. Image and link ids are filled in on the passed product.
func (r *SQLiteRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	return r.withTx(ctx, "save product", func(tx *sql.Tx) error {
		return saveProduct(ctx, tx, product)
	})
}

func saveProduct(ctx context.Context, q querier, p *domain.Product) error {
	if p.ID == 0 {
		query := `INSERT INTO products (name, price, stock, description, category_id, created_at, updated_at)
				  VALUES (?, ?, ?, ?, ?, ?, ?)`
		res, err := q.ExecContext(ctx, query, p.Name, p.Price, nullInt64(p.Stock), p.Description, p.CategoryID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return wrapErr("insert product", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return wrapErr("insert product", err)
		}
		p.ID = id
	} else {
		query := `INSERT INTO products (id, name, price, stock, description, category_id, created_at, updated_at)
				  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				  ON CONFLICT(id) DO UPDATE SET
				  	name = excluded.name, price = excluded.price, stock = excluded.stock,
				  	description = excluded.description, category_id = excluded.category_id,
				  	updated_at = excluded.updated_at`
		_, err := q.ExecContext(ctx, query, p.ID, p.Name, p.Price, nullInt64(p.Stock), p.Description, p.CategoryID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return wrapErr("upsert product", err)
		}
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = ?`, p.ID); err != nil {
		return wrapErr("clear product images", err)
	}
	for _, img := range p.Images {
		if img == nil {
			continue
		}
		res, err := q.ExecContext(ctx, `INSERT INTO product_images (product_id, image_url, position) VALUES (?, ?, ?)`,
			p.ID, img.ImageURL, nullInt(img.Position))
		if err != nil {
			return wrapErr("insert product image", err)
		}
		if img.ID, err = res.LastInsertId(); err != nil {
			return wrapErr("insert product image", err)
		}
		img.ProductID = p.ID
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM product_collections WHERE product_id = ?`, p.ID); err != nil {
		return wrapErr("clear product collections", err)
	}
	for _, link := range p.Links {
		if link == nil {
			continue
		}
		link.ProductID = p.ID
		// The composite key makes a repeated pair a no-op
		_, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO product_collections (product_id, collection_id) VALUES (?, ?)`,
			link.ProductID, link.CollectionID)
		if err != nil {
			return wrapErr("insert product collection", err)
		}
	}
	return nil
}

// DeleteProduct removes the product together with its images, links and order lines
func (r *SQLiteRepository) DeleteProduct(ctx context.Context, id int64) error {
	return r.withTx(ctx, "delete product", func(tx *sql.Tx) error {
		for _, query := range []string{
			`DELETE FROM product_images WHERE product_id = ?`,
			`DELETE FROM product_collections WHERE product_id = ?`,
			`DELETE FROM order_products WHERE product_id = ?`,
			`DELETE FROM products WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, query, id); err != nil {
				return wrapErr("delete product", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListProductIDs(ctx context.Context) ([]int64, error) {
	return queryIDs(ctx, r.db, "list product ids", `SELECT id FROM products ORDER BY id`)
}

// SearchProducts matches term case-insensitively against name and description
func (r *SQLiteRepository) SearchProducts(ctx context.Context, term string) ([]int64, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	query := `SELECT id FROM products
			  WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?
			  ORDER BY id`
	return queryIDs(ctx, r.db, "search products", query, pattern, pattern)
}

func (r *SQLiteRepository) ProductIDsByCategorySlug(ctx context.Context, slug string) ([]int64, error) {
	query := `SELECT p.id FROM products p
			  JOIN categories c ON c.id = p.category_id
			  WHERE c.slug = ?
			  ORDER BY p.id`
	return queryIDs(ctx, r.db, "products by category slug", query, slug)
}

func (r *SQLiteRepository) ProductIDsByCollectionSlug(ctx context.Context, slug string) ([]int64, error) {
	query := `SELECT p.id FROM products p
			  JOIN product_collections pc ON pc.product_id = p.id
			  JOIN collections c ON c.id = pc.collection_id
			  WHERE c.slug = ?
			  ORDER BY p.id`
	return queryIDs(ctx, r.db, "products by collection slug", query, slug)
}

func queryIDs(ctx context.Context, q querier, op, query string, args ...any) ([]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(op, err)
		}
		ids = append(ids, id)
	}
	return ids, wrapErr(op, rows.Err())
}

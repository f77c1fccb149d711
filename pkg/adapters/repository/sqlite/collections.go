package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

const collectionColumns = `id, name, description, slug, image, created_at, updated_at`

func scanCollection(row interface{ Scan(...any) error }) (*domain.Collection, error) {
	var c domain.Collection
	var slug sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &slug, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Slug = slug.String
	return &c, nil
}

func (r *SQLiteRepository) GetCollection(ctx context.Context, id int64) (*domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = ?`
	c, err := scanCollection(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get collection", err)
	}
	return c, nil
}

// FindCollectionByName returns the oldest collection with exactly this name
func (r *SQLiteRepository) FindCollectionByName(ctx context.Context, name string) (*domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE name = ? ORDER BY id LIMIT 1`
	c, err := scanCollection(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("find collection by name", err)
	}
	return c, nil
}

func (r *SQLiteRepository) CollectionsBySlugs(ctx context.Context, slugs []string) ([]domain.Collection, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	in, args := inClause(slugs)
	collections, err := queryCollections(ctx, r.db, `SELECT `+collectionColumns+` FROM collections WHERE slug IN `+in, args...)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]domain.Collection, len(collections))
	for _, c := range collections {
		bySlug[c.Slug] = c
	}
	ordered := make([]domain.Collection, 0, len(collections))
	for _, s := range slugs {
		if c, ok := bySlug[s]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (r *SQLiteRepository) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return queryCollections(ctx, r.db, `SELECT `+collectionColumns+` FROM collections ORDER BY id`)
}

func queryCollections(ctx context.Context, q querier, query string, args ...any) ([]domain.Collection, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("query collections", err)
	}
	defer rows.Close()

	var collections []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, wrapErr("query collections", err)
		}
		collections = append(collections, *c)
	}
	return collections, wrapErr("query collections", rows.Err())
}

func (r *SQLiteRepository) SaveCollection(ctx context.Context, collection *domain.Collection) error {
	return saveCollection(ctx, r.db, collection)
}

func saveCollection(ctx context.Context, q querier, c *domain.Collection) error {
	if c.ID == 0 {
		query := `INSERT INTO collections (name, description, slug, image, created_at, updated_at)
				  VALUES (?, ?, ?, ?, ?, ?)`
		res, err := q.ExecContext(ctx, query, c.Name, c.Description, nullString(c.Slug), c.Image, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return wrapErr("insert collection", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return wrapErr("insert collection", err)
		}
		c.ID = id
		return nil
	}

	query := `INSERT INTO collections (id, name, description, slug, image, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  	name = excluded.name, description = excluded.description, slug = excluded.slug,
			  	image = excluded.image, updated_at = excluded.updated_at`
	_, err := q.ExecContext(ctx, query, c.ID, c.Name, c.Description, nullString(c.Slug), c.Image, c.CreatedAt, c.UpdatedAt)
	return wrapErr("upsert collection", err)
}

func (r *SQLiteRepository) DeleteCollection(ctx context.Context, id int64) error {
	return r.withTx(ctx, "delete collection", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_collections WHERE collection_id = ?`, id); err != nil {
			return wrapErr("delete collection links", err)
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
		return wrapErr("delete collection", err)
	})
}

// --- Product-collection links ---

func (r *SQLiteRepository) ProductCollectionExists(ctx context.Context, productID, collectionID int64) (bool, error) {
	return exists(ctx, r.db, "product collection exists",
		`SELECT 1 FROM product_collections WHERE product_id = ? AND collection_id = ?`, productID, collectionID)
}

func (r *SQLiteRepository) CreateProductCollection(ctx context.Context, link *domain.ProductCollection) error {
	query := `INSERT INTO product_collections (product_id, collection_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, link.ProductID, link.CollectionID)
	return wrapErr("create product collection", err)
}

func (r *SQLiteRepository) DeleteProductCollection(ctx context.Context, productID, collectionID int64) error {
	query := `DELETE FROM product_collections WHERE product_id = ? AND collection_id = ?`
	_, err := r.db.ExecContext(ctx, query, productID, collectionID)
	return wrapErr("delete product collection", err)
}

func (r *SQLiteRepository) ListProductCollections(ctx context.Context) ([]domain.ProductCollection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, collection_id FROM product_collections ORDER BY product_id, collection_id`)
	if err != nil {
		return nil, wrapErr("list product collections", err)
	}
	defer rows.Close()

	var links []domain.ProductCollection
	for rows.Next() {
		var l domain.ProductCollection
		if err := rows.Scan(&l.ProductID, &l.CollectionID); err != nil {
			return nil, wrapErr("list product collections", err)
		}
		links = append(links, l)
	}
	return links, wrapErr("list product collections", rows.Err())
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

const categoryColumns = `id, name, description, slug, image, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get category", err)
	}
	return c, nil
}

func (r *SQLiteRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = ?`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get category by slug", err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return listCategories(ctx, r.db)
}

func listCategories(ctx context.Context, q querier) ([]domain.Category, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, wrapErr("list categories", err)
		}
		categories = append(categories, *c)
	}
	return categories, wrapErr("list categories", rows.Err())
}

func (r *SQLiteRepository) SaveCategory(ctx context.Context, category *domain.Category) error {
	return saveCategory(ctx, r.db, category)
}

func saveCategory(ctx context.Context, q querier, c *domain.Category) error {
	if c.ID == 0 {
		query := `INSERT INTO categories (name, description, slug, image, created_at, updated_at)
				  VALUES (?, ?, ?, ?, ?, ?)`
		res, err := q.ExecContext(ctx, query, c.Name, c.Description, c.Slug, c.Image, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return wrapErr("insert category", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return wrapErr("insert category", err)
		}
		c.ID = id
		return nil
	}

	query := `INSERT INTO categories (id, name, description, slug, image, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  	name = excluded.name, description = excluded.description, slug = excluded.slug,
			  	image = excluded.image, updated_at = excluded.updated_at`
	_, err := q.ExecContext(ctx, query, c.ID, c.Name, c.Description, c.Slug, c.Image, c.CreatedAt, c.UpdatedAt)
	return wrapErr("upsert category", err)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return wrapErr("delete category", err)
}

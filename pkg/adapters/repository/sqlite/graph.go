package sqlite

import (
	"context"
	"database/sql"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

// Graph loads run a fixed number of IN queries regardless of how many
// products are involved: roots, products, images, links, categories,
// collections.

func (r *SQLiteRepository) LoadProductGraph(ctx context.Context, productIDs []int64) (*domain.Graph, error) {
	g := domain.NewGraph()
	products, err := loadProducts(ctx, r.db, productIDs)
	if err != nil {
		return nil, err
	}
	if err := fillGraph(ctx, r.db, g, products); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *SQLiteRepository) LoadCategoryGraph(ctx context.Context, slugs []string) ([]*domain.Category, *domain.Graph, error) {
	g := domain.NewGraph()
	if len(slugs) == 0 {
		return nil, g, nil
	}

	in, args := inClause(slugs)
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug IN `+in, args...)
	if err != nil {
		return nil, nil, wrapErr("load categories", err)
	}
	bySlug := make(map[string]*domain.Category)
	var ids []int64
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			rows.Close()
			return nil, nil, wrapErr("load categories", err)
		}
		bySlug[c.Slug] = c
		ids = append(ids, c.ID)
		g.AddCategory(c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, wrapErr("load categories", err)
	}
	if len(ids) == 0 {
		return nil, g, nil
	}

	in, args = inClause(ids)
	rows, err = r.db.QueryContext(ctx, `SELECT id, category_id FROM products WHERE category_id IN `+in+` ORDER BY id`, args...)
	if err != nil {
		return nil, nil, wrapErr("load category products", err)
	}
	var productIDs []int64
	for rows.Next() {
		var productID, categoryID int64
		if err := rows.Scan(&productID, &categoryID); err != nil {
			rows.Close()
			return nil, nil, wrapErr("load category products", err)
		}
		if c := g.Category(categoryID); c != nil {
			c.ProductIDs = append(c.ProductIDs, productID)
		}
		productIDs = append(productIDs, productID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, wrapErr("load category products", err)
	}

	products, err := loadProducts(ctx, r.db, productIDs)
	if err != nil {
		return nil, nil, err
	}
	if err := fillGraph(ctx, r.db, g, products); err != nil {
		return nil, nil, err
	}

	roots := make([]*domain.Category, 0, len(bySlug))
	for _, s := range slugs {
		if c, ok := bySlug[s]; ok {
			roots = append(roots, c)
		}
	}
	return roots, g, nil
}

func (r *SQLiteRepository) LoadCollectionGraph(ctx context.Context, slugs []string) ([]*domain.Collection, *domain.Graph, error) {
	g := domain.NewGraph()
	if len(slugs) == 0 {
		return nil, g, nil
	}

	in, args := inClause(slugs)
	collections, err := queryCollections(ctx, r.db, `SELECT `+collectionColumns+` FROM collections WHERE slug IN `+in, args...)
	if err != nil {
		return nil, nil, err
	}
	if len(collections) == 0 {
		return nil, g, nil
	}
	bySlug := make(map[string]*domain.Collection, len(collections))
	ids := make([]int64, 0, len(collections))
	for i := range collections {
		c := &collections[i]
		bySlug[c.Slug] = c
		ids = append(ids, c.ID)
		g.AddCollection(c)
	}

	in, args = inClause(ids)
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, collection_id FROM product_collections
		WHERE collection_id IN `+in+` ORDER BY product_id`, args...)
	if err != nil {
		return nil, nil, wrapErr("load collection members", err)
	}
	var productIDs []int64
	seen := make(map[int64]struct{})
	for rows.Next() {
		var productID, collectionID int64
		if err := rows.Scan(&productID, &collectionID); err != nil {
			rows.Close()
			return nil, nil, wrapErr("load collection members", err)
		}
		if c := g.Collection(collectionID); c != nil {
			c.ProductIDs = append(c.ProductIDs, productID)
		}
		if _, ok := seen[productID]; !ok {
			seen[productID] = struct{}{}
			productIDs = append(productIDs, productID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, wrapErr("load collection members", err)
	}

	products, err := loadProducts(ctx, r.db, productIDs)
	if err != nil {
		return nil, nil, err
	}
	if err := fillGraph(ctx, r.db, g, products); err != nil {
		return nil, nil, err
	}

	roots := make([]*domain.Collection, 0, len(bySlug))
	for _, s := range slugs {
		if c, ok := bySlug[s]; ok {
			roots = append(roots, c)
		}
	}
	return roots, g, nil
}

// loadProducts fetches products by id with their images (position order,
// nulls last) and links. Result order follows ids; unknown ids are skipped.
func loadProducts(ctx context.Context, q querier, ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	in, args := inClause(ids)

	rows, err := q.QueryContext(ctx, `SELECT `+productColumns+` FROM products WHERE id IN `+in, args...)
	if err != nil {
		return nil, wrapErr("load products", err)
	}
	byID := make(map[int64]*domain.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, wrapErr("load products", err)
		}
		p.Images = []*domain.ProductImage{}
		p.Links = []*domain.ProductCollection{}
		byID[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load products", err)
	}
	if len(byID) == 0 {
		return nil, nil
	}

	rows, err = q.QueryContext(ctx, `SELECT id, product_id, image_url, position FROM product_images
		WHERE product_id IN `+in+` ORDER BY product_id, position IS NULL, position, id`, args...)
	if err != nil {
		return nil, wrapErr("load product images", err)
	}
	for rows.Next() {
		var img domain.ProductImage
		var position sql.NullInt64
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &position); err != nil {
			rows.Close()
			return nil, wrapErr("load product images", err)
		}
		if position.Valid {
			pos := int(position.Int64)
			img.Position = &pos
		}
		if p := byID[img.ProductID]; p != nil {
			p.Images = append(p.Images, &img)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load product images", err)
	}

	rows, err = q.QueryContext(ctx, `SELECT product_id, collection_id FROM product_collections
		WHERE product_id IN `+in+` ORDER BY product_id, collection_id`, args...)
	if err != nil {
		return nil, wrapErr("load product links", err)
	}
	for rows.Next() {
		var link domain.ProductCollection
		if err := rows.Scan(&link.ProductID, &link.CollectionID); err != nil {
			rows.Close()
			return nil, wrapErr("load product links", err)
		}
		if p := byID[link.ProductID]; p != nil {
			p.Links = append(p.Links, &link)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapErr("load product links", err)
	}

	ordered := make([]*domain.Product, 0, len(byID))
	seen := make(map[int64]struct{}, len(byID))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, p)
	}
	return ordered, nil
}

// fillGraph adds products to g along with every category and collection they
// reference that g does not hold yet.
func fillGraph(ctx context.Context, q querier, g *domain.Graph, products []*domain.Product) error {
	var categoryIDs, collectionIDs []int64
	wantCategory := make(map[int64]struct{})
	wantCollection := make(map[int64]struct{})
	for _, p := range products {
		g.AddProduct(p)
		if _, ok := wantCategory[p.CategoryID]; !ok && g.Category(p.CategoryID) == nil {
			wantCategory[p.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, p.CategoryID)
		}
		for _, link := range p.Links {
			if _, ok := wantCollection[link.CollectionID]; !ok && g.Collection(link.CollectionID) == nil {
				wantCollection[link.CollectionID] = struct{}{}
				collectionIDs = append(collectionIDs, link.CollectionID)
			}
		}
	}

	if len(categoryIDs) > 0 {
		in, args := inClause(categoryIDs)
		rows, err := q.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id IN `+in, args...)
		if err != nil {
			return wrapErr("load product categories", err)
		}
		for rows.Next() {
			c, err := scanCategory(rows)
			if err != nil {
				rows.Close()
				return wrapErr("load product categories", err)
			}
			g.AddCategory(c)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return wrapErr("load product categories", err)
		}
	}

	if len(collectionIDs) > 0 {
		in, args := inClause(collectionIDs)
		collections, err := queryCollections(ctx, q, `SELECT `+collectionColumns+` FROM collections WHERE id IN `+in, args...)
		if err != nil {
			return err
		}
		for i := range collections {
			g.AddCollection(&collections[i])
		}
	}
	return nil
}

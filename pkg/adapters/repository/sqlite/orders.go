package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

const orderColumns = `id, quantity, order_date, total, product_id, customer_id`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Quantity, &o.OrderDate, &o.Total, &o.ProductID, &o.CustomerID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQLiteRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get order", err)
	}
	return o, nil
}

func (r *SQLiteRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return listOrders(ctx, r.db)
}

func listOrders(ctx context.Context, q querier) ([]domain.Order, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, wrapErr("list orders", err)
		}
		orders = append(orders, *o)
	}
	return orders, wrapErr("list orders", rows.Err())
}

func (r *SQLiteRepository) SaveOrder(ctx context.Context, order *domain.Order) error {
	return saveOrder(ctx, r.db, order)
}

func saveOrder(ctx context.Context, q querier, o *domain.Order) error {
	if o.ID == 0 {
		query := `INSERT INTO orders (quantity, order_date, total, product_id, customer_id) VALUES (?, ?, ?, ?, ?)`
		res, err := q.ExecContext(ctx, query, o.Quantity, o.OrderDate, o.Total, o.ProductID, o.CustomerID)
		if err != nil {
			return wrapErr("insert order", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return wrapErr("insert order", err)
		}
		o.ID = id
		return nil
	}

	query := `INSERT INTO orders (id, quantity, order_date, total, product_id, customer_id)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  	quantity = excluded.quantity, order_date = excluded.order_date, total = excluded.total,
			  	product_id = excluded.product_id, customer_id = excluded.customer_id`
	_, err := q.ExecContext(ctx, query, o.ID, o.Quantity, o.OrderDate, o.Total, o.ProductID, o.CustomerID)
	return wrapErr("upsert order", err)
}

func (r *SQLiteRepository) DeleteOrder(ctx context.Context, id int64) error {
	return r.withTx(ctx, "delete order", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = ?`, id); err != nil {
			return wrapErr("delete order lines", err)
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
		return wrapErr("delete order", err)
	})
}

// --- Order lines ---

func (r *SQLiteRepository) GetOrderProduct(ctx context.Context, orderID, productID int64) (*domain.OrderProduct, error) {
	query := `SELECT order_id, product_id, quantity, price FROM order_products WHERE order_id = ? AND product_id = ?`
	var op domain.OrderProduct
	err := r.db.QueryRowContext(ctx, query, orderID, productID).Scan(&op.OrderID, &op.ProductID, &op.Quantity, &op.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get order product", err)
	}
	return &op, nil
}

func (r *SQLiteRepository) OrderProductExists(ctx context.Context, orderID, productID int64) (bool, error) {
	return exists(ctx, r.db, "order product exists",
		`SELECT 1 FROM order_products WHERE order_id = ? AND product_id = ?`, orderID, productID)
}

func (r *SQLiteRepository) ListOrderProducts(ctx context.Context) ([]domain.OrderProduct, error) {
	return listOrderProducts(ctx, r.db)
}

func listOrderProducts(ctx context.Context, q querier) ([]domain.OrderProduct, error) {
	rows, err := q.QueryContext(ctx, `SELECT order_id, product_id, quantity, price FROM order_products ORDER BY order_id, product_id`)
	if err != nil {
		return nil, wrapErr("list order products", err)
	}
	defer rows.Close()

	var lines []domain.OrderProduct
	for rows.Next() {
		var op domain.OrderProduct
		if err := rows.Scan(&op.OrderID, &op.ProductID, &op.Quantity, &op.Price); err != nil {
			return nil, wrapErr("list order products", err)
		}
		lines = append(lines, op)
	}
	return lines, wrapErr("list order products", rows.Err())
}

// SaveOrderProduct upserts the line under its (order, product) key
func (r *SQLiteRepository) SaveOrderProduct(ctx context.Context, line *domain.OrderProduct) error {
	return saveOrderProduct(ctx, r.db, line)
}

func saveOrderProduct(ctx context.Context, q querier, line *domain.OrderProduct) error {
	query := `INSERT INTO order_products (order_id, product_id, quantity, price)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT(order_id, product_id) DO UPDATE SET
			  	quantity = excluded.quantity, price = excluded.price`
	_, err := q.ExecContext(ctx, query, line.OrderID, line.ProductID, line.Quantity, line.Price)
	return wrapErr("save order product", err)
}

func (r *SQLiteRepository) DeleteOrderProduct(ctx context.Context, orderID, productID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = ? AND product_id = ?`, orderID, productID)
	return wrapErr("delete order product", err)
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/assembler"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

// OrderProductService manages order lines keyed by (order, product). The
// price on a line is a snapshot and is never read back from the product.
type OrderProductService struct {
	orders    ports.OrderRepository
	catalog   ports.CatalogRepository
	assembler *assembler.Assembler
	logger    *zap.Logger
}

func NewOrderProductService(orders ports.OrderRepository, catalog ports.CatalogRepository, asm *assembler.Assembler, logger *zap.Logger) *OrderProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderProductService{orders: orders, catalog: catalog, assembler: asm, logger: logger}
}

func (s *OrderProductService) Create(ctx context.Context, req domain.OrderProductRequest) (*domain.OrderProductResponse, error) {
	exists, err := s.orders.OrderProductExists(ctx, req.OrderID, req.ProductID)
	if err != nil {
		return nil, storageErr("order product exists", err)
	}
	if exists {
		return nil, fmt.Errorf("order %d line for product %d: %w", req.OrderID, req.ProductID, domain.ErrConflict)
	}

	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, storageErr("get order", err)
	}
	if order == nil {
		return nil, notFound("order", req.OrderID)
	}
	if err := requireProduct(ctx, s.catalog, req.ProductID); err != nil {
		return nil, err
	}

	line := &domain.OrderProduct{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}
	if err := s.orders.SaveOrderProduct(ctx, line); err != nil {
		return nil, storageErr("save order product", err)
	}
	s.logger.Info("order line created",
		zap.Int64("order_id", line.OrderID),
		zap.Int64("product_id", line.ProductID),
	)
	return s.assembler.OrderProduct(line), nil
}

func (s *OrderProductService) Get(ctx context.Context, orderID, productID int64) (*domain.OrderProductResponse, error) {
	line, err := s.orders.GetOrderProduct(ctx, orderID, productID)
	if err != nil {
		return nil, storageErr("get order product", err)
	}
	if line == nil {
		return nil, fmt.Errorf("order %d line for product %d: %w", orderID, productID, domain.ErrNotFound)
	}
	return s.assembler.OrderProduct(line), nil
}

func (s *OrderProductService) List(ctx context.Context) ([]domain.OrderProductResponse, error) {
	lines, err := s.orders.ListOrderProducts(ctx)
	if err != nil {
		return nil, storageErr("list order products", err)
	}
	out := make([]domain.OrderProductResponse, 0, len(lines))
	for i := range lines {
		out = append(out, *s.assembler.OrderProduct(&lines[i]))
	}
	return out, nil
}

// Update rewrites quantity and price of an existing line. The key in req is ignored.
func (s *OrderProductService) Update(ctx context.Context, orderID, productID int64, req domain.OrderProductRequest) (*domain.OrderProductResponse, error) {
	line, err := s.orders.GetOrderProduct(ctx, orderID, productID)
	if err != nil {
		return nil, storageErr("get order product", err)
	}
	if line == nil {
		return nil, fmt.Errorf("order %d line for product %d: %w", orderID, productID, domain.ErrNotFound)
	}

	line.Quantity = req.Quantity
	line.Price = req.Price
	if err := s.orders.SaveOrderProduct(ctx, line); err != nil {
		return nil, storageErr("save order product", err)
	}
	return s.assembler.OrderProduct(line), nil
}

func (s *OrderProductService) Delete(ctx context.Context, orderID, productID int64) error {
	exists, err := s.orders.OrderProductExists(ctx, orderID, productID)
	if err != nil {
		return storageErr("order product exists", err)
	}
	if !exists {
		return fmt.Errorf("order %d line for product %d: %w", orderID, productID, domain.ErrNotFound)
	}
	if err := s.orders.DeleteOrderProduct(ctx, orderID, productID); err != nil {
		return storageErr("delete order product", err)
	}
	return nil
}

package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/assembler"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

type OrderService struct {
	orders    ports.OrderRepository
	catalog   ports.CatalogRepository
	assembler *assembler.Assembler
	logger    *zap.Logger
}

func NewOrderService(orders ports.OrderRepository, catalog ports.CatalogRepository, asm *assembler.Assembler, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orders: orders, catalog: catalog, assembler: asm, logger: logger}
}

func (s *OrderService) Create(ctx context.Context, req domain.OrderRequest) (*domain.OrderResponse, error) {
	if err := requireProduct(ctx, s.catalog, req.ProductID); err != nil {
		return nil, err
	}

	order := &domain.Order{}
	applyOrder(order, req)
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, storageErr("save order", err)
	}
	s.logger.Info("order created", zap.Int64("id", order.ID), zap.Int64("product_id", order.ProductID))
	return s.assembler.Order(order), nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.OrderResponse, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, storageErr("get order", err)
	}
	if order == nil {
		return nil, notFound("order", id)
	}
	return s.assembler.Order(order), nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.OrderResponse, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, storageErr("list orders", err)
	}
	out := make([]domain.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *s.assembler.Order(&orders[i]))
	}
	return out, nil
}

func (s *OrderService) Update(ctx context.Context, id int64, req domain.OrderRequest) (*domain.OrderResponse, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, storageErr("get order", err)
	}
	if order == nil {
		return nil, notFound("order", id)
	}
	if err := requireProduct(ctx, s.catalog, req.ProductID); err != nil {
		return nil, err
	}

	applyOrder(order, req)
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, storageErr("save order", err)
	}
	return s.assembler.Order(order), nil
}

// Delete removes the order and its lines.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return storageErr("get order", err)
	}
	if order == nil {
		return notFound("order", id)
	}
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return storageErr("delete order", err)
	}
	s.logger.Info("order deleted", zap.Int64("id", id))
	return nil
}

func applyOrder(o *domain.Order, req domain.OrderRequest) {
	o.Quantity = req.Quantity
	o.OrderDate = req.OrderDate
	o.Total = req.Total
	o.ProductID = req.ProductID
	o.CustomerID = req.CustomerID
}

func requireProduct(ctx context.Context, catalog ports.CatalogRepository, id int64) error {
	product, err := catalog.GetProduct(ctx, id)
	if err != nil {
		return storageErr("get product", err)
	}
	if product == nil {
		return notFound("product", id)
	}
	return nil
}

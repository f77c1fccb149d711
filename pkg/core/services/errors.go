package services

import (
	"errors"
	"fmt"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

// storageErr tags a collaborator failure as domain.ErrRepository unless the
// adapter already classified it.
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrRepository) || errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRepository, err)
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
}

// Ensure interface compliance
var (
	_ ports.CategoryService          = (*CategoryService)(nil)
	_ ports.CollectionService        = (*CollectionService)(nil)
	_ ports.ProductService           = (*ProductService)(nil)
	_ ports.ProductCollectionService = (*ProductCollectionService)(nil)
	_ ports.OrderService             = (*OrderService)(nil)
	_ ports.OrderProductService      = (*OrderProductService)(nil)
)

package products

import (
	"context"

	"github.com/microshop/orders/internal/orders/domain"
)

// StaticCatalog serves products from an in-memory list. Useful for local dev
// before wiring the product service.
type StaticCatalog struct {
	products map[int64]domain.Product
}

func NewStaticCatalog(products ...domain.Product) *StaticCatalog {
	index := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &StaticCatalog{products: index}
}

func (c *StaticCatalog) ValidateProducts(_ context.Context, ids []int64) ([]domain.Product, error) {
	found := make([]domain.Product, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := c.products[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

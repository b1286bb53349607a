package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/ports"
)

// GetOrderQuery represents a request to retrieve an order with its
// items by order id.
type GetOrderQuery struct {
	OrderID string
}

// Validate ensures the query has valid parameters.
func (q GetOrderQuery) Validate() error {
	if strings.TrimSpace(q.OrderID) == "" {
		return errors.New("order_id is required")
	}
	return nil
}

// GetOrderQueryHandler loads an order and enriches its items with
// catalog details.
type GetOrderQueryHandler struct {
	repo    ports.OrderRepository
	catalog ports.ProductCatalog
	logger  *slog.Logger
}

// NewGetOrderQueryHandler constructs a GetOrderQueryHandler.
func NewGetOrderQueryHandler(repo ports.OrderRepository, catalog ports.ProductCatalog, logger *slog.Logger) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo, catalog: catalog, logger: logger}
}

// Handle fetches the order and its items. The persisted rows are
// authoritative: a failing catalog lookup degrades item names instead
// of failing the read.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, query.OrderID)
	if err != nil {
		return nil, err
	}

	items, err := h.repo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if len(items) > 0 {
		products, err = h.catalog.ValidateProducts(ctx, itemProductIDs(items))
		if err != nil {
			h.logger.WarnContext(ctx, "catalog lookup failed, returning items without names",
				"error", err,
				"order_id", order.ID,
			)
			products = nil
		}
	}

	return &domain.OrderDetails{
		Order: *order,
		Items: domain.EnrichItems(items, products),
	}, nil
}

func itemProductIDs(items []domain.OrderItem) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}
	return ids
}

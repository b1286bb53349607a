package queries

import (
	"context"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/ports"
)

const defaultPageSize = 10

// ListOrdersQuery pages through orders, optionally filtered by status.
type ListOrdersQuery struct {
	Status *domain.OrderStatus
	Page   int
	Limit  int
}

// Meta describes the pagination window of a listing.
type Meta struct {
	Total      int `json:"total"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
}

// OrdersPage is one page of orders plus pagination metadata.
type OrdersPage struct {
	Data []domain.Order `json:"data"`
	Meta Meta           `json:"meta"`
}

type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrdersPage, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	orders, total, err := h.repo.List(ctx, ports.ListFilter{
		Status:   query.Status,
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return &OrdersPage{
		Data: orders,
		Meta: Meta{
			Total:      total,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
			Page:       page,
		},
	}, nil
}

package ports

import (
	"context"
	"errors"

	"github.com/microshop/orders/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
type OrderRepository interface {
	// CreateWithItems persists the order and all of its items in a
	// single transaction. Either everything becomes visible or nothing
	// does.
	CreateWithItems(ctx context.Context, order domain.Order, items []domain.OrderItem) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	// List returns one page of orders plus the total number of rows
	// matching the filter regardless of the page window.
	List(ctx context.Context, filter ListFilter) ([]domain.Order, int, error)
	// UpdateStatus persists the new status, refreshes updated_at and
	// returns the updated row.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// ListFilter narrows list queries by status and pagination.
type ListFilter struct {
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
)

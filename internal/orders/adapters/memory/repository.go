package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	items  map[string][]domain.OrderItem
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[string]domain.Order),
		items:  make(map[string][]domain.OrderItem),
	}
}

// CreateWithItems stores the order and its items under one lock, so a
// concurrent reader sees either nothing or the complete order.
func (r *Repository) CreateWithItems(_ context.Context, order domain.Order, items []domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order
	stored := make([]domain.OrderItem, len(items))
	copy(stored, items)
	r.items[order.ID] = stored
	return nil
}

// GetByID fetches a single order by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := order
	return &copy, nil
}

// ListItems returns the items belonging to an order.
func (r *Repository) ListItems(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.items[orderID]
	items := make([]domain.OrderItem, len(stored))
	copy(items, stored)
	return items, nil
}

// List returns one page of orders plus the total matching count.
// Pagination is 1-based; orders are sorted newest first.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matching []domain.Order
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matching = append(matching, order)
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := len(matching)

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []domain.Order{}, total, nil
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	slice := make([]domain.Order, end-start)
	copy(slice, matching[start:end])

	return slice, total, nil
}

// UpdateStatus sets the status, refreshes updatedAt and returns the
// updated order.
func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order

	copy := order
	return &copy, nil
}

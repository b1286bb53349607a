package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/ports"
)

// LineInput is a requested (product, quantity) pair in a create call.
type LineInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderCommand struct {
	Items []LineInput
	Paid  bool
}

// ErrInvalidCommand marks a request payload the caller can fix.
var ErrInvalidCommand = errors.New("invalid command")

func (c CreateOrderCommand) Validate() error {
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidCommand)
	}
	for _, item := range c.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: product_id must be positive", ErrInvalidCommand)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidCommand)
		}
	}
	return nil
}

// UnknownProductsError is returned when the catalog recognized fewer
// products than the order referenced. The whole creation is rejected;
// no partial order is ever written.
type UnknownProductsError struct {
	IDs []int64
}

func (e *UnknownProductsError) Error() string {
	return fmt.Sprintf("unknown products: %v", e.IDs)
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.OrderDetails, error)
}

type CreateOrderCommandHandler struct {
	repo    ports.OrderRepository
	catalog ports.ProductCatalog
	events  ports.EventBus
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	catalog ports.ProductCatalog,
	events ports.EventBus,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:    repo,
		catalog: catalog,
		events:  events,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.OrderDetails, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lines := make([]domain.Line, len(cmd.Items))
	for i, item := range cmd.Items {
		lines[i] = domain.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	products, err := h.catalog.ValidateProducts(ctx, distinctProductIDs(lines))
	if err != nil {
		return nil, fmt.Errorf("validate products: %w: %w", ports.ErrCatalogUnavailable, err)
	}

	index := domain.IndexProducts(products)
	if missing := domain.MissingProducts(lines, index); len(missing) > 0 {
		return nil, &UnknownProductsError{IDs: missing}
	}

	totals := domain.CalculateTotals(lines, index)

	now := time.Now().UTC()
	order := domain.Order{
		ID:               uuid.NewString(),
		TotalAmountCents: totals.AmountCents,
		TotalItems:       totals.Items,
		Status:           domain.StatusPending,
		Paid:             cmd.Paid,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if cmd.Paid {
		order.PaidAt = &now
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: index[line.ProductID].PriceCents,
		}
	}

	if err := h.repo.CreateWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	details := &domain.OrderDetails{
		Order: order,
		Items: domain.EnrichItems(items, products),
	}

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		return details, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return details, nil
}

func distinctProductIDs(lines []domain.Line) []int64 {
	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}
	return ids
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/ports"
)

type ChangeStatusCommand struct {
	OrderID string
	Status  domain.OrderStatus
}

func (c ChangeStatusCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return errors.New("order_id is required")
	}
	if _, err := domain.ParseStatus(string(c.Status)); err != nil {
		return err
	}
	return nil
}

type StatusHandler interface {
	Handle(ctx context.Context, cmd ChangeStatusCommand) (*domain.Order, error)
}

type ChangeStatusCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewChangeStatusCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *ChangeStatusCommandHandler {
	return &ChangeStatusCommandHandler{
		repo:   repo,
		events: events,
	}
}

func (h *ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	// Requesting the current status is an idempotent no-op, not an
	// error, and performs no write.
	if order.Status == cmd.Status {
		return order, nil
	}

	if !domain.CanTransition(order.Status, cmd.Status) {
		return nil, fmt.Errorf("order %s: %s to %s: %w",
			cmd.OrderID, order.Status, cmd.Status, domain.ErrInvalidTransition)
	}

	updated, err := h.repo.UpdateStatus(ctx, cmd.OrderID, cmd.Status)
	if err != nil {
		return nil, fmt.Errorf("update order %s status: %w", cmd.OrderID, err)
	}

	if err := h.events.PublishOrderStatusChanged(ctx, updated.ID, updated.Status); err != nil {
		return updated, fmt.Errorf("status saved but failed to publish event: %w", err)
	}

	return updated, nil
}

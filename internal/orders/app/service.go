package app

import (
	"context"
	"log/slog"

	"github.com/microshop/orders/internal/orders/app/commands"
	"github.com/microshop/orders/internal/orders/app/queries"
	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/metrics"
	"github.com/microshop/orders/internal/orders/ports"
)

// Service bundles the order use cases exposed over the API: create,
// find one, find all and change status.
type Service struct {
	idemStore     ports.IdempotencyStore
	createHandler commands.CommandHandler
	statusHandler commands.StatusHandler
	getHandler    *queries.GetOrderQueryHandler
	listHandler   *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	catalog ports.ProductCatalog,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	createCore := commands.NewCreateOrderCommandHandler(repo, catalog, events)
	statusCore := commands.NewChangeStatusCommandHandler(repo, events)

	return &Service{
		idemStore:     idem,
		createHandler: commands.NewObservableCommandHandler(createCore, logger, metrics),
		statusHandler: commands.NewObservableStatusHandler(statusCore, logger, metrics),
		getHandler:    queries.NewGetOrderQueryHandler(repo, catalog, logger),
		listHandler:   queries.NewListOrdersQueryHandler(repo),
	}
}

// CreateOrderInput captures payload for creating an order.
type CreateOrderInput struct {
	Items []commands.LineInput `json:"items"`
	Paid  bool                 `json:"paid"`
}

// CreateOrder orchestrates validated order creation.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.OrderDetails, error) {
	cmd := commands.CreateOrderCommand{
		Items: input.Items,
		Paid:  input.Paid,
	}
	return s.createHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order with enriched items by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.OrderDetails, error) {
	return s.getHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns one page of orders plus pagination metadata.
func (s *Service) ListOrders(ctx context.Context, query queries.ListOrdersQuery) (*queries.OrdersPage, error) {
	return s.listHandler.Handle(ctx, query)
}

// ChangeStatus applies a status transition to an order.
func (s *Service) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return s.statusHandler.Handle(ctx, commands.ChangeStatusCommand{OrderID: id, Status: status})
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}

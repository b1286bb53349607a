package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/metrics"
	"github.com/microshop/orders/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.OrderDetails, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordOrderCreationDuration(ctx, duration)
		o.metrics.RecordOrderCreated(ctx, success)
	}()

	o.logger.InfoContext(ctx, "creating order",
		"item_count", len(cmd.Items),
		"paid", cmd.Paid,
	)

	details, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order",
			"error", err,
			"item_count", len(cmd.Items),
		)
		return details, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", details.Order.ID),
		attribute.Int64("order.total_amount_cents", details.Order.TotalAmountCents),
		attribute.Int("order.total_items", details.Order.TotalItems),
		attribute.String("order.status", string(details.Order.Status)),
	)

	o.logger.InfoContext(ctx, "order created",
		"order_id", details.Order.ID,
		"total_amount_cents", details.Order.TotalAmountCents,
		"total_items", details.Order.TotalItems,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return details, nil
}

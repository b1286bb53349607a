package commands

import (
	"context"
	"log/slog"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/metrics"
	"github.com/microshop/orders/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableStatusHandler struct {
	handler StatusHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableStatusHandler(handler StatusHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableStatusHandler {
	return &ObservableStatusHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableStatusHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "ChangeStatusCommand.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", cmd.OrderID),
		attribute.String("order.requested_status", string(cmd.Status)),
	)

	order, err := o.handler.Handle(ctx, cmd)

	o.metrics.RecordStatusChange(ctx, string(cmd.Status), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to change order status",
			"error", err,
			"order_id", cmd.OrderID,
			"requested_status", cmd.Status,
		)
		return order, err
	}

	o.logger.InfoContext(ctx, "order status changed",
		"order_id", order.ID,
		"status", order.Status,
	)

	telemetry.SetSpanSuccess(span)
	return order, nil
}

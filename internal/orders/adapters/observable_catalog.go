package adapters

import (
	"context"
	"time"

	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/ports"
	"github.com/microshop/orders/internal/products"
	"github.com/microshop/orders/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCatalog struct {
	catalog ports.ProductCatalog
	metrics *products.Metrics
}

func NewObservableCatalog(catalog ports.ProductCatalog, metrics *products.Metrics) *ObservableCatalog {
	return &ObservableCatalog{
		catalog: catalog,
		metrics: metrics,
	}
}

func (c *ObservableCatalog) ValidateProducts(ctx context.Context, ids []int64) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductCatalog.ValidateProducts")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int("catalog.requested_count", len(ids)),
	)

	start := time.Now()
	found, err := c.catalog.ValidateProducts(ctx, ids)
	duration := time.Since(start).Seconds()

	c.metrics.RecordValidation(ctx, duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("catalog.resolved_count", len(found)))
	telemetry.SetSpanSuccess(span)
	return found, nil
}

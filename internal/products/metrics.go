package products

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	validationLatency metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.validationLatency, err = meter.Float64Histogram(
		"product_validation_duration_seconds",
		metric.WithDescription("Product validation call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create product_validation_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordValidation(ctx context.Context, durationSeconds float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.validationLatency.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("status", status),
	))
}

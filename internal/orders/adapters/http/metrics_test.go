package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}
	return metrics, reader
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) (metricdata.Metrics, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestRecordRequest(t *testing.T) {
	t.Run("records request count and duration", func(t *testing.T) {
		metrics, reader := newTestMetrics(t)
		ctx := context.Background()

		metrics.RecordRequest(ctx, "POST", "/v1/orders", 201, 0.05)
		metrics.RecordRequest(ctx, "GET", "/v1/orders", 200, 0.01)

		counter, found := collectMetric(t, reader, "http_requests_total")
		if !found {
			t.Fatal("http_requests_total metric not found")
		}
		sum, ok := counter.Data.(metricdata.Sum[int64])
		if !ok {
			t.Fatal("Expected Sum[int64] data type")
		}
		if len(sum.DataPoints) != 2 {
			t.Errorf("Expected 2 data points, got %d", len(sum.DataPoints))
		}
	})
}

func TestWithMetrics(t *testing.T) {
	t.Run("captures the handler status code", func(t *testing.T) {
		metrics, reader := newTestMetrics(t)

		handler := WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}), metrics)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		counter, found := collectMetric(t, reader, "http_requests_total")
		if !found {
			t.Fatal("http_requests_total metric not found")
		}
		sum, ok := counter.Data.(metricdata.Sum[int64])
		if !ok {
			t.Fatal("Expected Sum[int64] data type")
		}

		foundStatus := false
		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "status_code" && attr.Value.AsInt64() == 201 {
					foundStatus = true
				}
			}
		}
		if !foundStatus {
			t.Error("Expected recorded status_code 201")
		}
	})
}

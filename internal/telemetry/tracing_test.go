package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
	})

	return recorder
}

func TestStartSpan(t *testing.T) {
	t.Run("records span with the given name", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "OrderRepository.GetByID")
		span.End()

		spans := recorder.Ended()
		if len(spans) != 1 {
			t.Fatalf("Expected 1 span, got %d", len(spans))
		}
		if spans[0].Name() != "OrderRepository.GetByID" {
			t.Errorf("Expected span name OrderRepository.GetByID, got %s", spans[0].Name())
		}
	})

	t.Run("returns context carrying the span", func(t *testing.T) {
		setupRecorder(t)

		ctx, span := StartSpan(context.Background(), "test-span")
		defer span.End()

		if TraceID(ctx) == "" {
			t.Error("Expected trace id in returned context")
		}
		if SpanID(ctx) == "" {
			t.Error("Expected span id in returned context")
		}
	})
}

func TestAddSpanAttributes(t *testing.T) {
	t.Run("sets attributes on the span", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "test-span")
		AddSpanAttributes(span, attribute.String("order.id", "abc"))
		span.End()

		spans := recorder.Ended()
		if len(spans) != 1 {
			t.Fatalf("Expected 1 span, got %d", len(spans))
		}

		found := false
		for _, attr := range spans[0].Attributes() {
			if attr.Key == "order.id" && attr.Value.AsString() == "abc" {
				found = true
			}
		}
		if !found {
			t.Error("Expected order.id attribute on span")
		}
	})

	t.Run("tolerates nil span", func(t *testing.T) {
		AddSpanAttributes(nil, attribute.String("k", "v"))
	})
}

func TestRecordSpanError(t *testing.T) {
	t.Run("marks span status as error", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "test-span")
		RecordSpanError(span, errors.New("boom"))
		span.End()

		spans := recorder.Ended()
		if spans[0].Status().Code != codes.Error {
			t.Errorf("Expected error status, got %v", spans[0].Status().Code)
		}
		if len(spans[0].Events()) == 0 {
			t.Error("Expected recorded error event")
		}
	})

	t.Run("ignores nil error", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "test-span")
		RecordSpanError(span, nil)
		span.End()

		spans := recorder.Ended()
		if spans[0].Status().Code == codes.Error {
			t.Error("Expected status to stay unset for nil error")
		}
	})
}

func TestSetSpanSuccess(t *testing.T) {
	t.Run("marks span status as ok", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "test-span")
		SetSpanSuccess(span)
		span.End()

		spans := recorder.Ended()
		if spans[0].Status().Code != codes.Ok {
			t.Errorf("Expected ok status, got %v", spans[0].Status().Code)
		}
	})
}

func TestTraceIDs(t *testing.T) {
	t.Run("empty without an active span", func(t *testing.T) {
		ctx := context.Background()
		if TraceID(ctx) != "" {
			t.Error("Expected empty trace id")
		}
		if SpanID(ctx) != "" {
			t.Error("Expected empty span id")
		}
	})
}

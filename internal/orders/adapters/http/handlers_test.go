package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	idemmemory "github.com/microshop/orders/internal/idempotency/memory"
	"github.com/microshop/orders/internal/kafka"
	httpadapter "github.com/microshop/orders/internal/orders/adapters/http"
	"github.com/microshop/orders/internal/orders/adapters/memory"
	"github.com/microshop/orders/internal/orders/app"
	"github.com/microshop/orders/internal/orders/domain"
	"github.com/microshop/orders/internal/orders/metrics"
	"github.com/microshop/orders/internal/products"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := products.NewStaticCatalog(
		domain.Product{ID: 1, Name: "Keyboard", PriceCents: 4999},
		domain.Product{ID: 2, Name: "Mouse", PriceCents: 1999},
	)

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	orderMetrics, err := metrics.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := app.NewService(
		memory.NewRepository(),
		catalog,
		kafka.NewNoopEventBus(),
		idemmemory.NewStore(),
		logger,
		orderMetrics,
	)

	mux := http.NewServeMux()
	httpadapter.NewHandler(service, logger).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func createOrder(t *testing.T, server *httptest.Server, payload string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/orders", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("NewRequest() failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("creates an order with derived totals", func(t *testing.T) {
		server := setupServer(t)

		resp := createOrder(t, server, `{"items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":1}]}`, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}

		var details domain.OrderDetails
		decodeBody(t, resp, &details)

		if details.Order.TotalAmountCents != 2*4999+1999 {
			t.Errorf("Expected total %d, got %d", 2*4999+1999, details.Order.TotalAmountCents)
		}
		if details.Order.TotalItems != 3 {
			t.Errorf("Expected 3 total items, got %d", details.Order.TotalItems)
		}
		if details.Order.Status != domain.StatusPending {
			t.Errorf("Expected PENDING status, got %s", details.Order.Status)
		}
		if len(details.Items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(details.Items))
		}
		if details.Items[0].Name != "Keyboard" {
			t.Errorf("Expected enriched item name, got %q", details.Items[0].Name)
		}
	})

	t.Run("rejects unknown products with 422", func(t *testing.T) {
		server := setupServer(t)

		resp := createOrder(t, server, `{"items":[{"product_id":1,"quantity":1},{"product_id":999,"quantity":1}]}`, nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422, got %d", resp.StatusCode)
		}

		var body struct {
			Error      string  `json:"error"`
			ProductIDs []int64 `json:"product_ids"`
		}
		decodeBody(t, resp, &body)

		if len(body.ProductIDs) != 1 || body.ProductIDs[0] != 999 {
			t.Errorf("Expected offending product id 999, got %v", body.ProductIDs)
		}
	})

	t.Run("rejects empty items with 400", func(t *testing.T) {
		server := setupServer(t)

		resp := createOrder(t, server, `{"items":[]}`, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		server := setupServer(t)

		resp := createOrder(t, server, `{"items": not-json`, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("replays the stored response for a repeated idempotency key", func(t *testing.T) {
		server := setupServer(t)
		headers := map[string]string{"Idempotency-Key": "key-123"}
		payload := `{"items":[{"product_id":1,"quantity":1}]}`

		first := createOrder(t, server, payload, headers)
		if first.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", first.StatusCode)
		}
		var firstDetails domain.OrderDetails
		decodeBody(t, first, &firstDetails)

		second := createOrder(t, server, payload, headers)
		if second.StatusCode != http.StatusCreated {
			t.Fatalf("Expected replayed 201, got %d", second.StatusCode)
		}
		var secondDetails domain.OrderDetails
		decodeBody(t, second, &secondDetails)

		if firstDetails.Order.ID != secondDetails.Order.ID {
			t.Errorf("Expected the same order to be replayed, got %s and %s",
				firstDetails.Order.ID, secondDetails.Order.ID)
		}
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Run("returns an enriched order", func(t *testing.T) {
		server := setupServer(t)

		created := createOrder(t, server, `{"items":[{"product_id":2,"quantity":4}]}`, nil)
		var createdDetails domain.OrderDetails
		decodeBody(t, created, &createdDetails)

		resp, err := http.Get(server.URL + "/v1/orders/" + createdDetails.Order.ID)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		var details domain.OrderDetails
		decodeBody(t, resp, &details)

		if details.Order.ID != createdDetails.Order.ID {
			t.Errorf("Expected order %s, got %s", createdDetails.Order.ID, details.Order.ID)
		}
		if len(details.Items) != 1 || details.Items[0].Name != "Mouse" {
			t.Errorf("Expected enriched Mouse item, got %+v", details.Items)
		}
	})

	t.Run("returns 404 for an unknown order", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(server.URL + "/v1/orders/does-not-exist")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestListOrdersEndpoint(t *testing.T) {
	t.Run("returns paginated orders with meta", func(t *testing.T) {
		server := setupServer(t)

		for range 3 {
			resp := createOrder(t, server, `{"items":[{"product_id":1,"quantity":1}]}`, nil)
			resp.Body.Close()
		}

		resp, err := http.Get(server.URL + "/v1/orders?page=1&limit=2")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		var page struct {
			Data []domain.Order `json:"data"`
			Meta struct {
				Total      int `json:"total"`
				Limit      int `json:"limit"`
				TotalPages int `json:"totalPages"`
				Page       int `json:"page"`
			} `json:"meta"`
		}
		decodeBody(t, resp, &page)

		if len(page.Data) != 2 {
			t.Errorf("Expected 2 orders on the page, got %d", len(page.Data))
		}
		if page.Meta.Total != 3 || page.Meta.TotalPages != 2 || page.Meta.Page != 1 {
			t.Errorf("Unexpected meta: %+v", page.Meta)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		server := setupServer(t)

		resp := createOrder(t, server, `{"items":[{"product_id":1,"quantity":1}]}`, nil)
		resp.Body.Close()

		listResp, err := http.Get(server.URL + "/v1/orders?status=DELIVERED")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		var page struct {
			Data []domain.Order `json:"data"`
		}
		decodeBody(t, listResp, &page)

		if len(page.Data) != 0 {
			t.Errorf("Expected no delivered orders, got %d", len(page.Data))
		}
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(server.URL + "/v1/orders?status=SHIPPED")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestChangeStatusEndpoint(t *testing.T) {
	changeStatus := func(t *testing.T, server *httptest.Server, id, status string) *http.Response {
		t.Helper()
		resp, err := http.Post(
			server.URL+"/v1/orders/"+id+"/status",
			"application/json",
			strings.NewReader(`{"status":"`+status+`"}`),
		)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		return resp
	}

	t.Run("delivers a pending order", func(t *testing.T) {
		server := setupServer(t)

		created := createOrder(t, server, `{"items":[{"product_id":1,"quantity":1}]}`, nil)
		var details domain.OrderDetails
		decodeBody(t, created, &details)

		resp := changeStatus(t, server, details.Order.ID, "DELIVERED")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		var order domain.Order
		decodeBody(t, resp, &order)
		if order.Status != domain.StatusDelivered {
			t.Errorf("Expected DELIVERED, got %s", order.Status)
		}
	})

	t.Run("rejects a transition out of a terminal status with 409", func(t *testing.T) {
		server := setupServer(t)

		created := createOrder(t, server, `{"items":[{"product_id":1,"quantity":1}]}`, nil)
		var details domain.OrderDetails
		decodeBody(t, created, &details)

		resp := changeStatus(t, server, details.Order.ID, "CANCELLED")
		resp.Body.Close()

		conflict := changeStatus(t, server, details.Order.ID, "DELIVERED")
		defer conflict.Body.Close()
		if conflict.StatusCode != http.StatusConflict {
			t.Errorf("Expected 409, got %d", conflict.StatusCode)
		}
	})

	t.Run("returns 404 for an unknown order", func(t *testing.T) {
		server := setupServer(t)

		resp := changeStatus(t, server, "missing", "DELIVERED")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("rejects an unknown status with 400", func(t *testing.T) {
		server := setupServer(t)

		resp := changeStatus(t, server, "some-id", "SHIPPED")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

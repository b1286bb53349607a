package domain_test

import (
	"testing"

	"github.com/microshop/orders/internal/orders/domain"
)

func TestCalculateTotals(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Keyboard", PriceCents: 500},
		{ID: 2, Name: "Mouse", PriceCents: 2550},
	}
	index := domain.IndexProducts(products)

	tests := []struct {
		name       string
		lines      []domain.Line
		wantAmount int64
		wantItems  int
	}{
		{
			name:       "single line",
			lines:      []domain.Line{{ProductID: 1, Quantity: 2}},
			wantAmount: 1000,
			wantItems:  2,
		},
		{
			name: "multiple lines",
			lines: []domain.Line{
				{ProductID: 1, Quantity: 3},
				{ProductID: 2, Quantity: 1},
			},
			wantAmount: 4050,
			wantItems:  4,
		},
		{
			name:       "no lines",
			lines:      nil,
			wantAmount: 0,
			wantItems:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := domain.CalculateTotals(tt.lines, index)
			if totals.AmountCents != tt.wantAmount {
				t.Errorf("AmountCents = %d, want %d", totals.AmountCents, tt.wantAmount)
			}
			if totals.Items != tt.wantItems {
				t.Errorf("Items = %d, want %d", totals.Items, tt.wantItems)
			}
		})
	}
}

func TestMissingProducts(t *testing.T) {
	index := domain.IndexProducts([]domain.Product{{ID: 1, PriceCents: 100}})

	lines := []domain.Line{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 2},
		{ProductID: 999, Quantity: 1},
		{ProductID: 42, Quantity: 1},
	}

	missing := domain.MissingProducts(lines, index)
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing products, got %d: %v", len(missing), missing)
	}
	if missing[0] != 999 || missing[1] != 42 {
		t.Errorf("expected [999 42], got %v", missing)
	}
}

func TestEnrichItems(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "item-1", OrderID: "order-1", ProductID: 1, Quantity: 2, PriceCents: 500},
		{ID: "item-2", OrderID: "order-1", ProductID: 7, Quantity: 1, PriceCents: 300},
	}
	products := []domain.Product{{ID: 1, Name: "Keyboard", PriceCents: 600}}

	enriched := domain.EnrichItems(items, products)
	if len(enriched) != 2 {
		t.Fatalf("expected 2 enriched items, got %d", len(enriched))
	}

	t.Run("resolved product keeps snapshot price", func(t *testing.T) {
		got := enriched[0]
		if got.Name != "Keyboard" {
			t.Errorf("expected name Keyboard, got %q", got.Name)
		}
		if got.PriceCents != 500 {
			t.Errorf("expected snapshot price 500, got %d", got.PriceCents)
		}
		if got.TotalCents != 1000 {
			t.Errorf("expected line total 1000, got %d", got.TotalCents)
		}
	})

	t.Run("unresolved product surfaces with empty name", func(t *testing.T) {
		got := enriched[1]
		if got.Name != "" {
			t.Errorf("expected empty name, got %q", got.Name)
		}
		if got.PriceCents != 300 || got.TotalCents != 300 {
			t.Errorf("expected persisted price to survive, got %+v", got)
		}
	})
}

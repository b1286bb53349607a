package domain

// EnrichedItem is an order item joined with catalog details for
// response shaping.
type EnrichedItem struct {
	ID         string `json:"id"`
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
	TotalCents int64  `json:"total_cents"`
}

// OrderDetails is the full order view returned to callers.
type OrderDetails struct {
	Order Order          `json:"order"`
	Items []EnrichedItem `json:"items"`
}

// EnrichItems joins persisted items with product records. Persisted
// price and quantity are authoritative; an item whose product is no
// longer in the catalog keeps an empty name instead of failing the
// whole response.
func EnrichItems(items []OrderItem, products []Product) []EnrichedItem {
	index := IndexProducts(products)

	enriched := make([]EnrichedItem, len(items))
	for i, item := range items {
		enriched[i] = EnrichedItem{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Name:       index[item.ProductID].Name,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
			TotalCents: item.PriceCents * int64(item.Quantity),
		}
	}
	return enriched
}

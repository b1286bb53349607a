package domain

// Totals holds the derived order aggregates.
type Totals struct {
	AmountCents int64
	Items       int
}

// IndexProducts keys validated products by id for line lookups.
func IndexProducts(products []Product) map[int64]Product {
	index := make(map[int64]Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// MissingProducts returns the product ids referenced by lines that are
// absent from the index, preserving first-seen order.
func MissingProducts(lines []Line, index map[int64]Product) []int64 {
	var missing []int64
	seen := make(map[int64]bool)
	for _, line := range lines {
		if _, ok := index[line.ProductID]; ok {
			continue
		}
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		missing = append(missing, line.ProductID)
	}
	return missing
}

// CalculateTotals derives the order totals from the requested lines and
// the validated catalog prices. Pure; the caller guarantees every line's
// product is present in the index.
func CalculateTotals(lines []Line, index map[int64]Product) Totals {
	var totals Totals
	for _, line := range lines {
		product := index[line.ProductID]
		totals.AmountCents += product.PriceCents * int64(line.Quantity)
		totals.Items += line.Quantity
	}
	return totals
}

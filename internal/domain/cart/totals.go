// internal/domain/cart/totals.go
package cart

// Totals represents calculated order totals, in cents. Derived from cart
// state on every mutation, never stored independently.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals derives subtotal, shipping and total from cart lines.
// Shipping is zero for an empty cart and above the free-delivery threshold,
// otherwise the flat fee. Items without a price count as zero.
func ComputeTotals(lines []Line, prices map[string]int64, freeThreshold, flatFee int64) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += int64(line.Quantity) * prices[line.ItemID]
	}

	var shipping int64
	if subtotal > 0 && subtotal < freeThreshold {
		shipping = flatFee
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

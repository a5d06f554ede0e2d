package pricing

import catalogEntity "brightlaptop.GO/model/entity/catalog"

// PricedLine is one already-priced cart line, the aggregator's input.
type PricedLine struct {
	Product   *catalogEntity.Product
	UnitPrice float64
	Quantity  int
}

// Totals is the cart summary. The invariant SubtotalBeforeDiscount -
// TotalSavings == GrandTotal holds exactly because the subtotal is
// back-derived, never independently summed.
type Totals struct {
	SubtotalBeforeDiscount float64 `json:"subtotal"`
	TotalSavings           float64 `json:"savings"`
	GrandTotal             float64 `json:"total"`
	ItemCount              int     `json:"itemCount"`
}

// Aggregate folds priced lines into cart totals. The grand total (already
// discounted unit prices times quantities) is authoritative; savings measure
// the gap to each product's reference price.
func Aggregate(lines []PricedLine) Totals {
	var t Totals
	for _, l := range lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		t.GrandTotal += l.UnitPrice * float64(qty)
		t.TotalSavings += (referencePrice(l.Product) - l.UnitPrice) * float64(qty)
		t.ItemCount += qty
	}
	t.SubtotalBeforeDiscount = t.GrandTotal + t.TotalSavings
	return t
}

// referencePrice is the strike-through price savings are measured against:
// the MRP, or the product's own base price when the MRP is absent or lower.
func referencePrice(p *catalogEntity.Product) float64 {
	if p == nil {
		return 0
	}
	if p.MRP > 0 && p.MRP >= p.BasePrice {
		return p.MRP
	}
	return p.BasePrice
}

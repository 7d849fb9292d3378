package response

import (
	"github.com/Alturino/restaurant/cart/pkg/domain"
)

// NewCart maps lines, already in display order, and their totals.
func NewCart(lines []domain.Line, totals domain.Totals) Cart {
	rounded := totals.Rounded()
	items := make([]CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartItem{
			ID:        l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Amount:    l.Amount().Round(2),
			ImageRef:  l.ImageRef,
		})
	}
	return Cart{
		Items:      items,
		Count:      domain.Count(lines),
		Subtotal:   rounded.Subtotal,
		Tax:        rounded.Tax,
		GrandTotal: rounded.GrandTotal,
	}
}

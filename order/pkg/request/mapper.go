package request

import (
	"github.com/Alturino/restaurant/cart/pkg/domain"
)

// NewCreateOrder builds the submission from the cart lines and their totals.
// Amounts are rounded to cents before they leave decimal arithmetic.
func NewCreateOrder(lines []domain.Line, totals domain.Totals) CreateOrder {
	rounded := totals.Rounded()
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ID:       l.ID,
			Nombre:   l.Name,
			Precio:   l.UnitPrice.InexactFloat64(),
			Cantidad: l.Quantity,
			Img:      l.ImageRef,
		})
	}
	return CreateOrder{
		Items:    items,
		SubTotal: rounded.Subtotal.InexactFloat64(),
		Impuesto: rounded.Tax.InexactFloat64(),
		Total:    rounded.GrandTotal.InexactFloat64(),
	}
}

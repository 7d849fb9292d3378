package request

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/restaurant/cart/pkg/domain"
)

type AddItem struct {
	ID        domain.ID       `validate:"required"                json:"id"`
	Name      string          `validate:"required"                json:"name"`
	UnitPrice decimal.Decimal `validate:"price"                   json:"unitPrice"`
	ImageRef  string          `                                   json:"imageRef,omitempty"`
	Quantity  int             `validate:"omitempty,gte=1,lte=999" json:"quantity,omitempty"`
}

func (r AddItem) Item() domain.Item {
	return domain.Item{
		ID:        r.ID,
		Name:      r.Name,
		UnitPrice: r.UnitPrice,
		ImageRef:  r.ImageRef,
	}
}

// IncrementBy defaults an omitted quantity to one.
func (r AddItem) IncrementBy() int {
	if r.Quantity == 0 {
		return 1
	}
	return r.Quantity
}

type ChangeQuantity struct {
	Delta int `validate:"required,gte=-999,lte=999" json:"delta"`
}

package request

import (
	"github.com/Alturino/restaurant/cart/pkg/domain"
)

// CreateOrder is the body of POST /api/orders.
type CreateOrder struct {
	Items    []OrderItem `validate:"required,gt=0,dive" json:"items"`
	SubTotal float64     `validate:"gte=0"               json:"subTotal"`
	Impuesto float64     `validate:"gte=0"               json:"impuesto"`
	Total    float64     `validate:"gte=0"               json:"total"`
}

type OrderItem struct {
	ID       domain.ID `validate:"required"       json:"id"`
	Nombre   string    `validate:"required"       json:"nombre"`
	Precio   float64   `validate:"gte=0"          json:"precio"`
	Cantidad int       `validate:"required,gte=1" json:"cantidad"`
	Img      string    `                          json:"img,omitempty"`
}

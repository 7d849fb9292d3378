package response

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/restaurant/cart/pkg/domain"
	orderResponse "github.com/Alturino/restaurant/order/pkg/response"
)

// Cart is what a cart screen shows: sorted lines and rounded totals.
type Cart struct {
	Items      []CartItem      `json:"items"`
	Count      int             `json:"count"`
	Subtotal   decimal.Decimal `json:"subTotal"`
	Tax        decimal.Decimal `json:"impuesto"`
	GrandTotal decimal.Decimal `json:"total"`
}

type CartItem struct {
	ID        domain.ID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	ImageRef  string          `json:"imageRef,omitempty"`
}

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeDeclined  Outcome = "declined"
	OutcomeFailed    Outcome = "failed"
)

// Checkout reports how a checkout ended. Message is meant for the user.
type Checkout struct {
	Outcome Outcome              `json:"outcome"`
	Message string               `json:"message"`
	Order   *orderResponse.Order `json:"order,omitempty"`
}

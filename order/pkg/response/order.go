package response

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Alturino/restaurant/cart/pkg/domain"
)

// Order is what the backend answers for a placed order and for each entry
// of the order history.
type Order struct {
	ID        domain.ID       `json:"id"`
	Status    string          `json:"status,omitempty"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt string          `json:"createdAt,omitempty"`
	Items     []OrderItem     `json:"items,omitempty"`
	Customer  *Customer       `json:"cliente,omitempty"`
}

// Customer is who placed the order, present on the kitchen endpoints.
type Customer struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
}

func (cu *Customer) String() string {
	if cu == nil {
		return "unknown"
	}
	return strings.TrimSpace(cu.Nombres + " " + cu.Apellidos)
}

type OrderItem struct {
	ItemID   domain.ID       `json:"item_id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Quantity int             `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
}

// UnmarshalJSON accepts the field spellings the different backend
// endpoints use.
func (o *Order) UnmarshalJSON(b []byte) error {
	type order Order
	raw := struct {
		order
		CreatedAtSnake string `json:"created_at"`
		Date           string `json:"date"`
	}{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = Order(raw.order)
	if o.CreatedAt == "" {
		o.CreatedAt = raw.CreatedAtSnake
	}
	if o.CreatedAt == "" {
		o.CreatedAt = raw.Date
	}
	return nil
}

func (i *OrderItem) UnmarshalJSON(b []byte) error {
	type orderItem OrderItem
	raw := struct {
		orderItem
		Quantity *int `json:"quantity"`
		Item     *struct {
			ID    domain.ID `json:"id"`
			Title string    `json:"title"`
		} `json:"item"`
	}{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*i = OrderItem(raw.orderItem)
	if raw.Quantity != nil && i.Quantity == 0 {
		i.Quantity = *raw.Quantity
	}
	if raw.Item != nil {
		if i.ItemID == "" {
			i.ItemID = raw.Item.ID
		}
		if i.Title == "" {
			i.Title = raw.Item.Title
		}
	}
	return nil
}

// Status values the kitchen uses.
const (
	STATUS_PENDING   = "Pendiente"
	STATUS_COMPLETED = "Completado"
)

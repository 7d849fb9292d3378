package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrMalformedCart = errors.New("malformed cart record")

// record is the persisted shape of a line, shared with earlier clients.
type record struct {
	ID       ID              `json:"id"`
	Nombre   string          `json:"nombre"`
	Precio   json.RawMessage `json:"precio"`
	Cantidad int             `json:"cantidad"`
	Img      string          `json:"img,omitempty"`
}

// Encode serializes lines as the JSON array stored under the cart key.
func Encode(lines []Line) (string, error) {
	records := make([]record, 0, len(lines))
	for _, l := range lines {
		records = append(records, record{
			ID:       l.ID,
			Nombre:   l.Name,
			Precio:   json.RawMessage(l.UnitPrice.String()),
			Cantidad: l.Quantity,
			Img:      l.ImageRef,
		})
	}
	content, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed encoding cart with error=%w", err)
	}
	return string(content), nil
}

// Decode parses a stored cart. Prices may be numbers or strings. A record
// without id, with a missing or bad price, or with a quantity outside
// 1..MaxQuantity makes the whole blob malformed. Duplicate ids are merged.
func Decode(blob string) ([]Line, error) {
	records := []record{}
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCart, err)
	}

	lines := make([]Line, 0, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: line %d has no id", ErrMalformedCart, i)
		}
		if r.Cantidad < 1 || r.Cantidad > MaxQuantity {
			return nil, fmt.Errorf("%w: line %d has quantity %d", ErrMalformedCart, i, r.Cantidad)
		}
		if len(r.Precio) == 0 || string(r.Precio) == "null" {
			return nil, fmt.Errorf("%w: line %d has no price", ErrMalformedCart, i)
		}
		var price decimal.Decimal
		if err := price.UnmarshalJSON(r.Precio); err != nil {
			return nil, fmt.Errorf("%w: line %d price: %w", ErrMalformedCart, i, err)
		}
		lines = append(lines, Line{
			ID:        r.ID,
			Name:      r.Nombre,
			UnitPrice: price,
			Quantity:  r.Cantidad,
			ImageRef:  r.Img,
		})
	}
	return Merge(lines), nil
}

// Package domain holds the cart line model, its persisted encoding and the
// pure computations over it.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	commonErrors "github.com/Alturino/restaurant/internal/errors"
	"github.com/Alturino/restaurant/internal/validate"
)

// Item is what gets added to the cart, usually mapped from a catalog item.
type Item struct {
	ID        ID              `validate:"required" json:"id"`
	Name      string          `validate:"required" json:"name"`
	UnitPrice decimal.Decimal `validate:"price"    json:"unitPrice"`
	ImageRef  string          `                    json:"imageRef,omitempty"`
}

func (i Item) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %w", commonErrors.ErrInvalidItem, err)
	}
	return nil
}

// MaxQuantity bounds the quantity of a single line.
const MaxQuantity = 999

// Line is one row of the cart. Quantity stays within 1..MaxQuantity.
type Line struct {
	ID        ID              `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"imageRef,omitempty"`
}

func NewLine(item Item, quantity int) Line {
	return Line{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  quantity,
		ImageRef:  item.ImageRef,
	}
}

func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AddQuantity applies delta to quantity. A result below 1 is raised to 1. A
// result above MaxQuantity is rejected, checked before adding so huge deltas
// cannot wrap around.
func AddQuantity(quantity, delta int) (int, error) {
	if delta > 0 && quantity > MaxQuantity-delta {
		return quantity, fmt.Errorf("%w: quantity %d plus %d exceeds %d", commonErrors.ErrInvalidItem, quantity, delta, MaxQuantity)
	}
	return max(1, quantity+delta), nil
}

// Index returns the position of the line with id, or -1.
func Index(lines []Line, id ID) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Merge folds lines sharing an id into the first occurrence, summing their
// quantities up to MaxQuantity. Order of first occurrence is kept.
func Merge(lines []Line) []Line {
	merged := make([]Line, 0, len(lines))
	positions := make(map[ID]int, len(lines))
	for _, l := range lines {
		if i, ok := positions[l.ID]; ok {
			merged[i].Quantity = min(MaxQuantity, merged[i].Quantity+l.Quantity)
			continue
		}
		positions[l.ID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

package response

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Alturino/restaurant/cart/pkg/domain"
)

type Category struct {
	ID    domain.ID `json:"id"`
	Title string    `json:"title"`
}

// Pictures decodes picUrl whether the backend sends one URL or a list.
type Pictures []string

func (p *Pictures) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = nil
		return nil
	}
	if b[0] == '"' {
		var single string
		if err := json.Unmarshal(b, &single); err != nil {
			return err
		}
		if single == "" {
			*p = nil
			return nil
		}
		*p = Pictures{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*p = many
	return nil
}

type Item struct {
	ID          domain.ID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PicURL      Pictures        `json:"picUrl,omitempty"`
	CategoryID  domain.ID       `json:"category_id,omitempty"`
}

// CartItem captures what the cart keeps of a catalog item. The first
// picture becomes the line image.
func (i Item) CartItem() domain.Item {
	image := ""
	if len(i.PicURL) > 0 {
		image = i.PicURL[0]
	}
	return domain.Item{
		ID:        i.ID,
		Name:      i.Title,
		UnitPrice: i.Price,
		ImageRef:  image,
	}
}

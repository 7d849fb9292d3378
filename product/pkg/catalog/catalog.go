// Package catalog reads the menu: categories and the dishes in them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	commonOtel "github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/product/internal/otel"
	"github.com/Alturino/restaurant/product/pkg/response"
)

type Doer interface {
	Do(c context.Context, method string, path string, body any, out any) error
}

type Client struct {
	api Doer
}

func NewClient(api Doer) *Client {
	return &Client{api: api}
}

func (cl *Client) Categories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "CatalogClient Categories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogClient Categories").
		Str(constants.KEY_PROCESS, "listing categories").
		Logger()

	logger.Debug().Msg("listing categories")
	categories := []response.Category{}
	if err := cl.api.Do(c, http.MethodGet, constants.PATH_CATEGORIES, nil, &categories); err != nil {
		err = fmt.Errorf("failed listing categories with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Debug().Int("categories", len(categories)).Msg("listed categories")

	return categories, nil
}

// Items lists the dishes, only those of categoryID when it is not empty.
func (cl *Client) Items(c context.Context, categoryID domain.ID) ([]response.Item, error) {
	c, span := otel.Tracer.Start(c, "CatalogClient Items")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogClient Items").
		Str(constants.KEY_CATEGORY_ID, categoryID.String()).
		Str(constants.KEY_PROCESS, "listing items").
		Logger()

	path := constants.PATH_ITEMS
	if categoryID != "" {
		path += "?" + url.Values{"category_id": []string{categoryID.String()}}.Encode()
	}

	logger.Debug().Msg("listing items")
	items := []response.Item{}
	if err := cl.api.Do(c, http.MethodGet, path, nil, &items); err != nil {
		err = fmt.Errorf("failed listing items with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if categoryID != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.CategoryID == "" || item.CategoryID == categoryID {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	logger.Debug().Int("items", len(items)).Msg("listed items")

	return items, nil
}

// Item finds one dish by id. An unknown id wraps ErrNotFound.
func (cl *Client) Item(c context.Context, id domain.ID) (response.Item, error) {
	c, span := otel.Tracer.Start(c, "CatalogClient Item")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogClient Item").
		Str(constants.KEY_PRODUCT_ID, id.String()).
		Logger()

	items, err := cl.Items(c, "")
	if err != nil {
		return response.Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	err = fmt.Errorf("failed finding item id=%s with error=%w", id, commonErrors.ErrNotFound)
	commonOtel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	return response.Item{}, err
}

// IsNotFound reports whether err means the dish does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, commonErrors.ErrNotFound)
}

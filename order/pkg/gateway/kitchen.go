package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/internal/apiclient"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	commonOtel "github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/order/internal/otel"
	"github.com/Alturino/restaurant/order/pkg/response"
)

type statusUpdate struct {
	Status string `json:"status"`
}

// kitchenError maps the statuses the kitchen endpoints answer onto the error
// taxonomy.
func kitchenError(action string, err error) error {
	statusErr := &apiclient.StatusError{}
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("failed %s with error=%w: %w", action, commonErrors.ErrUnauthorized, err)
		case http.StatusNotFound:
			return fmt.Errorf("failed %s with error=%w: %w", action, commonErrors.ErrNotFound, err)
		}
	}
	return fmt.Errorf("failed %s with error=%w: %w", action, commonErrors.ErrGatewayFailure, err)
}

func kitchenOrderPath(id domain.ID) string {
	return constants.PATH_KITCHEN_ORDERS + "/" + url.PathEscape(id.String())
}

// ListPending returns the orders the kitchen still has to prepare.
func (g *HTTPGateway) ListPending(c context.Context) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "HTTPGateway ListPending")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPGateway ListPending").
		Str(constants.KEY_PROCESS, "listing pending orders").
		Logger()

	logger.Info().Msg("listing pending orders")
	orders := []response.Order{}
	if err := g.client.Do(c, http.MethodGet, constants.PATH_KITCHEN_PENDING, nil, &orders); err != nil {
		err = kitchenError("listing pending orders", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_ORDERS, len(orders)).Msg("listed pending orders")

	return orders, nil
}

// CompleteOrder marks the order as prepared, moving it out of the pending
// queue.
func (g *HTTPGateway) CompleteOrder(c context.Context, id domain.ID) error {
	c, span := otel.Tracer.Start(c, "HTTPGateway CompleteOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPGateway CompleteOrder").
		Str(constants.KEY_ORDER_ID, id.String()).
		Str(constants.KEY_PROCESS, "completing order").
		Logger()

	if id == "" {
		err := fmt.Errorf("failed completing order with error=%w: empty order id", commonErrors.ErrNotFound)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Info().Msg("completing order")
	body := statusUpdate{Status: response.STATUS_COMPLETED}
	if err := g.client.Do(c, http.MethodPut, kitchenOrderPath(id)+"/status", body, nil); err != nil {
		err = kitchenError("completing order", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("completed order")

	return nil
}

func (g *HTTPGateway) DeleteOrder(c context.Context, id domain.ID) error {
	c, span := otel.Tracer.Start(c, "HTTPGateway DeleteOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPGateway DeleteOrder").
		Str(constants.KEY_ORDER_ID, id.String()).
		Str(constants.KEY_PROCESS, "deleting order").
		Logger()

	if id == "" {
		err := fmt.Errorf("failed deleting order with error=%w: empty order id", commonErrors.ErrNotFound)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Info().Msg("deleting order")
	if err := g.client.Do(c, http.MethodDelete, kitchenOrderPath(id), nil, nil); err != nil {
		err = kitchenError("deleting order", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted order")

	return nil
}

// KitchenHistory returns the orders the kitchen has handled. todayOnly
// restricts it to the current day as the backend sees it.
func (g *HTTPGateway) KitchenHistory(c context.Context, todayOnly bool) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "HTTPGateway KitchenHistory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPGateway KitchenHistory").
		Bool("todayOnly", todayOnly).
		Str(constants.KEY_PROCESS, "listing kitchen history").
		Logger()

	path := constants.PATH_KITCHEN_HISTORY
	if todayOnly {
		path += "?" + url.Values{"date": {"today"}}.Encode()
	}

	logger.Info().Msg("listing kitchen history")
	orders := []response.Order{}
	if err := g.client.Do(c, http.MethodGet, path, nil, &orders); err != nil {
		err = kitchenError("listing kitchen history", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_ORDERS, len(orders)).Msg("listed kitchen history")

	return orders, nil
}

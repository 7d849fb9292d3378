// Package gateway submits orders to the restaurant backend and reads the
// customer's order history.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/apiclient"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	commonOtel "github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/order/internal/otel"
	"github.com/Alturino/restaurant/order/pkg/request"
	"github.com/Alturino/restaurant/order/pkg/response"
)

// Doer is the part of apiclient.Client the gateway needs.
type Doer interface {
	Do(c context.Context, method string, path string, body any, out any) error
}

type HTTPGateway struct {
	client Doer
}

func New(client Doer) *HTTPGateway {
	return &HTTPGateway{client: client}
}

// confirmation accepts the created order either bare or wrapped in a data or
// order envelope.
type confirmation struct {
	order response.Order
}

func (cf *confirmation) UnmarshalJSON(b []byte) error {
	envelope := struct {
		Data  json.RawMessage `json:"data"`
		Order json.RawMessage `json:"order"`
	}{}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	for _, inner := range []json.RawMessage{envelope.Data, envelope.Order} {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' {
			return json.Unmarshal(inner, &cf.order)
		}
	}
	return json.Unmarshal(b, &cf.order)
}

// SubmitOrder posts the order. Timeouts and accepted answers without a
// readable order id wrap ErrGatewayAmbiguous as the order may exist. Every
// other failure wraps ErrGatewayFailure.
func (g *HTTPGateway) SubmitOrder(c context.Context, req request.CreateOrder) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "HTTPGateway SubmitOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPGateway SubmitOrder").
		Int(constants.KEY_CART_ITEMS_COUNT, len(req.Items)).
		Float64("total", req.Total).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "submitting order").Logger()
	logger.Info().Msg("submitting order")
	result := confirmation{}
	err := g.client.Do(c, http.MethodPost, constants.PATH_ORDERS, req, &result)
	if err != nil {
		if errors.Is(err, apiclient.ErrTimeout) || errors.Is(err, apiclient.ErrMalformedResponse) {
			err = fmt.Errorf("failed submitting order with error=%w: %w", commonErrors.ErrGatewayAmbiguous, err)
		} else if statusErr := (&apiclient.StatusError{}); errors.As(err, &statusErr) {
			err = fmt.Errorf("failed submitting order with error=%w: %w", commonErrors.ErrGatewayFailure, err)
		} else if errors.Is(err, context.Canceled) {
			err = fmt.Errorf("failed submitting order with error=%w: %w", commonErrors.ErrGatewayAmbiguous, err)
		} else {
			err = fmt.Errorf("failed submitting order with error=%w: %w", commonErrors.ErrGatewayFailure, err)
		}
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if result.order.ID == "" {
		err = fmt.Errorf("failed submitting order with error=%w: response carries no order id", commonErrors.ErrGatewayAmbiguous)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Str(constants.KEY_ORDER_ID, result.order.ID.String()).Msg("submitted order")

	return result.order, nil
}

func (g *HTTPGateway) ListOrders(c context.Context) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "HTTPGateway ListOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPGateway ListOrders").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "listing orders").Logger()
	logger.Info().Msg("listing orders")
	orders := []response.Order{}
	err := g.client.Do(c, http.MethodGet, constants.PATH_ORDERS, nil, &orders)
	if err != nil {
		statusErr := &apiclient.StatusError{}
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			err = fmt.Errorf("failed listing orders with error=%w: %w", commonErrors.ErrUnauthorized, err)
		} else {
			err = fmt.Errorf("failed listing orders with error=%w", err)
		}
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_ORDERS, len(orders)).Msg("listed orders")

	return orders, nil
}

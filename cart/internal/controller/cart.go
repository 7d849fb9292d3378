package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/cart/internal/otel"
	"github.com/Alturino/restaurant/cart/internal/service"
	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/cart/pkg/request"
	"github.com/Alturino/restaurant/cart/pkg/response"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	commonHttp "github.com/Alturino/restaurant/internal/http"
	commonOtel "github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/internal/validate"
)

type CartController struct {
	store *service.CartStore
}

func AttachCartController(router *mux.Router, store *service.CartStore) {
	controller := CartController{store: store}

	cart := router.PathPrefix("/cart").Subrouter()
	cart.HandleFunc("", controller.View).Methods(http.MethodGet)
	cart.HandleFunc("", controller.Clear).Methods(http.MethodDelete)
	cart.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	cart.HandleFunc("/items/{id}", controller.ChangeQuantity).Methods(http.MethodPatch)
	cart.HandleFunc("/items/{id}", controller.RemoveItem).Methods(http.MethodDelete)
	cart.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
}

func (t CartController) writeCart(w http.ResponseWriter, r *http.Request, lines []domain.Line, message string) {
	commonHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
		"status":     commonHttp.STATUS_SUCCESS,
		"statusCode": http.StatusOK,
		"message":    message,
		"data":       map[string]interface{}{constants.KEY_CART: response.NewCart(t.store.Sorted(lines), t.store.ComputeTotals(lines))},
	})
}

func (t CartController) View(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController View")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController View").
		Str(constants.KEY_PROCESS, "loading cart").
		Logger()

	logger.Debug().Msg("loading cart")
	c = logger.WithContext(c)
	lines, err := t.store.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Int(constants.KEY_CART_ITEMS_COUNT, domain.Count(lines)).Msg("loaded cart")

	t.writeCart(w, r.WithContext(c), lines, "found cart")
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController AddItem").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Debug().Msg("decoding request body")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w: %w", commonErrors.ErrInvalidItem, err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "validating request body").Logger()
	logger.Debug().Msg("validating request body")
	if err := validate.Struct(reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w: %w", commonErrors.ErrInvalidItem, err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("validated request body")

	logger = logger.With().
		Str(constants.KEY_CART_ITEM_ID, reqBody.ID.String()).
		Str(constants.KEY_PROCESS, "adding item").
		Logger()
	logger.Debug().Msg("adding item")
	c = logger.WithContext(c)
	lines, err := t.store.AddOrIncrement(c, reqBody.Item(), reqBody.IncrementBy())
	if err != nil {
		err = fmt.Errorf("failed adding item with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("added item")

	t.writeCart(w, r.WithContext(c), lines, "added item to cart")
}

func (t CartController) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ChangeQuantity")
	defer span.End()

	id := domain.ID(mux.Vars(r)["id"])
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController ChangeQuantity").
		Str(constants.KEY_CART_ITEM_ID, id.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Debug().Msg("decoding request body")
	reqBody := request.ChangeQuantity{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w: %w", commonErrors.ErrInvalidItem, err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	if err := validate.Struct(reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w: %w", commonErrors.ErrInvalidItem, err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "changing quantity").Logger()
	logger.Debug().Msg("changing quantity")
	c = logger.WithContext(c)
	lines, err := t.store.ChangeQuantity(c, id, reqBody.Delta)
	if err != nil {
		err = fmt.Errorf("failed changing quantity with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("changed quantity")

	t.writeCart(w, r.WithContext(c), lines, "changed quantity")
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	id := domain.ID(mux.Vars(r)["id"])
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController RemoveItem").
		Str(constants.KEY_CART_ITEM_ID, id.String()).
		Str(constants.KEY_PROCESS, "removing item").
		Logger()

	logger.Debug().Msg("removing item")
	c = logger.WithContext(c)
	lines, err := t.store.RemoveLine(c, id)
	if err != nil {
		err = fmt.Errorf("failed removing item with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("removed item")

	t.writeCart(w, r.WithContext(c), lines, "removed item from cart")
}

func (t CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController Clear").
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Debug().Msg("clearing cart")
	c = logger.WithContext(c)
	if err := t.store.Clear(c); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("cleared cart")

	t.writeCart(w, r.WithContext(c), nil, "cleared cart")
}

func (t CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController Checkout").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "loading cart").Logger()
	logger.Debug().Msg("loading cart")
	c = logger.WithContext(c)
	lines, err := t.store.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteError(c, w, err)
		return
	}
	logger.Debug().Msg("loaded cart")

	logger = logger.With().Str(constants.KEY_PROCESS, "checking out").Logger()
	logger.Debug().Msg("checking out")
	c = logger.WithContext(c)
	result, err := t.store.Checkout(c, lines)
	logger = logger.With().Str(constants.KEY_CHECKOUT_OUTCOME, string(result.Outcome)).Logger()

	statusCode := http.StatusOK
	status := commonHttp.STATUS_SUCCESS
	switch {
	case result.Outcome == response.OutcomeSucceeded:
		// the order exists even when emptying the cart failed afterwards
		if err != nil {
			logger.Warn().Err(err).Msg(err.Error())
		}
	case err != nil:
		statusCode = commonHttp.StatusCode(err)
		status = commonHttp.STATUS_FAILED
		logger.Error().Err(err).Msg(err.Error())
	default:
		statusCode = commonHttp.StatusCode(commonErrors.ErrEmptyCart)
		status = commonHttp.STATUS_FAILED
		logger.Info().Msg(result.Message)
	}
	if err != nil {
		commonOtel.RecordError(err, span)
	}
	logger.Debug().Msg("checked out")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     status,
		"statusCode": statusCode,
		"message":    result.Message,
		"data":       map[string]interface{}{"checkout": result},
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/Alturino/restaurant/cart/internal/metrics"
	"github.com/Alturino/restaurant/cart/internal/otel"
	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/cart/pkg/response"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	commonOtel "github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/internal/storage"
	orderRequest "github.com/Alturino/restaurant/order/pkg/request"
	orderResponse "github.com/Alturino/restaurant/order/pkg/response"
)

const (
	MESSAGE_EMPTY_CART         = "cart is empty"
	MESSAGE_ORDER_PLACED       = "order placed"
	MESSAGE_ORDER_NOT_SENT     = "the order could not be sent, please try again"
	MESSAGE_ORDER_UNKNOWN      = "the order may not have been received, check your order history before retrying"
	MESSAGE_CART_NOT_CLEARED   = "order placed, but the cart could not be emptied"
	MESSAGE_CHECKOUT_IN_FLIGHT = "an order is already being sent"
)

type OrderGateway interface {
	SubmitOrder(c context.Context, req orderRequest.CreateOrder) (orderResponse.Order, error)
}

// CartStore owns the cart persisted under the cart key. It keeps no copy in
// memory: every operation reads the stored lines and writes the whole list
// back.
type CartStore struct {
	store   storage.Store
	gateway OrderGateway
	metrics *metrics.Metrics
	taxRate decimal.Decimal
	locale  language.Tag

	mu          sync.Mutex
	checkingOut atomic.Bool
}

type Option func(*CartStore)

func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *CartStore) { s.taxRate = rate }
}

func WithLocale(locale language.Tag) Option {
	return func(s *CartStore) { s.locale = locale }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *CartStore) { s.metrics = m }
}

func NewCartStore(store storage.Store, gateway OrderGateway, opts ...Option) *CartStore {
	s := &CartStore{
		store:   store,
		gateway: gateway,
		taxRate: domain.DefaultTaxRate,
		locale:  language.Spanish,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

func (s *CartStore) TaxRate() decimal.Decimal { return s.taxRate }

// Load returns the persisted lines. A missing, unreadable or malformed record
// yields an empty cart.
func (s *CartStore) Load(c context.Context) ([]domain.Line, error) {
	c, span := otel.Tracer.Start(c, "CartStore Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartStore Load").
		Str(constants.KEY_STORAGE_KEY, constants.STORAGE_KEY_CART).
		Logger()

	c = logger.WithContext(c)
	lines, err := s.read(c)
	if err != nil {
		commonOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		s.metrics.LoadRecovered.Inc()
		return []domain.Line{}, nil
	}

	return lines, nil
}

// read returns the stored lines. A backend failure is returned wrapping
// ErrPersistenceRead so mutations never write over a cart they could not
// read. A malformed record counts as an empty cart.
func (s *CartStore) read(c context.Context) ([]domain.Line, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_PROCESS, "reading cart").
		Logger()

	logger.Debug().Msg("reading cart")
	blob, found, err := s.store.Get(c, constants.STORAGE_KEY_CART)
	if err != nil {
		return nil, fmt.Errorf("failed reading cart with error=%w: %w", commonErrors.ErrPersistenceRead, err)
	}
	if !found {
		logger.Debug().Msg("cart not found, starting empty")
		return []domain.Line{}, nil
	}
	logger.Debug().Msg("read cart")

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding cart").Logger()
	logger.Debug().Msg("decoding cart")
	lines, err := domain.Decode(blob)
	if err != nil {
		err = fmt.Errorf("failed decoding cart with error=%w: %w", commonErrors.ErrPersistenceRead, err)
		logger.Warn().Err(err).Msg(err.Error())
		s.metrics.LoadRecovered.Inc()
		return []domain.Line{}, nil
	}
	logger.Debug().Int(constants.KEY_CART_ITEMS, len(lines)).Msg("decoded cart")

	return lines, nil
}

func (s *CartStore) save(c context.Context, operation string, lines []domain.Line) error {
	blob, err := domain.Encode(lines)
	if err != nil {
		return fmt.Errorf("%w: %w", commonErrors.ErrPersistenceWrite, err)
	}
	if err = s.store.Set(c, constants.STORAGE_KEY_CART, blob); err != nil {
		return fmt.Errorf("%w: %w", commonErrors.ErrPersistenceWrite, err)
	}
	s.metrics.MutationsTotal.WithLabelValues(operation).Inc()
	return nil
}

// AddOrIncrement raises the quantity of the line with item's id by
// incrementBy, or appends a new line with that quantity.
func (s *CartStore) AddOrIncrement(c context.Context, item domain.Item, incrementBy int) ([]domain.Line, error) {
	c, span := otel.Tracer.Start(c, "CartStore AddOrIncrement")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartStore AddOrIncrement").
		Str(constants.KEY_CART_ITEM_ID, item.ID.String()).
		Int(constants.KEY_CART_QUANTITY, incrementBy).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating item").Logger()
	logger.Debug().Msg("validating item")
	if err := item.Validate(); err != nil {
		err = fmt.Errorf("failed validating item with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if incrementBy < 1 || incrementBy > domain.MaxQuantity {
		err := fmt.Errorf("failed validating item with error=%w: quantity %d is outside 1..%d", commonErrors.ErrInvalidItem, incrementBy, domain.MaxQuantity)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Debug().Msg("validated item")

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.read(c)
	if err != nil {
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "merging item").Logger()
	logger.Debug().Msg("merging item")
	if i := domain.Index(lines, item.ID); i >= 0 {
		quantity, err := domain.AddQuantity(lines[i].Quantity, incrementBy)
		if err != nil {
			err = fmt.Errorf("failed merging item with error=%w", err)
			commonOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		lines[i].Quantity = quantity
	} else {
		lines = append(lines, domain.NewLine(item, incrementBy))
	}
	logger.Debug().Msg("merged item")

	logger = logger.With().Str(constants.KEY_PROCESS, "writing cart").Logger()
	logger.Debug().Msg("writing cart")
	if err := s.save(c, "add", lines); err != nil {
		err = fmt.Errorf("failed writing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_CART_ITEMS, len(lines)).Msg("added item to cart")

	return lines, nil
}

// ChangeQuantity adds delta to the line's quantity, never going below 1. A
// result above domain.MaxQuantity is rejected. An unknown id leaves the cart
// untouched.
func (s *CartStore) ChangeQuantity(c context.Context, id domain.ID, delta int) ([]domain.Line, error) {
	c, span := otel.Tracer.Start(c, "CartStore ChangeQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartStore ChangeQuantity").
		Str(constants.KEY_CART_ITEM_ID, id.String()).
		Int(constants.KEY_CART_DELTA, delta).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.read(c)
	if err != nil {
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	i := domain.Index(lines, id)
	if i < 0 {
		logger.Debug().Msg("item not in cart, nothing to change")
		return lines, nil
	}
	quantity, err := domain.AddQuantity(lines[i].Quantity, delta)
	if err != nil {
		err = fmt.Errorf("failed changing quantity with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	lines[i].Quantity = quantity

	logger = logger.With().Str(constants.KEY_PROCESS, "writing cart").Logger()
	logger.Debug().Msg("writing cart")
	if err := s.save(c, "change_quantity", lines); err != nil {
		err = fmt.Errorf("failed writing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_CART_QUANTITY, lines[i].Quantity).Msg("changed quantity")

	return lines, nil
}

// RemoveLine drops the line whatever its quantity.
func (s *CartStore) RemoveLine(c context.Context, id domain.ID) ([]domain.Line, error) {
	c, span := otel.Tracer.Start(c, "CartStore RemoveLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartStore RemoveLine").
		Str(constants.KEY_CART_ITEM_ID, id.String()).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.read(c)
	if err != nil {
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	i := domain.Index(lines, id)
	if i < 0 {
		logger.Debug().Msg("item not in cart, nothing to remove")
		return lines, nil
	}
	remaining := make([]domain.Line, 0, len(lines)-1)
	remaining = append(remaining, lines[:i]...)
	remaining = append(remaining, lines[i+1:]...)

	logger = logger.With().Str(constants.KEY_PROCESS, "writing cart").Logger()
	logger.Debug().Msg("writing cart")
	if err := s.save(c, "remove", remaining); err != nil {
		err = fmt.Errorf("failed writing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_CART_ITEMS, len(remaining)).Msg("removed item from cart")

	return remaining, nil
}

// Clear deletes the persisted cart. Clearing an empty cart succeeds.
func (s *CartStore) Clear(c context.Context) error {
	c, span := otel.Tracer.Start(c, "CartStore Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartStore Clear").
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Debug().Msg("clearing cart")
	if err := s.clear(c); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}

func (s *CartStore) clear(c context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(c, constants.STORAGE_KEY_CART); err != nil {
		return fmt.Errorf("%w: %w", commonErrors.ErrPersistenceWrite, err)
	}
	s.metrics.MutationsTotal.WithLabelValues("clear").Inc()
	return nil
}

// ComputeTotals is pure, it reads only lines.
func (s *CartStore) ComputeTotals(lines []domain.Line) domain.Totals {
	return domain.ComputeTotals(lines, s.taxRate)
}

// Sorted is the display order of lines. The stored order is left as is.
func (s *CartStore) Sorted(lines []domain.Line) []domain.Line {
	return domain.Sorted(lines, s.locale)
}

// View loads the cart and returns it sorted with rounded totals.
func (s *CartStore) View(c context.Context) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartStore View")
	defer span.End()

	lines, err := s.Load(c)
	if err != nil {
		return response.Cart{}, err
	}
	return response.NewCart(s.Sorted(lines), s.ComputeTotals(lines)), nil
}

// Checkout submits lines as one order. On success the cart is cleared, on
// any failure it is left untouched. An empty cart is declined without
// reaching the gateway and a checkout started while another one is in flight
// is rejected.
func (s *CartStore) Checkout(c context.Context, lines []domain.Line) (response.Checkout, error) {
	c, span := otel.Tracer.Start(c, "CartStore Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartStore Checkout").
		Int(constants.KEY_CART_ITEMS, len(lines)).
		Logger()

	if len(lines) == 0 {
		result := response.Checkout{Outcome: response.OutcomeDeclined, Message: MESSAGE_EMPTY_CART}
		s.metrics.CheckoutTotal.WithLabelValues(string(result.Outcome)).Inc()
		logger.Info().Str(constants.KEY_CHECKOUT_OUTCOME, string(result.Outcome)).Msg("declined empty cart")
		return result, nil
	}

	if !s.checkingOut.CompareAndSwap(false, true) {
		err := fmt.Errorf("failed checking out with error=%w", commonErrors.ErrCheckoutInProgress)
		commonOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Checkout{Outcome: response.OutcomeDeclined, Message: MESSAGE_CHECKOUT_IN_FLIGHT}, err
	}
	defer s.checkingOut.Store(false)

	logger = logger.With().Str(constants.KEY_PROCESS, "building order").Logger()
	logger.Debug().Msg("building order")
	totals := s.ComputeTotals(lines)
	req := orderRequest.NewCreateOrder(lines, totals)
	logger = logger.With().Str(constants.KEY_CART_TOTALS, totals.Rounded().GrandTotal.StringFixed(2)).Logger()
	logger.Debug().Msg("built order")

	logger = logger.With().Str(constants.KEY_PROCESS, "submitting order").Logger()
	logger.Info().Msg("submitting order")
	start := time.Now()
	order, err := s.gateway.SubmitOrder(c, req)
	s.metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		message := MESSAGE_ORDER_NOT_SENT
		if errors.Is(err, commonErrors.ErrGatewayAmbiguous) {
			message = MESSAGE_ORDER_UNKNOWN
		} else if !errors.Is(err, commonErrors.ErrGatewayFailure) {
			err = fmt.Errorf("%w: %w", commonErrors.ErrGatewayFailure, err)
		}
		err = fmt.Errorf("failed submitting order with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.metrics.CheckoutTotal.WithLabelValues(string(response.OutcomeFailed)).Inc()
		return response.Checkout{Outcome: response.OutcomeFailed, Message: message}, err
	}
	logger = logger.With().Str(constants.KEY_ORDER_ID, order.ID.String()).Logger()
	logger.Info().Msg("submitted order")

	result := response.Checkout{Outcome: response.OutcomeSucceeded, Message: MESSAGE_ORDER_PLACED, Order: &order}
	s.metrics.CheckoutTotal.WithLabelValues(string(result.Outcome)).Inc()

	logger = logger.With().Str(constants.KEY_PROCESS, "clearing cart").Logger()
	logger.Debug().Msg("clearing cart")
	if err = s.clear(c); err != nil {
		err = fmt.Errorf("failed clearing cart after order with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		result.Message = MESSAGE_CART_NOT_CLEARED
		return result, err
	}
	logger.Info().Str(constants.KEY_CHECKOUT_OUTCOME, string(result.Outcome)).Msg("checked out")

	return result, nil
}

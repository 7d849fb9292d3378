package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/Alturino/restaurant/cart/internal/metrics"
	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/internal/storage"
	orderRequest "github.com/Alturino/restaurant/order/pkg/request"
	orderResponse "github.com/Alturino/restaurant/order/pkg/response"
)

var errBackend = errors.New("backend down")

// flakyStore wraps a MemoryStore and fails the operations whose flag is set.
type flakyStore struct {
	*storage.MemoryStore
	failGet    atomic.Bool
	failSet    atomic.Bool
	failRemove atomic.Bool
	sets       atomic.Int32
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *flakyStore) Get(c context.Context, key string) (string, bool, error) {
	if s.failGet.Load() {
		return "", false, errBackend
	}
	return s.MemoryStore.Get(c, key)
}

func (s *flakyStore) Set(c context.Context, key string, value string) error {
	if s.failSet.Load() {
		return errBackend
	}
	s.sets.Add(1)
	return s.MemoryStore.Set(c, key, value)
}

func (s *flakyStore) Remove(c context.Context, key string) error {
	if s.failRemove.Load() {
		return errBackend
	}
	return s.MemoryStore.Remove(c, key)
}

// fakeGateway records submissions and answers with submit.
type fakeGateway struct {
	mu       sync.Mutex
	requests []orderRequest.CreateOrder
	submit   func(c context.Context, req orderRequest.CreateOrder) (orderResponse.Order, error)
}

func (g *fakeGateway) SubmitOrder(c context.Context, req orderRequest.CreateOrder) (orderResponse.Order, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	if g.submit == nil {
		return orderResponse.Order{ID: "1", Total: decimal.NewFromFloat(req.Total)}, nil
	}
	return g.submit(c, req)
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func newStore(gateway OrderGateway) (*CartStore, *flakyStore, *metrics.Metrics) {
	backend := newFlakyStore()
	m := metrics.New()
	return NewCartStore(backend, gateway, WithMetrics(m)), backend, m
}

func dish(id domain.ID, name string, price string) domain.Item {
	return domain.Item{ID: id, Name: name, UnitPrice: decimal.RequireFromString(price)}
}

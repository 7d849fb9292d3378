package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/restaurant/internal/apiclient"
	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/config"
	"github.com/Alturino/restaurant/internal/storage"
	"github.com/Alturino/restaurant/user/pkg/session"
)

func newApp(t *testing.T, taxRate string) *app.App {
	t.Helper()
	store := storage.NewMemoryStore()
	sess := session.New(store)
	return &app.App{
		Config: &config.Config{
			Cart: config.Cart{TaxRate: taxRate, Locale: "es"},
		},
		Store:   store,
		Session: sess,
		API:     apiclient.New("http://127.0.0.1:1", time.Second, sess),
	}
}

func TestNewCartStoreRejectsBadTaxRate(t *testing.T) {
	for _, rate := range []string{"", "twelve", "-0.1"} {
		_, err := NewCartStore(t.Context(), newApp(t, rate), nil)
		assert.Error(t, err, rate)
	}
}

func TestRouterServesCartAndMetrics(t *testing.T) {
	router, err := NewRouter(t.Context(), newApp(t, "0.12"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(`{"id":1,"name":"Ceviche","unitPrice":"8.00"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PATH_METRICS, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `restaurant_cart_mutations_total{operation="add"} 1`)
}

func TestPrintCart(t *testing.T) {
	a := newApp(t, "0.12")
	store, err := NewCartStore(t.Context(), a, nil)
	require.NoError(t, err)

	out := bytes.Buffer{}
	require.NoError(t, printLines(&out, store, nil))
	assert.Equal(t, "cart is empty\n", out.String())
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/internal/log"
	"github.com/Alturino/restaurant/user/pkg/session"
)

func signed(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	valid := signed(t, time.Now().Add(time.Hour))
	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantToken     string
	}{
		{name: "no header uses session", wantStatus: http.StatusOK},
		{name: "valid bearer forwarded", authorization: "Bearer " + valid, wantStatus: http.StatusOK, wantToken: valid},
		{name: "opaque bearer forwarded", authorization: "bearer 12|abc", wantStatus: http.StatusOK, wantToken: "12|abc"},
		{name: "expired bearer rejected", authorization: "Bearer " + signed(t, time.Now().Add(-time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme rejected", authorization: "Basic dXNlcg==", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer rejected", authorization: "Bearer ", wantStatus: http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotToken := ""
			handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken = session.TokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if test.authorization != "" {
				req.Header.Set(constants.HEADER_AUTHORIZATION, test.authorization)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantToken, gotToken)
		})
	}
}

func TestLoggingAttachesRequestID(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
	}{
		{name: "from header", requestID: "req-1"},
		{name: "generated"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotID := ""
			gotBody := map[string]any{}
			handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = log.RequestIDFromContext(r.Context())
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			}))

			req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"id":"1","password":"secret"}`))
			if test.requestID != "" {
				req.Header.Set(constants.HEADER_REQUEST_ID, test.requestID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.NotEmpty(t, gotID)
			if test.requestID != "" {
				assert.Equal(t, test.requestID, gotID)
			}
			assert.Equal(t, gotID, rec.Header().Get(constants.HEADER_REQUEST_ID))
			assert.Equal(t, "secret", gotBody["password"], "handler must see the unredacted body")
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "error value", value: assert.AnError},
		{name: "string value", value: "boom"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(test.value)
			}))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := map[string]any{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "failed", body["status"])
		})
	}
}

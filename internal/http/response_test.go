package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
)

func TestWriteJsonResponse(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJsonResponse(t.Context(), w, map[string]string{"X-Extra": "1"}, map[string]interface{}{
		"status":     STATUS_SUCCESS,
		"statusCode": http.StatusCreated,
		"message":    "created",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, constants.VALUE_APPLICATION_JSON, w.Header().Get(constants.HEADER_CONTENT_TYPE))
	assert.Equal(t, "1", w.Header().Get("X-Extra"))
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "created", body["message"])
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("x: %w", commonErrors.ErrInvalidItem), want: http.StatusBadRequest},
		{err: commonErrors.ErrUnauthorized, want: http.StatusUnauthorized},
		{err: commonErrors.ErrNotFound, want: http.StatusNotFound},
		{err: commonErrors.ErrCheckoutInProgress, want: http.StatusConflict},
		{err: commonErrors.ErrGatewayAmbiguous, want: http.StatusGatewayTimeout},
		{err: commonErrors.ErrGatewayFailure, want: http.StatusBadGateway},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.err.Error(), func(t *testing.T) {
			assert.Equal(t, test.want, StatusCode(test.err))
		})
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	"github.com/Alturino/restaurant/internal/otel"
)

const (
	STATUS_SUCCESS = "success"
	STATUS_FAILED  = "failed"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "WriteJsonResponse").Logger()

	w.Header().Set(constants.HEADER_CONTENT_TYPE, constants.VALUE_APPLICATION_JSON)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"].(int); ok {
		w.WriteHeader(v)
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// WriteError answers with the failed envelope and the status matching err.
func WriteError(c context.Context, w http.ResponseWriter, err error) {
	WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     STATUS_FAILED,
		"statusCode": StatusCode(err),
		"message":    err.Error(),
	})
}

// StatusCode maps the error taxonomy onto HTTP statuses.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, commonErrors.ErrInvalidItem), errors.Is(err, commonErrors.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, commonErrors.ErrUnauthorized), errors.Is(err, commonErrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, commonErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, commonErrors.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.Is(err, commonErrors.ErrGatewayAmbiguous):
		return http.StatusGatewayTimeout
	case errors.Is(err, commonErrors.ErrGatewayFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

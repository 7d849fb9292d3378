package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/constants"
	commonHttp "github.com/Alturino/restaurant/internal/http"
	"github.com/Alturino/restaurant/internal/otel"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "middleware RecoverPanic")
		defer span.End()

		logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "middleware RecoverPanic").Logger()
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			err, ok := recovered.(error)
			if !ok {
				err = fmt.Errorf("%v", recovered)
			}
			logger.Error().Err(err).Stack().Msg("recovered from panic")
			otel.RecordError(err, span)
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     commonHttp.STATUS_FAILED,
				"statusCode": http.StatusInternalServerError,
				"message":    "Internal Server Error",
			})
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}

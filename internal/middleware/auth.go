package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	commonHttp "github.com/Alturino/restaurant/internal/http"
	"github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/user/pkg/session"
)

// Auth forwards the caller's bearer token to the backend calls made while
// serving the request. Without an Authorization header the stored session
// token is used instead. A present but expired JWT is rejected here so the
// cart is not touched on behalf of a stale session.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "middleware Auth")
		defer span.End()

		logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "middleware Auth").Logger()

		authorization := r.Header.Get(constants.HEADER_AUTHORIZATION)
		if authorization == "" {
			logger.Trace().Msg("no authorization header, using session token")
			next.ServeHTTP(w, r.WithContext(c))
			return
		}

		scheme, token, found := strings.Cut(authorization, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			err := fmt.Errorf("failed reading bearer token with error=%w", commonErrors.ErrUnauthorized)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteError(c, w, err)
			return
		}
		token = strings.TrimSpace(token)

		if err := session.CheckToken(token, time.Now()); err != nil {
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteError(c, w, err)
			return
		}

		logger.Trace().Msg("attaching token to context")
		c = session.ContextWithToken(c, token)
		next.ServeHTTP(w, r.WithContext(c))
	})
}

// Package auth signs customers in and up against the restaurant backend.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/apiclient"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	"github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/user/pkg/request"
	"github.com/Alturino/restaurant/user/pkg/response"
)

var ErrInvalidForm = errors.New("invalid form")

// FormError carries the message of every field that failed validation.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %d fields", ErrInvalidForm.Error(), len(e.Fields))
}

func (e *FormError) Unwrap() error { return ErrInvalidForm }

type Doer interface {
	Do(c context.Context, method string, path string, body any, out any) error
}

type Client struct {
	api Doer
}

func NewClient(api Doer) *Client {
	return &Client{api: api}
}

// Login validates the form and exchanges the credentials for a token.
// Rejected credentials wrap ErrUnauthorized.
func (cl *Client) Login(c context.Context, req request.LoginRequest) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "AuthClient Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AuthClient Login").
		Object(constants.KEY_REQUEST, req).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating form").Logger()
	logger.Debug().Msg("validating form")
	if fields := req.Validate(); len(fields) > 0 {
		err := &FormError{Fields: fields}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Debug().Msg("validated form")

	logger = logger.With().Str(constants.KEY_PROCESS, "logging in").Logger()
	logger.Info().Msg("logging in")
	login := response.Login{}
	err := cl.api.Do(c, http.MethodPost, constants.PATH_AUTH_LOGIN, req.Credentials(), &login)
	if err != nil {
		statusErr := &apiclient.StatusError{}
		if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
			err = fmt.Errorf("failed logging in with error=%w: %w", commonErrors.ErrUnauthorized, err)
		} else {
			err = fmt.Errorf("failed logging in with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	if login.Token == "" {
		err = fmt.Errorf("failed logging in with error=%w: response carries no token", commonErrors.ErrTokenInvalid)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Str("role", login.Role).Msg("logged in")

	return login, nil
}

// Register validates every field of the form and creates the account.
func (cl *Client) Register(c context.Context, req request.Register) error {
	c, span := otel.Tracer.Start(c, "AuthClient Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AuthClient Register").
		Object(constants.KEY_REQUEST, req).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating form").Logger()
	logger.Debug().Msg("validating form")
	if fields := req.Validate(); len(fields) > 0 {
		err := &FormError{Fields: fields}
		otel.RecordError(err, span)
		logger.Error().Err(err).Any("fields", fields).Msg(err.Error())
		return err
	}
	logger.Debug().Msg("validated form")

	logger = logger.With().Str(constants.KEY_PROCESS, "registering").Logger()
	logger.Info().Msg("registering")
	if err := cl.api.Do(c, http.MethodPost, constants.PATH_AUTH_REGISTER, req.Credentials(), nil); err != nil {
		err = fmt.Errorf("failed registering with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("registered")

	return nil
}

// Package apiclient talks JSON to the restaurant backend. It attaches the
// session bearer token and a request id to every call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/internal/log"
	"github.com/Alturino/restaurant/internal/otel"
)

var (
	ErrTimeout           = errors.New("request timed out")
	ErrMalformedResponse = errors.New("malformed response body")
)

// StatusError is returned for any non 2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// TokenSource supplies the bearer token, an empty token sends no header.
type TokenSource interface {
	Token(c context.Context) (string, error)
}

type TokenSourceFunc func(c context.Context) (string, error)

func (f TokenSourceFunc) Token(c context.Context) (string, error) { return f(c) }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		tokens: tokens,
	}
}

// errorBody covers the envelope the backend answers errors with.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do sends body as JSON to path and decodes a 2xx answer into out when out is
// not nil.
func (cl *Client) Do(c context.Context, method string, path string, body any, out any) error {
	c, span := otel.Tracer.Start(c, "apiclient Do")
	defer span.End()

	requestID := log.RequestIDFromContext(c)
	if requestID == "" {
		requestID = uuid.NewString()
		c = log.AttachRequestIDToContext(c, requestID)
	}

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "apiclient Do").
		Str(constants.KEY_REQUEST_METHOD, method).
		Str(constants.KEY_REQUEST_URL, cl.baseURL+path).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "building request").Logger()
	logger.Trace().Msg("building request")
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed encoding request body with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(c, method, cl.baseURL+path, reader)
	if err != nil {
		err = fmt.Errorf("failed building request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set(constants.HEADER_ACCEPT, constants.VALUE_APPLICATION_JSON)
	req.Header.Set(constants.HEADER_REQUEST_ID, requestID)
	if body != nil {
		req.Header.Set(constants.HEADER_CONTENT_TYPE, constants.VALUE_APPLICATION_JSON)
	}
	if cl.tokens != nil {
		token, err := cl.tokens.Token(c)
		if err != nil {
			err = fmt.Errorf("failed getting session token with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		if token != "" {
			req.Header.Set(constants.HEADER_AUTHORIZATION, "Bearer "+token)
		}
	}
	logger.Trace().Msg("built request")

	logger = logger.With().Str(constants.KEY_PROCESS, "sending request").Logger()
	logger.Debug().Msg("sending request")
	resp, err := cl.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			err = fmt.Errorf("failed sending request with error=%w: %w", ErrTimeout, err)
		} else {
			err = fmt.Errorf("failed sending request with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	logger = logger.With().Int(constants.KEY_RESPONSE_STATUS, resp.StatusCode).Logger()
	logger.Debug().Msg("sent request")

	logger = logger.With().Str(constants.KEY_PROCESS, "reading response").Logger()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			err = fmt.Errorf("failed reading response with error=%w: %w", ErrTimeout, err)
		} else {
			err = fmt.Errorf("failed reading response with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody := errorBody{}
		_ = json.Unmarshal(content, &errBody)
		message := errBody.Message
		if message == "" {
			message = errBody.Error
		}
		err = &StatusError{StatusCode: resp.StatusCode, Message: message}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if out == nil || len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	if err = json.Unmarshal(content, out); err != nil {
		err = fmt.Errorf("failed decoding response with error=%w: %w", ErrMalformedResponse, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("read response")

	return nil
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

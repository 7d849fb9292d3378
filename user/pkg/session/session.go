// Package session is the app wide state of the signed in customer: the
// user, the theme preference and the bearer token. Only the token and the
// user survive a restart.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/internal/constants"
	commonErrors "github.com/Alturino/restaurant/internal/errors"
	"github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/internal/storage"
	"github.com/Alturino/restaurant/user/pkg/response"
)

type Session struct {
	store storage.Store
	now   func() time.Time

	mu        sync.RWMutex
	token     string
	user      *response.User
	role      string
	darkTheme bool
}

func New(store storage.Store) *Session {
	return &Session{store: store, now: time.Now}
}

// Start restores a persisted session. An expired token is dropped.
func (s *Session) Start(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Session Start")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Session Start").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "reading token").Logger()
	logger.Debug().Msg("reading token")
	token, found, err := s.store.Get(c, constants.STORAGE_KEY_TOKEN)
	if err != nil {
		err = fmt.Errorf("failed reading token with error=%w: %w", commonErrors.ErrPersistenceRead, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if !found {
		logger.Debug().Msg("no session stored")
		return nil
	}
	if err = CheckToken(token, s.now()); err != nil {
		logger.Info().Err(err).Msg("dropping stored session")
		return s.Logout(c)
	}
	logger.Debug().Msg("read token")

	logger = logger.With().Str(constants.KEY_PROCESS, "reading user").Logger()
	user := response.User{}
	blob, found, err := s.store.Get(c, constants.STORAGE_KEY_USER)
	if err == nil && found {
		if err = json.Unmarshal([]byte(blob), &user); err != nil {
			logger.Warn().Err(err).Msg("ignoring unreadable stored user")
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.role = user.Role
	s.mu.Unlock()
	logger.Info().Str(constants.KEY_EMAIL, user.Email).Msg("restored session")

	return nil
}

// Login stores the token and user answered by the backend.
func (s *Session) Login(c context.Context, login response.Login) error {
	c, span := otel.Tracer.Start(c, "Session Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Session Login").
		Str(constants.KEY_EMAIL, login.User.Email).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "checking token").Logger()
	if err := CheckToken(login.Token, s.now()); err != nil {
		err = fmt.Errorf("failed checking token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	user := login.User
	if login.Role != "" {
		user.Role = login.Role
	}
	if claims, ok := ParseClaims(login.Token); ok && user.ID == "" {
		user.ID = domain.ID(claims.Subject)
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "persisting session").Logger()
	logger.Debug().Msg("persisting session")
	if err := s.store.Set(c, constants.STORAGE_KEY_TOKEN, login.Token); err != nil {
		err = fmt.Errorf("failed persisting token with error=%w: %w", commonErrors.ErrPersistenceWrite, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	blob, err := json.Marshal(user)
	if err == nil {
		err = s.store.Set(c, constants.STORAGE_KEY_USER, string(blob))
	}
	if err != nil {
		err = fmt.Errorf("failed persisting user with error=%w: %w", commonErrors.ErrPersistenceWrite, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Debug().Msg("persisted session")

	s.mu.Lock()
	s.token = login.Token
	s.user = &user
	s.role = user.Role
	s.mu.Unlock()
	logger.Info().Str("role", user.Role).Msg("logged in")

	return nil
}

// Logout forgets the user and the token. The theme preference is kept.
func (s *Session) Logout(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Session Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Session Logout").
		Logger()

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.role = ""
	s.mu.Unlock()

	for _, key := range []string{constants.STORAGE_KEY_TOKEN, constants.STORAGE_KEY_USER} {
		if err := s.store.Remove(c, key); err != nil {
			err = fmt.Errorf("failed removing %s with error=%w: %w", key, commonErrors.ErrPersistenceWrite, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	logger.Info().Msg("logged out")

	return nil
}

func (s *Session) ToggleTheme() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkTheme = !s.darkTheme
	return s.darkTheme
}

func (s *Session) DarkTheme() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkTheme
}

func (s *Session) User() (response.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return response.User{}, false
	}
	return *s.user, true
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Token is the bearer token for calls made with c: the one attached to c if
// any, else the session's. An expired token yields an empty one.
func (s *Session) Token(c context.Context) (string, error) {
	token := TokenFromContext(c)
	if token == "" {
		s.mu.RLock()
		token = s.token
		s.mu.RUnlock()
	}
	if Expired(token, s.now()) {
		return "", nil
	}
	return token, nil
}

// Package app assembles the pieces every command needs: configuration,
// logger, telemetry, the persistent store, the session and the API client.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/apiclient"
	"github.com/Alturino/restaurant/internal/config"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/internal/log"
	"github.com/Alturino/restaurant/internal/otel"
	"github.com/Alturino/restaurant/internal/storage"
	"github.com/Alturino/restaurant/user/pkg/session"
)

// Options is filled by the root command's persistent flags.
type Options struct {
	ConfigName string
}

type App struct {
	Config  *config.Config
	Store   storage.Store
	Session *session.Session
	API     *apiclient.Client

	closeStore    storage.CloseFunc
	otelShutdowns []otel.ShutdownFunc
}

// New loads the configuration named by opts and starts the store and the
// session. The returned context carries the configured logger. Close must
// be called when the command is done.
func New(c context.Context, opts Options, serviceName string) (context.Context, *App, error) {
	cfg, err := config.Load(c, opts.ConfigName)
	if err != nil {
		return c, nil, err
	}

	logger := log.Get(cfg.Application, cfg.Log).
		With().
		Str(constants.KEY_APP_NAME, serviceName).
		Str(constants.KEY_TAG, "app New").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Debug().Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, serviceName, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		_ = otel.ShutdownOtel(c, otelShutdowns)
		return c, nil, err
	}
	logger.Debug().Msg("initialized otel sdk")

	logger = logger.With().
		Str(constants.KEY_PROCESS, "initializing storage").
		Str(constants.KEY_STORAGE_DRIVER, cfg.Storage.Driver).
		Logger()
	logger.Debug().Msg("initializing storage")
	store, closeStore, err := storage.New(c, cfg)
	if err != nil {
		err = fmt.Errorf("failed initializing storage with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		_ = otel.ShutdownOtel(c, otelShutdowns)
		return c, nil, err
	}
	logger.Debug().Msg("initialized storage")

	app := &App{
		Config:        cfg,
		Store:         store,
		Session:       session.New(store),
		closeStore:    closeStore,
		otelShutdowns: otelShutdowns,
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "starting session").Logger()
	logger.Debug().Msg("starting session")
	if err = app.Session.Start(c); err != nil {
		err = fmt.Errorf("failed starting session with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		_ = app.Close(c)
		return c, nil, err
	}
	logger.Debug().Msg("started session")

	app.API = apiclient.New(cfg.Api.BaseURL, cfg.Api.Timeout, app.Session)

	return c, app, nil
}

// Close releases the store and flushes telemetry.
func (a *App) Close(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "app Close").
		Logger()

	var errs error
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed closing storage with error=%w", err))
		}
	}
	if err := otel.ShutdownOtel(c, a.otelShutdowns); err != nil {
		errs = errors.Join(errs, fmt.Errorf("failed shutting down otel with error=%w", err))
	}
	if errs != nil {
		logger.Error().Err(errs).Msg(errs.Error())
	}
	return errs
}

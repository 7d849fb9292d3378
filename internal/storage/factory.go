package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/restaurant/internal/config"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/internal/infra"
	"github.com/Alturino/restaurant/internal/otel"
)

// CloseFunc releases whatever connection a backend holds.
type CloseFunc func() error

func noopClose() error { return nil }

// InstallationID returns the configured id, or one derived from namespace so
// the same installation keeps addressing the same rows across runs.
func InstallationID(cfg config.Storage) (uuid.UUID, error) {
	if cfg.InstallationID == "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(cfg.Namespace)), nil
	}
	id, err := uuid.Parse(cfg.InstallationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing installation id %q with error=%w", cfg.InstallationID, err)
	}
	return id, nil
}

// New builds the Store selected by storage.driver.
func New(c context.Context, cfg *config.Config) (Store, CloseFunc, error) {
	c, span := otel.Tracer.Start(c, "storage New")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "storage New").
		Str(constants.KEY_STORAGE_DRIVER, cfg.Storage.Driver).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing store").Logger()
	logger.Info().Msg("initializing store")
	switch cfg.Storage.Driver {
	case constants.STORAGE_DRIVER_MEMORY:
		logger.Info().Msg("initialized store")
		return NewMemoryStore(), noopClose, nil
	case constants.STORAGE_DRIVER_FILE, "":
		logger.Info().Msg("initialized store")
		return NewFileStore(cfg.Storage.Path), noopClose, nil
	case constants.STORAGE_DRIVER_REDIS:
		client, err := infra.NewCacheClient(c, cfg.Cache)
		if err != nil {
			err = fmt.Errorf("failed initializing redis store with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, nil, err
		}
		logger.Info().Msg("initialized store")
		return NewRedisStore(client, cfg.Storage.Namespace), client.Close, nil
	case constants.STORAGE_DRIVER_POSTGRES:
		installationID, err := InstallationID(cfg.Storage)
		if err != nil {
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, nil, err
		}
		pool, err := infra.NewDatabaseClient(c, cfg.Database)
		if err != nil {
			err = fmt.Errorf("failed initializing postgres store with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, nil, err
		}
		if err = infra.Migrate(c, pool, Migrations, "migrations"); err != nil {
			pool.Close()
			err = fmt.Errorf("failed migrating postgres store with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, nil, err
		}
		logger.Info().Str("installationId", installationID.String()).Msg("initialized store")
		return NewPostgresStore(pool, installationID), func() error { pool.Close(); return nil }, nil
	default:
		err := fmt.Errorf("failed initializing store with error=unknown driver %q", cfg.Storage.Driver)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, nil, err
	}
}

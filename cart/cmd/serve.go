package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/restaurant/cart/internal/controller"
	"github.com/Alturino/restaurant/cart/internal/metrics"
	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/internal/middleware"
)

const PATH_METRICS = "/metrics"

func newServeCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cart over HTTP for a web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_CART_SERVER)
			if err != nil {
				return err
			}
			defer a.Close(c)
			return RunCartServer(c, a)
		},
	}
}

// NewRouter wires the cart endpoints and /metrics behind the middleware
// chain.
func NewRouter(c context.Context, a *app.App) (*mux.Router, error) {
	m := metrics.New()
	store, err := NewCartStore(c, a, m)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_CART_SERVER),
		middleware.Logging,
		middleware.RecoverPanic,
		middleware.Auth,
	)
	router.Handle(PATH_METRICS, m.Handler()).Methods(http.MethodGet)
	controller.AttachCartController(router, store)
	return router, nil
}

// RunCartServer serves until c is canceled.
func RunCartServer(c context.Context, a *app.App) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_CART_SERVER).
		Str(constants.KEY_TAG, "main RunCartServer").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	c = logger.WithContext(c)
	router, err := NewRouter(c, a)
	if err != nil {
		err = fmt.Errorf("failed initializing router with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Application.Host, a.Config.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	serveErr := make(chan error, 1)
	go func() {
		logger := logger.With().Str(constants.KEY_PROCESS, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			logger.Error().Err(err).Msg(err.Error())
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err = <-serveErr:
		return err
	case <-c.Done():
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "shutting down http server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 10*time.Second)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("shutdown http server")

	return <-serveErr
}

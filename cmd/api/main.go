// Command api runs the read-only deck API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/obolabs/obo-server/internal/config"
	"github.com/obolabs/obo-server/internal/database"
	"github.com/obolabs/obo-server/internal/handler"
	"github.com/obolabs/obo-server/internal/logger"
	"github.com/obolabs/obo-server/internal/middleware"
	"github.com/obolabs/obo-server/internal/repository"
	"github.com/obolabs/obo-server/internal/router"
	"github.com/obolabs/obo-server/internal/server"
	"github.com/obolabs/obo-server/internal/service"
)

// shutdownTimeout bounds how long in-flight requests may take to drain
// after a termination signal.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Logging)

	if err := run(cfg, &log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, log *zerolog.Logger) error {
	if cfg.Database.Migrate {
		if err := database.Migrate(context.Background(), log, cfg); err != nil {
			return err
		}
	}

	s, err := server.New(cfg, log)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(s.DB)
	services := service.NewServices(s, repos)
	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	s.SetupHTTPServer(router.New(s, middlewares, handlers))

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		// The listener failed before any signal arrived; still release
		// the pool and the cache client.
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := s.Shutdown(ctx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("shutdown after listen failure")
		}
		return err

	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

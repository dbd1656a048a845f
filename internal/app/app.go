// Package app wires the pieces shared by the bot and the web server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/config"
	"github.com/aliskhannn/api-learning-hub/internal/infra/postgres"
	"github.com/aliskhannn/api-learning-hub/internal/infra/sqlite"
	"github.com/aliskhannn/api-learning-hub/internal/repository"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Content is the read-only learning material.
type Content struct {
	Bank  *repository.QuestionBank
	Cards *repository.CardRepository
}

// LoadContent loads the question bank and the flashcard deck.
func LoadContent(cfg config.Quiz) (*Content, error) {
	bank, err := repository.NewQuestionBank(cfg.QuestionsPath)
	if err != nil {
		return nil, err
	}

	cards, err := repository.NewCardRepository(cfg.CardsPath)
	if err != nil {
		return nil, err
	}

	return &Content{Bank: bank, Cards: cards}, nil
}

// OpenPreferences opens the configured preferences store. The returned
// function releases the underlying database.
func OpenPreferences(ctx context.Context, cfg config.DB, logger *zap.Logger) (service.PreferencesRepository, func(), error) {
	switch cfg.Driver {
	case "postgres":
		dsn, err := cfg.DSN()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.MaxConnections),
			MaxConnLifetime: cfg.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}

		logger.Info("using postgres preferences store")
		return repository.NewPreferencesRepository(pool, postgres.NewTransactor(pool)), pool.Close, nil

	case "sqlite", "":
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using sqlite preferences store")
		return repository.NewSQLPreferencesRepository(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// MetricsServer serves /metrics and /healthz on addr.
func MetricsServer(addr string, metrics http.Handler) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", metrics)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("http server stopped", zap.String("addr", srv.Addr))
	return nil
}

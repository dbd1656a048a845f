package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/api-learning-hub/internal/app"
	"github.com/aliskhannn/api-learning-hub/internal/config"
	"github.com/aliskhannn/api-learning-hub/internal/delivery/web"
	"github.com/aliskhannn/api-learning-hub/internal/logger"
	"github.com/aliskhannn/api-learning-hub/internal/metrics"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	content, err := app.LoadContent(cfg.Quiz)
	if err != nil {
		lg.Fatal("failed to load content", zap.Error(err))
	}

	prefsRepo, closeDB, err := app.OpenPreferences(ctx, cfg.DB, lg)
	if err != nil {
		lg.Fatal("failed to open preferences store", zap.Error(err))
	}
	defer closeDB()

	m := metrics.New()

	h := web.NewHandler(
		lg,
		content.Bank,
		service.NewCardService(content.Cards),
		service.NewPreferencesService(prefsRepo, content.Cards),
		m,
		web.Options{
			CountOptions:   cfg.Quiz.CountOptions,
			DefaultCount:   cfg.Quiz.DefaultCount,
			TickInterval:   cfg.Quiz.TickInterval,
			Particles:      cfg.Particles.Simulation(),
			FrameInterval:  cfg.HTTP.FrameInterval,
			ResizeDebounce: cfg.Particles.ResizeDebounce,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		},
	)
	m.RegisterSessionGauge("web", h.Sessions().Len)

	sweeper := service.NewSessionSweeper(cfg.Quiz.SweepSchedule, cfg.Quiz.SessionTTL, lg)
	sweeper.Register("web", h.Sessions())

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           web.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Serve(ctx, srv, cfg.HTTP.ShutdownTimeout, lg) })
	g.Go(func() error { return sweeper.Start(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("server stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}

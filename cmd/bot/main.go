package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/api-learning-hub/internal/app"
	"github.com/aliskhannn/api-learning-hub/internal/config"
	"github.com/aliskhannn/api-learning-hub/internal/delivery/telegram"
	"github.com/aliskhannn/api-learning-hub/internal/logger"
	"github.com/aliskhannn/api-learning-hub/internal/metrics"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal("TELEGRAM_API_TOKEN: ", err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Take a quiz"},
		{Command: "cards", Description: "Browse flashcards"},
		{Command: "random", Description: "Show a random flashcard"},
		{Command: "search", Description: "Search flashcards (usage: /search patch)"},
		{Command: "bookmarks", Description: "Your bookmarked flashcards"},
		{Command: "achievements", Description: "Your achievements"},
		{Command: "settings", Description: "Settings"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

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

	handler := telegram.NewHandler(
		bot,
		lg,
		content.Bank,
		service.NewCardService(content.Cards),
		service.NewPreferencesService(prefsRepo, content.Cards),
		telegram.Options{
			CountOptions: cfg.Quiz.CountOptions,
			DefaultCount: cfg.Quiz.DefaultCount,
			Observer:     m,
		},
	)
	m.RegisterSessionGauge("telegram", handler.Sessions().Len)

	sweeper := service.NewSessionSweeper(cfg.Quiz.SweepSchedule, cfg.Quiz.SessionTTL, lg)
	sweeper.Register("telegram", handler.Sessions())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(ctx) })
	g.Go(func() error { return sweeper.Start(ctx) })
	if cfg.Telegram.MetricsAddr != "" {
		g.Go(func() error {
			return app.Serve(ctx, app.MetricsServer(cfg.Telegram.MetricsAddr, m.Handler()), cfg.HTTP.ShutdownTimeout, lg)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}

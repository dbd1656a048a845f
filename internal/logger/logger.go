package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/config"
)

// New builds the application logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch cfg.Env {
	case "production":
		return zap.NewProduction()
	case "test":
		return zap.NewNop(), nil
	default:
		return zap.NewDevelopment()
	}
}

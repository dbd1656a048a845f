package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

// BotAPI is the subset of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type QuestionBank interface {
	service.QuestionSource
	Size(level entities.Level) int
}

type CardService interface {
	GetByIndex(ctx context.Context, index int) (entities.Card, error)
	GetByCategory(ctx context.Context, category string) ([]entities.Card, error)
	GetRandom(ctx context.Context) (entities.Card, error)
	Search(ctx context.Context, query string) ([]entities.Card, error)
}

type PreferencesService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.Preferences, error)
	ToggleDarkMode(ctx context.Context, userID int64) (bool, error)
	ToggleBookmark(ctx context.Context, userID int64, cardIndex int) (bool, []entities.Achievement, error)
	Bookmarks(ctx context.Context, userID int64) ([]entities.Card, error)
	Achievements(ctx context.Context, userID int64) ([]service.AchievementStatus, error)
	RecordQuiz(ctx context.Context, userID int64, results entities.QuizResults) ([]entities.Achievement, error)
}

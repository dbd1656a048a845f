package web

import (
	"context"
	"net/http"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/repository"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

type QuestionBank interface {
	service.QuestionSource
	Levels() []repository.LevelInfo
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

type Metrics interface {
	service.QuizObserver
	FrameSent()
	StreamOpened(stream string) func()
	Handler() http.Handler
}

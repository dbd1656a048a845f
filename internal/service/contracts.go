package service

import (
	"context"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// QuestionSource supplies the questions of a level in authoring order.
type QuestionSource interface {
	GetQuestions(ctx context.Context, level entities.Level) ([]entities.Question, error)
}

type CardRepository interface {
	GetAll(ctx context.Context) ([]entities.Card, error)
	GetByIndex(ctx context.Context, index int) (entities.Card, error)
	GetByCategory(ctx context.Context, category entities.CardCategory) ([]entities.Card, error)
	GetRandom(ctx context.Context) (entities.Card, error)
	Search(ctx context.Context, query string) ([]entities.Card, error)
}

type PreferencesRepository interface {
	Create(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entities.Preferences, error)
	Modify(ctx context.Context, userID int64, fn func(p *entities.Preferences) error) (*entities.Preferences, error)
}

// QuizObserver receives quiz lifecycle events. Calls are made outside the engine lock.
type QuizObserver interface {
	QuizStarted(level entities.Level, questions int)
	AnswerRecorded(level entities.Level, correct bool)
	QuizFinished(results entities.QuizResults)
	QuizAbandoned(level entities.Level)
}

type nopObserver struct{}

func (nopObserver) QuizStarted(entities.Level, int)     {}
func (nopObserver) AnswerRecorded(entities.Level, bool) {}
func (nopObserver) QuizFinished(entities.QuizResults)   {}
func (nopObserver) QuizAbandoned(entities.Level)        {}

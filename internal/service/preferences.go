package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/repository"
)

// PreferencesService manages theme, bookmarks and achievements per user.
type PreferencesService struct {
	repository PreferencesRepository
	cards      CardRepository
}

func NewPreferencesService(repository PreferencesRepository, cards CardRepository) *PreferencesService {
	return &PreferencesService{repository: repository, cards: cards}
}

func (s *PreferencesService) GetOrCreate(ctx context.Context, userID int64) (*entities.Preferences, error) {
	p, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return p, nil
}

// ToggleDarkMode flips the theme flag and returns the new value.
func (s *PreferencesService) ToggleDarkMode(ctx context.Context, userID int64) (bool, error) {
	p, err := s.modify(ctx, userID, func(p *entities.Preferences) error {
		p.DarkMode = !p.DarkMode
		return nil
	})
	if err != nil {
		return false, err
	}
	return p.DarkMode, nil
}

// ToggleBookmark adds or removes a card from the user's bookmarks. It
// reports whether the card is now bookmarked and any achievement it unlocked.
func (s *PreferencesService) ToggleBookmark(
	ctx context.Context, userID int64, cardIndex int,
) (bool, []entities.Achievement, error) {
	if _, err := s.cards.GetByIndex(ctx, cardIndex); err != nil {
		return false, nil, fmt.Errorf("toggle bookmark: %w", err)
	}

	var (
		bookmarked bool
		unlocked   []entities.Achievement
	)
	_, err := s.modify(ctx, userID, func(p *entities.Preferences) error {
		bookmarked = p.ToggleBookmark(cardIndex)
		unlocked = unlockAll(p, EarnedForBookmarks(len(p.Bookmarks)))
		return nil
	})
	if err != nil {
		return false, nil, err
	}

	return bookmarked, unlocked, nil
}

// Bookmarks returns the user's bookmarked cards in bookmark order.
func (s *PreferencesService) Bookmarks(ctx context.Context, userID int64) ([]entities.Card, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Card, 0, len(p.Bookmarks))
	for _, i := range p.Bookmarks {
		c, err := s.cards.GetByIndex(ctx, i)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// RecordQuiz unlocks the achievements earned by a finished quiz and returns the new ones.
func (s *PreferencesService) RecordQuiz(
	ctx context.Context, userID int64, results entities.QuizResults,
) ([]entities.Achievement, error) {
	var unlocked []entities.Achievement
	_, err := s.modify(ctx, userID, func(p *entities.Preferences) error {
		unlocked = unlockAll(p, EarnedForResults(results))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

// Achievements lists the catalog with the user's unlock state.
func (s *PreferencesService) Achievements(ctx context.Context, userID int64) ([]AchievementStatus, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AchievementStatuses(p), nil
}

func (s *PreferencesService) modify(
	ctx context.Context, userID int64, fn func(p *entities.Preferences) error,
) (*entities.Preferences, error) {
	if err := s.repository.Create(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.repository.Modify(ctx, userID, fn)
	if err != nil {
		return nil, fmt.Errorf("modify preferences: %w", err)
	}
	return p, nil
}

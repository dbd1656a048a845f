package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// CardService serves the flashcard deck.
type CardService struct {
	repository CardRepository
}

func NewCardService(repository CardRepository) *CardService {
	return &CardService{repository: repository}
}

func (s *CardService) GetAll(ctx context.Context) ([]entities.Card, error) {
	return s.repository.GetAll(ctx)
}

func (s *CardService) GetByIndex(ctx context.Context, index int) (entities.Card, error) {
	return s.repository.GetByIndex(ctx, index)
}

// GetByCategory parses a category name and filters the deck. An empty name means "all".
func (s *CardService) GetByCategory(ctx context.Context, category string) ([]entities.Card, error) {
	c := entities.CardCategory(category)
	if category == "" {
		c = entities.CategoryAll
	}
	cards, err := s.repository.GetByCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("get cards by category: %w", err)
	}
	return cards, nil
}

func (s *CardService) GetRandom(ctx context.Context) (entities.Card, error) {
	return s.repository.GetRandom(ctx)
}

func (s *CardService) Search(ctx context.Context, query string) ([]entities.Card, error) {
	return s.repository.Search(ctx, query)
}

// GetMany resolves card indexes, skipping ones no longer in the deck.
func (s *CardService) GetMany(ctx context.Context, indexes []int) ([]entities.Card, error) {
	out := make([]entities.Card, 0, len(indexes))
	for _, i := range indexes {
		c, err := s.repository.GetByIndex(ctx, i)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

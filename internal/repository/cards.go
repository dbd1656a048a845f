package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/api-learning-hub/assets"
	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

var ErrCardNotFound = errors.New("card not found")

// CardRepository provides read access to the flashcard deck.
type CardRepository struct {
	cards []entities.Card
}

// NewCardRepository loads the deck from path, or from the embedded asset when path is empty.
func NewCardRepository(path string) (*CardRepository, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = fs.ReadFile(assets.Data, assets.CardsFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}

	cards, err := parseCards(data)
	if err != nil {
		return nil, err
	}

	return &CardRepository{cards: cards}, nil
}

func parseCards(data []byte) ([]entities.Card, error) {
	var wrapper struct {
		Cards []entities.Card `yaml:"cards"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cards YAML: %w", err)
	}

	for i := range wrapper.Cards {
		c := &wrapper.Cards[i]
		c.Index = i
		if c.Category == entities.CategoryAll || !c.Category.Valid() {
			return nil, fmt.Errorf("card %d: %w: %q", i, entities.ErrInvalidCategory, c.Category)
		}
	}

	return wrapper.Cards, nil
}

// GetAll returns every card in deck order.
func (r *CardRepository) GetAll(_ context.Context) ([]entities.Card, error) {
	out := make([]entities.Card, len(r.cards))
	copy(out, r.cards)
	return out, nil
}

// GetByIndex returns the card at a deck position.
func (r *CardRepository) GetByIndex(_ context.Context, index int) (entities.Card, error) {
	if index < 0 || index >= len(r.cards) {
		return entities.Card{}, ErrCardNotFound
	}
	return r.cards[index], nil
}

// GetByCategory returns cards of one category; "all" returns the whole deck.
func (r *CardRepository) GetByCategory(ctx context.Context, category entities.CardCategory) ([]entities.Card, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidCategory, category)
	}
	if category == entities.CategoryAll {
		return r.GetAll(ctx)
	}

	var out []entities.Card
	for _, c := range r.cards {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetRandom returns a random card.
func (r *CardRepository) GetRandom(_ context.Context) (entities.Card, error) {
	if len(r.cards) == 0 {
		return entities.Card{}, ErrCardNotFound
	}
	return r.cards[rand.Intn(len(r.cards))], nil
}

// Search returns cards whose question or answer contains query, case-insensitively.
func (r *CardRepository) Search(_ context.Context, query string) ([]entities.Card, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var out []entities.Card
	for _, c := range r.cards {
		if strings.Contains(strings.ToLower(c.Question), q) ||
			strings.Contains(strings.ToLower(c.Answer), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Count returns the deck size.
func (r *CardRepository) Count() int {
	return len(r.cards)
}

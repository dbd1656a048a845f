package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// QuestionSelector picks random subsets of a level's questions.
// It is safe for concurrent use.
type QuestionSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector seeded from the clock.
func NewQuestionSelector() *QuestionSelector {
	return NewQuestionSelectorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionSelectorWithRand creates a QuestionSelector over a given source.
func NewQuestionSelectorWithRand(rng *rand.Rand) *QuestionSelector {
	return &QuestionSelector{rng: rng}
}

// Select returns the first min(count, len(bank)) questions of a uniform
// permutation of bank. The input slice is not modified.
func (s *QuestionSelector) Select(bank []entities.Question, count int) []entities.Question {
	return takeFirst(s.shuffled(bank), count)
}

// shuffled returns a shuffled copy of the input slice.
func (s *QuestionSelector) shuffled(in []entities.Question) []entities.Question {
	out := append([]entities.Question(nil), in...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// takeFirst returns the first n elements of qs, or the whole slice if it is shorter.
func takeFirst(qs []entities.Question, n int) []entities.Question {
	if n <= 0 {
		return nil
	}
	if len(qs) <= n {
		return qs
	}
	return qs[:n]
}

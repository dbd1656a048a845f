package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/aliskhannn/api-learning-hub/assets"
	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// LevelInfo describes one level of the bank.
type LevelInfo struct {
	Level entities.Level `json:"level"`
	Title string         `json:"title"`
	Size  int            `json:"size"`
}

// QuestionBank is the immutable catalog of quiz questions grouped by level.
// It is loaded once and never mutated afterwards.
type QuestionBank struct {
	levels map[entities.Level][]entities.Question
}

// NewQuestionBank loads the bank from path, or from the embedded asset when path is empty.
func NewQuestionBank(path string) (*QuestionBank, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = fs.ReadFile(assets.Data, assets.QuestionsFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	return ParseQuestionBank(data)
}

// ParseQuestionBank decodes and validates a JSON question bank.
func ParseQuestionBank(data []byte) (*QuestionBank, error) {
	var wrapper struct {
		Levels map[string][]entities.Question `json:"levels"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	levels := make(map[entities.Level][]entities.Question, len(wrapper.Levels))
	for name, questions := range wrapper.Levels {
		level, err := entities.ParseLevel(name)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, fmt.Errorf("level %s has no questions", level)
		}
		for _, q := range questions {
			if err := q.Validate(); err != nil {
				return nil, fmt.Errorf("level %s: %w", level, err)
			}
		}
		levels[level] = questions
	}

	for _, level := range entities.Levels {
		if _, ok := levels[level]; !ok {
			return nil, fmt.Errorf("level %s is missing", level)
		}
	}

	return &QuestionBank{levels: levels}, nil
}

// GetQuestions returns a copy of the questions of a level in authoring order.
func (b *QuestionBank) GetQuestions(_ context.Context, level entities.Level) ([]entities.Question, error) {
	questions, ok := b.levels[level]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidLevel, level)
	}

	out := make([]entities.Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out, nil
}

// Size returns the number of questions of a level, or 0 for an unknown level.
func (b *QuestionBank) Size(level entities.Level) int {
	return len(b.levels[level])
}

// Levels lists every level with its bank size.
func (b *QuestionBank) Levels() []LevelInfo {
	out := make([]LevelInfo, 0, len(entities.Levels))
	for _, level := range entities.Levels {
		out = append(out, LevelInfo{Level: level, Title: level.Title(), Size: len(b.levels[level])})
	}
	return out
}

// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// OptionsPerQuestion is the fixed number of answer options of every question.
const OptionsPerQuestion = 4

var ErrInvalidLevel = errors.New("invalid quiz level")

// Level is the difficulty a question bank is grouped by.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists recognized levels from easiest to hardest.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel converts user input into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// Valid reports whether l is one of the recognized levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// Title returns the display name, e.g. "Beginner".
func (l Level) Title() string {
	if l == "" {
		return ""
	}
	s := string(l)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Question is a single multiple choice quiz question.
type Question struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`       // exactly OptionsPerQuestion entries
	CorrectIndex int      `json:"correct_index"` // index into Options
	Explanation  string   `json:"explanation"`
}

// Validate checks the question shape.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("question %q: expected %d options, got %d", q.Text, OptionsPerQuestion, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range", q.Text, q.CorrectIndex)
	}
	return nil
}

// OptionLetter returns the display letter of an option index (A, B, C, D).
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// Package assets bundles the static learning content shipped with the binaries.
package assets

import "embed"

// Data holds the quiz question bank and the flashcard deck.
//
//go:embed data/questions.json data/cards.yaml
var Data embed.FS

const (
	QuestionsFile = "data/questions.json"
	CardsFile     = "data/cards.yaml"
)

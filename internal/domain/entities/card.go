package entities

import "errors"

var ErrInvalidCategory = errors.New("invalid card category")

// CardCategory groups flashcards by topic.
type CardCategory string

const (
	CategoryAll      CardCategory = "all"
	CategoryMethods  CardCategory = "methods"
	CategoryStatus   CardCategory = "status"
	CategoryAuth     CardCategory = "auth"
	CategoryAdvanced CardCategory = "advanced"
)

// CardCategories lists the concrete categories in display order.
var CardCategories = []CardCategory{CategoryMethods, CategoryStatus, CategoryAuth, CategoryAdvanced}

// Title returns the human readable category name.
func (c CardCategory) Title() string {
	switch c {
	case CategoryAll:
		return "All"
	case CategoryMethods:
		return "HTTP Methods"
	case CategoryStatus:
		return "Status Codes"
	case CategoryAuth:
		return "Authentication"
	case CategoryAdvanced:
		return "Advanced"
	default:
		return string(c)
	}
}

// Valid reports whether c is "all" or a concrete category.
func (c CardCategory) Valid() bool {
	if c == CategoryAll {
		return true
	}
	for _, known := range CardCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Card is a question/answer flashcard. Index is its position in the deck
// and is what bookmarks refer to.
type Card struct {
	Index    int          `yaml:"-" json:"index"`
	Category CardCategory `yaml:"category" json:"category"`
	Question string       `yaml:"question" json:"question"`
	Answer   string       `yaml:"answer" json:"answer"`
}

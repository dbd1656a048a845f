package service

import "github.com/aliskhannn/api-learning-hub/internal/domain/entities"

// Keyboard keys understood by HandleKey.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyEnter      = "Enter"
)

// HandleKey maps keyboard shortcuts onto engine operations: "1".."4" answer,
// ArrowRight or Enter go forward, ArrowLeft goes back. Keys whose control is
// disabled in the current view and unknown keys are ignored.
func (e *QuizEngine) HandleKey(key string) (QuizView, error) {
	v := e.View()

	switch key {
	case "1", "2", "3", "4":
		if v.State != entities.QuizInProgress || v.Answered {
			return v, nil
		}
		return e.SelectAnswer(int(key[0] - '1'))

	case KeyArrowRight, KeyEnter:
		if !v.CanNext {
			return v, nil
		}
		return e.Next()

	case KeyArrowLeft:
		if !v.CanPrevious {
			return v, nil
		}
		return e.Previous()

	default:
		return v, nil
	}
}

package entities

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// QuizState is the lifecycle state of a quiz engine.
type QuizState string

const (
	QuizIdle       QuizState = "idle"
	QuizInProgress QuizState = "in_progress"
	QuizFinished   QuizState = "finished"
	QuizReviewing  QuizState = "reviewing" // read-only walk-through of a finished session
)

// QuizSession is one attempt at a quiz. It is replaced wholesale on every start.
type QuizSession struct {
	ID           uuid.UUID
	Level        Level
	Questions    []Question
	CurrentIndex int                // 0 <= CurrentIndex < len(Questions)
	Score        int                // number of correct answers so far
	Answers      map[int]QuizAnswer // sparse, keyed by question index
	StartedAt    time.Time
	EndedAt      *time.Time // nil until the session is finished
}

// NewQuizSession creates a session over already selected questions.
func NewQuizSession(level Level, questions []Question, startedAt time.Time) *QuizSession {
	return &QuizSession{
		ID:        uuid.New(),
		Level:     level,
		Questions: questions,
		Answers:   make(map[int]QuizAnswer, len(questions)),
		StartedAt: startedAt,
	}
}

// QuizAnswer records the choice made for one question.
type QuizAnswer struct {
	SelectedIndex int
	CorrectIndex  int
	IsCorrect     bool
}

// Total returns the number of questions in the session.
func (qs *QuizSession) Total() int {
	return len(qs.Questions)
}

// Current returns the question at CurrentIndex.
func (qs *QuizSession) Current() Question {
	return qs.Questions[qs.CurrentIndex]
}

// IsLast reports whether CurrentIndex points at the last question.
func (qs *QuizSession) IsLast() bool {
	return qs.CurrentIndex == len(qs.Questions)-1
}

// AnswerAt returns the stored answer for a question index.
func (qs *QuizSession) AnswerAt(i int) (QuizAnswer, bool) {
	a, ok := qs.Answers[i]
	return a, ok
}

// RecordAnswer stores the answer for the current question and updates the score.
// A question that already has an answer keeps it.
func (qs *QuizSession) RecordAnswer(selected int) (QuizAnswer, bool) {
	if a, ok := qs.Answers[qs.CurrentIndex]; ok {
		return a, false
	}

	q := qs.Current()
	a := QuizAnswer{
		SelectedIndex: selected,
		CorrectIndex:  q.CorrectIndex,
		IsCorrect:     selected == q.CorrectIndex,
	}
	qs.Answers[qs.CurrentIndex] = a
	if a.IsCorrect {
		qs.Score++
	}

	return a, true
}

// Complete marks the session as finished at the given time.
func (qs *QuizSession) Complete(now time.Time) {
	qs.EndedAt = &now
}

// Elapsed returns the time spent so far, or the final duration once finished.
func (qs *QuizSession) Elapsed(now time.Time) time.Duration {
	end := now
	if qs.EndedAt != nil {
		end = *qs.EndedAt
	}
	d := end.Sub(qs.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// FeedbackTier classifies a final percentage.
type FeedbackTier string

const (
	TierExcellent    FeedbackTier = "excellent"
	TierGood         FeedbackTier = "good"
	TierAverage      FeedbackTier = "average"
	TierKeepLearning FeedbackTier = "keep_learning"
)

// TierFor selects the feedback tier for a percentage in [0, 100].
func TierFor(percentage int) FeedbackTier {
	switch {
	case percentage >= 90:
		return TierExcellent
	case percentage >= 70:
		return TierGood
	case percentage >= 50:
		return TierAverage
	default:
		return TierKeepLearning
	}
}

// Title returns the headline shown for the tier.
func (t FeedbackTier) Title() string {
	switch t {
	case TierExcellent:
		return "Outstanding! 🏆"
	case TierGood:
		return "Great Job! ⭐"
	case TierAverage:
		return "Good Effort! 👍"
	default:
		return "Keep Learning! 📚"
	}
}

// Message returns the encouragement text shown for the tier.
func (t FeedbackTier) Message() string {
	switch t {
	case TierExcellent:
		return "Excellent work! You have mastered this topic. You're ready for real-world API development!"
	case TierGood:
		return "Very good performance! You have a solid understanding. Review the missed questions to perfect your knowledge."
	case TierAverage:
		return "You're on the right track, but there's room for improvement. Review the concepts and try again!"
	default:
		return "Don't worry! Learning takes time. Review the materials, practice more, and try the quiz again."
	}
}

// QuizResults is the summary of a finished session.
type QuizResults struct {
	Level      Level
	Score      int
	Total      int
	Percentage int
	Elapsed    time.Duration
	Tier       FeedbackTier
}

// NewQuizResults computes results for a finished session.
func NewQuizResults(qs *QuizSession) QuizResults {
	total := qs.Total()
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(qs.Score) / float64(total)))
	}

	var elapsed time.Duration
	if qs.EndedAt != nil {
		elapsed = qs.EndedAt.Sub(qs.StartedAt)
	}

	return QuizResults{
		Level:      qs.Level,
		Score:      qs.Score,
		Total:      total,
		Percentage: pct,
		Elapsed:    elapsed,
		Tier:       TierFor(pct),
	}
}

// Fraction formats the score as "score/total".
func (r QuizResults) Fraction() string {
	return fmt.Sprintf("%d/%d", r.Score, r.Total)
}

// Incorrect returns the number of questions not answered correctly.
func (r QuizResults) Incorrect() int {
	return r.Total - r.Score
}

// FormatClock renders a duration as m:ss, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

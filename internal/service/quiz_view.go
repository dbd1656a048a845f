package service

import (
	"fmt"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// OptionView is one answer option as it should be rendered.
type OptionView struct {
	Letter    string `json:"letter"`
	Text      string `json:"text"`
	Selected  bool   `json:"selected"`
	Correct   bool   `json:"correct"`
	Incorrect bool   `json:"incorrect"`
	Disabled  bool   `json:"disabled"`
}

// ResultsView summarizes a finished session.
type ResultsView struct {
	Percentage  int                   `json:"percentage"`
	Fraction    string                `json:"fraction"`
	Correct     int                   `json:"correct"`
	Incorrect   int                   `json:"incorrect"`
	ElapsedText string                `json:"elapsed_text"`
	Tier        entities.FeedbackTier `json:"tier"`
	Title       string                `json:"title"`
	Message     string                `json:"message"`
}

// QuizView is the render-ready projection of an engine.
type QuizView struct {
	State       entities.QuizState `json:"state"`
	SessionID   string             `json:"session_id,omitempty"`
	Level       entities.Level     `json:"level,omitempty"`
	Title       string             `json:"title,omitempty"`
	Index       int                `json:"index"`
	Number      int                `json:"number"`
	Total       int                `json:"total"`
	Question    string             `json:"question,omitempty"`
	Options     []OptionView       `json:"options,omitempty"`
	Explanation string             `json:"explanation,omitempty"`
	Answered    bool               `json:"answered"`
	Replay      bool               `json:"replay"`
	Score       int                `json:"score"`
	ScoreText   string             `json:"score_text"`
	ElapsedText string             `json:"elapsed_text"`
	Progress    int                `json:"progress"`
	CanPrevious bool               `json:"can_previous"`
	CanNext     bool               `json:"can_next"`
	IsLast      bool               `json:"is_last"`
	Results     *ResultsView       `json:"results,omitempty"`
}

func (e *QuizEngine) viewLocked() QuizView {
	if e.state == entities.QuizIdle || e.session == nil {
		return QuizView{State: entities.QuizIdle, ScoreText: "0/0", ElapsedText: entities.FormatClock(0)}
	}

	s := e.session
	v := QuizView{
		State:       e.state,
		SessionID:   s.ID.String(),
		Level:       s.Level,
		Title:       s.Level.Title() + " Quiz",
		Total:       s.Total(),
		Score:       s.Score,
		ScoreText:   fmt.Sprintf("%d/%d", s.Score, len(s.Answers)),
		ElapsedText: entities.FormatClock(s.Elapsed(e.now())),
	}

	if e.state == entities.QuizFinished || e.state == entities.QuizReviewing {
		v.Results = newResultsView(entities.NewQuizResults(s))
	}
	if e.state == entities.QuizFinished {
		return v
	}

	q := s.Current()
	answer, answered := s.AnswerAt(s.CurrentIndex)
	replay := answered || e.state == entities.QuizReviewing

	v.Index = s.CurrentIndex
	v.Number = s.CurrentIndex + 1
	v.Question = q.Text
	v.Answered = answered
	v.Replay = replay
	v.Options = optionViews(q, answer, answered, replay)
	v.Progress = v.Number * 100 / v.Total
	v.IsLast = s.IsLast()
	v.CanPrevious = s.CurrentIndex > 0
	v.CanNext = e.state == entities.QuizReviewing || answered
	if replay {
		v.Explanation = q.Explanation
	}

	return v
}

// optionViews renders the options of q. A replayed question is always
// disabled and shows the correct option, plus the stored choice when there is one.
func optionViews(q entities.Question, answer entities.QuizAnswer, answered, replay bool) []OptionView {
	out := make([]OptionView, len(q.Options))
	for i, text := range q.Options {
		o := OptionView{Letter: entities.OptionLetter(i), Text: text}
		if replay {
			o.Disabled = true
			o.Correct = i == q.CorrectIndex
			if answered && i == answer.SelectedIndex {
				o.Selected = true
				o.Incorrect = !answer.IsCorrect
			}
		}
		out[i] = o
	}
	return out
}

func newResultsView(r entities.QuizResults) *ResultsView {
	return &ResultsView{
		Percentage:  r.Percentage,
		Fraction:    r.Fraction(),
		Correct:     r.Score,
		Incorrect:   r.Incorrect(),
		ElapsedText: entities.FormatClock(r.Elapsed),
		Tier:        r.Tier,
		Title:       r.Tier.Title(),
		Message:     r.Tier.Message(),
	}
}

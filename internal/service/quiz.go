package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

var (
	ErrInvalidCount         = errors.New("question count must be at least 1")
	ErrNoActiveSession      = errors.New("no active quiz session")
	ErrAnswerOutOfRange     = errors.New("answer index out of range")
	ErrQuitNotConfirmed     = errors.New("quit requires confirmation")
	ErrNoQuestionsAvailable = errors.New("no questions available")
)

// DefaultTickInterval is how often the elapsed time of a running quiz is refreshed.
const DefaultTickInterval = time.Second

// QuizOption configures a QuizEngine.
type QuizOption func(*QuizEngine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) QuizOption {
	return func(e *QuizEngine) { e.now = now }
}

// WithTickInterval sets the timer period. Non-positive values keep the default.
func WithTickInterval(d time.Duration) QuizOption {
	return func(e *QuizEngine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// WithSelector shares a selector between engines.
func WithSelector(s *QuestionSelector) QuizOption {
	return func(e *QuizEngine) { e.selector = s }
}

// WithObserver attaches a lifecycle observer, typically metrics.
func WithObserver(o QuizObserver) QuizOption {
	return func(e *QuizEngine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithFinishHook registers a callback run after every finished session.
func WithFinishHook(fn func(entities.QuizResults)) QuizOption {
	return func(e *QuizEngine) { e.onFinish = fn }
}

// QuizEngine owns at most one quiz session and drives it through
// Idle, InProgress, Finished and Reviewing. It is safe for concurrent use.
type QuizEngine struct {
	bank     QuestionSource
	selector *QuestionSelector
	observer QuizObserver
	onFinish func(entities.QuizResults)
	now      func() time.Time
	tick     time.Duration

	mu        sync.Mutex
	state     entities.QuizState
	session   *entities.QuizSession
	count     int // requested count, reused by Restart
	stopTimer context.CancelFunc
	subs      map[int]chan QuizView
	nextSub   int
	closed    bool
}

// NewQuizEngine creates an idle engine over a question source.
func NewQuizEngine(bank QuestionSource, opts ...QuizOption) *QuizEngine {
	e := &QuizEngine{
		bank:     bank,
		observer: nopObserver{},
		now:      time.Now,
		tick:     DefaultTickInterval,
		state:    entities.QuizIdle,
		subs:     make(map[int]chan QuizView),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selector == nil {
		e.selector = NewQuestionSelector()
	}
	return e
}

// Start begins a new session with min(count, bank size) shuffled questions
// of level. Any previous session is replaced and its timer cancelled.
func (e *QuizEngine) Start(ctx context.Context, level entities.Level, count int) (QuizView, error) {
	if count < 1 {
		return e.View(), fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if !level.Valid() {
		return e.View(), fmt.Errorf("%w: %q", entities.ErrInvalidLevel, level)
	}

	bank, err := e.bank.GetQuestions(ctx, level)
	if err != nil {
		return e.View(), fmt.Errorf("get questions: %w", err)
	}

	selected := e.selector.Select(bank, count)
	if len(selected) == 0 {
		return e.View(), ErrNoQuestionsAvailable
	}

	e.mu.Lock()
	e.cancelTimerLocked()
	e.session = entities.NewQuizSession(level, selected, e.now())
	e.count = count
	e.state = entities.QuizInProgress
	e.startTimerLocked()
	e.publishLocked()
	v := e.viewLocked()
	e.mu.Unlock()

	e.observer.QuizStarted(level, len(selected))

	return v, nil
}

// SelectAnswer records the answer for the current question. Answering an
// already answered question returns the stored answer unchanged.
func (e *QuizEngine) SelectAnswer(index int) (QuizView, error) {
	e.mu.Lock()

	if e.state != entities.QuizInProgress {
		v := e.viewLocked()
		e.mu.Unlock()
		return v, ErrNoActiveSession
	}
	if index < 0 || index >= entities.OptionsPerQuestion {
		v := e.viewLocked()
		e.mu.Unlock()
		return v, fmt.Errorf("%w: %d", ErrAnswerOutOfRange, index)
	}

	answer, recorded := e.session.RecordAnswer(index)
	level := e.session.Level
	if recorded {
		e.publishLocked()
	}
	v := e.viewLocked()
	e.mu.Unlock()

	if recorded {
		e.observer.AnswerRecorded(level, answer.IsCorrect)
	}

	return v, nil
}

// Next moves forward. While in progress it requires the current question to
// be answered and finishes the quiz from the last question. While reviewing
// it returns to the results from the last question.
func (e *QuizEngine) Next() (QuizView, error) {
	e.mu.Lock()

	var results *entities.QuizResults
	switch e.state {
	case entities.QuizIdle:
		v := e.viewLocked()
		e.mu.Unlock()
		return v, ErrNoActiveSession

	case entities.QuizInProgress:
		if _, answered := e.session.AnswerAt(e.session.CurrentIndex); !answered {
			break
		}
		if e.session.IsLast() {
			results = e.finishLocked()
		} else {
			e.session.CurrentIndex++
		}
		e.publishLocked()

	case entities.QuizReviewing:
		if e.session.IsLast() {
			e.state = entities.QuizFinished
		} else {
			e.session.CurrentIndex++
		}
		e.publishLocked()
	}

	v := e.viewLocked()
	e.mu.Unlock()

	e.notifyFinished(results)

	return v, nil
}

// Previous moves back one question. It is a no-op on the first question.
func (e *QuizEngine) Previous() (QuizView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case entities.QuizIdle:
		return e.viewLocked(), ErrNoActiveSession
	case entities.QuizInProgress, entities.QuizReviewing:
		if e.session.CurrentIndex > 0 {
			e.session.CurrentIndex--
			e.publishLocked()
		}
	}

	return e.viewLocked(), nil
}

// Finish ends the running session and computes its results.
func (e *QuizEngine) Finish() (QuizView, error) {
	e.mu.Lock()

	if e.state == entities.QuizIdle {
		v := e.viewLocked()
		e.mu.Unlock()
		return v, ErrNoActiveSession
	}

	var results *entities.QuizResults
	if e.state == entities.QuizInProgress {
		results = e.finishLocked()
		e.publishLocked()
	}
	v := e.viewLocked()
	e.mu.Unlock()

	e.notifyFinished(results)

	return v, nil
}

// Restart starts a fresh session with the same level and requested count.
func (e *QuizEngine) Restart(ctx context.Context) (QuizView, error) {
	e.mu.Lock()
	if e.session == nil {
		v := e.viewLocked()
		e.mu.Unlock()
		return v, ErrNoActiveSession
	}
	level, count := e.session.Level, e.count
	e.mu.Unlock()

	return e.Start(ctx, level, count)
}

// Review enters the read-only walk-through of a finished session from its first question.
func (e *QuizEngine) Review() (QuizView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case entities.QuizIdle:
		return e.viewLocked(), ErrNoActiveSession
	case entities.QuizFinished:
		e.state = entities.QuizReviewing
		e.session.CurrentIndex = 0
		e.publishLocked()
	}

	return e.viewLocked(), nil
}

// Quit discards the current session. It must be confirmed.
func (e *QuizEngine) Quit(confirmed bool) (QuizView, error) {
	if !confirmed {
		return e.View(), ErrQuitNotConfirmed
	}
	return e.BackToSelect(), nil
}

// BackToSelect discards any session and returns to Idle.
func (e *QuizEngine) BackToSelect() QuizView {
	e.mu.Lock()

	abandoned := e.state == entities.QuizInProgress
	var level entities.Level
	if e.session != nil {
		level = e.session.Level
	}

	e.cancelTimerLocked()
	changed := e.state != entities.QuizIdle
	e.session = nil
	e.state = entities.QuizIdle
	if changed {
		e.publishLocked()
	}
	v := e.viewLocked()
	e.mu.Unlock()

	if abandoned {
		e.observer.QuizAbandoned(level)
	}

	return v
}

// State returns the current lifecycle state.
func (e *QuizEngine) State() entities.QuizState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// View returns the current view model.
func (e *QuizEngine) View() QuizView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Close stops the timer and closes every subscription.
func (e *QuizEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimerLocked()
	e.closed = true
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
}

func (e *QuizEngine) finishLocked() *entities.QuizResults {
	e.cancelTimerLocked()
	e.session.Complete(e.now())
	e.state = entities.QuizFinished

	results := entities.NewQuizResults(e.session)
	return &results
}

func (e *QuizEngine) notifyFinished(results *entities.QuizResults) {
	if results == nil {
		return
	}
	e.observer.QuizFinished(*results)
	if e.onFinish != nil {
		e.onFinish(*results)
	}
}

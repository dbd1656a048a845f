package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

type fakeBank struct {
	levels map[entities.Level][]entities.Question
}

func (b *fakeBank) GetQuestions(_ context.Context, level entities.Level) ([]entities.Question, error) {
	qs, ok := b.levels[level]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidLevel, level)
	}
	return append([]entities.Question(nil), qs...), nil
}

func makeQuestions(prefix string, n int) []entities.Question {
	out := make([]entities.Question, n)
	for i := range out {
		out[i] = entities.Question{
			Text:         fmt.Sprintf("%s question %d", prefix, i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % entities.OptionsPerQuestion,
			Explanation:  fmt.Sprintf("%s explanation %d", prefix, i),
		}
	}
	return out
}

func newFakeBank() *fakeBank {
	return &fakeBank{levels: map[entities.Level][]entities.Question{
		entities.LevelBeginner:     makeQuestions("beginner", 10),
		entities.LevelIntermediate: makeQuestions("intermediate", 15),
		entities.LevelAdvanced:     makeQuestions("advanced", 20),
	}}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestEngine(t *testing.T, opts ...QuizOption) (*QuizEngine, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	base := []QuizOption{
		WithClock(clock.Now),
		WithTickInterval(time.Hour),
		WithSelector(NewQuestionSelectorWithRand(rand.New(rand.NewSource(1)))),
	}
	e := NewQuizEngine(newFakeBank(), append(base, opts...)...)
	t.Cleanup(e.Close)

	return e, clock
}

// wrongIndex returns an option index that is not the correct one.
func wrongIndex(q entities.Question) int {
	return (q.CorrectIndex + 1) % entities.OptionsPerQuestion
}

func TestQuizEngine_StartSelectsDistinctQuestionsFromLevel(t *testing.T) {
	bank := newFakeBank()

	for _, level := range entities.Levels {
		size := len(bank.levels[level])
		for c := 1; c <= size; c++ {
			e, _ := newTestEngine(t)

			v, err := e.Start(context.Background(), level, c)
			require.NoError(t, err)
			assert.Equal(t, entities.QuizInProgress, v.State)
			assert.Equal(t, c, v.Total)

			seen := make(map[string]bool, c)
			for _, q := range e.session.Questions {
				assert.False(t, seen[q.Text], "duplicate question %q", q.Text)
				seen[q.Text] = true
				assert.Contains(t, bank.levels[level], q)
			}
		}
	}
}

func TestQuizEngine_StartCapsAtBankSize(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, c := range []int{11, 50, 1000} {
		v, err := e.Start(context.Background(), entities.LevelBeginner, c)
		require.NoError(t, err)
		assert.Equal(t, 10, v.Total)
	}
}

func TestQuizEngine_StartValidation(t *testing.T) {
	tests := []struct {
		name    string
		level   entities.Level
		count   int
		wantErr error
	}{
		{name: "zero count", level: entities.LevelBeginner, count: 0, wantErr: ErrInvalidCount},
		{name: "negative count", level: entities.LevelBeginner, count: -3, wantErr: ErrInvalidCount},
		{name: "unknown level", level: entities.Level("expert"), count: 5, wantErr: entities.ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)

			v, err := e.Start(context.Background(), tt.level, tt.count)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, entities.QuizIdle, v.State)
			assert.Nil(t, e.stopTimer)
		})
	}
}

func TestQuestionSelector_ShuffleIsUniform(t *testing.T) {
	bank := makeQuestions("u", 4)
	selector := NewQuestionSelectorWithRand(rand.New(rand.NewSource(42)))

	const trials = 8000
	counts := make(map[string][]int, len(bank))
	for _, q := range bank {
		counts[q.Text] = make([]int, len(bank))
	}

	for i := 0; i < trials; i++ {
		for pos, q := range selector.Select(bank, len(bank)) {
			counts[q.Text][pos]++
		}
	}

	expected := trials / len(bank)
	for text, perPos := range counts {
		for pos, n := range perPos {
			assert.InDelta(t, expected, n, float64(expected)/10, "question %s at position %d", text, pos)
		}
	}
}

func TestQuestionSelector_DoesNotMutateBank(t *testing.T) {
	bank := makeQuestions("m", 10)
	original := append([]entities.Question(nil), bank...)

	selector := NewQuestionSelectorWithRand(rand.New(rand.NewSource(7)))
	for i := 0; i < 20; i++ {
		_ = selector.Select(bank, 5)
	}

	assert.Equal(t, original, bank)
	assert.Empty(t, selector.Select(bank, 0))
}

func TestQuizEngine_SelectAnswerIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)

	q := e.session.Current()

	v1, err := e.SelectAnswer(q.CorrectIndex)
	require.NoError(t, err)
	first, _ := e.session.AnswerAt(0)

	v2, err := e.SelectAnswer(wrongIndex(q))
	require.NoError(t, err)
	second, _ := e.session.AnswerAt(0)

	assert.Equal(t, 1, v1.Score)
	assert.Equal(t, v1.Score, v2.Score)
	assert.Equal(t, first, second)
	assert.True(t, second.IsCorrect)
}

func TestQuizEngine_SelectAnswerOutOfRange(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)

	for _, idx := range []int{-1, 4, 99} {
		v, err := e.SelectAnswer(idx)
		require.ErrorIs(t, err, ErrAnswerOutOfRange)
		assert.Equal(t, 0, v.Score)
		assert.False(t, v.Answered)
	}
	assert.Empty(t, e.session.Answers)
}

func TestQuizEngine_NoActiveSession(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.SelectAnswer(0)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.Next()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.Previous()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.Finish()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.Review()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = e.Restart(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSession)

	assert.Equal(t, entities.QuizIdle, e.State())
}

func TestQuizEngine_SelectAnswerAfterFinishIsRejected(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 2)
	require.NoError(t, err)

	_, err = e.Finish()
	require.NoError(t, err)

	_, err = e.SelectAnswer(0)
	require.ErrorIs(t, err, ErrNoActiveSession)
	assert.Empty(t, e.session.Answers)
}

func TestQuizEngine_ScoreIsMonotonic(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelAdvanced, 20)
	require.NoError(t, err)

	prev := 0
	for i := 0; i < 20; i++ {
		q := e.session.Current()
		pick := q.CorrectIndex
		if i%3 == 0 {
			pick = wrongIndex(q)
		}

		v, err := e.SelectAnswer(pick)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.Score, prev)
		assert.LessOrEqual(t, v.Score, len(e.session.Answers))
		prev = v.Score

		// Re-answering never changes the score.
		v, err = e.SelectAnswer(wrongIndex(q))
		require.NoError(t, err)
		assert.Equal(t, prev, v.Score)

		_, err = e.Next()
		require.NoError(t, err)
	}

	assert.Equal(t, entities.QuizFinished, e.State())
}

func TestQuizEngine_BoundaryNavigation(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 2)
	require.NoError(t, err)

	v, err := e.Previous()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
	assert.False(t, v.CanPrevious)

	// Next is disabled until the question is answered.
	v, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
	assert.False(t, v.CanNext)

	_, err = e.SelectAnswer(0)
	require.NoError(t, err)
	v, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index)
	assert.True(t, v.IsLast)

	_, err = e.SelectAnswer(0)
	require.NoError(t, err)
	v, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, entities.QuizFinished, v.State)
	require.NotNil(t, v.Results)
	assert.Nil(t, e.stopTimer)
}

func TestQuizEngine_PreviousShowsReplay(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)

	q0 := e.session.Current()
	_, err = e.SelectAnswer(wrongIndex(q0))
	require.NoError(t, err)
	_, err = e.Next()
	require.NoError(t, err)

	v, err := e.Previous()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
	assert.True(t, v.Replay)
	assert.True(t, v.CanNext)
	assert.Equal(t, q0.Explanation, v.Explanation)

	for i, o := range v.Options {
		assert.True(t, o.Disabled)
		assert.Equal(t, i == q0.CorrectIndex, o.Correct)
		assert.Equal(t, i == wrongIndex(q0), o.Selected)
		assert.Equal(t, i == wrongIndex(q0), o.Incorrect)
	}

	// Back on the unanswered question the options are live again.
	v, err = e.Next()
	require.NoError(t, err)
	assert.False(t, v.Replay)
	assert.Empty(t, v.Explanation)
	for _, o := range v.Options {
		assert.False(t, o.Disabled)
	}
}

func TestQuizEngine_ScenarioTwoOfThree(t *testing.T) {
	e, clock := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)

	picks := []bool{true, false, true}
	for _, correct := range picks {
		q := e.session.Current()
		pick := q.CorrectIndex
		if !correct {
			pick = wrongIndex(q)
		}
		_, err := e.SelectAnswer(pick)
		require.NoError(t, err)
		clock.Advance(25 * time.Second)
		_, err = e.Next()
		require.NoError(t, err)
	}

	v := e.View()
	require.Equal(t, entities.QuizFinished, v.State)
	require.NotNil(t, v.Results)
	assert.Equal(t, 2, v.Score)
	assert.Equal(t, 67, v.Results.Percentage)
	assert.Equal(t, "2/3", v.Results.Fraction)
	assert.Equal(t, 2, v.Results.Correct)
	assert.Equal(t, 1, v.Results.Incorrect)
	assert.Equal(t, "1:15", v.Results.ElapsedText)
	assert.Equal(t, entities.TierKeepLearning, v.Results.Tier)
}

func TestQuizEngine_ReviewRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelIntermediate, 5)
	require.NoError(t, err)

	recorded := make([]entities.QuizAnswer, 0, 5)
	for i := 0; i < 5; i++ {
		q := e.session.Current()
		pick := q.CorrectIndex
		if i%2 == 1 {
			pick = wrongIndex(q)
		}
		_, err := e.SelectAnswer(pick)
		require.NoError(t, err)
		a, _ := e.session.AnswerAt(i)
		recorded = append(recorded, a)
		_, err = e.Next()
		require.NoError(t, err)
	}
	scoreBefore := e.session.Score

	v, err := e.Review()
	require.NoError(t, err)
	require.Equal(t, entities.QuizReviewing, v.State)

	for i := 0; i < 5; i++ {
		require.Equal(t, i, v.Index)
		assert.True(t, v.Replay)
		for j, o := range v.Options {
			assert.Equal(t, j == recorded[i].SelectedIndex, o.Selected)
			if o.Selected {
				assert.Equal(t, !recorded[i].IsCorrect, o.Incorrect)
			}
		}

		// Answering during review is rejected.
		_, err = e.SelectAnswer(0)
		assert.ErrorIs(t, err, ErrNoActiveSession)

		v, err = e.Next()
		require.NoError(t, err)
	}

	assert.Equal(t, entities.QuizFinished, v.State)
	assert.Equal(t, scoreBefore, v.Score)
	assert.Len(t, e.session.Answers, 5)
}

func TestQuizEngine_QuitRequiresConfirmation(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)

	v, err := e.Quit(false)
	require.ErrorIs(t, err, ErrQuitNotConfirmed)
	assert.Equal(t, entities.QuizInProgress, v.State)
	assert.NotNil(t, e.stopTimer)

	v, err = e.Quit(true)
	require.NoError(t, err)
	assert.Equal(t, entities.QuizIdle, v.State)
	assert.Nil(t, e.session)
	assert.Nil(t, e.stopTimer)
}

func TestQuizEngine_RestartReshuffles(t *testing.T) {
	e, _ := newTestEngine(t)
	v1, err := e.Start(context.Background(), entities.LevelAdvanced, 7)
	require.NoError(t, err)
	first := append([]entities.Question(nil), e.session.Questions...)

	_, err = e.Finish()
	require.NoError(t, err)

	v2, err := e.Restart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.QuizInProgress, v2.State)
	assert.Equal(t, entities.LevelAdvanced, v2.Level)
	assert.Equal(t, 7, v2.Total)
	assert.NotEqual(t, v1.SessionID, v2.SessionID)
	assert.Equal(t, 0, v2.Score)
	assert.NotEqual(t, first, e.session.Questions)
}

func TestQuizEngine_StaleTicksAreIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)
	old := e.session

	assert.True(t, e.handleTick(old))

	_, err = e.Start(context.Background(), entities.LevelBeginner, 3)
	require.NoError(t, err)
	assert.False(t, e.handleTick(old))
	assert.True(t, e.handleTick(e.session))

	_, err = e.Finish()
	require.NoError(t, err)
	assert.False(t, e.handleTick(e.session))

	e.BackToSelect()
	assert.False(t, e.handleTick(old))
	assert.Nil(t, e.stopTimer)
}

func TestQuizEngine_TimerPublishesUntilFinished(t *testing.T) {
	e, clock := newTestEngine(t, WithTickInterval(5*time.Millisecond))

	views, cancel := e.Subscribe()
	defer cancel()
	<-views // initial idle view

	_, err := e.Start(context.Background(), entities.LevelBeginner, 2)
	require.NoError(t, err)

	clock.Advance(3 * time.Second)
	require.Eventually(t, func() bool {
		select {
		case v := <-views:
			return v.State == entities.QuizInProgress && v.ElapsedText == "0:03"
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	_, err = e.Finish()
	require.NoError(t, err)
	require.Nil(t, e.stopTimer)

	v := <-views
	assert.Equal(t, entities.QuizFinished, v.State)

	// No more views arrive once the session has finished.
	select {
	case v := <-views:
		t.Fatalf("unexpected view after finish: %s", v.State)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestQuizEngine_FinishHookAndObserver(t *testing.T) {
	var (
		mu      sync.Mutex
		results []entities.QuizResults
	)
	obs := &recordingObserver{}
	e, _ := newTestEngine(t,
		WithObserver(obs),
		WithFinishHook(func(r entities.QuizResults) {
			mu.Lock()
			defer mu.Unlock()
			results = append(results, r)
		}),
	)

	_, err := e.Start(context.Background(), entities.LevelBeginner, 1)
	require.NoError(t, err)
	_, err = e.SelectAnswer(e.session.Current().CorrectIndex)
	require.NoError(t, err)
	_, err = e.Next()
	require.NoError(t, err)

	// Finishing twice reports once.
	_, err = e.Finish()
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Percentage)
	assert.Equal(t, 1, obs.started)
	assert.Equal(t, 1, obs.correct)
	assert.Equal(t, 1, obs.finished)

	_, err = e.Start(context.Background(), entities.LevelBeginner, 1)
	require.NoError(t, err)
	_, err = e.Quit(true)
	require.NoError(t, err)
	assert.Equal(t, 1, obs.abandoned)
}

type recordingObserver struct {
	started, correct, incorrect, finished, abandoned int
}

func (o *recordingObserver) QuizStarted(entities.Level, int) { o.started++ }
func (o *recordingObserver) AnswerRecorded(_ entities.Level, correct bool) {
	if correct {
		o.correct++
	} else {
		o.incorrect++
	}
}
func (o *recordingObserver) QuizFinished(entities.QuizResults) { o.finished++ }
func (o *recordingObserver) QuizAbandoned(entities.Level)      { o.abandoned++ }

func TestQuizEngine_HandleKey(t *testing.T) {
	e, _ := newTestEngine(t)

	v, err := e.HandleKey("1")
	require.NoError(t, err)
	assert.Equal(t, entities.QuizIdle, v.State)

	_, err = e.Start(context.Background(), entities.LevelBeginner, 2)
	require.NoError(t, err)

	v, err = e.HandleKey(KeyArrowRight)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index, "next is disabled before answering")

	v, err = e.HandleKey("3")
	require.NoError(t, err)
	require.True(t, v.Answered)
	assert.True(t, v.Options[2].Selected)

	v, err = e.HandleKey("1")
	require.NoError(t, err)
	assert.True(t, v.Options[2].Selected, "answered question ignores digit keys")

	v, err = e.HandleKey(KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index)

	v, err = e.HandleKey(KeyArrowLeft)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)

	v, err = e.HandleKey(KeyArrowLeft)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)

	v, err = e.HandleKey("x")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
}

func TestQuizEngine_ViewProgressAndScoreText(t *testing.T) {
	e, clock := newTestEngine(t)
	_, err := e.Start(context.Background(), entities.LevelBeginner, 4)
	require.NoError(t, err)

	v := e.View()
	assert.Equal(t, "Beginner Quiz", v.Title)
	assert.Equal(t, 1, v.Number)
	assert.Equal(t, 25, v.Progress)
	assert.Equal(t, "0/0", v.ScoreText)
	assert.Equal(t, "0:00", v.ElapsedText)
	assert.Len(t, v.Options, 4)
	assert.Equal(t, "A", v.Options[0].Letter)

	_, err = e.SelectAnswer(e.session.Current().CorrectIndex)
	require.NoError(t, err)
	clock.Advance(65 * time.Second)

	v = e.View()
	assert.Equal(t, "1/1", v.ScoreText)
	assert.Equal(t, "1:05", v.ElapsedText)
}

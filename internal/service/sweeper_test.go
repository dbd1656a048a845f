package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/storage"
)

func TestSessionSweeper_Sweep(t *testing.T) {
	closed := 0
	sessions := storage.NewSessionStorage[string, *QuizEngine](func(_ string, e *QuizEngine) {
		e.Close()
		closed++
	})
	sessions.Store("a", NewQuizEngine(newFakeBank()))
	sessions.Store("b", NewQuizEngine(newFakeBank()))

	s := NewSessionSweeper("@every 1h", time.Hour, zap.NewNop())
	s.Register("web", sessions)

	assert.Equal(t, 0, s.Sweep())

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 2, closed)
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionSweeper_StartStopsOnCancel(t *testing.T) {
	s := NewSessionSweeper("@every 1h", time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionSweeper_InvalidSchedule(t *testing.T) {
	s := NewSessionSweeper("not a schedule", time.Hour, zap.NewNop())
	require.Error(t, s.Start(context.Background()))
}

package service

import (
	"context"
	"time"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

// startTimerLocked starts the ticker goroutine bound to the current session.
func (e *QuizEngine) startTimerLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	e.stopTimer = cancel

	go e.runTimer(ctx, e.session, e.tick)
}

// cancelTimerLocked stops the running ticker, if any. Safe to call repeatedly.
func (e *QuizEngine) cancelTimerLocked() {
	if e.stopTimer == nil {
		return
	}
	e.stopTimer()
	e.stopTimer = nil
}

func (e *QuizEngine) runTimer(ctx context.Context, s *entities.QuizSession, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.handleTick(s)
		}
	}
}

// handleTick publishes a fresh view for s. Ticks for a replaced session or
// a session that is no longer in progress are ignored.
func (e *QuizEngine) handleTick(s *entities.QuizSession) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != s || e.state != entities.QuizInProgress {
		return false
	}

	e.publishLocked()
	return true
}

// Subscribe returns a channel receiving the latest view after every
// transition and tick. Slow readers only see the most recent view.
func (e *QuizEngine) Subscribe() (<-chan QuizView, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan QuizView, 1)
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	ch <- e.viewLocked()

	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if c, ok := e.subs[id]; ok {
			close(c)
			delete(e.subs, id)
		}
	}
}

func (e *QuizEngine) publishLocked() {
	if len(e.subs) == 0 {
		return
	}

	v := e.viewLocked()
	for _, ch := range e.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

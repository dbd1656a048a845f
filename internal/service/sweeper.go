package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleEvictor drops sessions unused since a cutoff.
type IdleEvictor interface {
	EvictIdle(cutoff time.Time) int
}

// SessionSweeper periodically evicts idle quiz sessions from registries.
type SessionSweeper struct {
	schedule string
	ttl      time.Duration
	targets  map[string]IdleEvictor
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionSweeper creates a sweeper running on a cron schedule.
func NewSessionSweeper(schedule string, ttl time.Duration, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		schedule: schedule,
		ttl:      ttl,
		targets:  make(map[string]IdleEvictor),
		now:      time.Now,
		logger:   logger,
	}
}

// Register adds a registry to sweep. Must be called before Start.
func (s *SessionSweeper) Register(name string, target IdleEvictor) {
	s.targets[name] = target
}

// Start runs the sweep schedule until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	s.logger.Info("session sweeper started", zap.String("schedule", s.schedule), zap.Duration("ttl", s.ttl))

	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return err
	}

	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep evicts every session idle for longer than the TTL and returns the total evicted.
func (s *SessionSweeper) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	total := 0
	for name, t := range s.targets {
		n := t.EvictIdle(cutoff)
		if n > 0 {
			s.logger.Info("evicted idle sessions", zap.String("registry", name), zap.Int("count", n))
		}
		total += n
	}
	return total
}

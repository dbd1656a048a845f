package particles

import (
	"context"
	"sync"
	"time"
)

// FrameSink receives every rendered frame. Returning an error stops the animation.
type FrameSink func(Frame) error

// Animator steps and renders a simulation on a fixed frame interval.
type Animator struct {
	sim      *Simulation
	interval time.Duration
	debounce time.Duration

	mu      sync.Mutex
	pending [2]int
	resized chan struct{}
}

// NewAnimator creates an animator. The simulation must not be used elsewhere while Run is active.
func NewAnimator(sim *Simulation, interval, debounce time.Duration) *Animator {
	if interval <= 0 {
		interval = time.Second / 30
	}
	return &Animator{
		sim:      sim,
		interval: interval,
		debounce: debounce,
		resized:  make(chan struct{}, 1),
	}
}

// Resize requests new surface dimensions. Bursts of requests within the
// debounce window collapse into the last one.
func (a *Animator) Resize(width, height int) {
	a.mu.Lock()
	a.pending = [2]int{width, height}
	a.mu.Unlock()

	select {
	case a.resized <- struct{}{}:
	default:
	}
}

// Run animates until ctx is cancelled or sink fails.
func (a *Animator) Run(ctx context.Context, sink FrameSink) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	surface := NewFrameSurface()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-a.resized:
			debounce.Reset(a.debounce)

		case <-debounce.C:
			a.mu.Lock()
			size := a.pending
			a.mu.Unlock()
			a.sim.Resize(size[0], size[1])

		case <-ticker.C:
			a.sim.Step()
			a.sim.Render(surface)
			if err := sink(surface.Frame()); err != nil {
				return err
			}
		}
	}
}

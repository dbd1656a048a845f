package particles

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	clears, circles, lines int
}

func (r *recordingSurface) Clear(float64, float64) {
	r.clears++
	r.circles, r.lines = 0, 0
}
func (r *recordingSurface) FillCircle(float64, float64, float64, Color, float64) { r.circles++ }
func (r *recordingSurface) Line(float64, float64, float64, float64, float64, Color, float64) {
	r.lines++
}

func defaultConfig() Config {
	return Config{Tiers: DefaultTiers(), GridThreshold: 150}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		width int
		count int
		dist  float64
	}{
		{width: 320, count: 20, dist: 0},
		{width: 479, count: 20, dist: 0},
		{width: 480, count: 35, dist: 100},
		{width: 767, count: 35, dist: 100},
		{width: 768, count: 60, dist: 130},
		{width: 1199, count: 60, dist: 130},
		{width: 1200, count: 80, dist: 150},
		{width: 3840, count: 80, dist: 150},
	}

	for _, tt := range tests {
		tier := TierFor(DefaultTiers(), tt.width)
		assert.Equal(t, tt.count, tier.Count, "width %d", tt.width)
		assert.Equal(t, tt.dist, tier.MaxDistance, "width %d", tt.width)
	}

	assert.Equal(t, 80, TierFor(nil, 2000).Count)
}

func TestSimulation_WideViewport(t *testing.T) {
	sim := New(defaultConfig(), 1200, 800, rand.New(rand.NewSource(1)))
	assert.Equal(t, 80, sim.Len())

	for _, p := range sim.Particles() {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 1200.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 800.0)
		assert.Less(t, p.VX, maxSpeed)
		assert.GreaterOrEqual(t, p.VX, -maxSpeed)
		assert.GreaterOrEqual(t, p.Radius, minRadius)
		assert.Less(t, p.Radius, maxRadius)
		assert.GreaterOrEqual(t, p.Opacity, minOpacity)
		assert.Less(t, p.Opacity, maxOpacity)
	}

	surface := &recordingSurface{}
	sim.Render(surface)
	assert.Equal(t, 1, surface.clears)
	assert.Equal(t, 80, surface.circles)
	assert.Equal(t, len(sim.Connections()), surface.lines)
}

func TestSimulation_NarrowViewportSkipsConnections(t *testing.T) {
	sim := New(defaultConfig(), 400, 700, rand.New(rand.NewSource(2)))
	assert.Equal(t, 20, sim.Len())
	assert.False(t, sim.Tier().Connects())

	// Pack everything into one spot so any connection pass would draw lines.
	for i := range sim.particles {
		sim.particles[i].X, sim.particles[i].Y = 10, 10
	}

	surface := &recordingSurface{}
	sim.Render(surface)
	assert.Equal(t, 20, surface.circles)
	assert.Zero(t, surface.lines)
	assert.Empty(t, sim.Connections())
}

func TestSimulation_WrapStaysInBounds(t *testing.T) {
	const width, height = 300.0, 200.0

	sim := New(Config{Tiers: []Tier{{Count: 0, MaxDistance: 50}}}, int(width), int(height), nil)
	sim.particles = []Particle{
		{X: 150, Y: 100, VX: -width * 0.7, VY: 1.5},
		{X: 155, Y: 100, VX: width * 0.7, VY: -height * 1.3},
	}

	for frame := 0; frame < 500; frame++ {
		sim.Step()
		for _, p := range sim.particles {
			require.GreaterOrEqual(t, p.X, 0.0)
			require.Less(t, p.X, width)
			require.GreaterOrEqual(t, p.Y, 0.0)
			require.Less(t, p.Y, height)
		}
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0.0, wrap(300, 300))
	assert.Equal(t, 299.5, wrap(-0.5, 300))
	assert.Equal(t, 10.0, wrap(610, 300))
	assert.Equal(t, 0.0, wrap(-1e-18, 300))
	assert.Equal(t, 0.0, wrap(5, 0))
}

func TestConnections_OpacityDecays(t *testing.T) {
	ps := []Particle{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 200, Y: 0}}

	conns := bruteForcePairs(ps, 100)
	require.Len(t, conns, 1)
	assert.Equal(t, 0, conns[0].A)
	assert.Equal(t, 1, conns[0].B)
	assert.InDelta(t, 50.0, conns[0].Distance, 1e-9)
	assert.InDelta(t, 0.1, conns[0].Opacity, 1e-9)

	// Exactly at the threshold is not connected.
	assert.Empty(t, bruteForcePairs([]Particle{{X: 0}, {X: 100}}, 100))
}

func TestGridPairsMatchBruteForce(t *testing.T) {
	for _, n := range []int{0, 1, 2, 50, 400} {
		sim := New(Config{Tiers: []Tier{{Count: n, MaxDistance: 90}}}, 1600, 900, rand.New(rand.NewSource(int64(n))))
		for i := 0; i < 10; i++ {
			sim.Step()
		}

		assert.Equal(t, bruteForcePairs(sim.particles, 90), gridPairs(sim.particles, 90), "n=%d", n)
	}
}

func TestSimulation_UsesGridAboveThreshold(t *testing.T) {
	cfg := Config{Tiers: []Tier{{Count: 200, MaxDistance: 120}}, GridThreshold: 150}
	sim := New(cfg, 1000, 1000, rand.New(rand.NewSource(3)))

	assert.Equal(t, bruteForcePairs(sim.particles, 120), sim.Connections())
}

func TestSimulation_ResizeKeepsPool(t *testing.T) {
	sim := New(defaultConfig(), 1400, 900, rand.New(rand.NewSource(4)))
	before := sim.Particles()

	sim.Resize(400, 300)
	assert.Equal(t, 80, sim.Len())
	assert.Equal(t, before, sim.Particles())
	assert.False(t, sim.Tier().Connects())
	w, h := sim.Size()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 300.0, h)

	sim.Step()
	for _, p := range sim.Particles() {
		assert.Less(t, p.X, 400.0)
		assert.Less(t, p.Y, 300.0)
	}
}

func TestSVGSurface(t *testing.T) {
	sim := New(Config{Tiers: []Tier{{Count: 2, MaxDistance: 1000}}}, 100, 50, rand.New(rand.NewSource(5)))

	svg := NewSVGSurface(DarkBackground)
	sim.Render(svg)
	doc := svg.String()

	assert.True(t, strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50"`))
	assert.True(t, strings.HasSuffix(doc, "</svg>"))
	assert.Contains(t, doc, `fill="#0a0e27"`)
	assert.Equal(t, 2, strings.Count(doc, "<circle"))
	assert.Equal(t, 1, strings.Count(doc, "<line"))
	assert.Contains(t, doc, "rgba(0, 245, 255,")
	assert.Contains(t, doc, `stroke-width="0.5"`)
}

func TestAnimator_RunsUntilCancelled(t *testing.T) {
	sim := New(defaultConfig(), 800, 600, rand.New(rand.NewSource(6)))
	a := NewAnimator(sim, time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan Frame, 100)
	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx, func(f Frame) error {
			select {
			case frames <- f:
			default:
			}
			return nil
		})
	}()

	f := <-frames
	assert.Equal(t, 800.0, f.Width)
	assert.Len(t, f.Circles, 60)

	a.Resize(1000, 700)
	a.Resize(300, 200)
	require.Eventually(t, func() bool {
		select {
		case f := <-frames:
			return f.Width == 300 && len(f.Lines) == 0
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("animator did not stop")
	}
}

func TestAnimator_SinkErrorStops(t *testing.T) {
	sim := New(defaultConfig(), 800, 600, nil)
	a := NewAnimator(sim, time.Millisecond, 0)

	boom := errors.New("boom")
	err := a.Run(context.Background(), func(Frame) error { return boom })
	require.ErrorIs(t, err, boom)
}

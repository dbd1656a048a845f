package particles

import (
	"math/rand"
	"time"
)

// Connection styling.
const (
	ConnectionWidth = 0.5
	ConnectionAlpha = 0.2
)

// Cyan is the color of particles and connections.
var Cyan = Color{R: 0, G: 245, B: 255}

// Config tunes a simulation.
type Config struct {
	Tiers         []Tier
	GridThreshold int // above this many particles, neighbours are found with a grid; 0 never uses it
}

// Connection is a line between two particles closer than the tier distance.
type Connection struct {
	A, B     int
	Distance float64
	Opacity  float64
}

// Simulation owns a particle pool sized by the viewport tier at creation.
// It is not safe for concurrent use.
type Simulation struct {
	cfg       Config
	width     float64
	height    float64
	tier      Tier
	particles []Particle
}

// New creates a simulation for a width×height viewport. A nil rng is seeded from the clock.
func New(cfg Config, width, height int, rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tier := TierFor(cfg.Tiers, width)
	s := &Simulation{
		cfg:       cfg,
		width:     float64(width),
		height:    float64(height),
		tier:      tier,
		particles: make([]Particle, tier.Count),
	}
	for i := range s.particles {
		s.particles[i] = randomParticle(rng, s.width, s.height)
	}

	return s
}

// Len returns the pool size.
func (s *Simulation) Len() int {
	return len(s.particles)
}

// Tier returns the active tier.
func (s *Simulation) Tier() Tier {
	return s.tier
}

// Size returns the surface dimensions.
func (s *Simulation) Size() (float64, float64) {
	return s.width, s.height
}

// Particles returns a copy of the pool.
func (s *Simulation) Particles() []Particle {
	return append([]Particle(nil), s.particles...)
}

// Step advances every particle by one frame.
func (s *Simulation) Step() {
	for i := range s.particles {
		s.particles[i].move(s.width, s.height)
	}
}

// Resize changes the surface and the connection distance. The pool size and
// particle positions are kept; particles outside the new bounds wrap on the next step.
func (s *Simulation) Resize(width, height int) {
	s.width = float64(width)
	s.height = float64(height)
	s.tier.MaxDistance = TierFor(s.cfg.Tiers, width).MaxDistance
}

// Connections returns every unordered pair closer than the tier distance,
// ordered by (A, B). It is empty when the tier draws no lines.
func (s *Simulation) Connections() []Connection {
	if !s.tier.Connects() {
		return nil
	}
	if s.cfg.GridThreshold > 0 && len(s.particles) > s.cfg.GridThreshold {
		return gridPairs(s.particles, s.tier.MaxDistance)
	}
	return bruteForcePairs(s.particles, s.tier.MaxDistance)
}

// Render draws the current frame onto surface.
func (s *Simulation) Render(surface Surface) {
	surface.Clear(s.width, s.height)

	for _, p := range s.particles {
		surface.FillCircle(p.X, p.Y, p.Radius, Cyan, p.Opacity)
	}

	for _, c := range s.Connections() {
		a, b := s.particles[c.A], s.particles[c.B]
		surface.Line(a.X, a.Y, b.X, b.Y, ConnectionWidth, Cyan, c.Opacity)
	}
}

package particles

import (
	"math"
	"math/rand"
)

// Initial value ranges, all half-open.
const (
	maxSpeed   = 0.25
	minRadius  = 0.5
	maxRadius  = 2.5
	minOpacity = 0.2
	maxOpacity = 0.7
)

// Particle is a point moving at constant velocity.
type Particle struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Radius  float64 `json:"r"`
	Opacity float64 `json:"o"`
}

func randomParticle(rng *rand.Rand, width, height float64) Particle {
	return Particle{
		X:       rng.Float64() * width,
		Y:       rng.Float64() * height,
		VX:      (rng.Float64()*2 - 1) * maxSpeed,
		VY:      (rng.Float64()*2 - 1) * maxSpeed,
		Radius:  minRadius + rng.Float64()*(maxRadius-minRadius),
		Opacity: minOpacity + rng.Float64()*(maxOpacity-minOpacity),
	}
}

// move advances p by its velocity and wraps it onto the [0,w)×[0,h) torus.
func (p *Particle) move(width, height float64) {
	p.X = wrap(p.X+p.VX, width)
	p.Y = wrap(p.Y+p.VY, height)
}

// wrap maps v into [0, size).
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size rounds up to size.
	if v >= size {
		v = 0
	}
	return v
}

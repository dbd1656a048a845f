package particles

import (
	"cmp"
	"math"
	"slices"
)

func connect(ps []Particle, i, j int, maxDistance float64) (Connection, bool) {
	dx := ps[i].X - ps[j].X
	dy := ps[i].Y - ps[j].Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= maxDistance {
		return Connection{}, false
	}
	return Connection{A: i, B: j, Distance: d, Opacity: ConnectionAlpha * (1 - d/maxDistance)}, true
}

// bruteForcePairs checks all n(n-1)/2 pairs.
func bruteForcePairs(ps []Particle, maxDistance float64) []Connection {
	var out []Connection
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if c, ok := connect(ps, i, j, maxDistance); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// gridPairs buckets particles into maxDistance-sized cells and only compares
// particles in the same or adjacent cells.
func gridPairs(ps []Particle, maxDistance float64) []Connection {
	if len(ps) == 0 {
		return nil
	}

	minX, minY := ps[0].X, ps[0].Y
	maxX, maxY := minX, minY
	for _, p := range ps[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	cols := int((maxX-minX)/maxDistance) + 1
	rows := int((maxY-minY)/maxDistance) + 1
	cellOf := func(p Particle) (int, int) {
		cx := min(int((p.X-minX)/maxDistance), cols-1)
		cy := min(int((p.Y-minY)/maxDistance), rows-1)
		return cx, cy
	}

	cells := make(map[[2]int][]int, len(ps))
	for i, p := range ps {
		cx, cy := cellOf(p)
		cells[[2]int{cx, cy}] = append(cells[[2]int{cx, cy}], i)
	}

	var out []Connection
	for i, p := range ps {
		cx, cy := cellOf(p)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range cells[[2]int{cx + dx, cy + dy}] {
					if j <= i {
						continue
					}
					if c, ok := connect(ps, i, j, maxDistance); ok {
						out = append(out, c)
					}
				}
			}
		}
	}

	slices.SortFunc(out, func(a, b Connection) int {
		if n := cmp.Compare(a.A, b.A); n != 0 {
			return n
		}
		return cmp.Compare(a.B, b.B)
	})
	return out
}

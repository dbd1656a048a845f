// Package particles animates the point-cloud background: a fixed pool of
// drifting particles on a toroidal surface joined by fading proximity lines.
package particles

// Tier is one viewport-width class of the simulation.
type Tier struct {
	MaxWidth    int     `mapstructure:"max_width" json:"max_width"` // exclusive upper bound, 0 means unbounded
	Count       int     `mapstructure:"count" json:"count"`
	MaxDistance float64 `mapstructure:"max_distance" json:"max_distance"` // 0 disables connection lines
}

// Connects reports whether the tier draws connection lines.
func (t Tier) Connects() bool {
	return t.MaxDistance > 0
}

// DefaultTiers returns the stock tiers, narrowest first.
func DefaultTiers() []Tier {
	return []Tier{
		{MaxWidth: 480, Count: 20, MaxDistance: 0},
		{MaxWidth: 768, Count: 35, MaxDistance: 100},
		{MaxWidth: 1200, Count: 60, MaxDistance: 130},
		{MaxWidth: 0, Count: 80, MaxDistance: 150},
	}
}

// TierFor returns the first tier whose MaxWidth is above width. Tiers must be
// ordered narrowest first; the last tier catches every wider viewport.
func TierFor(tiers []Tier, width int) Tier {
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	for _, t := range tiers {
		if t.MaxWidth == 0 || width < t.MaxWidth {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

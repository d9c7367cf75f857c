// Package physics implements the layout machinery for concept graphs: a
// static relaxation pass that places newly added nodes around the frozen
// existing ones, a viewport fitter, and a per-frame spring-damper animator
// that eases visible positions toward their targets.
package physics

import "time"

// Params holds every tunable constant of the simulation. The defaults keep
// repulsion stronger than attraction at equilibrium distances; changing the
// relative ordering can collapse the layout.
type Params struct {
	// Static relaxation.
	Iterations  int     `toml:"iterations"`
	Repulsion   float64 `toml:"repulsion"`
	SpringBase  float64 `toml:"spring_base"`
	SpringScale float64 `toml:"spring_scale"`
	SpringGain  float64 `toml:"spring_gain"`
	AngularGain float64 `toml:"angular_gain"`
	AngularCap  float64 `toml:"angular_cap"`
	MaxStep     float64 `toml:"max_step"`

	// Per-frame animation.
	Damping          float64 `toml:"damping"`
	SpringFactor     float64 `toml:"spring_factor"`
	FrameAngularGain float64 `toml:"frame_angular_gain"`
	SettleThreshold  float64 `toml:"settle_threshold"`

	// MinDistance substitutes for zero distances between coincident nodes
	// so no division ever produces NaN.
	MinDistance float64 `toml:"min_distance"`

	FrameInterval time.Duration `toml:"-"`
}

// DefaultParams returns the reference constants.
func DefaultParams() Params {
	return Params{
		Iterations:  300,
		Repulsion:   1000,
		SpringBase:  100,
		SpringScale: 20,
		SpringGain:  0.05,
		AngularGain: 0.1,
		AngularCap:  1.0,
		MaxStep:     12,

		Damping:          0.8,
		SpringFactor:     0.08,
		FrameAngularGain: 0.03,
		SettleThreshold:  0.01,

		MinDistance:   1,
		FrameInterval: 16 * time.Millisecond,
	}
}

// RestLength is the target spring length for a link with the given semantic
// distance score: base + (10 - distance) * scale. The score inversely drives
// the spring; the inversion is deliberate and must not be flipped.
func (p Params) RestLength(semanticDistance float64) float64 {
	return p.SpringBase + (10-semanticDistance)*p.SpringScale
}

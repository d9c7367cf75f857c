package physics

import (
	"math"

	"github.com/beadgame/beadgraph/models"
)

// distance returns the separation between a and b, never less than minDist.
func distance(a, b models.Vec2) (dx, dy, d float64) {
	dx = b.X - a.X
	dy = b.Y - a.Y
	d = math.Sqrt(dx*dx + dy*dy)
	return dx, dy, d
}

// Repulse returns the inverse-square displacement pushing `on` away from
// `from`. Coincident nodes are treated as minDist apart along x so the
// force is finite and directional.
func Repulse(from, on models.Vec2, strength, minDist float64) models.Vec2 {
	dx, dy, d := distance(from, on)
	if d < minDist {
		d = minDist
		if dx == 0 && dy == 0 {
			dx = minDist
		}
	}
	f := strength / (d * d)
	return models.Vec2{X: dx / d * f, Y: dy / d * f}
}

// SpringPull returns the Hookean displacement moving `on` toward (or away
// from) `other` so their separation approaches rest.
func SpringPull(on, other models.Vec2, rest, minDist float64) models.Vec2 {
	dx, dy, d := distance(on, other)
	if d < minDist {
		d = minDist
	}
	// Positive stretch pulls together, negative pushes apart.
	stretch := d - rest
	return models.Vec2{X: dx / d * stretch, Y: dy / d * stretch}
}

// Bearing returns the angle of sat as seen from hub, in (-π, π].
func Bearing(hub, sat models.Vec2) float64 {
	return math.Atan2(sat.Y-hub.Y, sat.X-hub.X)
}

// NormalizeAngle maps an angle to [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngularShift returns the displacement that rotates sat around hub from its
// current bearing toward ideal, at its current radius. The rotation applied
// is the bearing deviation normalized to [-π, π] and capped, so the strength
// is proportional to how far the neighbor sits from its assigned spoke.
func AngularShift(hub, sat models.Vec2, ideal, cap, minDist float64) models.Vec2 {
	_, _, r := distance(hub, sat)
	if r < minDist {
		r = minDist
	}
	theta := Bearing(hub, sat)
	dev := NormalizeAngle(ideal - theta)
	if dev > cap {
		dev = cap
	} else if dev < -cap {
		dev = -cap
	}
	want := models.Vec2{
		X: hub.X + r*math.Cos(theta+dev),
		Y: hub.Y + r*math.Sin(theta+dev),
	}
	return want.Sub(sat)
}

// clampStep limits a displacement to maxStep in magnitude.
func clampStep(v models.Vec2, maxStep float64) models.Vec2 {
	m := math.Sqrt(v.X*v.X + v.Y*v.Y)
	if m <= maxStep || m == 0 {
		return v
	}
	return v.Scale(maxStep / m)
}

package core

import "math"

// NormalizeAngle wraps an angle to the interval (-pi, pi]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleInSector reports whether angle a (in (-pi, pi]) lies inside the
// sector [min, max]. min > max encodes a sector wrapping through +/-pi.
func AngleInSector(a, min, max float64) bool {
	if min > max {
		return a >= min || a <= max
	}
	return a >= min && a <= max
}

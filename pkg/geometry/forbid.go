package geometry

import (
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// ForbidRegion culls candidate crossings on the far side of a toroidal
// vessel. From the ray origin, the inner column of radius rmin casts a
// shadow bounded by the two tangent lines from the origin to the circle
// and by the chord between the tangent points; crossings inside that
// shadow are geometrically unreachable and must be discarded.
//
// The region is derived once per ray and reused for every edge test.
type ForbidRegion struct {
	origin core.Vec2 // ray origin projected on the midplane
	s1, s2 core.Vec2 // tangent points on the inner circle
	active bool
}

// NewForbidRegion precomputes the shadow of the inner circle of radius
// rmin as seen from the ray origin. Returns an inactive region when the
// origin lies on or inside the circle (no far side to hide).
func NewForbidRegion(ray core.Ray, rmin float64) ForbidRegion {
	d := core.NewVec2(ray.Origin.X, ray.Origin.Y)
	d2 := d.Dot(d)
	if rmin <= 0 || d2 <= rmin*rmin {
		return ForbidRegion{}
	}

	// Tangent points from an external point to a circle centered at
	// the axis: radial component rmin^2/d^2, tangential component
	// rmin*sqrt(d^2-rmin^2)/d^2.
	tang := rmin * math.Sqrt(d2-rmin*rmin) / d2
	radial := d.Multiply(rmin * rmin / d2)
	offset := d.Perp().Multiply(tang)

	return ForbidRegion{
		origin: d,
		s1:     radial.Add(offset),
		s2:     radial.Subtract(offset),
		active: true,
	}
}

// Active reports whether the region culls anything
func (f ForbidRegion) Active() bool {
	return f.active
}

// Shadowed reports whether the midplane projection (x,y) of a candidate
// crossing lies inside the shadow: beyond the chord joining the tangent
// points, and inside the wedge of the two tangent lines.
func (f ForbidRegion) Shadowed(x, y float64) bool {
	if !f.active {
		return false
	}
	p := core.NewVec2(x, y)

	// Opposite side of the chord from the origin
	chordNormal := f.s2.Subtract(f.s1).Perp()
	sideP := p.Subtract(f.s1).Dot(chordNormal)
	sideO := f.origin.Subtract(f.s1).Dot(chordNormal)
	if sideP*sideO > 0 {
		return false
	}

	// Same side as the circle center for both tangent lines
	for _, s := range [2]core.Vec2{f.s1, f.s2} {
		lineNormal := s.Subtract(f.origin).Perp()
		sideCenter := f.origin.Multiply(-1).Dot(lineNormal)
		if p.Subtract(f.origin).Dot(lineNormal)*sideCenter < 0 {
			return false
		}
	}
	return true
}

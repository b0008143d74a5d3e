package geometry

import (
	"fmt"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// DefaultRMinFactor scales the smallest cross-section radius into the
// reference inner circle used by far-side culling.
const DefaultRMinFactor = 0.95

// Vessel is the unique inward solid: the vacuum chamber whose boundary
// a line of sight must cross to see anything. Its polygon normals point
// into the chamber.
type Vessel struct {
	Poly *Polygon
	Lim  AngularLimit
	Kind Kind

	// RMin is the radius of the reference inner circle for far-side
	// culling of toroidal vessels. Zero means derive it from the
	// cross-section.
	RMin float64
}

// NewVessel creates a vessel from a cross-section polygon and angular
// limit. Linear vessels require a bounded axial extent.
func NewVessel(poly *Polygon, lim AngularLimit, kind Kind) (*Vessel, error) {
	if poly == nil {
		return nil, fmt.Errorf("vessel polygon is required")
	}
	if kind == Linear {
		if lim.IsFull() || lim.Min >= lim.Max {
			return nil, fmt.Errorf("linear vessel requires a bounded axial extent with min < max")
		}
	} else if err := lim.Validate(); err != nil {
		return nil, fmt.Errorf("vessel: %w", err)
	}

	v := &Vessel{Poly: poly, Lim: lim, Kind: kind}
	if kind == Toroidal {
		v.RMin = DefaultRMinFactor * poly.MinR()
	}
	return v, nil
}

// Cross solves the ray against the vessel boundary. ok is false when
// the ray never crosses into the vessel; when the ray origin already
// lies inside, the entry coefficient is 0.
func (v *Vessel) Cross(ray core.Ray, forbid ForbidRegion, tol core.Tolerances) (in, out Crossing, ok bool) {
	in, out, okIn, okOut := solveCross(ray, v.Poly, v.Lim, v.Kind, +1, forbid, tol)
	if !okOut {
		return Crossing{}, Crossing{}, false
	}
	if !okIn || in.K >= out.K {
		// No entry before the exit: the origin is inside the solid,
		// so the visible interval starts at the origin.
		in = Crossing{K: 0}
	}
	return in, out, true
}

// Contains reports whether a 3D point lies inside the vessel volume
func (v *Vessel) Contains(p core.Vec3) bool {
	if v.Kind == Linear {
		return v.Lim.ContainsLinear(p.X) && v.Poly.Contains(core.NewVec2(p.Y, p.Z))
	}
	if !v.Lim.Contains(p.Phi()) {
		return false
	}
	return v.Poly.Contains(core.NewVec2(p.R(), p.Z))
}

// ContainsAll evaluates Contains for a batch of points
func (v *Vessel) ContainsAll(pts []core.Vec3) []bool {
	out := make([]bool, len(pts))
	for i, p := range pts {
		out[i] = v.Contains(p)
	}
	return out
}

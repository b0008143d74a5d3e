package geometry

import (
	"fmt"
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// Structure is an outward obstacle (support, housing) that can re-block
// a line of sight before the vessel wall. A structure may be repeated
// around the torus at several angular sectors; each sector instance
// carries its own precomputed bounding box.
type Structure struct {
	Poly *Polygon
	Lims []AngularLimit
	Kind Kind

	// Boxes holds one axis-aligned box per angular instance, in
	// machine coordinates, used to cull rays before the analytic solve.
	Boxes []core.AABB
}

// NewStructure creates a structure from a cross-section polygon and its
// angular instances. An empty limit list means one full-revolution
// instance.
func NewStructure(poly *Polygon, lims []AngularLimit, kind Kind) (*Structure, error) {
	if poly == nil {
		return nil, fmt.Errorf("structure polygon is required")
	}
	if len(lims) == 0 {
		if kind == Linear {
			return nil, fmt.Errorf("linear structure requires at least one axial extent")
		}
		lims = []AngularLimit{FullLimit()}
	}
	for i, lim := range lims {
		if kind == Linear {
			if lim.IsFull() || lim.Min >= lim.Max {
				return nil, fmt.Errorf("structure instance %d: linear extent requires min < max", i)
			}
		} else if err := lim.Validate(); err != nil {
			return nil, fmt.Errorf("structure instance %d: %w", i, err)
		}
	}

	s := &Structure{Poly: poly, Lims: lims, Kind: kind}
	s.Boxes = make([]core.AABB, len(lims))
	for i, lim := range lims {
		s.Boxes[i] = instanceBox(poly, lim, kind)
	}
	return s, nil
}

// NumInstances returns the number of angular instances
func (s *Structure) NumInstances() int {
	return len(s.Lims)
}

// Cross solves the ray against one angular instance of the structure.
// The observed region is the structure's exterior, so an "exit"
// crossing is the ray being blocked by the obstacle and an "entry"
// crossing is the ray emerging from it.
func (s *Structure) Cross(ray core.Ray, instance int, forbid ForbidRegion,
	tol core.Tolerances) (in, out Crossing, okIn, okOut bool) {
	return solveCross(ray, s.Poly, s.Lims[instance], s.Kind, -1, forbid, tol)
}

// instanceBox computes the Cartesian bounding box of one angular
// instance of a revolved or extruded polygon.
func instanceBox(poly *Polygon, lim AngularLimit, kind Kind) core.AABB {
	min, max := poly.Extent()

	if kind == Linear {
		return core.NewAABB(
			core.NewVec3(lim.Min, min.X, min.Y),
			core.NewVec3(lim.Max, max.X, max.Y),
		)
	}

	if lim.IsFull() {
		// Revolution extremes: +/- max radius in X and Y, true Z range
		return core.NewAABB(
			core.NewVec3(-max.X, -max.X, min.Y),
			core.NewVec3(max.X, max.X, max.Y),
		)
	}

	// Limited sector: Cartesian extrema of the polygon rotated to the
	// limiting angles, plus any cardinal azimuth inside the sector
	// (the box of a sector spanning an axis direction is not reached
	// at the limit angles alone).
	angles := []float64{lim.Min, lim.Max}
	for _, phi := range []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2} {
		if core.AngleInSector(phi, lim.Min, lim.Max) {
			angles = append(angles, phi)
		}
	}

	var pts []core.Vec3
	for _, phi := range angles {
		cos, sin := math.Cos(phi), math.Sin(phi)
		for _, v := range poly.Vertices {
			pts = append(pts, core.NewVec3(v.X*cos, v.X*sin, v.Y))
		}
	}
	return core.NewAABBFromPoints(pts...)
}

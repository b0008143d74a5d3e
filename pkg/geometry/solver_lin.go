package geometry

import (
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// linearEdges tests the ray against every planar segment obtained by
// extruding a (Y,Z) polygon edge along X. The algebra is the toroidal
// one with the radius terms replaced by the Y coordinate, which leaves
// a single linear crossing per edge.
func linearEdges(acc *crossAccum, ray core.Ray, poly *Polygon, lim AngularLimit,
	sign float64, tol core.Tolerances) {

	d2 := core.NewVec2(ray.Origin.Y, ray.Origin.Z)
	u2 := core.NewVec2(ray.Direction.Y, ray.Direction.Z)

	for e := 0; e < poly.NumEdges(); e++ {
		v0, v1 := poly.Edge(e)
		edge := v1.Subtract(v0)

		denom := u2.Cross(edge)
		if math.Abs(denom) <= tol.EpsA {
			continue // ray parallel to the extruded face
		}

		w := v0.Subtract(d2)
		k := w.Cross(edge) / denom
		q := w.Cross(u2) / denom
		if q < 0 || q >= 1 || k < 0 {
			continue
		}

		x := ray.Origin.X + k*ray.Direction.X
		if !lim.ContainsLinear(x) {
			continue
		}

		n := core.NewVec3(0, poly.Normals[e].X, poly.Normals[e].Y).Multiply(sign)
		acc.add(k, e, n, ray.Direction.Dot(n))
	}
}

// linearCaps tests the two cross-section faces closing the extrusion at
// its axial bounds, x = Min and x = Max.
func linearCaps(acc *crossAccum, ray core.Ray, poly *Polygon, lim AngularLimit,
	sign float64, tol core.Tolerances) {

	if math.Abs(ray.Direction.X) <= tol.EpsPlane {
		return // ray nearly coplanar with both caps
	}

	caps := [2]struct {
		x    float64
		edge int
		side float64 // +1: solid lies toward increasing x
	}{
		{lim.Min, CapMinEdge, 1},
		{lim.Max, CapMaxEdge, -1},
	}

	for _, c := range caps {
		k := (c.x - ray.Origin.X) / ray.Direction.X
		if k < 0 {
			continue
		}
		p := ray.At(k)
		if !poly.Contains(core.NewVec2(p.Y, p.Z)) {
			continue
		}
		n := core.NewVec3(c.side*sign, 0, 0)
		acc.add(k, c.edge, n, ray.Direction.Dot(n))
	}
}

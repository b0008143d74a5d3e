package geometry

import (
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// Kind selects the symmetry of a solid: revolution about the machine
// axis, or extrusion along X.
type Kind int

const (
	Toroidal Kind = iota
	Linear
)

// Edge index sentinels for the two angular end-cap planes of a limited
// solid.
const (
	CapMinEdge = -1
	CapMaxEdge = -2
)

// Crossing is one accepted boundary crossing of a ray with a solid.
// Normal is the 3D unit normal at the crossing, pointing into the
// region observed by the diagnostic.
type Crossing struct {
	K      float64
	Edge   int
	Normal core.Vec3
}

// crossAccum keeps the smallest exit- and entry-classified crossings
// seen so far for one (ray, solid) pair.
type crossAccum struct {
	in, out    Crossing
	okIn, okOut bool
}

// add classifies one crossing by the sign of sca = dir . normal and
// keeps it if it beats the current best. sca == 0 is a grazing contact
// and produces nothing.
func (a *crossAccum) add(k float64, edge int, normal core.Vec3, sca float64) {
	switch {
	case sca < 0:
		if !a.okOut || k < a.out.K {
			a.out = Crossing{K: k, Edge: edge, Normal: normal}
			a.okOut = true
		}
	case sca > 0:
		if !a.okIn || k < a.in.K {
			a.in = Crossing{K: k, Edge: edge, Normal: normal}
			a.okIn = true
		}
	}
}

// solveCross computes the smallest entry and exit crossings of one ray
// with one solid (polygon cross-section + angular limit). sign is +1
// when the observed region is the solid's interior (vessel) and -1 for
// obstacles; it flips both the classification and the reported normal
// so that "exit" always means the visible path ends at that crossing.
func solveCross(ray core.Ray, poly *Polygon, lim AngularLimit, kind Kind, sign float64,
	forbid ForbidRegion, tol core.Tolerances) (in, out Crossing, okIn, okOut bool) {

	var acc crossAccum
	if kind == Linear {
		linearEdges(&acc, ray, poly, lim, sign, tol)
		linearCaps(&acc, ray, poly, lim, sign, tol)
	} else {
		toroidalEdges(&acc, ray, poly, lim, sign, forbid, tol)
		if !lim.IsFull() {
			toroidalCaps(&acc, ray, poly, lim, sign, forbid, tol)
		}
	}
	return acc.in, acc.out, acc.okIn, acc.okOut
}

// toroidalEdges tests the ray against every conical frustum segment
// obtained by revolving a polygon edge about the Z axis.
func toroidalEdges(acc *crossAccum, ray core.Ray, poly *Polygon, lim AngularLimit,
	sign float64, forbid ForbidRegion, tol core.Tolerances) {

	ux, uy, uz := ray.Direction.X, ray.Direction.Y, ray.Direction.Z
	dx, dy, dz := ray.Origin.X, ray.Origin.Y, ray.Origin.Z

	upar2 := ux*ux + uy*uy // squared horizontal direction component
	d2 := dx*dx + dy*dy
	sca0 := dx*ux + dy*uy

	horizontal := uz*uz <= tol.EpsUz*tol.EpsUz*upar2

	for e := 0; e < poly.NumEdges(); e++ {
		v0, v1 := poly.Edge(e)
		r0, z0 := v0.X, v0.Y
		dr, dzEdge := v1.X-v0.X, v1.Y-v0.Y

		if horizontal {
			// The ray stays at height dz: the edge must cross that
			// height, which pins the edge parameter q, then the
			// radius equation is a quadratic in k.
			if math.Abs(dzEdge) <= tol.EpsVz {
				continue // ray and edge both horizontal: no transversal crossing
			}
			q := (dz - z0) / dzEdge
			if q < 0 || q >= 1 {
				continue
			}
			rq := r0 + q*dr
			// upar2*k^2 + 2*sca0*k + (d2 - rq^2) = 0
			disc := sca0*sca0 - upar2*(d2-rq*rq)
			if disc <= 0 || upar2 <= 0 {
				continue
			}
			sq := math.Sqrt(disc)
			for _, k := range [2]float64{(-sca0 - sq) / upar2, (-sca0 + sq) / upar2} {
				acceptToroidal(acc, ray, k, e, poly.Normals[e], lim, sign, forbid)
			}
			continue
		}

		// General case: the height equation makes k affine in q,
		// k = k0 + k1*q, and substituting into the radius equation
		// yields A*q^2 + 2*B*q + C = 0.
		k0 := (z0 - dz) / uz
		k1 := dzEdge / uz

		qa := upar2*k1*k1 - dr*dr
		qb := upar2*k0*k1 + sca0*k1 - r0*dr
		qc := upar2*k0*k0 + 2*sca0*k0 + d2 - r0*r0

		if math.Abs(qa) <= tol.EpsA {
			// Ray parallel to the cone generatrix: at most one
			// crossing; both coefficients vanishing means the ray
			// is embedded in the surface, which yields nothing.
			if math.Abs(qb) <= tol.EpsB {
				continue
			}
			q := -qc / (2 * qb)
			tryToroidalRoot(acc, ray, q, k0, k1, e, poly.Normals[e], lim, sign, forbid)
			continue
		}

		disc := qb*qb - qa*qc
		if disc <= 0 {
			continue // tangential contacts are ignored
		}
		sq := math.Sqrt(disc)
		tryToroidalRoot(acc, ray, (-qb-sq)/qa, k0, k1, e, poly.Normals[e], lim, sign, forbid)
		tryToroidalRoot(acc, ray, (-qb+sq)/qa, k0, k1, e, poly.Normals[e], lim, sign, forbid)
	}
}

func tryToroidalRoot(acc *crossAccum, ray core.Ray, q, k0, k1 float64, edge int,
	normal core.Vec2, lim AngularLimit, sign float64, forbid ForbidRegion) {

	if q < 0 || q >= 1 {
		return
	}
	acceptToroidal(acc, ray, k0+k1*q, edge, normal, lim, sign, forbid)
}

// acceptToroidal applies the common filters (forward ray, far-side
// shadow, angular sector) and classifies the crossing by the inward
// normal rotated to the crossing azimuth.
func acceptToroidal(acc *crossAccum, ray core.Ray, k float64, edge int,
	normal core.Vec2, lim AngularLimit, sign float64, forbid ForbidRegion) {

	if k < 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return
	}
	p := ray.At(k)
	if forbid.Shadowed(p.X, p.Y) {
		return
	}
	phi := math.Atan2(p.Y, p.X)
	if !lim.Contains(phi) {
		return
	}

	cos, sin := math.Cos(phi), math.Sin(phi)
	n := core.NewVec3(normal.X*cos, normal.X*sin, normal.Y).Multiply(sign)
	acc.add(k, edge, n, ray.Direction.Dot(n))
}

// toroidalCaps tests the two poloidal half-plane faces closing a
// limited toroidal sector. Their edge ids are the CapMinEdge and
// CapMaxEdge sentinels.
func toroidalCaps(acc *crossAccum, ray core.Ray, poly *Polygon, lim AngularLimit,
	sign float64, forbid ForbidRegion, tol core.Tolerances) {

	caps := [2]struct {
		phi  float64
		edge int
		side float64 // +1: sector lies toward increasing phi
	}{
		{lim.Min, CapMinEdge, 1},
		{lim.Max, CapMaxEdge, -1},
	}

	for _, c := range caps {
		cos, sin := math.Cos(c.phi), math.Sin(c.phi)
		// Plane through the Z axis at azimuth phi, normal along
		// the azimuthal direction.
		n := core.NewVec3(-sin, cos, 0)

		denom := ray.Direction.Dot(n)
		if math.Abs(denom) <= tol.EpsPlane {
			continue // ray nearly coplanar with the cap
		}
		k := -ray.Origin.Dot(n) / denom
		if k < 0 {
			continue
		}
		p := ray.At(k)
		r := p.X*cos + p.Y*sin
		if r < 0 {
			continue // wrong half-plane
		}
		if forbid.Shadowed(p.X, p.Y) {
			continue
		}
		if !poly.Contains(core.NewVec2(r, p.Z)) {
			continue
		}

		inward := n.Multiply(c.side * sign)
		acc.add(k, c.edge, inward, ray.Direction.Dot(inward))
	}
}

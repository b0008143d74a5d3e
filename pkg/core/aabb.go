package core

import "math"

// AABB represents an axis-aligned bounding box stored as its two
// opposite corners, indexed so the slab test can pick near/far faces
// directly from a ray's direction sign bits.
type AABB struct {
	Bounds [2]Vec3 // Bounds[0] = min corner, Bounds[1] = max corner
}

// NewAABB creates a new AABB from min and max corners
func NewAABB(min, max Vec3) AABB {
	return AABB{Bounds: [2]Vec3{min, max}}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Bounds: [2]Vec3{min, max}}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 { return aabb.Bounds[0] }

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 { return aabb.Bounds[1] }

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Bounds[0].X, other.Bounds[0].X),
		Y: math.Min(aabb.Bounds[0].Y, other.Bounds[0].Y),
		Z: math.Min(aabb.Bounds[0].Z, other.Bounds[0].Z),
	}
	max := Vec3{
		X: math.Max(aabb.Bounds[1].X, other.Bounds[1].X),
		Y: math.Max(aabb.Bounds[1].Y, other.Bounds[1].Y),
		Z: math.Max(aabb.Bounds[1].Z, other.Bounds[1].Z),
	}
	return AABB{Bounds: [2]Vec3{min, max}}
}

// Contains reports whether the point lies inside the box (inclusive)
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Bounds[0].X && p.X <= aabb.Bounds[1].X &&
		p.Y >= aabb.Bounds[0].Y && p.Y <= aabb.Bounds[1].Y &&
		p.Z >= aabb.Bounds[0].Z && p.Z <= aabb.Bounds[1].Z
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Bounds[0].X <= aabb.Bounds[1].X &&
		aabb.Bounds[0].Y <= aabb.Bounds[1].Y &&
		aabb.Bounds[0].Z <= aabb.Bounds[1].Z
}

// RaySlabs caches the per-axis inverse direction and direction sign bit
// of one ray, so many boxes can be tested against it cheaply.
type RaySlabs struct {
	origin Vec3
	invDir Vec3
	sign   [3]int // 0 if direction component >= 0, else 1
}

// NewRaySlabs precomputes the slab test data for a ray
func NewRaySlabs(ray Ray) RaySlabs {
	rs := RaySlabs{
		origin: ray.Origin,
		invDir: Vec3{
			X: 1.0 / ray.Direction.X,
			Y: 1.0 / ray.Direction.Y,
			Z: 1.0 / ray.Direction.Z,
		},
	}
	if ray.Direction.X < 0 {
		rs.sign[0] = 1
	}
	if ray.Direction.Y < 0 {
		rs.sign[1] = 1
	}
	if ray.Direction.Z < 0 {
		rs.sign[2] = 1
	}
	return rs
}

// Hit tests the ray against a box using the slab method, restricted to
// ray parameters in [0, kMax]. A box entirely behind the origin, or
// entirely beyond kMax, is a miss. Division by a zero direction
// component produces infinities that order correctly in the min/max
// comparisons, so parallel rays need no special casing.
func (rs RaySlabs) Hit(box AABB, kMax float64) bool {
	tmin := (axis(box.Bounds[rs.sign[0]], 0) - rs.origin.X) * rs.invDir.X
	tmax := (axis(box.Bounds[1-rs.sign[0]], 0) - rs.origin.X) * rs.invDir.X

	tymin := (axis(box.Bounds[rs.sign[1]], 1) - rs.origin.Y) * rs.invDir.Y
	tymax := (axis(box.Bounds[1-rs.sign[1]], 1) - rs.origin.Y) * rs.invDir.Y

	if tmin > tymax || tymin > tmax {
		return false
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin := (axis(box.Bounds[rs.sign[2]], 2) - rs.origin.Z) * rs.invDir.Z
	tzmax := (axis(box.Bounds[1-rs.sign[2]], 2) - rs.origin.Z) * rs.invDir.Z

	if tmin > tzmax || tzmin > tmax {
		return false
	}
	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	// Box entirely behind the origin
	if tmax < 0 {
		return false
	}
	// Box entirely beyond the current limit
	if tmin > kMax {
		return false
	}
	return tmin <= tmax
}

func axis(v Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

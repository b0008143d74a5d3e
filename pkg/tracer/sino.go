package tracer

import (
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// KAtMinRadius returns, for each ray, the parameter of its closest
// approach to the machine axis, clamped to [0, kout[i]]. Nearly
// vertical rays keep a constant major radius; their closest approach is
// taken at the origin.
func KAtMinRadius(origins, dirs []core.Vec3, kout []float64) []float64 {
	const eps = 1e-12

	ks := make([]float64, len(origins))
	for i := range origins {
		d, u := origins[i], dirs[i]
		upar2 := u.X*u.X + u.Y*u.Y
		if upar2 < eps {
			ks[i] = 0
			continue
		}
		k := -(d.X*u.X + d.Y*u.Y) / upar2
		if k < 0 {
			k = 0
		}
		if i < len(kout) && !math.IsNaN(kout[i]) && k > kout[i] {
			k = kout[i]
		}
		ks[i] = k
	}
	return ks
}

// SinoResult holds the per-ray closest-approach description used for
// sinogram plots: the impact parameter Rho, the poloidal angle Theta
// and azimuth Phi of the impact point, and its ray parameter K.
type SinoResult struct {
	K     []float64
	Rho   []float64
	Theta []float64
	Phi   []float64
}

// Sinogram computes each ray's closest approach to the circle
// (R = refR, Z = refZ) in the poloidal projection: the impact point is
// the ray point minimizing 3D distance to the reference point placed at
// the ray's own azimuth, which reduces to the poloidal-plane distance
// between the projected ray point and (refR, refZ).
func Sinogram(origins, dirs []core.Vec3, refR, refZ float64) *SinoResult {
	res := &SinoResult{
		K:     make([]float64, len(origins)),
		Rho:   make([]float64, len(origins)),
		Theta: make([]float64, len(origins)),
		Phi:   make([]float64, len(origins)),
	}

	for i := range origins {
		ray := core.NewRay(origins[i], dirs[i])
		k := minPoloidalDistanceK(ray, refR, refZ)
		p := ray.At(k)

		dr := p.R() - refR
		dz := p.Z - refZ
		res.K[i] = k
		res.Rho[i] = math.Hypot(dr, dz)
		res.Theta[i] = math.Atan2(dz, dr)
		res.Phi[i] = p.Phi()
	}
	return res
}

// minPoloidalDistanceK minimizes f(k) = (R(k)-refR)^2 + (Z(k)-refZ)^2
// along the ray. f is smooth and unimodal past the closest approach to
// the axis, so a golden-section search bracketed by the axis approach
// is enough; the bracket grows until f starts increasing.
func minPoloidalDistanceK(ray core.Ray, refR, refZ float64) float64 {
	f := func(k float64) float64 {
		p := ray.At(k)
		dr := p.R() - refR
		dz := p.Z - refZ
		return dr*dr + dz*dz
	}

	// Bracket the minimum: expand until f grows
	a, b := 0.0, 1.0
	fb := f(b)
	for grow := 0; grow < 60; grow++ {
		c := b * 2
		fc := f(c)
		if fc > fb {
			break
		}
		a, b, fb = b, c, fc
	}
	hi := b * 2

	// Golden-section search on [a, hi]
	const invPhi = 0.6180339887498949
	lo := a
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for iter := 0; iter < 100 && hi-lo > 1e-12*(1+hi); iter++ {
		if f1 < f2 {
			hi, x2, f2 = x2, x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = f(x1)
		} else {
			lo, x1, f1 = x1, x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = f(x2)
		}
	}
	return 0.5 * (lo + hi)
}

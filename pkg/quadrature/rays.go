package quadrature

import (
	"fmt"
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// RaySamples holds the sample points of a ray batch in one flat arena.
// Ray i owns Pts[Offsets[i]:Offsets[i+1]] and K likewise; Resolution[i]
// is that ray's realized spacing. Rays with NaN bounds own an empty
// slice.
type RaySamples struct {
	Pts        []core.Vec3
	K          []float64
	Offsets    []int // length = number of rays + 1
	Resolution []float64
}

// NumRays returns the number of rays in the batch
func (s *RaySamples) NumRays() int {
	return len(s.Offsets) - 1
}

// Ray returns the sample slices of ray i
func (s *RaySamples) Ray(i int) ([]core.Vec3, []float64) {
	return s.Pts[s.Offsets[i]:s.Offsets[i+1]], s.K[s.Offsets[i]:s.Offsets[i+1]]
}

// SampleRays discretizes the interval [kin[i], kout[i]] of every ray
// with the given rule. steps carries either one global step (length 1)
// or one step per ray; cell count and spacing are recomputed from each
// ray's own bounds and step on every iteration, so fixed and per-ray
// stepping share one body.
//
// The arena is sized in a first counting pass, then filled; a ray with
// NaN bounds contributes no samples.
func SampleRays(origins, dirs []core.Vec3, kin, kout, steps []float64, mode StepMode, rule Rule) (*RaySamples, error) {
	n := len(origins)
	if len(dirs) != n || len(kin) != n || len(kout) != n {
		return nil, fmt.Errorf("ray batch shape mismatch: %d origins, %d directions, %d kin, %d kout",
			len(origins), len(dirs), len(kin), len(kout))
	}
	if len(steps) != 1 && len(steps) != n {
		return nil, fmt.Errorf("steps must have length 1 or %d, got %d", n, len(steps))
	}

	stepFor := func(i int) float64 {
		if len(steps) == 1 {
			return steps[0]
		}
		return steps[i]
	}

	// Measure pass: per-ray sample counts and cumulative offsets
	samples := &RaySamples{
		Offsets:    make([]int, n+1),
		Resolution: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		samples.Offsets[i+1] = samples.Offsets[i]
		if math.IsNaN(kin[i]) || math.IsNaN(kout[i]) {
			continue
		}
		length := kout[i] - kin[i]
		if length <= 0 {
			return nil, fmt.Errorf("ray %d: segment [%g, %g] has non-positive length", i, kin[i], kout[i])
		}
		step := stepFor(i)
		if step <= 0 {
			return nil, fmt.Errorf("ray %d: step must be positive, got %g", i, step)
		}
		cells := cellCount(length, step, mode, rule)
		count := cells
		if rule != RuleSum {
			count = cells + 1
		}
		samples.Offsets[i+1] += count
		samples.Resolution[i] = length / float64(cells)
	}

	// Fill pass
	total := samples.Offsets[n]
	samples.Pts = make([]core.Vec3, total)
	samples.K = make([]float64, total)
	for i := 0; i < n; i++ {
		if samples.Offsets[i+1] == samples.Offsets[i] {
			continue
		}
		seg, err := SampleSegment(kin[i], kout[i], stepFor(i), mode, rule)
		if err != nil {
			return nil, fmt.Errorf("ray %d: %w", i, err)
		}
		ray := core.NewRay(origins[i], dirs[i])
		base := samples.Offsets[i]
		for j, k := range seg.K {
			samples.K[base+j] = k
			samples.Pts[base+j] = ray.At(k)
		}
	}
	return samples, nil
}

// IntegrateAlong integrates a user field along every ray's visible
// interval using the requested rule: midpoint sum, composite Simpson,
// or Romberg extrapolation. Rays with NaN bounds integrate to NaN.
func IntegrateAlong(f func(core.Vec3) float64, origins, dirs []core.Vec3,
	kin, kout, steps []float64, mode StepMode, rule Rule) ([]float64, error) {

	samples, err := SampleRays(origins, dirs, kin, kout, steps, mode, rule)
	if err != nil {
		return nil, err
	}

	out := make([]float64, samples.NumRays())
	for i := range out {
		pts, _ := samples.Ray(i)
		if len(pts) == 0 {
			out[i] = math.NaN()
			continue
		}

		values := make([]float64, len(pts))
		for j, p := range pts {
			values[j] = f(p)
		}

		switch rule {
		case RuleSum:
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			out[i] = sum * samples.Resolution[i]
		case RuleSimps:
			out[i] = simpson(values, samples.Resolution[i])
		case RuleRomb:
			out[i] = romberg(values, samples.Resolution[i])
		}
	}
	return out, nil
}

// simpson applies the composite Simpson rule to edge samples with an
// even cell count.
func simpson(values []float64, h float64) float64 {
	n := len(values) - 1
	sum := values[0] + values[n]
	for j := 1; j < n; j++ {
		if j%2 == 1 {
			sum += 4 * values[j]
		} else {
			sum += 2 * values[j]
		}
	}
	return sum * h / 3
}

// romberg applies Richardson extrapolation to the trapezoid sums of
// dyadically coarsened subsets of edge samples (cell count is a power
// of two).
func romberg(values []float64, h float64) float64 {
	n := len(values) - 1 // power of two
	levels := 1
	for c := n; c > 1; c /= 2 {
		levels++
	}

	// Trapezoid estimates, finest last
	rows := make([]float64, levels)
	for l := 0; l < levels; l++ {
		stride := n >> l // coarsest first
		cells := n / stride
		sum := 0.5 * (values[0] + values[n])
		for j := 1; j < cells; j++ {
			sum += values[j*stride]
		}
		rows[l] = sum * h * float64(stride)
	}

	// Richardson extrapolation in place
	factor := 4.0
	for m := 1; m < levels; m++ {
		for l := levels - 1; l >= m; l-- {
			rows[l] = (factor*rows[l] - rows[l-1]) / (factor - 1)
		}
		factor *= 4
	}
	return rows[levels-1]
}

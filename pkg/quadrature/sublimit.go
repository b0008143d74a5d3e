package quadrature

import (
	"fmt"
	"math"
)

// SubSegment is the portion of a discretized segment covered by
// user-chosen sub-limits, snapped onto the parent cell grid.
type SubSegment struct {
	K          []float64 // midpoint sample abscissas
	Indices    []int     // absolute parent cell index per sample
	StartCell  int
	Resolution float64
}

// snapIndex converts an abscissa offset (in cells) to an integer cell
// boundary index. Offsets within margin of an existing boundary snap to
// it (avoiding half-cell artifacts); otherwise the fractional part is
// resolved toward the interior of the sub-range (floor for the start,
// ceil for the end).
func snapIndex(frac, margin float64, ceilFallback bool) int {
	nearest := math.Round(frac)
	if math.Abs(frac-nearest) < margin {
		return int(nearest)
	}
	if ceilFallback {
		return int(math.Ceil(frac))
	}
	return int(math.Floor(frac))
}

// SampleSubSegment discretizes [lmin, lmax] like SampleSegment with the
// midpoint rule, then restricts the samples to the sub-limits
// [dlmin, dlmax]. NaN sub-limits default to the corresponding segment
// bound; out-of-range sub-limits are clipped. margin is the snapping
// tolerance in cell units.
func SampleSubSegment(lmin, lmax, dlmin, dlmax, step float64, mode StepMode, margin float64) (*SubSegment, error) {
	length := lmax - lmin
	if length <= 0 {
		return nil, fmt.Errorf("segment [%g, %g] has non-positive length", lmin, lmax)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", step)
	}
	if margin < 0 {
		return nil, fmt.Errorf("margin must be non-negative, got %g", margin)
	}

	if math.IsNaN(dlmin) {
		dlmin = lmin
	}
	if math.IsNaN(dlmax) {
		dlmax = lmax
	}
	dlmin = math.Max(dlmin, lmin)
	dlmax = math.Min(dlmax, lmax)
	if dlmin >= dlmax {
		return nil, fmt.Errorf("sub-limits [%g, %g] define an empty range", dlmin, dlmax)
	}

	n := cellCount(length, step, mode, RuleSum)
	res := length / float64(n)

	i0 := snapIndex((dlmin-lmin)/res, margin, false)
	i1 := snapIndex((dlmax-lmin)/res, margin, true)
	if i0 < 0 {
		i0 = 0
	}
	if i1 > n {
		i1 = n
	}
	if i1 <= i0 {
		return nil, fmt.Errorf("sub-limits [%g, %g] cover no cell", dlmin, dlmax)
	}

	count := i1 - i0
	sub := &SubSegment{
		K:          make([]float64, count),
		Indices:    make([]int, count),
		StartCell:  i0,
		Resolution: res,
	}
	for j := 0; j < count; j++ {
		sub.K[j] = lmin + (float64(i0+j)+0.5)*res
		sub.Indices[j] = i0 + j
	}
	return sub, nil
}

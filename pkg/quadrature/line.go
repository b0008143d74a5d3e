// Package quadrature turns continuous segments along rays, and polygon
// boundaries, into finite ordered sample sets for numerical
// integration. Cell counts are always snapped so an integer number of
// cells exactly spans the segment.
package quadrature

import (
	"fmt"
	"math"
)

// Rule selects the quadrature rule a sample set is meant for
type Rule int

const (
	// RuleSum samples cell midpoints (n cells, n samples)
	RuleSum Rule = iota
	// RuleSimps samples cell edges with an even cell count
	// (Simpson-compatible, n+1 samples)
	RuleSimps
	// RuleRomb samples cell edges with a power-of-two cell count
	// (Romberg-compatible, n+1 samples)
	RuleRomb
)

// StepMode selects how the desired step value is interpreted
type StepMode int

const (
	// StepAbsolute treats the step as a spacing in segment units
	StepAbsolute StepMode = iota
	// StepRelative treats the step as a fraction of the segment length
	StepRelative
)

// Segment is a discretized 1D interval
type Segment struct {
	K          []float64 // ordered sample abscissas
	Resolution float64   // realized spacing between cell boundaries
	Cells      int
}

// cellCount snaps the desired step to an integer cell count honoring
// the rule's constraint (even for Simpson, power of two for Romberg).
func cellCount(length, step float64, mode StepMode, rule Rule) int {
	var n int
	if mode == StepRelative {
		n = int(math.Ceil(1 / step))
	} else {
		n = int(math.Ceil(length / step))
	}
	if n < 1 {
		n = 1
	}

	switch rule {
	case RuleSimps:
		if n%2 == 1 {
			n++
		}
	case RuleRomb:
		p := 1
		for p < n {
			p *= 2
		}
		n = p
	}
	return n
}

// SampleSegment discretizes [kmin, kmax] with the requested step mode
// and rule. A non-positive step or an empty segment is a caller
// contract violation.
func SampleSegment(kmin, kmax, step float64, mode StepMode, rule Rule) (*Segment, error) {
	length := kmax - kmin
	if length <= 0 {
		return nil, fmt.Errorf("segment [%g, %g] has non-positive length", kmin, kmax)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", step)
	}

	n := cellCount(length, step, mode, rule)
	res := length / float64(n)

	var ks []float64
	if rule == RuleSum {
		ks = make([]float64, n)
		for i := 0; i < n; i++ {
			ks[i] = kmin + (float64(i)+0.5)*res
		}
	} else {
		ks = make([]float64, n+1)
		for i := 0; i <= n; i++ {
			ks[i] = kmin + float64(i)*res
		}
		ks[n] = kmax // pin the endpoint exactly
	}

	return &Segment{K: ks, Resolution: res, Cells: n}, nil
}

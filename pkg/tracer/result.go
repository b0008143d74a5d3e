package tracer

import (
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// HitIndex identifies the entity that produced a ray's exit crossing.
// Struct 0 is the vessel itself; Struct i+1 is structure i. Edge is the
// polygon edge index, or the end-cap sentinels -1/-2.
type HitIndex struct {
	Struct   int
	Instance int
	Edge     int
}

// Result holds the per-ray outputs of a batch trace as parallel arrays,
// fully owned by the caller after return. A ray that never enters the
// vessel has NaN coefficients, a zero normal and a zero index.
type Result struct {
	KIn   []float64
	KOut  []float64
	VPerp []core.Vec3
	Index []HitIndex
}

func newResult(n int) *Result {
	return &Result{
		KIn:   make([]float64, n),
		KOut:  make([]float64, n),
		VPerp: make([]core.Vec3, n),
		Index: make([]HitIndex, n),
	}
}

// N returns the number of rays in the result
func (r *Result) N() int {
	return len(r.KIn)
}

// Hit reports whether ray i crossed into the vessel
func (r *Result) Hit(i int) bool {
	return !math.IsNaN(r.KOut[i])
}

// EntryPoint returns the 3D entry point of ray i
func (r *Result) EntryPoint(i int, ray core.Ray) core.Vec3 {
	return ray.At(r.KIn[i])
}

// ExitPoint returns the 3D exit point of ray i
func (r *Result) ExitPoint(i int, ray core.Ray) core.Vec3 {
	return ray.At(r.KOut[i])
}

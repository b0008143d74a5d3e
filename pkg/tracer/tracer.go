package tracer

import (
	"fmt"
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
	"github.com/fusiondiag/go-los-tracer/pkg/geometry"
)

// Tracer computes entry/exit coefficients of ray batches against a
// vessel and its obstructing structures. Geometry is read-only after
// construction, so one Tracer can serve concurrent batches.
type Tracer struct {
	vessel     *geometry.Vessel
	structures []*geometry.Structure
	cfg        Config
	rmin       float64
	pool       *WorkerPool
}

// New creates a tracer for a vessel and zero or more structures
func New(vessel *geometry.Vessel, structures []*geometry.Structure, cfg Config) (*Tracer, error) {
	if vessel == nil {
		return nil, fmt.Errorf("vessel is required")
	}
	if err := cfg.Tolerances.Validate(); err != nil {
		return nil, err
	}
	for i, s := range structures {
		if s == nil {
			return nil, fmt.Errorf("structure %d is nil", i)
		}
		if s.Kind != vessel.Kind {
			return nil, fmt.Errorf("structure %d kind does not match vessel kind", i)
		}
	}

	rmin := vessel.RMin
	if cfg.RMin > 0 {
		rmin = cfg.RMin
	}

	return &Tracer{
		vessel:     vessel,
		structures: structures,
		cfg:        cfg,
		rmin:       rmin,
		pool:       NewWorkerPool(cfg.NumWorkers),
	}, nil
}

// TraceBatch computes, for each ray, the parametric entry and exit of
// the visible interval, the unit normal at the last valid exit crossing
// and the identity of the entity that produced it. Rays that never
// enter the vessel get NaN coefficients.
func (t *Tracer) TraceBatch(origins, dirs []core.Vec3) (*Result, error) {
	if t.cfg.Validate {
		if err := validateRays(origins, dirs); err != nil {
			return nil, err
		}
	}

	res := newResult(len(origins))
	t.pool.Run(len(origins), func(start, end int) {
		for i := start; i < end; i++ {
			ray := core.NewRay(origins[i], dirs[i])
			res.KIn[i], res.KOut[i], res.VPerp[i], res.Index[i] = t.traceOne(ray)
		}
	})
	return res, nil
}

// TraceOne computes the result for a single ray
func (t *Tracer) TraceOne(ray core.Ray) (kin, kout float64, vperp core.Vec3, idx HitIndex) {
	return t.traceOne(ray)
}

// traceOne runs the per-ray state machine: vessel first, then every
// structure instance that survives box pruning, shrinking the visible
// interval monotonically.
func (t *Tracer) traceOne(ray core.Ray) (float64, float64, core.Vec3, HitIndex) {
	var forbid geometry.ForbidRegion
	if t.cfg.Forbid && t.vessel.Kind == geometry.Toroidal {
		forbid = geometry.NewForbidRegion(ray, t.rmin)
	}

	in, out, ok := t.vessel.Cross(ray, forbid, t.cfg.Tolerances)
	if !ok {
		return math.NaN(), math.NaN(), core.Vec3{}, HitIndex{}
	}

	kin, kout := in.K, out.K
	vperp := out.Normal
	idx := HitIndex{Struct: 0, Instance: 0, Edge: out.Edge}

	slabs := core.NewRaySlabs(ray)
	for si, s := range t.structures {
		for j := 0; j < s.NumInstances(); j++ {
			// Clipping the slab test to the current exit covers both
			// prunes: boxes the ray cannot reach at all, and boxes
			// that cannot beat the nearest obstruction found so far.
			if !slabs.Hit(s.Boxes[j], kout) {
				continue
			}

			sIn, sOut, okIn, okOut := s.Cross(ray, j, forbid, t.cfg.Tolerances)
			if okOut && sOut.K < kout {
				kout = sOut.K
				vperp = sOut.Normal
				idx = HitIndex{Struct: si + 1, Instance: j, Edge: sOut.Edge}
			}
			// A structure straddling the current entry pushes the
			// visible interval's start to its far side; it never
			// lowers kin below the vessel's own entry.
			if okIn && sIn.K > kin && sIn.K < kout {
				kin = sIn.K
			}
		}
	}

	// A structure blocking the ray before it enters the vessel leaves
	// an empty interval; collapse it onto the blocking point.
	if kin > kout {
		kin = kout
	}
	return kin, kout, vperp, idx
}

// validateRays checks the batch input contract
func validateRays(origins, dirs []core.Vec3) error {
	if len(origins) != len(dirs) {
		return fmt.Errorf("ray batch shape mismatch: %d origins vs %d directions", len(origins), len(dirs))
	}
	if len(origins) == 0 {
		return fmt.Errorf("ray batch is empty")
	}
	for i, d := range dirs {
		l := d.Length()
		if l == 0 {
			return fmt.Errorf("ray %d has zero direction", i)
		}
		if math.Abs(l-1) > 1e-6 {
			return fmt.Errorf("ray %d direction is not unit length (|u| = %g)", i, l)
		}
	}
	return nil
}

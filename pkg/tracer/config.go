package tracer

import "github.com/fusiondiag/go-los-tracer/pkg/core"

// Config carries the explicit knobs of a batch trace. There is no
// process-wide state: every call receives its own copy.
type Config struct {
	// Tolerances of the analytic solver
	Tolerances core.Tolerances

	// Forbid enables far-side culling against the inner circle of a
	// toroidal vessel
	Forbid bool

	// RMin overrides the vessel's derived inner-circle radius when
	// positive
	RMin float64

	// NumWorkers sets the worker pool size; 0 or less means one
	// worker per CPU
	NumWorkers int

	// Validate enables eager input validation at the top of each
	// batch call
	Validate bool
}

// DefaultConfig returns the standard configuration
func DefaultConfig() Config {
	return Config{
		Tolerances: core.DefaultTolerances(),
		Forbid:     true,
		Validate:   true,
	}
}

package core

import "fmt"

// Tolerance defaults, matching the reference diagnostic geometry kernel.
const (
	DefaultEpsUz    = 1e-6 // near-horizontal ray threshold (relative to horizontal component)
	DefaultEpsVz    = 1e-9 // near-horizontal polygon edge threshold
	DefaultEpsA     = 1e-9 // quadratic leading-coefficient degeneracy
	DefaultEpsB     = 1e-9 // linear-fallback coefficient degeneracy
	DefaultEpsPlane = 1e-9 // near-coplanar ray/end-cap threshold

	// MaxTolerance is the absolute ceiling accepted for any tolerance.
	MaxTolerance = 1e-4
)

// Tolerances bundles the numeric thresholds of the analytic solver.
// They are explicit configuration, passed into every batch call.
type Tolerances struct {
	EpsUz    float64
	EpsVz    float64
	EpsA     float64
	EpsB     float64
	EpsPlane float64
}

// DefaultTolerances returns the standard tolerance set
func DefaultTolerances() Tolerances {
	return Tolerances{
		EpsUz:    DefaultEpsUz,
		EpsVz:    DefaultEpsVz,
		EpsA:     DefaultEpsA,
		EpsB:     DefaultEpsB,
		EpsPlane: DefaultEpsPlane,
	}
}

// Validate checks every tolerance is positive and below the ceiling
func (t Tolerances) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"EpsUz", t.EpsUz},
		{"EpsVz", t.EpsVz},
		{"EpsA", t.EpsA},
		{"EpsB", t.EpsB},
		{"EpsPlane", t.EpsPlane},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("tolerance %s must be positive, got %g", c.name, c.value)
		}
		if c.value >= MaxTolerance {
			return fmt.Errorf("tolerance %s must be below %g, got %g", c.name, MaxTolerance, c.value)
		}
	}
	return nil
}

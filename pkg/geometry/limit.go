package geometry

import (
	"fmt"
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// AngularLimit bounds the toroidal sector over which a solid exists,
// or the axial extent of a linear-extrusion solid. A full limit means
// complete 2*pi toroidal symmetry. For bounded toroidal sectors,
// Min > Max encodes a sector wrapping through +/-pi.
type AngularLimit struct {
	Min, Max float64
	full     bool
}

// FullLimit returns the unlimited (full 2*pi) angular limit
func FullLimit() AngularLimit {
	return AngularLimit{full: true}
}

// NewAngularLimit creates a bounded limit with angles wrapped to (-pi, pi]
func NewAngularLimit(min, max float64) AngularLimit {
	return AngularLimit{
		Min: core.NormalizeAngle(min),
		Max: core.NormalizeAngle(max),
	}
}

// NewLinearLimit creates an axial extent bound [min, max] for linear
// vessels. No angle wrapping is applied.
func NewLinearLimit(min, max float64) AngularLimit {
	return AngularLimit{Min: min, Max: max}
}

// IsFull reports whether the limit covers the full revolution
func (l AngularLimit) IsFull() bool {
	return l.full
}

// Contains reports whether azimuth phi lies inside the sector
func (l AngularLimit) Contains(phi float64) bool {
	if l.full {
		return true
	}
	return core.AngleInSector(phi, l.Min, l.Max)
}

// ContainsLinear reports whether axial coordinate x lies inside the extent
func (l AngularLimit) ContainsLinear(x float64) bool {
	if l.full {
		return true
	}
	return x >= l.Min && x <= l.Max
}

// Validate checks a toroidal limit is within the principal interval
func (l AngularLimit) Validate() error {
	if l.full {
		return nil
	}
	if l.Min <= -math.Pi || l.Min > math.Pi || l.Max <= -math.Pi || l.Max > math.Pi {
		return fmt.Errorf("angular limit (%g, %g) outside (-pi, pi]", l.Min, l.Max)
	}
	return nil
}

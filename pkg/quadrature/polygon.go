package quadrature

import (
	"fmt"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
	"github.com/fusiondiag/go-los-tracer/pkg/geometry"
)

// BoundarySamples holds midpoint samples walked along a closed polygon
// boundary, edge by edge, as one continuous ordered sequence.
type BoundarySamples struct {
	Pts        []core.Vec2 // concatenated sample coordinates
	Resolution []float64   // realized spacing per sample
	EdgeCounts []int       // samples contributed by each edge

	// PolyBis is the refined vertex list: every edge subdivided at
	// its cell boundaries, closed by repeating the first vertex.
	// Useful for per-cell bounding boxes downstream.
	PolyBis []core.Vec2
}

// SamplePolygon discretizes every edge of a closed polygon with the 1D
// midpoint discretizer, using each edge's own length as the segment.
// offset displaces the samples along the edge's inward normal
// (negative values push outward).
func SamplePolygon(poly *geometry.Polygon, step float64, mode StepMode, offset float64) (*BoundarySamples, error) {
	if poly == nil {
		return nil, fmt.Errorf("polygon is required")
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", step)
	}

	out := &BoundarySamples{
		EdgeCounts: make([]int, poly.NumEdges()),
	}

	for e := 0; e < poly.NumEdges(); e++ {
		v0, v1 := poly.Edge(e)
		dir := v1.Subtract(v0)
		length := dir.Length()
		if length == 0 {
			return nil, fmt.Errorf("polygon edge %d has zero length", e)
		}
		unit := dir.Multiply(1 / length)
		shift := poly.Normals[e].Multiply(offset)

		seg, err := SampleSegment(0, length, step, mode, RuleSum)
		if err != nil {
			return nil, fmt.Errorf("polygon edge %d: %w", e, err)
		}

		out.EdgeCounts[e] = len(seg.K)
		for _, k := range seg.K {
			out.Pts = append(out.Pts, v0.Add(unit.Multiply(k)).Add(shift))
			out.Resolution = append(out.Resolution, seg.Resolution)
		}
		for c := 0; c < seg.Cells; c++ {
			out.PolyBis = append(out.PolyBis, v0.Add(unit.Multiply(float64(c)*seg.Resolution)))
		}
	}

	// Close the refined polygon
	if len(out.PolyBis) > 0 {
		out.PolyBis = append(out.PolyBis, out.PolyBis[0])
	}
	return out, nil
}

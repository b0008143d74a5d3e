package geometry

import (
	"fmt"
	"math"

	"github.com/fusiondiag/go-los-tracer/pkg/core"
)

// Polygon is a simple closed curve in the poloidal cross-section plane,
// stored with its first vertex repeated as the last, plus one inward
// unit normal per edge. Revolving it about the machine axis (or
// extruding it) produces the 3D solid boundary.
//
// Coordinates are (R,Z) for toroidal solids and (Y,Z) for linear ones;
// the solver reads them through the same accessors either way.
type Polygon struct {
	Vertices []core.Vec2 // closed: Vertices[len-1] == Vertices[0]
	Normals  []core.Vec2 // inward unit normal per edge, len = len(Vertices)-1
}

// NewPolygon builds a closed polygon from an open or closed vertex
// list and derives the inward edge normals from the winding order.
func NewPolygon(vertices []core.Vec2) (*Polygon, error) {
	closed := closeVertices(vertices)
	if len(closed) < 4 {
		return nil, fmt.Errorf("polygon needs at least 3 distinct vertices, got %d", len(closed)-1)
	}

	n := len(closed) - 1
	normals := make([]core.Vec2, n)

	// Signed area decides the winding: counter-clockwise keeps the
	// interior on the left of each edge.
	area := signedArea(closed)
	if area == 0 {
		return nil, fmt.Errorf("polygon is degenerate (zero area)")
	}

	for i := 0; i < n; i++ {
		edge := closed[i+1].Subtract(closed[i])
		if edge.Length() == 0 {
			return nil, fmt.Errorf("polygon edge %d has zero length", i)
		}
		normal := edge.Perp().Normalize()
		if area < 0 {
			normal = normal.Multiply(-1)
		}
		normals[i] = normal
	}

	return &Polygon{Vertices: closed, Normals: normals}, nil
}

// NewPolygonWithNormals builds a polygon from caller-supplied vertices
// and inward edge normals, validating the shape contract
// (normals count = vertices count - 1 on the closed list).
func NewPolygonWithNormals(vertices, normals []core.Vec2) (*Polygon, error) {
	closed := closeVertices(vertices)
	if len(closed) < 4 {
		return nil, fmt.Errorf("polygon needs at least 3 distinct vertices, got %d", len(closed)-1)
	}
	if len(normals) != len(closed)-1 {
		return nil, fmt.Errorf("polygon has %d edges but %d normals", len(closed)-1, len(normals))
	}
	return &Polygon{Vertices: closed, Normals: normals}, nil
}

// closeVertices returns the vertex list with the first vertex repeated
// as the last, appending it if the input was open.
func closeVertices(vertices []core.Vec2) []core.Vec2 {
	if len(vertices) == 0 {
		return nil
	}
	out := make([]core.Vec2, len(vertices))
	copy(out, vertices)
	first, last := out[0], out[len(out)-1]
	if first != last {
		out = append(out, first)
	}
	return out
}

func signedArea(closed []core.Vec2) float64 {
	area := 0.0
	for i := 0; i < len(closed)-1; i++ {
		area += closed[i].Cross(closed[i+1])
	}
	return 0.5 * area
}

// NumEdges returns the number of polygon edges
func (p *Polygon) NumEdges() int {
	return len(p.Vertices) - 1
}

// Edge returns the endpoints of edge i
func (p *Polygon) Edge(i int) (core.Vec2, core.Vec2) {
	return p.Vertices[i], p.Vertices[i+1]
}

// Contains reports whether a point lies strictly inside the polygon,
// using the even-odd crossing rule.
func (p *Polygon) Contains(pt core.Vec2) bool {
	inside := false
	for i := 0; i < len(p.Vertices)-1; i++ {
		a, b := p.Vertices[i], p.Vertices[i+1]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xCross := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// Extent returns the planar bounding rectangle of the polygon
func (p *Polygon) Extent() (min, max core.Vec2) {
	min = p.Vertices[0]
	max = p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// MinR returns the smallest first-coordinate over the vertices
// (smallest major radius for a toroidal cross-section).
func (p *Polygon) MinR() float64 {
	min := p.Vertices[0].X
	for _, v := range p.Vertices[1:] {
		if v.X < min {
			min = v.X
		}
	}
	return min
}

// EdgeLengths returns the length of every edge
func (p *Polygon) EdgeLengths() []float64 {
	lengths := make([]float64, p.NumEdges())
	for i := range lengths {
		a, b := p.Edge(i)
		lengths[i] = b.Subtract(a).Length()
	}
	return lengths
}

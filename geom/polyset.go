package geom

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a 3-D vertex; PolySet keeps every polygon in full 3-D space
// even for 2-D primitives (z=0), matching polyset.cc's single Point type.
type Point = r3.Vec

// Polygon is an ordered, closed loop of vertices (no implicit closing
// edge stored — first and last vertices are distinct).
type Polygon []Point

// PolySet is an unstructured bag of polygons (§3.9): the output of
// tessellating a primitive or an extrusion, and the input to boolean ops
// in the kernel package. It carries no topology beyond polygon order,
// the arrangement polyset.cc itself uses before the boundary-rep kernel
// takes over.
type PolySet struct {
	Polygons  []Polygon
	Is2D      bool
	Convexity int

	// Borders holds, for a 2-D PolySet only, the outline loops used by
	// the extruders to walk the boundary in order (§4.7).
	Borders []Polygon
}

// New creates an empty PolySet.
func New(is2d bool) *PolySet {
	return &PolySet{Is2D: is2d, Convexity: 1}
}

// AppendPolygon appends a closed polygon.
func (p *PolySet) AppendPolygon(poly Polygon) {
	p.Polygons = append(p.Polygons, poly)
}

// BoundingBox returns the axis-aligned bounding box of every vertex.
func (p *PolySet) BoundingBox() (min, max Point) {
	first := true
	for _, poly := range p.Polygons {
		for _, v := range poly {
			if first {
				min, max = v, v
				first = false
				continue
			}
			min = Point{X: minf(min.X, v.X), Y: minf(min.Y, v.Y), Z: minf(min.Z, v.Z)}
			max = Point{X: maxf(max.X, v.X), Y: maxf(max.Y, v.Y), Z: maxf(max.Z, v.Z)}
		}
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Transform returns a new PolySet with every vertex mapped through apply.
func (p *PolySet) Transform(apply func(Point) Point) *PolySet {
	out := New(p.Is2D)
	out.Convexity = p.Convexity
	for _, poly := range p.Polygons {
		np := make(Polygon, len(poly))
		for i, v := range poly {
			np[i] = apply(v)
		}
		out.Polygons = append(out.Polygons, np)
	}
	return out
}

// Dump renders a canonical textual form for fingerprinting (§3.11).
func (p *PolySet) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "polyset(2d=%v,convexity=%d)[", p.Is2D, p.Convexity)
	for i, poly := range p.Polygons {
		if i > 0 {
			sb.WriteByte(';')
		}
		for j, v := range poly {
			if j > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%g %g %g", v.X, v.Y, v.Z)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Merge appends every polygon of other into p (used by the CSG leaf
// builder to flatten a primitive's own PolySet into a term).
func (p *PolySet) Merge(other *PolySet) {
	p.Polygons = append(p.Polygons, other.Polygons...)
}

package kernel

import (
	"fmt"
	"math"

	"github.com/gopenscad/scad/geom"
)

// Union, Difference and Intersection classify whole facets of one operand
// against the other's closed surface by firing a ray from the facet's
// centroid and counting crossings (the standard even-odd point-in-solid
// test), then keep or flip whole facets accordingly. A facet that straddles
// the other surface's boundary is classified by its centroid alone rather
// than split at the intersection curve — the one simplification this
// pure-Go stand-in makes relative to a textbook BSP-based mesh CSG.

func (m *MeshKernel) Union(other Polyhedron) (Polyhedron, error) {
	o, ok := other.(*MeshKernel)
	if !ok {
		return nil, fmt.Errorf("kernel: Union requires a *MeshKernel operand")
	}
	out := NewMeshKernel()
	for _, f := range m.faces {
		if !o.contains(centroid(f)) {
			out.faces = append(out.faces, f)
		}
	}
	for _, f := range o.faces {
		if !m.contains(centroid(f)) {
			out.faces = append(out.faces, f)
		}
	}
	if err := out.EndSurface(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MeshKernel) Difference(other Polyhedron) (Polyhedron, error) {
	o, ok := other.(*MeshKernel)
	if !ok {
		return nil, fmt.Errorf("kernel: Difference requires a *MeshKernel operand")
	}
	out := NewMeshKernel()
	for _, f := range m.faces {
		if !o.contains(centroid(f)) {
			out.faces = append(out.faces, f)
		}
	}
	for _, f := range o.faces {
		if m.contains(centroid(f)) {
			out.faces = append(out.faces, reverse(f))
		}
	}
	if err := out.EndSurface(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MeshKernel) Intersection(other Polyhedron) (Polyhedron, error) {
	o, ok := other.(*MeshKernel)
	if !ok {
		return nil, fmt.Errorf("kernel: Intersection requires a *MeshKernel operand")
	}
	out := NewMeshKernel()
	for _, f := range m.faces {
		if o.contains(centroid(f)) {
			out.faces = append(out.faces, f)
		}
	}
	for _, f := range o.faces {
		if m.contains(centroid(f)) {
			out.faces = append(out.faces, f)
		}
	}
	if err := out.EndSurface(); err != nil {
		return nil, err
	}
	return out, nil
}

func centroid(f geom.Polygon) geom.Point {
	var c geom.Point
	for _, v := range f {
		c.X += v.X
		c.Y += v.Y
		c.Z += v.Z
	}
	n := float64(len(f))
	return geom.Point{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

func reverse(f geom.Polygon) geom.Polygon {
	n := len(f)
	out := make(geom.Polygon, n)
	for i, v := range f {
		out[n-1-i] = v
	}
	return out
}

// contains tests whether p lies inside the closed surface via an even-odd
// ray cast along +X through every triangulated facet.
func (m *MeshKernel) contains(p geom.Point) bool {
	const dx, dy, dz = 1.0, 1e-4, 3e-4 // slightly off-axis to dodge edge/vertex grazes
	crossings := 0
	for _, f := range m.faces {
		for _, tri := range fanTriangulate(f) {
			if hit, t := rayTriangleIntersect(p, geom.Point{X: dx, Y: dy, Z: dz}, tri); hit && t > 0 {
				crossings++
			}
		}
	}
	return crossings%2 == 1
}

func fanTriangulate(f geom.Polygon) [][3]geom.Point {
	if len(f) < 3 {
		return nil
	}
	tris := make([][3]geom.Point, 0, len(f)-2)
	for i := 1; i+1 < len(f); i++ {
		tris = append(tris, [3]geom.Point{f[0], f[i], f[i+1]})
	}
	return tris
}

// rayTriangleIntersect is the Möller-Trumbore test.
func rayTriangleIntersect(origin, dir geom.Point, tri [3]geom.Point) (hit bool, t float64) {
	const eps = 1e-9
	e1 := sub(tri[1], tri[0])
	e2 := sub(tri[2], tri[0])
	h := cross(dir, e2)
	a := dot(e1, h)
	if math.Abs(a) < eps {
		return false, 0
	}
	f := 1 / a
	s := sub(origin, tri[0])
	u := f * dot(s, h)
	if u < 0 || u > 1 {
		return false, 0
	}
	q := cross(s, e1)
	v := f * dot(dir, q)
	if v < 0 || u+v > 1 {
		return false, 0
	}
	t = f * dot(e2, q)
	return t > eps, t
}

func sub(a, b geom.Point) geom.Point   { return geom.Point{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
func dot(a, b geom.Point) float64      { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func cross(a, b geom.Point) geom.Point {
	return geom.Point{X: a.Y*b.Z - a.Z*b.Y, Y: a.Z*b.X - a.X*b.Z, Z: a.X*b.Y - a.Y*b.X}
}

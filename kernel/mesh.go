package kernel

import (
	"fmt"

	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
)

// MeshKernel is a pure-Go approximate boundary-rep: a set of planar facets,
// each an ordered vertex loop, with no explicit half-edge/twin bookkeeping
// beyond what IsValid needs to check manifoldness. It stands in for the
// out-of-scope exact Nef-polyhedron kernel, classifying whole facets
// in/out of the other operand rather than splitting along intersection
// curves.
type MeshKernel struct {
	faces    []geom.Polygon
	building geom.Polygon
}

// NewMeshKernel creates an empty surface builder.
func NewMeshKernel() *MeshKernel {
	return &MeshKernel{}
}

// FromPolySet builds a MeshKernel from a tessellated solid primitive or
// extrusion's PolySet, finalizing the surface immediately.
func FromPolySet(ps *geom.PolySet) (*MeshKernel, error) {
	m := NewMeshKernel()
	for _, poly := range ps.Polygons {
		m.BeginFacet()
		for _, v := range poly {
			m.AddVertex(v)
		}
		m.EndFacet()
	}
	if err := m.EndSurface(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MeshKernel) BeginFacet() {
	m.building = nil
}

func (m *MeshKernel) AddVertex(p geom.Point) {
	m.building = append(m.building, p)
}

func (m *MeshKernel) EndFacet() {
	if len(m.building) >= 3 {
		face := make(geom.Polygon, len(m.building))
		copy(face, m.building)
		m.faces = append(m.faces, face)
	}
	m.building = nil
}

// EndSurface reports an error only when no facet was added; it does not
// check that the facets form a closed 2-manifold (IsValid reports that).
func (m *MeshKernel) EndSurface() error {
	if len(m.faces) == 0 {
		return fmt.Errorf("kernel: surface has no facets")
	}
	return nil
}

// IsSimple reports whether every edge is shared by exactly two facets
// (counted in opposite winding), the minimal self-intersection check a
// pure polygon-soup representation can offer without a full BSP.
func (m *MeshKernel) IsSimple() bool {
	counts := make(map[edgeKey]int)
	for _, f := range m.faces {
		n := len(f)
		for i := 0; i < n; i++ {
			a, b := f[i], f[(i+1)%n]
			counts[edgeKeyOf(a, b)]++
		}
	}
	for k, c := range counts {
		if counts[edgeKey{k[3], k[4], k[5], k[0], k[1], k[2]}] != c {
			return false
		}
	}
	return true
}

// IsValid reports whether the surface is a closed 2-manifold: every
// directed edge has exactly one matching reverse edge among the facets.
func (m *MeshKernel) IsValid() bool {
	if len(m.faces) == 0 {
		return false
	}
	forward := make(map[edgeKey]int)
	backward := make(map[edgeKey]int)
	for _, f := range m.faces {
		n := len(f)
		for i := 0; i < n; i++ {
			a, b := f[i], f[(i+1)%n]
			forward[edgeKeyOf(a, b)]++
			backward[edgeKeyOf(b, a)]++
		}
	}
	for k, c := range forward {
		if backward[k] != c {
			return false
		}
	}
	return true
}

func (m *MeshKernel) Walk(visit func(facet []geom.Point) bool) {
	for _, f := range m.faces {
		if !visit(f) {
			return
		}
	}
}

func (m *MeshKernel) ToPolySet() *geom.PolySet {
	ps := geom.New(false)
	for _, f := range m.faces {
		poly := make(geom.Polygon, len(f))
		copy(poly, f)
		ps.AppendPolygon(poly)
	}
	return ps
}

func (m *MeshKernel) Transform(a tree.Affine) Polyhedron {
	out := NewMeshKernel()
	for _, f := range m.faces {
		nf := make(geom.Polygon, len(f))
		for i, v := range f {
			nf[i] = a.Apply(v)
		}
		out.faces = append(out.faces, nf)
	}
	return out
}

// edgeKey quantizes an edge's endpoints so near-duplicate vertices
// introduced by floating point tessellation still compare equal.
type edgeKey [6]int64

const edgeEpsilon = 1e-6

func edgeKeyOf(a, b geom.Point) edgeKey {
	q := func(v float64) int64 {
		return int64(v/edgeEpsilon + 0.5)
	}
	return edgeKey{q(a.X), q(a.Y), q(a.Z), q(b.X), q(b.Y), q(b.Z)}
}

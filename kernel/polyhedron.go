package kernel

import (
	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
)

// Polyhedron is the boundary-rep contract of §6.4: an incrementally built
// closed 2-manifold surface supporting the three boolean combinators, an
// affine transform, and the topological queries the renderer needs before
// handing a result to STL export. Any concrete implementation — MeshKernel
// here, or an exact-arithmetic one substituted later — must satisfy this
// contract unchanged.
type Polyhedron interface {
	// BeginFacet starts accumulating the vertices of one planar facet.
	BeginFacet()
	// AddVertex appends a vertex to the facet under construction.
	AddVertex(p geom.Point)
	// EndFacet closes the current facet, recording it as a face of the
	// surface once at least 3 vertices were added.
	EndFacet()
	// EndSurface finalizes the surface after every facet has been added,
	// reporting an error if the result isn't a closed 2-manifold.
	EndSurface() error

	Union(other Polyhedron) (Polyhedron, error)
	Difference(other Polyhedron) (Polyhedron, error)
	Intersection(other Polyhedron) (Polyhedron, error)

	// Transform returns a new Polyhedron with the affine applied to every
	// vertex.
	Transform(a tree.Affine) Polyhedron

	// IsSimple reports whether the surface is free of self-intersections.
	IsSimple() bool
	// IsValid reports whether the surface is a closed 2-manifold.
	IsValid() bool

	// Walk visits every facet in face order, stopping early if visit
	// returns false.
	Walk(visit func(facet []geom.Point) bool)

	// ToPolySet flattens the surface back to an unstructured polygon bag
	// for STL emission.
	ToPolySet() *geom.PolySet
}

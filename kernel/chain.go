package kernel

import (
	"github.com/gopenscad/scad/csg"
)

// RenderChain builds each primitive in a linearized CSG chain into a
// MeshKernel surface, transforms it into place, and folds the sequence
// into a single boundary-rep result via Render — the bridge between
// package csg's output and the boundary-rep kernel.
func RenderChain(chain *csg.Chain, opts RenderOptions) (Polyhedron, error) {
	leaves := make([]Polyhedron, 0, len(chain.Primitives))
	for i, ps := range chain.Primitives {
		mk, err := FromPolySet(ps)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, mk.Transform(chain.Matrices[i]))
	}
	return Render(leaves, chain.Ops, opts)
}

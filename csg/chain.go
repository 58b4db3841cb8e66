package csg

import (
	"strings"

	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
)

// Chain is the linearized, parallel-array form of a normalized Term tree
// (§3.8): a flat sequence of (primitive, matrix, op, label) entries that
// the rasterizer/preview path consumes directly instead of recursing
// through the tree each frame.
type Chain struct {
	Primitives []*geom.PolySet
	Matrices   []tree.Affine
	Ops        []Op
	Labels     []string
}

func (c *Chain) add(p *geom.PolySet, m tree.Affine, op Op, label string) {
	c.Primitives = append(c.Primitives, p)
	c.Matrices = append(c.Matrices, m)
	c.Ops = append(c.Ops, op)
	c.Labels = append(c.Labels, label)
}

// Linearize flattens a normalized (sum-of-products) Term into a Chain.
// The term must already be in normal form: every internal node's left
// child is a leaf or another normal-form term and siblings combine with
// a single top-level operator per §4.5.
func Linearize(t *Term) *Chain {
	c := &Chain{}
	importTerm(c, t, OpUnion)
	return c
}

func importTerm(c *Chain, t *Term, op Op) {
	if t.IsLeaf() {
		c.add(t.Primitive, t.Matrix, op, t.Label)
		return
	}
	importTerm(c, t.Left, op)
	importTerm(c, t.Right, t.Op)
}

// Dump renders the chain's canonical "+a -b *c" form.
func (c *Chain) Dump() string {
	var sb strings.Builder
	for i, op := range c.Ops {
		if op == OpUnion {
			if i != 0 {
				sb.WriteByte('\n')
			}
			sb.WriteByte('+')
		} else if op == OpDifference {
			sb.WriteString(" -")
		} else {
			sb.WriteString(" *")
		}
		sb.WriteString(c.Labels[i])
	}
	sb.WriteByte('\n')
	return sb.String()
}

// MaxPreviewPrimitives bounds the fast CSG-chain preview path:
// ExceedsPreviewBudget reports a chain with more leaves than this. The
// preview commands only log a warning for such a chain and still print it;
// nothing switches the preview off or hands it to the boundary-rep kernel.
const MaxPreviewPrimitives = 1000

// ExceedsPreviewBudget reports whether a chain is too large for the fast
// preview path.
func (c *Chain) ExceedsPreviewBudget() bool {
	return len(c.Primitives) > MaxPreviewPrimitives
}

package csg

import (
	"fmt"

	"github.com/gopenscad/scad/dxf"
	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
)

// Builder walks an object tree (package tree) and builds its CSG-term
// tree (§4.4), threading the accumulated affine transform and color
// override through each recursive call the way the original's
// render_csg_term walk does, and collecting highlight/background
// subtrees on a side channel instead of mixing them into the boolean
// result.
type Builder struct {
	nextLabel int

	Highlighted []*Term
	Background  []*Term

	// Render forces a term through the boundary-rep kernel and tessellates
	// the result back into a PolySet, the barrier a render() node (§4.4,
	// §4.8) needs. Package csg cannot import package kernel itself (kernel
	// imports csg to linearize its input), so this is nil until the caller
	// wires it — scad.BuildCSGTerm does, pointing it at kernel.RenderChain.
	// Left nil, a render() node behaves like group() instead of barriering.
	Render RenderFunc
}

// RenderFunc renders t to an exact boundary rep and flattens it back to a
// polygon soup.
type RenderFunc func(t *Term) (*geom.PolySet, error)

// NewBuilder creates a Builder. Set Render before calling Build if render()
// nodes in the source need their kernel barrier honored.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build converts the root of an object tree into a single CSG term,
// defaulting to a union if the root itself is not already a boolean
// combination. A root (!) tag anywhere in the tree overrides the file's
// outermost group as the effective top (§3.5), pruning every other
// sibling from the result.
func (b *Builder) Build(n tree.Node) *Term {
	return b.walk(tree.FindRootTag(n), tree.Identity(), nil)
}

func (b *Builder) label() string {
	b.nextLabel++
	return fmt.Sprintf("n%d", b.nextLabel)
}

func (b *Builder) walk(n tree.Node, m tree.Affine, color *tree.Color) *Term {
	switch node := n.(type) {
	case *tree.GroupNode:
		return b.unionChildren(node.Children(), m, color)

	case *tree.ModifierNode:
		term := b.unionChildren(node.Children(), m, color)
		switch {
		case node.Highlight:
			b.Highlighted = append(b.Highlighted, term)
			return nil
		case node.Background:
			b.Background = append(b.Background, term)
			return nil
		default:
			return term
		}

	case *tree.CSGNode:
		return b.combineChildren(fromTreeOp(node.Op), node.Children(), m, color)

	case *tree.TransformNode:
		childColor := color
		if node.Color != nil {
			childColor = node.Color
		}
		return b.unionChildren(node.Children(), tree.Compose(node.Matrix, m), childColor)

	case *tree.RenderNode:
		sub := b.unionChildren(node.Children(), m, color)
		if sub == nil || b.Render == nil {
			return sub
		}
		ps, err := b.Render(sub)
		if err != nil {
			return sub
		}
		return NewLeaf(ps, tree.Identity(), color, b.label())

	case *tree.Primitive3DNode:
		ps := geom.TessellatePrimitive3D(node)
		return NewLeaf(ps, m, color, b.label())

	case *tree.Primitive2DNode:
		ps := b.tessellate2D(node)
		return NewLeaf(ps, m, color, b.label())

	case *tree.LinearExtrudeNode:
		base := b.flatten2D(node.Children())
		out := geom.LinearExtrude(base, geom.LinearExtrudeParams{
			Height: node.Height, Twist: node.Twist, Slices: node.Slices,
			ScaleX: node.ScaleX, ScaleY: node.ScaleY, Center: node.Center,
		})
		out.Convexity = node.Convexity
		return NewLeaf(out, m, color, b.label())

	case *tree.RotateExtrudeNode:
		base := b.flatten2D(node.Children())
		out := geom.RotateExtrude(base, geom.RotateExtrudeParams{Angle: node.Angle, Fn: node.Fn, Fs: node.Fs, Fa: node.Fa})
		out.Convexity = node.Convexity
		return NewLeaf(out, m, color, b.label())

	default:
		return nil
	}
}

// flatten2D merges the border loops of the 2-D primitives among an extrude
// node's direct children into a single PolySet, the shape the extruders
// consume. Children of any other kind (transforms, groups, CSG operations)
// are skipped, so a 2-D primitive nested under one of them is not part of
// the profile.
func (b *Builder) flatten2D(children []tree.Node) *geom.PolySet {
	out := geom.New(true)
	for _, c := range children {
		if p, ok := c.(*tree.Primitive2DNode); ok {
			ps := b.tessellate2D(p)
			out.Merge(ps)
			out.Borders = append(out.Borders, ps.Borders...)
		}
	}
	return out
}

// tessellate2D tessellates a 2-D primitive leaf, routing import_dxf() leaves
// through package dxf (which reads the file lazily, here, rather than during
// evaluation) and every other kind through package geom directly.
func (b *Builder) tessellate2D(n *tree.Primitive2DNode) *geom.PolySet {
	if n.Kind == tree.Prim2DImportDXF {
		return dxf.TessellatePrimitive2D(n.Path, n.Layer, n.Fn, n.Fs, n.Fa)
	}
	return geom.TessellatePrimitive2D(n)
}

func (b *Builder) unionChildren(children []tree.Node, m tree.Affine, color *tree.Color) *Term {
	return b.combineChildren(OpUnion, children, m, color)
}

func (b *Builder) combineChildren(op Op, children []tree.Node, m tree.Affine, color *tree.Color) *Term {
	var terms []*Term
	for _, c := range children {
		if t := b.walk(c, m, color); t != nil {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = NewCombination(op, acc, t)
	}
	return acc
}

// Package csg builds, normalizes, and linearizes the CSG-term tree that
// sits between the object tree (package tree) and the boundary-rep
// kernel (package kernel): §4.4's term builder, §4.5's Kirsch-Döller
// normalizer, and §3.8's linear chain.
package csg

import (
	"fmt"

	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
)

// Op identifies a CSG-term combination (§3.7). It mirrors tree.CSGOp but
// lives in this package's own vocabulary since a Term can also be a bare
// leaf (no Op).
type Op uint8

const (
	OpLeaf Op = iota
	OpUnion
	OpDifference
	OpIntersection
)

func fromTreeOp(op tree.CSGOp) Op {
	switch op {
	case tree.CSGUnion:
		return OpUnion
	case tree.CSGDifference:
		return OpDifference
	default:
		return OpIntersection
	}
}

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "+"
	case OpDifference:
		return "-"
	case OpIntersection:
		return "*"
	default:
		return "leaf"
	}
}

// Term is a node of the CSG-term tree (§3.7): either a leaf referencing a
// PolySet primitive with its accumulated transform/color, or an internal
// boolean-combination node over two children.
//
// Terms are reference-counted rather than intrusively linked, so the
// normalizer can share a subtree across multiple rewritten parents
// without cloning geometry: Ref/Unref replace the original's C++
// reference-counted pointer discipline with an explicit counter, per
// this module's open design question.
type Term struct {
	Op       Op
	Left     *Term
	Right    *Term
	Primitive *geom.PolySet
	Matrix   tree.Affine
	Color    *tree.Color
	Label    string

	refs int32
}

// NewLeaf creates a leaf term wrapping a tessellated primitive.
func NewLeaf(primitive *geom.PolySet, matrix tree.Affine, color *tree.Color, label string) *Term {
	return &Term{Op: OpLeaf, Primitive: primitive, Matrix: matrix, Color: color, Label: label, refs: 1}
}

// NewCombination creates an internal union/difference/intersection term.
func NewCombination(op Op, left, right *Term) *Term {
	left.Ref()
	right.Ref()
	return &Term{Op: op, Left: left, Right: right, refs: 1}
}

// Ref increments the term's reference count.
func (t *Term) Ref() { t.refs++ }

// Unref decrements the term's reference count, releasing its children
// once it reaches zero.
func (t *Term) Unref() {
	t.refs--
	if t.refs > 0 {
		return
	}
	if t.Left != nil {
		t.Left.Unref()
	}
	if t.Right != nil {
		t.Right.Unref()
	}
}

// IsLeaf reports whether t is a primitive leaf.
func (t *Term) IsLeaf() bool { return t.Op == OpLeaf }

// Dump renders the term's canonical form, feeding the cache fingerprint
// of §3.11/§4.9.
func (t *Term) Dump() string {
	if t.IsLeaf() {
		return fmt.Sprintf("leaf(%s,%s)", t.Label, dumpColor(t.Color))
	}
	return fmt.Sprintf("(%s %s %s)", t.Left.Dump(), t.Op, t.Right.Dump())
}

func dumpColor(c *tree.Color) string {
	if c == nil {
		return "inherit"
	}
	return fmt.Sprintf("rgba(%g,%g,%g,%g)", c.R, c.G, c.B, c.A)
}

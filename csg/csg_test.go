package csg

import (
	"testing"

	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
)

func leaf(label string) *Term {
	return NewLeaf(geom.New(false), tree.Identity(), nil, label)
}

func TestNormalize_DistributesIntersectionOverUnion(t *testing.T) {
	// x * (y + z) -> (x * y) + (x * z)
	x, y, z := leaf("x"), leaf("y"), leaf("z")
	term := NewCombination(OpIntersection, x, NewCombination(OpUnion, y, z))

	norm := Normalize(term)
	if norm.Op != OpUnion {
		t.Fatalf("root op = %v, want OpUnion", norm.Op)
	}
	if norm.Left.Op != OpIntersection || norm.Right.Op != OpIntersection {
		t.Fatalf("children ops = %v, %v, want OpIntersection both", norm.Left.Op, norm.Right.Op)
	}
}

func TestNormalize_DifferenceOfUnionDistributes(t *testing.T) {
	// (x + y) - z -> (x - z) + (y - z)
	x, y, z := leaf("x"), leaf("y"), leaf("z")
	term := NewCombination(OpDifference, NewCombination(OpUnion, x, y), z)

	norm := Normalize(term)
	if norm.Op != OpUnion {
		t.Fatalf("root op = %v, want OpUnion", norm.Op)
	}
	if norm.Left.Op != OpDifference || norm.Right.Op != OpDifference {
		t.Fatalf("children ops = %v, %v, want OpDifference both", norm.Left.Op, norm.Right.Op)
	}
}

func TestNormalize_LeafIsFixedPoint(t *testing.T) {
	l := leaf("a")
	norm := Normalize(l)
	if norm != l {
		t.Fatalf("expected leaf to normalize to itself")
	}
}

func TestLinearize_FlattensToParallelArrays(t *testing.T) {
	x, y := leaf("x"), leaf("y")
	term := NewCombination(OpDifference, x, y)
	chain := Linearize(Normalize(term))

	if len(chain.Labels) != 2 {
		t.Fatalf("len(Labels) = %d, want 2", len(chain.Labels))
	}
	if chain.Ops[0] != OpUnion {
		t.Errorf("first op = %v, want OpUnion (chain always starts from the empty set)", chain.Ops[0])
	}
	if chain.Ops[1] != OpDifference {
		t.Errorf("second op = %v, want OpDifference", chain.Ops[1])
	}
}

func TestBuilder_UnionOfTwoCubes(t *testing.T) {
	a := tree.NewPrimitive3D(1, nil, tree.PrimCube)
	a.Size = [3]float64{1, 1, 1}
	bNode := tree.NewPrimitive3D(2, nil, tree.PrimCube)
	bNode.Size = [3]float64{1, 1, 1}
	root := tree.NewCSG(3, nil, tree.CSGUnion, []tree.Node{a, bNode})

	builder := NewBuilder()
	term := builder.Build(root)
	if term.Op != OpUnion {
		t.Fatalf("Op = %v, want OpUnion", term.Op)
	}
}

func TestBuilder_HighlightCollectedSeparately(t *testing.T) {
	cube := tree.NewPrimitive3D(1, nil, tree.PrimCube)
	mod := tree.NewModifier(2, nil, false, true, false, []tree.Node{cube})

	builder := NewBuilder()
	term := builder.Build(mod)
	if term != nil {
		t.Fatalf("expected nil boolean result for a pure highlight subtree")
	}
	if len(builder.Highlighted) != 1 {
		t.Fatalf("len(Highlighted) = %d, want 1", len(builder.Highlighted))
	}
}

func TestChain_ExceedsPreviewBudget(t *testing.T) {
	c := &Chain{}
	for i := 0; i <= MaxPreviewPrimitives; i++ {
		c.add(geom.New(false), tree.Identity(), OpUnion, "x")
	}
	if !c.ExceedsPreviewBudget() {
		t.Fatalf("expected budget to be exceeded")
	}
}

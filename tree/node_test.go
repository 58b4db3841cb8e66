package tree

import (
	"strings"
	"testing"
)

func TestDump_GroupAndCSGNesting(t *testing.T) {
	cube := NewPrimitive3D(1, nil, PrimCube)
	cube.Size = [3]float64{1, 2, 3}
	sphere := NewPrimitive3D(2, nil, PrimSphere)
	sphere.Radius1 = 5

	csg := NewCSG(3, nil, CSGUnion, []Node{cube, sphere})
	group := NewGroup(4, nil, []Node{csg})

	dump := group.Dump()
	if !strings.HasPrefix(dump, "group[union[cube(") {
		t.Fatalf("unexpected dump: %s", dump)
	}
}

func TestDump_IsDeterministic(t *testing.T) {
	cube := NewPrimitive3D(1, nil, PrimCube)
	cube.Size = [3]float64{1, 1, 1}
	a := cube.Dump()
	b := cube.Dump()
	if a != b {
		t.Fatalf("Dump not deterministic: %q vs %q", a, b)
	}
}

func TestTransformNode_ColorNilMeansInherit(t *testing.T) {
	tn := NewTransform(1, nil, Identity(), nil, nil)
	if !strings.Contains(tn.Dump(), "inherit") {
		t.Fatalf("expected inherit marker, got %s", tn.Dump())
	}
}

func TestEachNodeHasUniqueUUID(t *testing.T) {
	a := NewGroup(1, nil, nil)
	b := NewGroup(2, nil, nil)
	if a.UUID() == b.UUID() {
		t.Fatalf("expected distinct UUIDs")
	}
}

func TestFindRootTag_SelectsTaggedSubtreeOverSiblings(t *testing.T) {
	cube := NewPrimitive3D(1, nil, PrimCube)
	sphere := NewPrimitive3D(2, nil, PrimSphere)
	tagged := NewModifier(3, nil, true, false, false, []Node{sphere})
	root := NewGroup(4, nil, []Node{cube, tagged})

	got := FindRootTag(root)
	if got != Node(tagged) {
		t.Fatalf("expected the root-tagged modifier node, got %v", got)
	}
}

func TestFindRootTag_NoTagReturnsOriginal(t *testing.T) {
	cube := NewPrimitive3D(1, nil, PrimCube)
	root := NewGroup(2, nil, []Node{cube})

	got := FindRootTag(root)
	if got != Node(root) {
		t.Fatalf("expected the original root when no node is tagged")
	}
}

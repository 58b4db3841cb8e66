package geom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gopenscad/scad/tree"
)

func TestTessellateCube_EightCornersSixFaces(t *testing.T) {
	n := tree.NewPrimitive3D(1, nil, tree.PrimCube)
	n.Size = [3]float64{2, 2, 2}
	ps := TessellatePrimitive3D(n)
	if len(ps.Polygons) != 6 {
		t.Fatalf("len(Polygons) = %d, want 6", len(ps.Polygons))
	}
}

func TestFragments_FnOverridesAngleAndSize(t *testing.T) {
	if got := fragments(10, 6, 2, 12); got != 6 {
		t.Fatalf("fragments = %d, want 6", got)
	}
}

func TestTessellateCircle_MatchesFragmentCount(t *testing.T) {
	n := tree.NewPrimitive2D(1, nil, tree.Prim2DCircle)
	n.Radius = 5
	n.Fn = 8
	ps := TessellatePrimitive2D(n)
	if len(ps.Polygons[0]) != 8 {
		t.Fatalf("circle vertex count = %d, want 8", len(ps.Polygons[0]))
	}
}

func TestLinearExtrude_ProducesSideWallsAndCaps(t *testing.T) {
	n := tree.NewPrimitive2D(1, nil, tree.Prim2DSquare)
	n.Size = [2]float64{1, 1}
	base := TessellatePrimitive2D(n)
	out := LinearExtrude(base, LinearExtrudeParams{Height: 5, Slices: 1, ScaleX: 1, ScaleY: 1})
	// 4 side walls + top + bottom
	if len(out.Polygons) != 6 {
		t.Fatalf("len(Polygons) = %d, want 6", len(out.Polygons))
	}
}

func TestRotateExtrude_FullRevolutionClosesLoop(t *testing.T) {
	n := tree.NewPrimitive2D(1, nil, tree.Prim2DSquare)
	n.Size = [2]float64{1, 1}
	n.Center = false
	base := TessellatePrimitive2D(n)
	// shift profile to x>=1 so it doesn't cross the rotation axis
	for i := range base.Borders[0] {
		base.Borders[0][i].X += 1
	}
	out := RotateExtrude(base, RotateExtrudeParams{Angle: 360, Fn: 8})
	if len(out.Polygons) == 0 {
		t.Fatalf("expected non-empty revolved mesh")
	}
}

func TestSTL_AsciiRoundTrip(t *testing.T) {
	n := tree.NewPrimitive3D(1, nil, tree.PrimCube)
	n.Size = [3]float64{1, 1, 1}
	ps := TessellatePrimitive3D(n)

	var buf bytes.Buffer
	if err := EncodeSTLAscii(&buf, ps, "cube"); err != nil {
		t.Fatalf("EncodeSTLAscii: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "solid cube") {
		t.Fatalf("missing solid header: %s", buf.String()[:20])
	}

	decoded, err := DecodeSTLAscii(&buf)
	if err != nil {
		t.Fatalf("DecodeSTLAscii: %v", err)
	}
	if len(decoded.Polygons) == 0 {
		t.Fatalf("expected decoded triangles")
	}
}

func TestSTL_BinaryRoundTrip(t *testing.T) {
	n := tree.NewPrimitive3D(1, nil, tree.PrimCube)
	n.Size = [3]float64{1, 1, 1}
	ps := TessellatePrimitive3D(n)

	var buf bytes.Buffer
	if err := EncodeSTLBinary(&buf, ps); err != nil {
		t.Fatalf("EncodeSTLBinary: %v", err)
	}
	decoded, err := DecodeSTLBinary(&buf)
	if err != nil {
		t.Fatalf("DecodeSTLBinary: %v", err)
	}
	if len(decoded.Polygons) == 0 {
		t.Fatalf("expected decoded triangles")
	}
}

func TestLoadSurface_GridToQuads(t *testing.T) {
	data := "0 0 0\n0 1 0\n0 0 0\n"
	ps, err := LoadSurface(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadSurface: %v", err)
	}
	if len(ps.Polygons) != 4 {
		t.Fatalf("len(Polygons) = %d, want 4", len(ps.Polygons))
	}
}

package dxf

import (
	"strings"
	"testing"
)

const sampleSquare = `0
SECTION
2
ENTITIES
0
LINE
8
0
10
0
20
0
11
10
21
0
0
LINE
8
0
10
10
20
0
11
10
21
10
0
LINE
8
0
10
10
20
10
11
0
21
10
0
LINE
8
0
10
0
20
10
11
0
21
0
0
ENDSEC
0
EOF
`

func TestRead_ClosedSquareFromFourLines(t *testing.T) {
	data, err := Read(strings.NewReader(sampleSquare), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(data.Paths) != 1 {
		t.Fatalf("len(Paths) = %d, want 1", len(data.Paths))
	}
	if !data.Paths[0].Closed {
		t.Fatalf("expected a closed path")
	}
}

func TestToPolySet_ClosedPathBecomesPolygon(t *testing.T) {
	data, err := Read(strings.NewReader(sampleSquare), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	ps := data.ToPolySet()
	if len(ps.Polygons) != 1 {
		t.Fatalf("len(Polygons) = %d, want 1", len(ps.Polygons))
	}
}

func TestRead_LayerFilterExcludesOtherLayers(t *testing.T) {
	src := `0
SECTION
2
ENTITIES
0
LINE
8
other
10
0
20
0
11
1
21
0
0
ENDSEC
0
EOF
`
	data, err := Read(strings.NewReader(src), Options{Layer: "mine"})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(data.Paths) != 0 {
		t.Fatalf("expected no paths on a filtered-out layer, got %d", len(data.Paths))
	}
}

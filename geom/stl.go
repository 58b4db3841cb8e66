package geom

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// EncodeSTLAscii writes p as an ASCII STL mesh (§6.2). Polygons are
// fan-triangulated and degenerate triangles (zero-area, per the
// original's export skip rule) are dropped rather than written.
func EncodeSTLAscii(w io.Writer, p *PolySet, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for tri := range triangles(p) {
		n := faceNormal(tri)
		fmt.Fprintf(bw, "  facet normal %s %s %s\n", fnum(n.X), fnum(n.Y), fnum(n.Z))
		bw.WriteString("    outer loop\n")
		for _, v := range tri {
			fmt.Fprintf(bw, "      vertex %s %s %s\n", fnum(v.X), fnum(v.Y), fnum(v.Z))
		}
		bw.WriteString("    endloop\n")
		bw.WriteString("  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

func fnum(f float64) string { return strconv.FormatFloat(f, 'g', -1, 32) }

// EncodeSTLBinary writes p as a binary STL mesh (§6.2).
func EncodeSTLBinary(w io.Writer, p *PolySet) error {
	tris := make([][3]Point, 0, len(p.Polygons))
	for tri := range triangles(p) {
		tris = append(tris, tri)
	}

	var header [80]byte
	copy(header[:], "binary STL exported by scad")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}
	for _, tri := range tris {
		n := faceNormal(tri)
		vals := []float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(tri[0].X), float32(tri[0].Y), float32(tri[0].Z),
			float32(tri[1].X), float32(tri[1].Y), float32(tri[1].Z),
			float32(tri[2].X), float32(tri[2].Y), float32(tri[2].Z),
		}
		for _, v := range vals {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}

// triangles lazily fan-triangulates every polygon and skips any triangle
// whose area is below a small epsilon (degenerate, per the STL-export
// skip rule).
func triangles(p *PolySet) func(yield func([3]Point) bool) {
	return func(yield func([3]Point) bool) {
		for _, poly := range p.Polygons {
			if len(poly) < 3 {
				continue
			}
			for i := 1; i < len(poly)-1; i++ {
				tri := [3]Point{poly[0], poly[i], poly[i+1]}
				if triangleArea(tri) < 1e-12 {
					continue
				}
				if !yield(tri) {
					return
				}
			}
		}
	}
}

func triangleArea(tri [3]Point) float64 {
	ax, ay, az := tri[1].X-tri[0].X, tri[1].Y-tri[0].Y, tri[1].Z-tri[0].Z
	bx, by, bz := tri[2].X-tri[0].X, tri[2].Y-tri[0].Y, tri[2].Z-tri[0].Z
	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}

func faceNormal(tri [3]Point) Point {
	ax, ay, az := tri[1].X-tri[0].X, tri[1].Y-tri[0].Y, tri[1].Z-tri[0].Z
	bx, by, bz := tri[2].X-tri[0].X, tri[2].Y-tri[0].Y, tri[2].Z-tri[0].Z
	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	norm := math.Sqrt(cx*cx + cy*cy + cz*cz)
	if norm == 0 {
		return Point{}
	}
	return Point{X: cx / norm, Y: cy / norm, Z: cz / norm}
}

// DecodeSTLAscii parses an ASCII STL mesh into a PolySet of triangles.
func DecodeSTLAscii(r io.Reader) (*PolySet, error) {
	ps := New(false)
	sc := bufio.NewScanner(r)
	var current Polygon
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "vertex"):
			fields := strings.Fields(line)
			if len(fields) != 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			current = append(current, Point{X: x, Y: y, Z: z})
		case strings.HasPrefix(line, "endloop"):
			ps.AppendPolygon(current)
			current = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ps, nil
}

// DecodeSTLBinary parses a binary STL mesh into a PolySet of triangles.
func DecodeSTLBinary(r io.Reader) (*PolySet, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading STL triangle count: %w", err)
	}
	ps := New(false)
	for i := uint32(0); i < count; i++ {
		var rec [12]float32
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("reading STL facet %d: %w", i, err)
		}
		var attr uint16
		if err := binary.Read(r, binary.LittleEndian, &attr); err != nil {
			return nil, fmt.Errorf("reading STL attribute byte count: %w", err)
		}
		poly := Polygon{
			{X: float64(rec[3]), Y: float64(rec[4]), Z: float64(rec[5])},
			{X: float64(rec[6]), Y: float64(rec[7]), Z: float64(rec[8])},
			{X: float64(rec[9]), Y: float64(rec[10]), Z: float64(rec[11])},
		}
		ps.AppendPolygon(poly)
	}
	return ps, nil
}

// LoadSurface parses a whitespace-delimited elevation grid (§6.2's
// surface() heightmap format) into a PolySet of quad facets.
func LoadSurface(r io.Reader) (*PolySet, error) {
	sc := bufio.NewScanner(r)
	var rows [][]float64
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing surface row: %w", err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	ps := New(false)
	for y := 0; y+1 < len(rows); y++ {
		for x := 0; x+1 < len(rows[y]); x++ {
			p00 := Point{X: float64(x), Y: float64(y), Z: rows[y][x]}
			p10 := Point{X: float64(x + 1), Y: float64(y), Z: rows[y][x+1]}
			p11 := Point{X: float64(x + 1), Y: float64(y + 1), Z: rows[y+1][x+1]}
			p01 := Point{X: float64(x), Y: float64(y + 1), Z: rows[y+1][x]}
			ps.AppendPolygon(Polygon{p00, p10, p11, p01})
		}
	}
	return ps, nil
}

package geom

import (
	"math"

	"github.com/gopenscad/scad/tree"
)

// Fragments exposes the §4.1 fragment-count formula to callers outside this
// package (e.g. linear_extrude's adaptive twist-slice default, §4.7).
func Fragments(radius, fn, fs, fa float64) int {
	return fragments(radius, fn, fs, fa)
}

// fragments computes the number of facets for a curved primitive from the
// $fn/$fs/$fa triple (§4.1): $fn overrides when positive (raised to at
// least 3); otherwise the angle and size minimums are combined, exactly as
// the original's get_fragments_from_r.
func fragments(radius, fn, fs, fa float64) int {
	if radius <= 0 {
		return 3
	}
	if fn > 0 {
		if fn < 3 {
			return 3
		}
		return int(fn)
	}
	fsN := math.Ceil((2 * math.Pi * radius) / fs)
	faN := math.Ceil(360.0 / fa)
	n := int(math.Max(math.Min(fsN, faN), 5))
	if n < 3 {
		n = 3
	}
	return n
}

// TessellatePrimitive3D converts a solid primitive leaf into a PolySet
// (§4.1/§3.9).
func TessellatePrimitive3D(n *tree.Primitive3DNode) *PolySet {
	switch n.Kind {
	case tree.PrimCube:
		return tessellateCube(n)
	case tree.PrimSphere:
		return tessellateSphere(n)
	case tree.PrimCylinder:
		return tessellateCylinder(n)
	case tree.PrimPolyhedron:
		return tessellatePolyhedron(n)
	default:
		return New(false)
	}
}

func tessellateCube(n *tree.Primitive3DNode) *PolySet {
	sx, sy, sz := n.Size[0], n.Size[1], n.Size[2]
	var ox, oy, oz float64
	if n.Center {
		ox, oy, oz = -sx/2, -sy/2, -sz/2
	}
	corners := [8]Point{
		{X: ox, Y: oy, Z: oz}, {X: ox + sx, Y: oy, Z: oz}, {X: ox + sx, Y: oy + sy, Z: oz}, {X: ox, Y: oy + sy, Z: oz},
		{X: ox, Y: oy, Z: oz + sz}, {X: ox + sx, Y: oy, Z: oz + sz}, {X: ox + sx, Y: oy + sy, Z: oz + sz}, {X: ox, Y: oy + sy, Z: oz + sz},
	}
	faces := [6][4]int{
		{0, 1, 2, 3}, {4, 7, 6, 5},
		{0, 4, 5, 1}, {1, 5, 6, 2},
		{2, 6, 7, 3}, {3, 7, 4, 0},
	}
	ps := New(false)
	for _, f := range faces {
		ps.AppendPolygon(Polygon{corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]})
	}
	return ps
}

func tessellateSphere(n *tree.Primitive3DNode) *PolySet {
	r := n.Radius1
	frags := fragments(r, n.Fn, n.Fs, n.Fa)
	rings := frags / 2
	if rings < 2 {
		rings = 2
	}
	ps := New(false)
	ring := func(i int) []Point {
		phi := math.Pi * float64(i) / float64(rings)
		y := r * math.Cos(phi)
		ringR := r * math.Sin(phi)
		pts := make([]Point, frags)
		for j := 0; j < frags; j++ {
			theta := 2 * math.Pi * float64(j) / float64(frags)
			pts[j] = Point{X: ringR * math.Cos(theta), Y: ringR * math.Sin(theta), Z: y}
		}
		return pts
	}
	prev := ring(0)
	for i := 1; i <= rings; i++ {
		cur := ring(i)
		for j := 0; j < frags; j++ {
			j2 := (j + 1) % frags
			ps.AppendPolygon(Polygon{prev[j], cur[j], cur[j2], prev[j2]})
		}
		prev = cur
	}
	return ps
}

func tessellateCylinder(n *tree.Primitive3DNode) *PolySet {
	maxR := math.Max(n.Radius1, n.Radius2)
	frags := fragments(maxR, n.Fn, n.Fs, n.Fa)
	var z0, z1 float64
	if n.Center {
		z0, z1 = -n.Height/2, n.Height/2
	} else {
		z0, z1 = 0, n.Height
	}
	bottom := make([]Point, frags)
	top := make([]Point, frags)
	for i := 0; i < frags; i++ {
		theta := 2 * math.Pi * float64(i) / float64(frags)
		bottom[i] = Point{X: n.Radius1 * math.Cos(theta), Y: n.Radius1 * math.Sin(theta), Z: z0}
		top[i] = Point{X: n.Radius2 * math.Cos(theta), Y: n.Radius2 * math.Sin(theta), Z: z1}
	}
	ps := New(false)
	if n.Radius1 > 0 {
		bottomCap := make(Polygon, frags)
		for i := 0; i < frags; i++ {
			bottomCap[frags-1-i] = bottom[i]
		}
		ps.AppendPolygon(bottomCap)
	}
	if n.Radius2 > 0 {
		ps.AppendPolygon(append(Polygon{}, top...))
	}
	for i := 0; i < frags; i++ {
		i2 := (i + 1) % frags
		ps.AppendPolygon(Polygon{bottom[i], bottom[i2], top[i2], top[i]})
	}
	return ps
}

func tessellatePolyhedron(n *tree.Primitive3DNode) *PolySet {
	ps := New(false)
	for _, face := range n.Faces {
		poly := make(Polygon, len(face))
		for i, idx := range face {
			if idx < 0 || idx >= len(n.Points) {
				continue
			}
			p := n.Points[idx]
			poly[i] = Point{X: p[0], Y: p[1], Z: p[2]}
		}
		ps.AppendPolygon(poly)
	}
	ps.Convexity = n.Convexity
	return ps
}

// TessellatePrimitive2D converts a 2-D primitive leaf into a flat (z=0)
// PolySet whose polygons are also recorded as its border loops (one per
// polygon() path; square and circle yield one).
func TessellatePrimitive2D(n *tree.Primitive2DNode) *PolySet {
	switch n.Kind {
	case tree.Prim2DSquare:
		return tessellateSquare(n)
	case tree.Prim2DCircle:
		return tessellateCircle(n)
	case tree.Prim2DPolygon:
		return tessellatePolygon(n)
	default:
		return New(true)
	}
}

func tessellateSquare(n *tree.Primitive2DNode) *PolySet {
	sx, sy := n.Size[0], n.Size[1]
	var ox, oy float64
	if n.Center {
		ox, oy = -sx/2, -sy/2
	}
	poly := Polygon{
		{X: ox, Y: oy}, {X: ox + sx, Y: oy}, {X: ox + sx, Y: oy + sy}, {X: ox, Y: oy + sy},
	}
	ps := New(true)
	ps.AppendPolygon(poly)
	ps.Borders = []Polygon{poly}
	return ps
}

func tessellateCircle(n *tree.Primitive2DNode) *PolySet {
	frags := fragments(n.Radius, n.Fn, n.Fs, n.Fa)
	poly := make(Polygon, frags)
	for i := 0; i < frags; i++ {
		theta := 2 * math.Pi * float64(i) / float64(frags)
		poly[i] = Point{X: n.Radius * math.Cos(theta), Y: n.Radius * math.Sin(theta)}
	}
	ps := New(true)
	ps.AppendPolygon(poly)
	ps.Borders = []Polygon{poly}
	return ps
}

func tessellatePolygon(n *tree.Primitive2DNode) *PolySet {
	ps := New(true)
	paths := n.Paths
	if len(paths) == 0 && len(n.Points) > 0 {
		path := make([]int, len(n.Points))
		for i := range path {
			path[i] = i
		}
		paths = [][]int{path}
	}
	for _, path := range paths {
		poly := make(Polygon, len(path))
		for i, idx := range path {
			if idx < 0 || idx >= len(n.Points) {
				continue
			}
			p := n.Points[idx]
			poly[i] = Point{X: p[0], Y: p[1]}
		}
		ps.AppendPolygon(poly)
		ps.Borders = append(ps.Borders, poly)
	}
	ps.Convexity = n.Convexity
	return ps
}

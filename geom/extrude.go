package geom

import "math"

// LinearExtrudeParams mirrors tree.LinearExtrudeNode's fields, kept
// separate from the tree package so geom has no dependency back on eval.
type LinearExtrudeParams struct {
	Height         float64
	Twist          float64
	Slices         int
	ScaleX, ScaleY float64
	Center         bool
}

// LinearExtrude sweeps a 2-D PolySet's border loops along Z (§4.7),
// applying optional twist and top-scale per slice.
func LinearExtrude(base *PolySet, p LinearExtrudeParams) *PolySet {
	slices := p.Slices
	if slices < 1 {
		slices = 1
	}
	var z0 float64
	if p.Center {
		z0 = -p.Height / 2
	}

	out := New(false)
	out.Convexity = base.Convexity

	layer := func(t float64) []Polygon {
		z := z0 + t*p.Height
		angle := t * p.Twist * math.Pi / 180
		sx := 1 + t*(p.ScaleX-1)
		sy := 1 + t*(p.ScaleY-1)
		cosA, sinA := math.Cos(angle), math.Sin(angle)
		layers := make([]Polygon, len(base.Borders))
		for i, loop := range base.Borders {
			poly := make(Polygon, len(loop))
			for j, v := range loop {
				x, y := v.X*sx, v.Y*sy
				poly[j] = Point{X: x*cosA - y*sinA, Y: x*sinA + y*cosA, Z: z}
			}
			layers[i] = poly
		}
		return layers
	}

	bottom := layer(0)
	top := layer(1)
	for _, loop := range bottom {
		out.AppendPolygon(reversePolygon(loop))
	}
	for _, loop := range top {
		out.AppendPolygon(loop)
	}

	prev := bottom
	for s := 1; s <= slices; s++ {
		t := float64(s) / float64(slices)
		cur := layer(t)
		for li := range prev {
			n := len(prev[li])
			for i := 0; i < n; i++ {
				i2 := (i + 1) % n
				out.AppendPolygon(Polygon{prev[li][i], cur[li][i], cur[li][i2], prev[li][i2]})
			}
		}
		prev = cur
	}
	return out
}

// RotateExtrudeParams mirrors tree.RotateExtrudeNode's fields.
type RotateExtrudeParams struct {
	Angle      float64
	Fn, Fs, Fa float64
}

// RotateExtrude revolves a 2-D PolySet's border loops around the Z axis
// (§4.7). The profile is assumed to lie entirely at x>=0, per the
// original's rotate_extrude precondition.
func RotateExtrude(base *PolySet, p RotateExtrudeParams) *PolySet {
	maxR := 0.0
	for _, loop := range base.Borders {
		for _, v := range loop {
			if v.X > maxR {
				maxR = v.X
			}
		}
	}
	frags := fragments(maxR, p.Fn, p.Fs, p.Fa)
	steps := int(float64(frags) * p.Angle / 360)
	if steps < 1 {
		steps = 1
	}

	out := New(false)
	out.Convexity = base.Convexity

	ring := func(step int) []Polygon {
		theta := p.Angle * math.Pi / 180 * float64(step) / float64(steps)
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		rings := make([]Polygon, len(base.Borders))
		for i, loop := range base.Borders {
			poly := make(Polygon, len(loop))
			for j, v := range loop {
				poly[j] = Point{X: v.X * cosT, Y: v.X * sinT, Z: v.Y}
			}
			rings[i] = poly
		}
		return rings
	}

	prev := ring(0)
	for s := 1; s <= steps; s++ {
		cur := ring(s)
		for li := range prev {
			n := len(prev[li])
			for i := 0; i < n; i++ {
				i2 := (i + 1) % n
				if face := axisQuad(prev[li][i], cur[li][i], cur[li][i2], prev[li][i2]); face != nil {
					out.AppendPolygon(face)
				}
			}
		}
		prev = cur
	}
	return out
}

// axisQuad builds the side face between two adjacent revolution steps,
// dropping the edge where the profile vertex sits on the rotation axis
// (x=0, §4.7): such a vertex revolves to the same point at every step,
// collapsing the corresponding side of the quad to zero length, so the
// face is emitted as a triangle instead, and omitted entirely when both
// edges of the quad lie on the axis.
func axisQuad(a, b, c, d Point) Polygon {
	switch {
	case a == b && c == d:
		return nil
	case a == b:
		return Polygon{a, c, d}
	case c == d:
		return Polygon{a, b, c}
	default:
		return Polygon{a, b, c, d}
	}
}

func reversePolygon(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

package eval

import (
	"math"

	"github.com/gopenscad/scad/dxf"
	"github.com/gopenscad/scad/value"
)

const degToRad = math.Pi / 180
const radToDeg = 180 / math.Pi

// registerMathFunctions wires the trigonometric-in-degrees and general
// numeric builtins (§4.3's function table).
func registerMathFunctions(r *Registry) {
	unary := func(f func(float64) float64) FuncImpl {
		return func(ev *Evaluator, ctx *Context, args Args) value.Value {
			n, ok := value.AsNumber(args.Get("", 0))
			if !ok {
				return value.Undef()
			}
			return value.Number(f(n))
		}
	}
	degUnary := func(f func(float64) float64) FuncImpl {
		return unary(func(n float64) float64 { return f(n * degToRad) })
	}
	invDegUnary := func(f func(float64) float64) FuncImpl {
		return unary(func(n float64) float64 { return f(n) * radToDeg })
	}

	r.Function("sin", degUnary(math.Sin))
	r.Function("cos", degUnary(math.Cos))
	r.Function("tan", degUnary(math.Tan))
	r.Function("asin", invDegUnary(math.Asin))
	r.Function("acos", invDegUnary(math.Acos))
	r.Function("atan", invDegUnary(math.Atan))
	r.Function("atan2", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		y, ok1 := value.AsNumber(args.Get("", 0))
		x, ok2 := value.AsNumber(args.Get("", 1))
		if !ok1 || !ok2 {
			return value.Undef()
		}
		return value.Number(math.Atan2(y, x) * radToDeg)
	})
	r.Function("sqrt", unary(math.Sqrt))
	r.Function("abs", unary(math.Abs))
	r.Function("floor", unary(math.Floor))
	r.Function("ceil", unary(math.Ceil))
	r.Function("round", unary(math.Round))
	r.Function("ln", unary(math.Log))
	r.Function("log", unary(math.Log10))
	r.Function("exp", unary(math.Exp))
	r.Function("sign", unary(func(n float64) float64 {
		switch {
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return 0
		}
	}))
	r.Function("pow", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		base, ok1 := value.AsNumber(args.Get("", 0))
		exp, ok2 := value.AsNumber(args.Get("", 1))
		if !ok1 || !ok2 {
			return value.Undef()
		}
		return value.Number(math.Pow(base, exp))
	})
	r.Function("min", variadicNumeric(math.Min, math.Inf(1)))
	r.Function("max", variadicNumeric(math.Max, math.Inf(-1)))
	r.Function("len", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		v := args.Get("", 0)
		switch v.Kind() {
		case value.KindVector, value.KindRange:
			return value.Number(float64(v.Len()))
		case value.KindString:
			s, _ := v.Str()
			return value.Number(float64(len([]rune(s))))
		default:
			return value.Undef()
		}
	})
	r.Function("concat", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		var out []value.Value
		for _, a := range args.Positional {
			out = append(out, a.Seq()...)
		}
		return value.NewVector(out)
	})
	r.Function("str", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		var sb []byte
		for _, a := range args.Positional {
			sb = append(sb, []byte(valueToStr(a))...)
		}
		return value.String(string(sb))
	})
	r.Function("norm", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		items, ok := args.Get("", 0).Vector()
		if !ok {
			return value.Undef()
		}
		var sum float64
		for _, it := range items {
			n, ok := value.AsNumber(it)
			if !ok {
				return value.Undef()
			}
			sum += n * n
		}
		return value.Number(math.Sqrt(sum))
	})
}

// registerDxfFunctions wires dxf_dim() and dxf_cross() (§3.10, §6.1),
// which read a measurement out of a DXF file's DIMENSION/LINE entities
// rather than contributing geometry to the tree.
func registerDxfFunctions(r *Registry) {
	r.Function("dxf_dim", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		// dxf_dim(file, name, layer, origin, scale)
		filename, _ := args.Get("file", 0).Str()
		name, hasName := args.Get("name", 1).Str()
		layer, _ := args.Get("layer", 2).Str()
		origin := value.As2Vector(args.Get("origin", 3), [2]float64{0, 0})
		scale, ok := value.AsNumber(args.Get("scale", 4))
		if !ok {
			scale = 1
		}
		data, err := dxf.ReadFile(filename, dxf.Options{Layer: layer, XOrigin: origin[0], YOrigin: origin[1], Scale: scale})
		if err != nil {
			return value.Undef()
		}
		for _, d := range data.Dims {
			if hasName && d.Name != name {
				continue
			}
			switch d.Type & 7 {
			case 0:
				x := d.Coords[4][0] - d.Coords[3][0]
				y := d.Coords[4][1] - d.Coords[3][1]
				angle := d.Angle * degToRad
				return value.Number(math.Abs(x*math.Cos(angle) + y*math.Sin(angle)))
			case 2:
				a1 := math.Atan2(d.Coords[0][0]-d.Coords[5][0], d.Coords[0][1]-d.Coords[5][1])
				a2 := math.Atan2(d.Coords[4][0]-d.Coords[3][0], d.Coords[4][1]-d.Coords[3][1])
				return value.Number(math.Abs(a1-a2) * radToDeg)
			default:
				return value.Undef()
			}
		}
		return value.Undef()
	})

	r.Function("dxf_cross", func(ev *Evaluator, ctx *Context, args Args) value.Value {
		// dxf_cross(file, layer, origin, scale)
		filename, _ := args.Get("file", 0).Str()
		layer, _ := args.Get("layer", 1).Str()
		origin := value.As2Vector(args.Get("origin", 2), [2]float64{0, 0})
		scale, ok := value.AsNumber(args.Get("scale", 3))
		if !ok {
			scale = 1
		}
		data, err := dxf.ReadFile(filename, dxf.Options{Layer: layer, XOrigin: origin[0], YOrigin: origin[1], Scale: scale})
		if err != nil {
			return value.Undef()
		}
		var coords [4][2]float64
		j := 0
		for _, p := range data.Paths {
			if len(p.Points) != 2 {
				continue
			}
			coords[j][0], coords[j][1] = p.Points[0].X, p.Points[0].Y
			j++
			coords[j][0], coords[j][1] = p.Points[1].X, p.Points[1].Y
			j++
			if j == 4 {
				x1, y1 := coords[0][0], coords[0][1]
				x2, y2 := coords[1][0], coords[1][1]
				x3, y3 := coords[2][0], coords[2][1]
				x4, y4 := coords[3][0], coords[3][1]
				dem := (y4-y3)*(x2-x1) - (x4-x3)*(y2-y1)
				if dem == 0 {
					break
				}
				ua := ((x4-x3)*(y1-y3) - (y4-y3)*(x1-x3)) / dem
				x := x1 + ua*(x2-x1)
				y := y1 + ua*(y2-y1)
				return value.NewVector([]value.Value{value.Number(x), value.Number(y)})
			}
		}
		return value.Undef()
	})
}

func variadicNumeric(op func(a, b float64) float64, identity float64) FuncImpl {
	return func(ev *Evaluator, ctx *Context, args Args) value.Value {
		items := args.Positional
		if len(items) == 1 {
			items = items[0].Seq()
		}
		if len(items) == 0 {
			return value.Undef()
		}
		acc := identity
		for _, it := range items {
			n, ok := value.AsNumber(it)
			if !ok {
				return value.Undef()
			}
			acc = op(acc, n)
		}
		return value.Number(acc)
	}
}

func valueToStr(v value.Value) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return v.Dump()
}

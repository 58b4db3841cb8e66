package eval

import (
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewDefaultRegistry builds the registry of every builtin function and
// module named in §4.1/§4.3/§4.6/§4.7: primitives, transforms, CSG
// operators, control modules, and extrusions.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerMathFunctions(r)
	registerDxfFunctions(r)
	registerPrimitives(r)
	registerTransforms(r)
	registerCSGModules(r)
	registerControlModules(r)
	registerExtrusions(r)
	registerImportExport(r)
	return r
}

func vec3(v value.Value, def [3]float64) [3]float64 { return value.As3Vector(v, def) }
func vec2(v value.Value, def [2]float64) [2]float64 { return value.As2Vector(v, def) }

func registerPrimitives(r *Registry) {
	r.Module("cube", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		size := vec3(args.Get("size", 0), [3]float64{1, 1, 1})
		center := value.AsBool(args.GetOr("center", 1, value.Bool(false)))
		n := tree.NewPrimitive3D(ev.nextNodeID(), nil, tree.PrimCube)
		n.Size = size
		n.Center = center
		return []tree.Node{n}
	})
	r.Module("sphere", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		radius := resolveRadius(args, ctx, "r", "d", 0, 1)
		n := tree.NewPrimitive3D(ev.nextNodeID(), nil, tree.PrimSphere)
		n.Radius1 = radius
		n.Fn, n.Fs, n.Fa = fragmentArgs(ctx, args)
		return []tree.Node{n}
	})
	r.Module("cylinder", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		h, _ := value.AsNumber(args.GetOr("h", 0, value.Number(1)))
		r1 := resolveRadius(args, ctx, "r1", "d1", 1, 2)
		r2 := resolveRadius(args, ctx, "r2", "d2", 2, 3)
		if rv := args.Get("r", 4); !rv.IsUndef() {
			if rr, ok := value.AsNumber(rv); ok {
				r1, r2 = rr, rr
			}
		}
		center := value.AsBool(args.GetOr("center", 5, value.Bool(false)))
		n := tree.NewPrimitive3D(ev.nextNodeID(), nil, tree.PrimCylinder)
		n.Height, n.Radius1, n.Radius2, n.Center = h, r1, r2, center
		n.Fn, n.Fs, n.Fa = fragmentArgs(ctx, args)
		return []tree.Node{n}
	})
	r.Module("polyhedron", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		n := tree.NewPrimitive3D(ev.nextNodeID(), nil, tree.PrimPolyhedron)
		pts, _ := args.GetOr("points", 0, value.Undef()).Vector()
		for _, p := range pts {
			n.Points = append(n.Points, vec3(p, [3]float64{}))
		}
		faces, _ := args.GetOr("faces", 1, value.Undef()).Vector()
		for _, f := range faces {
			items := f.Seq()
			face := make([]int, len(items))
			for i, it := range items {
				idx, _ := value.AsNumber(it)
				face[i] = int(idx)
			}
			n.Faces = append(n.Faces, face)
		}
		conv, _ := value.AsNumber(args.GetOr("convexity", 2, value.Number(1)))
		n.Convexity = int(conv)
		return []tree.Node{n}
	})
	r.Module("square", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		size := vec2(args.Get("size", 0), [2]float64{1, 1})
		center := value.AsBool(args.GetOr("center", 1, value.Bool(false)))
		n := tree.NewPrimitive2D(ev.nextNodeID(), nil, tree.Prim2DSquare)
		n.Size, n.Center = size, center
		return []tree.Node{n}
	})
	r.Module("circle", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		radius := resolveRadius(args, ctx, "r", "d", 0, 1)
		n := tree.NewPrimitive2D(ev.nextNodeID(), nil, tree.Prim2DCircle)
		n.Radius = radius
		n.Fn, n.Fs, n.Fa = fragmentArgs(ctx, args)
		return []tree.Node{n}
	})
	r.Module("polygon", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		n := tree.NewPrimitive2D(ev.nextNodeID(), nil, tree.Prim2DPolygon)
		pts, _ := args.GetOr("points", 0, value.Undef()).Vector()
		for _, p := range pts {
			n.Points = append(n.Points, vec2(p, [2]float64{}))
		}
		paths, ok := args.GetOr("paths", 1, value.Undef()).Vector()
		if ok {
			for _, p := range paths {
				items := p.Seq()
				path := make([]int, len(items))
				for i, it := range items {
					idx, _ := value.AsNumber(it)
					path[i] = int(idx)
				}
				n.Paths = append(n.Paths, path)
			}
		}
		conv, _ := value.AsNumber(args.GetOr("convexity", 2, value.Number(1)))
		n.Convexity = int(conv)
		return []tree.Node{n}
	})
}

// resolveRadius implements OpenSCAD's r/d argument-pair convention: d (and
// d1/d2) override r (and r1/r2) when present, per §4.1.
func resolveRadius(args Args, ctx *Context, rName, dName string, rIdx, dIdx int) float64 {
	if dv := args.Get(dName, dIdx); !dv.IsUndef() {
		if d, ok := value.AsNumber(dv); ok {
			return d / 2
		}
	}
	v, ok := value.AsNumber(args.GetOr(rName, rIdx, value.Number(1)))
	if !ok {
		return 1
	}
	return v
}

// fragmentArgs resolves $fn/$fs/$fa, preferring explicit call arguments
// over the inherited special variables (§3.3/§4.1).
func fragmentArgs(ctx *Context, args Args) (fn, fs, fa float64) {
	fn, _ = value.AsNumber(args.GetOr("$fn", -1, ctx.Get("$fn")))
	fs, _ = value.AsNumber(args.GetOr("$fs", -1, ctx.Get("$fs")))
	fa, _ = value.AsNumber(args.GetOr("$fa", -1, ctx.Get("$fa")))
	return
}

func registerTransforms(r *Registry) {
	wrap := func(ev *Evaluator, ctx *Context, m tree.Affine, color *tree.Color, children ChildrenFunc) []tree.Node {
		kids := children(ctx.Child())
		n := tree.NewTransform(ev.nextNodeID(), nil, m, color, kids)
		return []tree.Node{n}
	}

	r.Module("translate", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		v := vec3(args.Get("v", 0), [3]float64{})
		return wrap(ev, ctx, tree.Translate(r3.Vec{X: v[0], Y: v[1], Z: v[2]}), nil, children)
	})
	r.Module("scale", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		v := vec3(args.Get("v", 0), [3]float64{1, 1, 1})
		return wrap(ev, ctx, tree.Scale(r3.Vec{X: v[0], Y: v[1], Z: v[2]}), nil, children)
	})
	r.Module("rotate", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		a := args.Get("a", 0)
		var m tree.Affine
		if items, ok := a.Vector(); ok {
			v := vec3(value.NewVector(items), [3]float64{})
			m = rotateEuler(v[0], v[1], v[2])
		} else if deg, ok := value.AsNumber(a); ok {
			axis := vec3(args.Get("v", 1), [3]float64{0, 0, 1})
			m = rotateAxis(deg, r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]})
		} else {
			m = tree.Identity()
		}
		return wrap(ev, ctx, m, nil, children)
	})
	r.Module("mirror", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		v := vec3(args.Get("v", 0), [3]float64{1, 0, 0})
		return wrap(ev, ctx, tree.MirrorAcross(r3.Vec{X: v[0], Y: v[1], Z: v[2]}), nil, children)
	})
	r.Module("multmatrix", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		rows, _ := args.Get("m", 0).Vector()
		m := tree.Identity()
		if len(rows) >= 3 {
			flat := make([]float64, 0, 9)
			for i := 0; i < 3; i++ {
				row := vec3(rows[i], [3]float64{})
				flat = append(flat, row[0], row[1], row[2])
			}
			m.Linear = *r3.NewMat(flat)
			for i := 0; i < 3; i++ {
				row := rows[i].Seq()
				if len(row) >= 4 {
					tv, _ := value.AsNumber(row[3])
					switch i {
					case 0:
						m.Translation.X = tv
					case 1:
						m.Translation.Y = tv
					case 2:
						m.Translation.Z = tv
					}
				}
			}
		}
		return wrap(ev, ctx, m, nil, children)
	})
	r.Module("color", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		c := args.Get("c", 0)
		rgba := vec3(c, [3]float64{0, 0, 0})
		items := c.Seq()
		alpha := 1.0
		if len(items) >= 4 {
			alpha, _ = value.AsNumber(items[3])
		}
		if av, ok := value.AsNumber(args.Get("alpha", 1)); ok {
			alpha = av
		}
		col := &tree.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: alpha}
		return wrap(ev, ctx, tree.Identity(), col, children)
	})
}

func rotateEuler(xDeg, yDeg, zDeg float64) tree.Affine {
	rx := rotateAxis(xDeg, r3.Vec{X: 1})
	ry := rotateAxis(yDeg, r3.Vec{Y: 1})
	rz := rotateAxis(zDeg, r3.Vec{Z: 1})
	return tree.Compose(tree.Compose(rx, ry), rz)
}

func rotateAxis(deg float64, axis r3.Vec) tree.Affine {
	norm := r3.Norm(axis)
	if norm == 0 {
		return tree.Identity()
	}
	rot := r3.Rotate(deg*degToRad, axis)
	return tree.Affine{Linear: *rot}
}

func registerCSGModules(r *Registry) {
	csg := func(op tree.CSGOp) BuiltinModule {
		return func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
			kids := children(ctx.Child())
			return []tree.Node{tree.NewCSG(ev.nextNodeID(), nil, op, kids)}
		}
	}
	r.Module("union", csg(tree.CSGUnion))
	r.Module("difference", csg(tree.CSGDifference))
	r.Module("intersection", csg(tree.CSGIntersection))
	r.Module("group", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		kids := children(ctx.Child())
		return []tree.Node{tree.NewGroup(ev.nextNodeID(), nil, kids)}
	})
	r.Module("render", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		conv, _ := value.AsNumber(args.GetOr("convexity", 0, value.Number(1)))
		kids := children(ctx.Child())
		return []tree.Node{tree.NewRender(ev.nextNodeID(), nil, int(conv), kids)}
	})
}

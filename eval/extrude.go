package eval

import (
	"math"

	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
)

// registerExtrusions wires linear_extrude and rotate_extrude (§4.7).
func registerExtrusions(r *Registry) {
	// withDXF appends the DXF profile named by a file= argument (optionally
	// restricted by layer=) to the extrusion's 2-D children; the CSG builder
	// reads the file when it tessellates that leaf.
	withDXF := func(ev *Evaluator, ctx *Context, args Args, kids []tree.Node) []tree.Node {
		path, ok := args.Get("file", -1).Str()
		if !ok || path == "" {
			return kids
		}
		d := tree.NewPrimitive2D(ev.nextNodeID(), nil, tree.Prim2DImportDXF)
		d.Path = path
		d.Layer, _ = args.Get("layer", -1).Str()
		d.Fn, d.Fs, d.Fa = fragmentArgs(ctx, args)
		return append(kids, d)
	}

	r.Module("linear_extrude", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		n := tree.NewLinearExtrude(ev.nextNodeID(), nil, withDXF(ev, ctx, args, children(ctx.Child())))
		n.Height, _ = value.AsNumber(args.GetOr("height", 0, value.Number(100)))
		n.Twist, _ = value.AsNumber(args.GetOr("twist", -1, value.Number(0)))
		if slicesArg := args.Get("slices", -1); !slicesArg.IsUndef() {
			slices, _ := value.AsNumber(slicesArg)
			n.Slices = int(slices)
		} else if n.Twist != 0 {
			fn, fs, fa := fragmentArgs(ctx, args)
			adaptive := int(math.Ceil(float64(geom.Fragments(n.Height, fn, fs, fa)) * math.Abs(n.Twist) / 360))
			n.Slices = int(math.Max(2, float64(adaptive)))
		} else {
			n.Slices = 20
		}
		scale := args.GetOr("scale", -1, value.Number(1))
		if sv, ok := value.AsNumber(scale); ok {
			n.ScaleX, n.ScaleY = sv, sv
		} else if items, ok := scale.Vector(); ok && len(items) >= 2 {
			n.ScaleX, _ = value.AsNumber(items[0])
			n.ScaleY, _ = value.AsNumber(items[1])
		} else {
			n.ScaleX, n.ScaleY = 1, 1
		}
		n.Center = value.AsBool(args.GetOr("center", -1, value.Bool(false)))
		conv, _ := value.AsNumber(args.GetOr("convexity", -1, value.Number(1)))
		n.Convexity = int(conv)
		return []tree.Node{n}
	})

	r.Module("rotate_extrude", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		n := tree.NewRotateExtrude(ev.nextNodeID(), nil, withDXF(ev, ctx, args, children(ctx.Child())))
		n.Angle, _ = value.AsNumber(args.GetOr("angle", -1, value.Number(360)))
		n.Fn, n.Fs, n.Fa = fragmentArgs(ctx, args)
		conv, _ := value.AsNumber(args.GetOr("convexity", -1, value.Number(1)))
		n.Convexity = int(conv)
		return []tree.Node{n}
	})
}

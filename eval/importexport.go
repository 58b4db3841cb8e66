package eval

import (
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
)

// registerImportExport wires import() and surface() (§6.2/§6.3): a .dxf
// path resolves to a 2-D primitive leaf, any other path (STL, OFF, SVG)
// and every surface() call to a 3-D import leaf. Evaluation only records
// the path, keeping it filesystem-free. The CSG builder reads DXF leaves
// through package dxf when it walks the tree; geom.TessellatePrimitive3D
// yields an empty PolySet for 3-D import leaves, so STL/OFF files and
// surface() height maps are not read.
func registerImportExport(r *Registry) {
	r.Module("import", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		path, _ := args.GetOr("file", 0, value.String("")).Str()
		conv, _ := value.AsNumber(args.GetOr("convexity", -1, value.Number(1)))
		if isDXFPath(path) {
			n := tree.NewPrimitive2D(ev.nextNodeID(), nil, tree.Prim2DImportDXF)
			n.Path = path
			n.Convexity = int(conv)
			layer, ok := args.Get("layer", -1).Str()
			if ok {
				n.Layer = layer
			}
			return []tree.Node{n}
		}
		n := tree.NewPrimitive3D(ev.nextNodeID(), nil, tree.PrimImport3D)
		n.Path = path
		n.Convexity = int(conv)
		return []tree.Node{n}
	})
	r.Module("surface", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		path, _ := args.GetOr("file", 0, value.String("")).Str()
		n := tree.NewPrimitive3D(ev.nextNodeID(), nil, tree.PrimImport3D)
		n.Path = path
		return []tree.Node{n}
	})
}

func isDXFPath(path string) bool {
	n := len(path)
	return n >= 4 && (path[n-4:] == ".dxf" || path[n-4:] == ".DXF")
}

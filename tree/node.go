package tree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gopenscad/scad/lang"
)

// Color is an explicit nilable RGBA override (§4.6's color() modifier).
// A nil *Color means "inherit from parent", replacing the original
// implementation's -1-sentinel float slots with a proper optional type.
type Color struct {
	R, G, B, A float64
}

// Node is the common interface of every object-tree node (§3.6).
type Node interface {
	// ID is a stable, evaluation-order identifier.
	ID() int
	// UUID uniquely identifies this node instance for caching (§3.11).
	UUID() uuid.UUID
	// Origin is the instantiation that produced this node, for diagnostics.
	Origin() *lang.ModuleInstantiation
	// Children returns the node's child subtrees.
	Children() []Node
	// Dump renders the node's canonical textual form, the basis of the
	// fingerprint used for CSG-term and boundary-rep caching (§3.11).
	Dump() string

	nodeVariant()
}

// base carries the fields common to every node variant.
type base struct {
	id       int
	uid      uuid.UUID
	origin   *lang.ModuleInstantiation
	children []Node
}

func (b *base) ID() int                              { return b.id }
func (b *base) UUID() uuid.UUID                       { return b.uid }
func (b *base) Origin() *lang.ModuleInstantiation     { return b.origin }
func (b *base) Children() []Node                      { return b.children }

// NewBase constructs the embeddable common fields for a node variant.
// Every constructor in this package calls it so node identity (id, uuid)
// is assigned consistently.
func NewBase(id int, origin *lang.ModuleInstantiation, children []Node) base {
	return base{id: id, uid: uuid.New(), origin: origin, children: children}
}

func dumpChildren(sb *strings.Builder, children []Node) {
	sb.WriteByte('[')
	for i, c := range children {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.Dump())
	}
	sb.WriteByte(']')
}

// GroupNode is a plain, transparent grouping node (an implicit `{}` block
// or the root of a file) with no geometric effect of its own.
type GroupNode struct {
	base
}

func (n *GroupNode) nodeVariant() {}

func (n *GroupNode) Dump() string {
	var sb strings.Builder
	sb.WriteString("group")
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewGroup builds a GroupNode.
func NewGroup(id int, origin *lang.ModuleInstantiation, children []Node) *GroupNode {
	return &GroupNode{base: NewBase(id, origin, children)}
}

// ModifierNode wraps a subtree produced by an instantiation carrying a
// root (!), highlight (#), or background (%) tag (§3.5). Disabled (*)
// instantiations never reach the tree at all — the evaluator drops them.
type ModifierNode struct {
	base
	Root, Highlight, Background bool
}

func (n *ModifierNode) nodeVariant() {}

func (n *ModifierNode) Dump() string {
	var sb strings.Builder
	sb.WriteString("modifier(")
	if n.Root {
		sb.WriteByte('!')
	}
	if n.Highlight {
		sb.WriteByte('#')
	}
	if n.Background {
		sb.WriteByte('%')
	}
	sb.WriteByte(')')
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewModifier builds a ModifierNode.
func NewModifier(id int, origin *lang.ModuleInstantiation, root, highlight, background bool, children []Node) *ModifierNode {
	return &ModifierNode{base: NewBase(id, origin, children), Root: root, Highlight: highlight, Background: background}
}

// CSGOp identifies a boolean-combination node kind (§3.7).
type CSGOp uint8

const (
	CSGUnion CSGOp = iota
	CSGDifference
	CSGIntersection
)

func (op CSGOp) String() string {
	switch op {
	case CSGUnion:
		return "union"
	case CSGDifference:
		return "difference"
	default:
		return "intersection"
	}
}

// CSGNode is a union/difference/intersection of its children (§3.7).
type CSGNode struct {
	base
	Op CSGOp
}

func (n *CSGNode) nodeVariant() {}

func (n *CSGNode) Dump() string {
	var sb strings.Builder
	sb.WriteString(n.Op.String())
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewCSG builds a CSGNode.
func NewCSG(id int, origin *lang.ModuleInstantiation, op CSGOp, children []Node) *CSGNode {
	return &CSGNode{base: NewBase(id, origin, children), Op: op}
}

// TransformNode applies an affine transform and/or a color override to its
// subtree (§4.6: translate/rotate/scale/mirror/multmatrix/color all share
// this shape — they differ only in how the Affine/Color were computed).
type TransformNode struct {
	base
	Matrix Affine
	Color  *Color // nil: inherit
}

func (n *TransformNode) nodeVariant() {}

func (n *TransformNode) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "transform(%s,%s)", dumpAffine(n.Matrix), dumpColor(n.Color))
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewTransform builds a TransformNode.
func NewTransform(id int, origin *lang.ModuleInstantiation, m Affine, color *Color, children []Node) *TransformNode {
	return &TransformNode{base: NewBase(id, origin, children), Matrix: m, Color: color}
}

func dumpAffine(a Affine) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%g %g %g|%g %g %g|%g %g %g;%g %g %g]",
		a.Linear.At(0, 0), a.Linear.At(0, 1), a.Linear.At(0, 2),
		a.Linear.At(1, 0), a.Linear.At(1, 1), a.Linear.At(1, 2),
		a.Linear.At(2, 0), a.Linear.At(2, 1), a.Linear.At(2, 2),
		a.Translation.X, a.Translation.Y, a.Translation.Z)
	return sb.String()
}

func dumpColor(c *Color) string {
	if c == nil {
		return "inherit"
	}
	return fmt.Sprintf("rgba(%g,%g,%g,%g)", c.R, c.G, c.B, c.A)
}

// RenderNode forces its subtree through the boundary-rep kernel rather
// than the fast CSG-chain preview path (§4.8's render() module).
type RenderNode struct {
	base
	Convexity int
}

func (n *RenderNode) nodeVariant() {}

func (n *RenderNode) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "render(%d)", n.Convexity)
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewRender builds a RenderNode.
func NewRender(id int, origin *lang.ModuleInstantiation, convexity int, children []Node) *RenderNode {
	return &RenderNode{base: NewBase(id, origin, children), Convexity: convexity}
}

// Primitive3DKind enumerates the builtin solid primitives (§4.1).
type Primitive3DKind uint8

const (
	PrimCube Primitive3DKind = iota
	PrimSphere
	PrimCylinder
	PrimPolyhedron
	PrimImport3D
)

// Primitive3DNode is a leaf solid-geometry primitive (§4.1).
type Primitive3DNode struct {
	base
	Kind Primitive3DKind

	// cube
	Size   [3]float64
	Center bool

	// sphere/cylinder
	Radius1, Radius2 float64 // cylinder: bottom/top radius; sphere uses Radius1
	Height           float64
	Fn, Fs, Fa       float64

	// polyhedron
	Points    [][3]float64
	Faces     [][]int
	Convexity int

	// import
	Path string
}

func (n *Primitive3DNode) nodeVariant()   {}
func (n *Primitive3DNode) Children() []Node { return nil }

func (n *Primitive3DNode) Dump() string {
	switch n.Kind {
	case PrimCube:
		return fmt.Sprintf("cube(%g,%g,%g,c=%v)", n.Size[0], n.Size[1], n.Size[2], n.Center)
	case PrimSphere:
		return fmt.Sprintf("sphere(r=%g,$fn=%g,$fs=%g,$fa=%g)", n.Radius1, n.Fn, n.Fs, n.Fa)
	case PrimCylinder:
		return fmt.Sprintf("cylinder(h=%g,r1=%g,r2=%g,c=%v,$fn=%g)", n.Height, n.Radius1, n.Radius2, n.Center, n.Fn)
	case PrimPolyhedron:
		return fmt.Sprintf("polyhedron(points=%d,faces=%d,convexity=%d)", len(n.Points), len(n.Faces), n.Convexity)
	default:
		return fmt.Sprintf("import3d(%q)", n.Path)
	}
}

// NewPrimitive3D builds a Primitive3DNode.
func NewPrimitive3D(id int, origin *lang.ModuleInstantiation, kind Primitive3DKind) *Primitive3DNode {
	return &Primitive3DNode{base: NewBase(id, origin, nil), Kind: kind}
}

// Primitive2DKind enumerates the builtin 2-D primitives (§4.1).
type Primitive2DKind uint8

const (
	Prim2DSquare Primitive2DKind = iota
	Prim2DCircle
	Prim2DPolygon
	Prim2DImportDXF
)

// Primitive2DNode is a leaf 2-D primitive (§4.1).
type Primitive2DNode struct {
	base
	Kind Primitive2DKind

	Size   [2]float64
	Center bool

	Radius     float64
	Fn, Fs, Fa float64

	Points  [][2]float64
	Paths   [][]int
	Convexity int

	Path   string
	Layer  string
}

func (n *Primitive2DNode) nodeVariant()   {}
func (n *Primitive2DNode) Children() []Node { return nil }

func (n *Primitive2DNode) Dump() string {
	switch n.Kind {
	case Prim2DSquare:
		return fmt.Sprintf("square(%g,%g,c=%v)", n.Size[0], n.Size[1], n.Center)
	case Prim2DCircle:
		return fmt.Sprintf("circle(r=%g,$fn=%g)", n.Radius, n.Fn)
	case Prim2DPolygon:
		return fmt.Sprintf("polygon(points=%d,paths=%d)", len(n.Points), len(n.Paths))
	default:
		return fmt.Sprintf("importdxf(%q,layer=%q)", n.Path, n.Layer)
	}
}

// NewPrimitive2D builds a Primitive2DNode.
func NewPrimitive2D(id int, origin *lang.ModuleInstantiation, kind Primitive2DKind) *Primitive2DNode {
	return &Primitive2DNode{base: NewBase(id, origin, nil), Kind: kind}
}

// LinearExtrudeNode extrudes its 2-D children along Z (§4.7).
type LinearExtrudeNode struct {
	base
	Height       float64
	Twist        float64
	Slices       int
	ScaleX       float64
	ScaleY       float64
	Center       bool
	Convexity    int
}

func (n *LinearExtrudeNode) nodeVariant() {}

func (n *LinearExtrudeNode) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "linear_extrude(h=%g,twist=%g,slices=%d,scale=%g/%g,c=%v)",
		n.Height, n.Twist, n.Slices, n.ScaleX, n.ScaleY, n.Center)
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewLinearExtrude builds a LinearExtrudeNode.
func NewLinearExtrude(id int, origin *lang.ModuleInstantiation, children []Node) *LinearExtrudeNode {
	return &LinearExtrudeNode{base: NewBase(id, origin, children)}
}

// RotateExtrudeNode revolves its 2-D children around Z (§4.7).
type RotateExtrudeNode struct {
	base
	Angle     float64
	Fn, Fs, Fa float64
	Convexity int
}

func (n *RotateExtrudeNode) nodeVariant() {}

func (n *RotateExtrudeNode) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rotate_extrude(a=%g,$fn=%g)", n.Angle, n.Fn)
	dumpChildren(&sb, n.children)
	return sb.String()
}

// NewRotateExtrude builds a RotateExtrudeNode.
func NewRotateExtrude(id int, origin *lang.ModuleInstantiation, children []Node) *RotateExtrudeNode {
	return &RotateExtrudeNode{base: NewBase(id, origin, children)}
}

// FindRootTag searches n's descendants, in pre-order, left-to-right, for a
// node carrying the root (!) tag, and returns it in place of n: the root
// tag "selects a subtree as the effective top of evaluation, overriding
// the file's outermost group" (§3.5, GLOSSARY). Returns n unchanged when no
// descendant is root-tagged.
func FindRootTag(n Node) Node {
	if found := findRootTag(n.Children()); found != nil {
		return found
	}
	return n
}

func findRootTag(siblings []Node) Node {
	for _, c := range siblings {
		if m, ok := c.(*ModifierNode); ok && m.Root {
			return m
		}
		if found := findRootTag(c.Children()); found != nil {
			return found
		}
	}
	return nil
}

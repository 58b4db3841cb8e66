package lang

// File is the parsed form of a whole .scad source file: top-level
// assignments, function/module definitions, include/use directives, and
// the module-instantiation statements that make up the implicit root group.
type File struct {
	Includes  []*IncludeDecl
	Uses      []*UseDecl
	Functions []*FunctionDecl
	Modules   []*ModuleDecl
	Root      []*Statement // top-level assignments and instantiations, in source order
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() Span
}

// Expr is a pure expression node. Expr trees carry no state beyond their
// tag and children (§3.2); evaluation happens entirely in package eval.
type Expr interface {
	Node
	exprNode()
}

// IncludeDecl is a top-level `include <path>;` directive.
type IncludeDecl struct {
	Path string
	Span Span
}

func (d *IncludeDecl) Pos() Span { return d.Span }

// UseDecl is a top-level `use <path>;` directive.
type UseDecl struct {
	Path string
	Span Span
}

func (d *UseDecl) Pos() Span { return d.Span }

// Param is a declared parameter of a function or module, with an optional
// default-value expression.
type Param struct {
	Name    string
	Default Expr // nil if required
}

// FunctionDecl is `function name(params) = expr;`.
type FunctionDecl struct {
	Name   string
	Params []Param
	Body   Expr
	Span   Span
}

func (f *FunctionDecl) Pos() Span { return f.Span }

// ModuleDecl is `module name(params) { body }`.
type ModuleDecl struct {
	Name   string
	Params []Param
	Body   []*Statement
	Span   Span
}

func (m *ModuleDecl) Pos() Span { return m.Span }

// Statement is either a local assignment (`x = expr;`) or a module
// instantiation (`cube(1);`, possibly with a child block).
type Statement struct {
	Assign        *AssignStmt
	Instantiation *ModuleInstantiation
	Span          Span
}

func (s *Statement) Pos() Span { return s.Span }

// AssignStmt is a top-level or local `name = expr;` assignment.
type AssignStmt struct {
	Name  string
	Value Expr
	Span  Span
}

func (a *AssignStmt) Pos() Span { return a.Span }

// Tag is a bitmask of the instantiation-prefix tags of §3.5.
type Tag uint8

const (
	TagNone Tag = 0
	// TagRoot marks a subtree as the effective top of evaluation (!).
	TagRoot Tag = 1 << iota
	// TagHighlight renders with highlight color, outside the boolean result (#).
	TagHighlight
	// TagBackground renders ghosted, outside the boolean result (%).
	TagBackground
	// TagDisable skips the instantiation entirely (*).
	TagDisable
)

func (t Tag) Has(bit Tag) bool { return t&bit != 0 }

// Arg is a positional or labeled call/instantiation argument.
type Arg struct {
	Name  string // empty for positional arguments
	Value Expr
}

// ModuleInstantiation is a call-site module instantiation: an optional
// source label, the module name, its arguments, an optional child block,
// and the root/highlight/background/disable tags (§3.5).
type ModuleInstantiation struct {
	Label    string
	Name     string
	Args     []Arg
	Children []*Statement
	// Else holds the `else` clause's children for an `if(...)` instantiation;
	// nil for every other module and for `if` without an else.
	Else []*Statement
	Tags Tag
	Span Span
}

func (m *ModuleInstantiation) Pos() Span { return m.Span }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BinOp is a binary operator tag.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinAnd
	BinOr
)

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Left  Expr
	Op    BinOp
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr is unary minus or logical not.
type UnaryExpr struct {
	Not     bool // true: '!', false: '-'
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (t *TernaryExpr) Pos() Span { return t.Span }
func (t *TernaryExpr) exprNode() {}

// LiteralKind tags a Literal's payload type.
type LiteralKind uint8

const (
	LitNumber LiteralKind = iota
	LitString
	LitBool
	LitUndef
)

// Literal is a constant expression node (§3.2: "constant, holds a Value").
type Literal struct {
	Kind LiteralKind
	Num  float64
	Str  string
	Bool bool
	Span Span
}

func (l *Literal) Pos() Span { return l.Span }
func (l *Literal) exprNode() {}

// VarExpr is a variable lookup by name.
type VarExpr struct {
	Name string
	Span Span
}

func (v *VarExpr) Pos() Span { return v.Span }
func (v *VarExpr) exprNode() {}

// VectorExpr is a `[e, e, e]` vector constructor.
type VectorExpr struct {
	Elements []Expr
	Span     Span
}

func (v *VectorExpr) Pos() Span { return v.Span }
func (v *VectorExpr) exprNode() {}

// RangeExpr is a `[begin:end]` or `[begin:step:end]` range constructor.
type RangeExpr struct {
	Begin Expr
	Step  Expr // nil when omitted (defaults to 1 at evaluation time)
	End   Expr
	Span  Span
}

func (r *RangeExpr) Pos() Span { return r.Span }
func (r *RangeExpr) exprNode() {}

// CallExpr is a function call `name(args...)`, positional then labeled.
type CallExpr struct {
	Name string
	Args []Arg
	Span Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// IndexExpr is `expr[index]` vector/range element access.
type IndexExpr struct {
	Expr  Expr
	Index Expr
	Span  Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// MemberExpr is `.x`/`.y`/`.z` swizzle-style access on vectors.
type MemberExpr struct {
	Expr   Expr
	Member string
	Span   Span
}

func (m *MemberExpr) Pos() Span { return m.Span }
func (m *MemberExpr) exprNode() {}

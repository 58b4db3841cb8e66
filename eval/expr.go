package eval

import (
	"github.com/gopenscad/scad/lang"
	"github.com/gopenscad/scad/value"
)

// evalExpr folds an expression tree to a Value (§4.3 step 1). Evaluation
// never errors: any ill-typed operation yields Undef, per the Value
// domain's total arithmetic.
func (ev *Evaluator) evalExpr(ctx *Context, e lang.Expr) value.Value {
	switch n := e.(type) {
	case *lang.Literal:
		return evalLiteral(n)
	case *lang.VarExpr:
		return ctx.Get(n.Name)
	case *lang.UnaryExpr:
		operand := ev.evalExpr(ctx, n.Operand)
		if n.Not {
			b, ok := operand.Bool()
			return value.Bool(ok && !b)
		}
		return value.Neg(operand)
	case *lang.BinaryExpr:
		return ev.evalBinary(ctx, n)
	case *lang.TernaryExpr:
		cond := ev.evalExpr(ctx, n.Cond)
		if value.AsBool(cond) {
			return ev.evalExpr(ctx, n.Then)
		}
		return ev.evalExpr(ctx, n.Else)
	case *lang.VectorExpr:
		items := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			items[i] = ev.evalExpr(ctx, el)
		}
		return value.NewVector(items)
	case *lang.RangeExpr:
		begin, ok1 := value.AsNumber(ev.evalExpr(ctx, n.Begin))
		end, ok2 := value.AsNumber(ev.evalExpr(ctx, n.End))
		step := 1.0
		if n.Step != nil {
			s, ok := value.AsNumber(ev.evalExpr(ctx, n.Step))
			if !ok {
				return value.Undef()
			}
			step = s
		}
		if !ok1 || !ok2 {
			return value.Undef()
		}
		return value.NewRange(begin, step, end)
	case *lang.CallExpr:
		return ev.evalCall(ctx, n)
	case *lang.IndexExpr:
		base := ev.evalExpr(ctx, n.Expr)
		idxVal := ev.evalExpr(ctx, n.Index)
		idx, ok := value.AsNumber(idxVal)
		if !ok {
			return value.Undef()
		}
		items := base.Seq()
		i := int(idx)
		if i < 0 || i >= len(items) {
			return value.Undef()
		}
		return items[i]
	case *lang.MemberExpr:
		base := ev.evalExpr(ctx, n.Expr)
		items, ok := base.Vector()
		if !ok {
			return value.Undef()
		}
		idx := swizzleIndex(n.Member)
		if idx < 0 || idx >= len(items) {
			return value.Undef()
		}
		return items[idx]
	default:
		return value.Undef()
	}
}

func swizzleIndex(member string) int {
	switch member {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	case "w":
		return 3
	default:
		return -1
	}
}

func evalLiteral(l *lang.Literal) value.Value {
	switch l.Kind {
	case lang.LitNumber:
		return value.Number(l.Num)
	case lang.LitString:
		return value.String(l.Str)
	case lang.LitBool:
		return value.Bool(l.Bool)
	default:
		return value.Undef()
	}
}

func (ev *Evaluator) evalBinary(ctx *Context, n *lang.BinaryExpr) value.Value {
	// Short-circuit logical operators evaluate the right side lazily.
	if n.Op == lang.BinAnd {
		left := ev.evalExpr(ctx, n.Left)
		if !value.AsBool(left) {
			return value.Bool(false)
		}
		return value.Bool(value.AsBool(ev.evalExpr(ctx, n.Right)))
	}
	if n.Op == lang.BinOr {
		left := ev.evalExpr(ctx, n.Left)
		if value.AsBool(left) {
			return value.Bool(true)
		}
		return value.Bool(value.AsBool(ev.evalExpr(ctx, n.Right)))
	}

	left := ev.evalExpr(ctx, n.Left)
	right := ev.evalExpr(ctx, n.Right)
	switch n.Op {
	case lang.BinAdd:
		return value.Add(left, right)
	case lang.BinSub:
		return value.Sub(left, right)
	case lang.BinMul:
		return value.Mul(left, right)
	case lang.BinDiv:
		return value.Div(left, right)
	case lang.BinMod:
		return value.Mod(left, right)
	case lang.BinEq:
		return value.Bool(value.Equal(left, right))
	case lang.BinNotEq:
		return value.Bool(!value.Equal(left, right))
	case lang.BinLess:
		less, ok := value.Less(left, right)
		return value.Bool(ok && less)
	case lang.BinLessEq:
		less, ok := value.Less(left, right)
		eq := value.Equal(left, right)
		return value.Bool(ok && (less || eq))
	case lang.BinGreater:
		less, ok := value.Less(right, left)
		return value.Bool(ok && less)
	case lang.BinGreaterEq:
		less, ok := value.Less(right, left)
		eq := value.Equal(left, right)
		return value.Bool(ok && (less || eq))
	default:
		return value.Undef()
	}
}

func (ev *Evaluator) evalCall(ctx *Context, n *lang.CallExpr) value.Value {
	args := ev.evalArgs(ctx, n.Args)
	if fn, ok := ev.registry.Functions[n.Name]; ok {
		return fn(ev, ctx, args)
	}
	if decl, ok := ev.functions[n.Name]; ok {
		child := ev.bindParams(ctx, decl.Params, args)
		return ev.evalExpr(child, decl.Body)
	}
	return value.Undef()
}

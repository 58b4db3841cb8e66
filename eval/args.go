package eval

import (
	"github.com/gopenscad/scad/lang"
	"github.com/gopenscad/scad/value"
)

// Args is the evaluated argument list of a call or instantiation: the
// positional values in source order, plus a name-keyed lookup for the
// labeled ones.
type Args struct {
	Positional []value.Value
	Named      map[string]value.Value

	// NamedOrder records the named arguments in source order, so callers
	// that must iterate Named deterministically (e.g. for()'s Cartesian
	// binding order, §4.3) don't depend on Go's randomized map iteration.
	NamedOrder []string
}

// Get returns a named argument, or the positional argument at idx if no
// named binding exists, or Undef if neither is present.
func (a Args) Get(name string, idx int) value.Value {
	if v, ok := a.Named[name]; ok {
		return v
	}
	if idx >= 0 && idx < len(a.Positional) {
		return a.Positional[idx]
	}
	return value.Undef()
}

// GetOr is Get with a fallback default when the argument is Undef.
func (a Args) GetOr(name string, idx int, def value.Value) value.Value {
	v := a.Get(name, idx)
	if v.IsUndef() {
		return def
	}
	return v
}

// evalArgs evaluates an argument list against a scope.
func (ev *Evaluator) evalArgs(ctx *Context, args []lang.Arg) Args {
	out := Args{Named: make(map[string]value.Value, len(args))}
	for _, a := range args {
		v := ev.evalExpr(ctx, a.Value)
		if a.Name != "" {
			if _, exists := out.Named[a.Name]; !exists {
				out.NamedOrder = append(out.NamedOrder, a.Name)
			}
			out.Named[a.Name] = v
		} else {
			out.Positional = append(out.Positional, v)
		}
	}
	return out
}

// bindParams creates a child scope binding a module/function's declared
// parameters from the call's Args, evaluating each default expression (in
// the new scope, so later defaults may reference earlier parameters) only
// for parameters the caller left unbound.
func (ev *Evaluator) bindParams(defScope *Context, params []lang.Param, args Args) *Context {
	child := defScope.Child()
	for i, p := range params {
		if v, ok := args.Named[p.Name]; ok {
			child.Set(p.Name, v)
			continue
		}
		if i < len(args.Positional) {
			child.Set(p.Name, args.Positional[i])
			continue
		}
		if p.Default != nil {
			child.Set(p.Name, ev.evalExpr(child, p.Default))
		} else {
			child.Set(p.Name, value.Undef())
		}
	}
	return child
}

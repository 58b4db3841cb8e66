package eval

import (
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
)

// Context is a lexical scope (§3.3): a chain of variable bindings plus the
// inherited special variables ($fn, $fs, $fa, $t, $vpt, $vpr, ...). Each
// module/function call and each `for` loop iteration pushes a child
// Context rather than mutating its parent.
type Context struct {
	parent *Context
	vars   map[string]value.Value

	// instChildren, when non-nil, is the evaluated child-statement list of
	// the module instantiation that invoked this scope, for the children()
	// builtin (§4.3's control-module protocol).
	instChildren []tree.Node
	hasChildren  bool
}

// NewRootContext creates the outermost context, seeded with the language's
// default special variables (§3.3: $fn=0, $fs=2, $fa=12, $t=0).
func NewRootContext() *Context {
	ctx := &Context{vars: make(map[string]value.Value, 16)}
	ctx.vars["$fn"] = value.Number(0)
	ctx.vars["$fs"] = value.Number(2)
	ctx.vars["$fa"] = value.Number(12)
	ctx.vars["$t"] = value.Number(0)
	ctx.vars["$vpt"] = value.NewVector([]value.Value{value.Number(0), value.Number(0), value.Number(0)})
	ctx.vars["$vpr"] = value.NewVector([]value.Value{value.Number(0), value.Number(0), value.Number(0)})
	ctx.vars["$children"] = value.Number(0)
	return ctx
}

// Child creates a new scope nested under ctx.
func (ctx *Context) Child() *Context {
	return &Context{parent: ctx, vars: make(map[string]value.Value, 4)}
}

// Set binds name in this scope (shadowing any parent binding).
func (ctx *Context) Set(name string, v value.Value) {
	ctx.vars[name] = v
}

// Get looks up name through the scope chain, returning Undef if unbound.
func (ctx *Context) Get(name string) value.Value {
	for c := ctx; c != nil; c = c.parent {
		if v, ok := c.vars[name]; ok {
			return v
		}
	}
	return value.Undef()
}

// Lookup is Get plus an explicit found flag, for builtins that must
// distinguish "bound to undef" from "never bound".
func (ctx *Context) Lookup(name string) (value.Value, bool) {
	for c := ctx; c != nil; c = c.parent {
		if v, ok := c.vars[name]; ok {
			return v, true
		}
	}
	return value.Undef(), false
}

// WithInstChildren returns a child scope carrying the given already
// evaluated children of the module-instantiation call site, for children().
func (ctx *Context) WithInstChildren(nodes []tree.Node) *Context {
	child := ctx.Child()
	child.instChildren = nodes
	child.hasChildren = true
	return child
}

// InstChildren returns the nearest enclosing call site's children, per the
// control-module protocol.
func (ctx *Context) InstChildren() []tree.Node {
	for c := ctx; c != nil; c = c.parent {
		if c.hasChildren {
			return c.instChildren
		}
	}
	return nil
}

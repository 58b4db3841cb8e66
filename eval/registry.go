package eval

import (
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
)

// FuncImpl implements a builtin scalar/vector function (e.g. sin, len,
// concat). It never errors; invalid inputs resolve to Undef like every
// other Value operation.
type FuncImpl func(ev *Evaluator, ctx *Context, args Args) value.Value

// ChildrenFunc evaluates a module instantiation's child statements inside
// a given scope. Control modules (for/if/assign/intersection_for) are
// handed this closure instead of the raw, unevaluated Children list, so
// they decide how many times and under what bindings to invoke it
// (the "control-module protocol").
type ChildrenFunc func(ctx *Context) []tree.Node

// BuiltinModule implements a builtin module (primitive, transform, CSG
// operator, or control construct).
type BuiltinModule func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node

// Registry holds the builtin function and module tables. It is always
// explicitly constructed and populated by the caller (NewDefaultRegistry
// or a hand-built subset for tests) rather than auto-populated by a
// package init(), mirroring the Lowerer's constructed-not-global maps.
type Registry struct {
	Functions map[string]FuncImpl
	Modules   map[string]BuiltinModule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Functions: make(map[string]FuncImpl, 32),
		Modules:   make(map[string]BuiltinModule, 32),
	}
}

// Function registers a builtin function under name.
func (r *Registry) Function(name string, fn FuncImpl) {
	r.Functions[name] = fn
}

// Module registers a builtin module under name.
func (r *Registry) Module(name string, fn BuiltinModule) {
	r.Modules[name] = fn
}

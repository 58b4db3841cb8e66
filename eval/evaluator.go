package eval

import (
	"github.com/gopenscad/scad/lang"
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
	"github.com/rs/zerolog/log"
)

// MaxCallDepth bounds user-defined function/module recursion (§4.3's
// "evaluation is recursion-bounded to guard against runaway definitions").
const MaxCallDepth = 2000

// Evaluator turns a parsed File into a tree.Node object tree (§4.3).
type Evaluator struct {
	registry  *Registry
	functions map[string]*lang.FunctionDecl
	modules   map[string]*lang.ModuleDecl
	nextID    int
	depth     int
}

// NewEvaluator creates an Evaluator using the given builtin registry.
func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{
		registry:  registry,
		functions: make(map[string]*lang.FunctionDecl, 8),
		modules:   make(map[string]*lang.ModuleDecl, 8),
	}
}

func (ev *Evaluator) nextNodeID() int {
	ev.nextID++
	return ev.nextID
}

// Evaluate evaluates a whole File into its root object-tree group (§4.3).
// Only file.Functions, file.Modules and file.Root are read: include/use
// directives (file.Includes, file.Uses) are not resolved, here or by any
// caller in this module, so the files they name are never loaded.
func (ev *Evaluator) Evaluate(file *lang.File) tree.Node {
	for _, fn := range file.Functions {
		ev.functions[fn.Name] = fn
	}
	for _, m := range file.Modules {
		ev.modules[m.Name] = m
	}

	root := NewRootContext()
	children := ev.evalStatements(root, file.Root)
	return tree.NewGroup(ev.nextNodeID(), nil, children)
}

func (ev *Evaluator) evalStatements(ctx *Context, stmts []*lang.Statement) []tree.Node {
	var out []tree.Node
	// Top-level assignments must be visible to every sibling statement
	// (OpenSCAD scoping is not execution-order dependent for plain
	// variables), so bind all assignments first, then evaluate
	// instantiations in source order against the fully-populated scope.
	for _, s := range stmts {
		if s.Assign != nil {
			ctx.Set(s.Assign.Name, ev.evalExpr(ctx, s.Assign.Value))
		}
	}
	for _, s := range stmts {
		if s.Instantiation != nil {
			out = append(out, ev.evalInstantiation(ctx, s.Instantiation)...)
		}
	}
	return out
}

func (ev *Evaluator) evalInstantiation(ctx *Context, inst *lang.ModuleInstantiation) []tree.Node {
	if inst.Tags.Has(lang.TagDisable) {
		return nil
	}

	args := ev.evalArgs(ctx, inst.Args)
	childrenFn := func(childCtx *Context) []tree.Node {
		return ev.evalStatements(childCtx, inst.Children)
	}

	// "if" is the one control module whose grammar carries an extra clause
	// (the else block) that the uniform ChildrenFunc shape can't express,
	// so it is handled directly rather than through the registry.
	if inst.Name == "if" {
		cond := value.AsBool(args.Get("", 0))
		var nodes []tree.Node
		if cond {
			nodes = childrenFn(ctx.Child())
		} else if inst.Else != nil {
			nodes = ev.evalStatements(ctx.Child(), inst.Else)
		}
		return nodes
	}

	var nodes []tree.Node
	switch {
	case ev.registry.Modules[inst.Name] != nil:
		if ev.depth >= MaxCallDepth {
			return nil
		}
		ev.depth++
		nodes = ev.registry.Modules[inst.Name](ev, ctx, args, childrenFn)
		ev.depth--
	case ev.modules[inst.Name] != nil:
		nodes = ev.evalUserModule(ctx, inst, args)
	default:
		// Unknown module: OpenSCAD warns and treats it as a no-op group.
		log.Warn().Str("module", inst.Name).Msg("unknown module ignored")
	}

	if inst.Tags.Has(lang.TagRoot) || inst.Tags.Has(lang.TagHighlight) || inst.Tags.Has(lang.TagBackground) {
		return []tree.Node{tree.NewModifier(ev.nextNodeID(), inst,
			inst.Tags.Has(lang.TagRoot), inst.Tags.Has(lang.TagHighlight), inst.Tags.Has(lang.TagBackground),
			nodes)}
	}
	return nodes
}

func (ev *Evaluator) evalUserModule(ctx *Context, inst *lang.ModuleInstantiation, args Args) []tree.Node {
	if ev.depth >= MaxCallDepth {
		return nil
	}
	decl := ev.modules[inst.Name]
	evaluatedChildren := ev.evalStatements(ctx.Child(), inst.Children)

	ev.depth++
	bodyCtx := ev.bindParams(ctx, decl.Params, args)
	bodyCtx.Set("$children", value.Number(float64(len(evaluatedChildren))))
	bodyCtx = bodyCtx.WithInstChildren(evaluatedChildren)
	nodes := ev.evalStatements(bodyCtx, decl.Body)
	ev.depth--
	return nodes
}

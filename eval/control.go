package eval

import (
	"fmt"

	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
	"github.com/rs/zerolog/log"
)

// MaxForIterations bounds a single for()'s iteration count: a fixed,
// non-configurable ceiling that keeps a runaway range from hanging the
// evaluator. Iterations past it are dropped with a warning.
const MaxForIterations = 10000

// registerControlModules wires for/intersection_for/assign/echo/children,
// each implemented against the ChildrenFunc closure rather than the raw
// instantiation's Children list (the control-module protocol).
func registerControlModules(r *Registry) {
	forImpl := func(combine tree.CSGOp, asIntersection bool) BuiltinModule {
		return func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
			var out []tree.Node
			iterations := 0
			forEachBinding(ctx, args, func(iterCtx *Context) bool {
				if iterations >= MaxForIterations {
					log.Warn().Int("limit", MaxForIterations).Msg("for loop iteration cap reached")
					return false
				}
				iterations++
				out = append(out, children(iterCtx)...)
				return true
			})
			if asIntersection {
				return []tree.Node{tree.NewCSG(ev.nextNodeID(), nil, combine, out)}
			}
			return out
		}
	}
	r.Module("for", forImpl(tree.CSGUnion, false))
	r.Module("intersection_for", forImpl(tree.CSGIntersection, true))

	r.Module("assign", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		child := ctx.Child()
		for name, v := range args.Named {
			child.Set(name, v)
		}
		return children(child)
	})

	r.Module("echo", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		log.Info().Str("echo", formatEcho(args)).Msg("echo")
		return children(ctx.Child())
	})

	r.Module("children", func(ev *Evaluator, ctx *Context, args Args, children ChildrenFunc) []tree.Node {
		all := ctx.InstChildren()
		if len(args.Positional) == 0 {
			return all
		}
		idx, ok := value.AsNumber(args.Positional[0])
		if !ok {
			return nil
		}
		i := int(idx)
		if i < 0 || i >= len(all) {
			return nil
		}
		return []tree.Node{all[i]}
	})
}

// forEachBinding implements §4.3's `for(var = list)` / multi-variable
// `for(x = ..., y = ...)` iteration, visiting the Cartesian product of
// each bound variable's sequence. visit returns false to stop early.
func forEachBinding(ctx *Context, args Args, visit func(*Context) bool) {
	names := args.NamedOrder
	if len(names) == 0 {
		return
	}
	seqs := make([][]value.Value, len(names))
	for i, name := range names {
		seqs[i] = args.Named[name].Seq()
	}
	cartesian(ctx, names, seqs, 0, visit)
}

func cartesian(ctx *Context, names []string, seqs [][]value.Value, depth int, visit func(*Context) bool) bool {
	if depth == len(names) {
		return visit(ctx)
	}
	for _, v := range seqs[depth] {
		child := ctx.Child()
		child.Set(names[depth], v)
		if !cartesian(child, names, seqs, depth+1, visit) {
			return false
		}
	}
	return true
}

func formatEcho(args Args) string {
	s := ""
	for i, v := range args.Positional {
		if i > 0 {
			s += ", "
		}
		s += valueToStr(v)
	}
	for _, name := range args.NamedOrder {
		s += fmt.Sprintf(", %s = %s", name, valueToStr(args.Named[name]))
	}
	return s
}

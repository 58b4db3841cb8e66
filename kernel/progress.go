package kernel

import "github.com/gopenscad/scad/csg"

// ProgressFunc reports rendering progress to an external caller (§5's
// progress-report mechanism): done out of total facets combined so far.
// Returning false asks the renderer to abort at the next safe point.
type ProgressFunc func(done, total int) (keepGoing bool)

// RenderOptions configures a Render call.
type RenderOptions struct {
	// OnProgress is invoked after every leaf is folded into the running
	// boolean result; nil disables progress reporting entirely.
	OnProgress ProgressFunc
}

// Render folds a flattened chain of (polyhedron, op) pairs into a single
// boundary-rep result using the left-to-right evaluation order the
// linearized CSG chain already encodes, reporting progress as it goes.
func Render(leaves []Polyhedron, ops []csg.Op, opts RenderOptions) (Polyhedron, error) {
	if len(leaves) == 0 {
		return nil, nil
	}
	acc := leaves[0]
	total := len(leaves)
	report := func(done int) bool {
		if opts.OnProgress == nil {
			return true
		}
		return opts.OnProgress(done, total)
	}
	if !report(1) {
		return acc, nil
	}
	for i := 1; i < len(leaves); i++ {
		var err error
		switch ops[i] {
		case csg.OpDifference:
			acc, err = acc.Difference(leaves[i])
		case csg.OpIntersection:
			acc, err = acc.Intersection(leaves[i])
		default:
			acc, err = acc.Union(leaves[i])
		}
		if err != nil {
			return nil, err
		}
		if !report(i + 1) {
			break
		}
	}
	return acc, nil
}

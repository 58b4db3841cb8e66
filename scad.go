// Package scad provides a Pure Go OpenSCAD geometry compiler.
//
// scad turns OpenSCAD source text into renderable solid geometry through a
// staged pipeline:
//   - Parse/Lex — source text to AST
//   - Evaluate — AST to an object tree, running every function/module call
//   - BuildCSGTerm — object tree to a CSG-term tree (§4.4)
//   - Normalize — CSG-term tree to sum-of-products normal form (§4.5)
//   - Linearize — normal form to a flat preview chain (§3.8)
//   - RenderBoundaryRep — either the chain or the term tree to a closed
//     boundary-rep solid, for STL export
//
// The package provides a simple, high-level API for full compilation as
// well as lower-level access to individual stages.
//
// Example usage (STL bytes from source):
//
//	stl, err := scad.CompileToSTL(source, scad.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For the fast CSG-chain preview path, use Parse/Evaluate/BuildCSGTerm/
// Normalize/Linearize directly and hand the resulting *csg.Chain to a
// rasterizer; the boundary-rep kernel is then involved only for render()
// subtrees.
package scad

import (
	"bytes"
	"fmt"

	"github.com/gopenscad/scad/csg"
	"github.com/gopenscad/scad/eval"
	"github.com/gopenscad/scad/geom"
	"github.com/gopenscad/scad/kernel"
	"github.com/gopenscad/scad/lang"
	"github.com/gopenscad/scad/tree"
)

// Options configures a full source-to-STL compilation.
type Options struct {
	// Binary selects binary STL output; ASCII otherwise.
	Binary bool
	// OnProgress reports boundary-rep rendering progress; nil disables it.
	OnProgress kernel.ProgressFunc
}

// DefaultOptions returns sensible default options: ASCII STL, no progress
// reporting.
func DefaultOptions() Options {
	return Options{}
}

// CompileToSTL runs the full pipeline — parse, evaluate, build, normalize,
// render, export — and returns the resulting STL bytes.
//
// This is the simplest way to compile a model. For more control, use the
// individual Parse/Evaluate/BuildCSGTerm/Normalize/RenderBoundaryRep/
// ExportSTL functions.
func CompileToSTL(source string, opts Options) ([]byte, error) {
	file, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := Evaluate(file)

	term := BuildCSGTerm(root)
	norm := Normalize(term)

	solid, err := RenderBoundaryRep(norm, opts.OnProgress)
	if err != nil {
		return nil, fmt.Errorf("render error: %w", err)
	}

	return ExportSTL(solid.ToPolySet(), opts.Binary)
}

// Parse parses OpenSCAD source code to an AST.
//
// This is the first stage of compilation. The AST represents the syntactic
// structure of the program but carries no geometric or numeric information.
func Parse(source string) (*lang.File, error) {
	lexer := lang.NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}
	parser := lang.NewParser(tokens, source)
	file, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// Evaluate runs an AST through the evaluator, resolving every function and
// module call against the built-in registry (§6.1) plus any user-defined
// functions/modules in the file, and returns the resulting object tree
// (§3.6).
func Evaluate(file *lang.File) tree.Node {
	ev := eval.NewEvaluator(eval.NewDefaultRegistry())
	return ev.Evaluate(file)
}

// BuildCSGTerm converts an object tree into a CSG-term tree (§4.4),
// tessellating every primitive/extrude leaf along the way. A render() node
// anywhere in the tree is forced through the boundary-rep kernel and
// re-injected as a single primitive term (§4.8).
func BuildCSGTerm(root tree.Node) *csg.Term {
	b := csg.NewBuilder()
	b.Render = renderToPolySet
	return b.Build(root)
}

// renderToPolySet normalizes and linearizes a CSG subterm, folds it through
// the boundary-rep kernel, and flattens the result back to a polygon soup —
// the render() barrier csg.Builder delegates to since package csg cannot
// import package kernel itself.
func renderToPolySet(t *csg.Term) (*geom.PolySet, error) {
	norm := csg.Normalize(t)
	chain := csg.Linearize(norm)
	solid, err := kernel.RenderChain(chain, kernel.RenderOptions{})
	if err != nil {
		return nil, err
	}
	return solid.ToPolySet(), nil
}

// Normalize rewrites a CSG-term tree into sum-of-products normal form
// (§4.5) via the fixed nine-rule Kirsch & Döller system.
func Normalize(t *csg.Term) *csg.Term {
	return csg.Normalize(t)
}

// Linearize flattens a normalized term into the flat preview chain (§3.8)
// a rasterizer consumes directly.
func Linearize(t *csg.Term) *csg.Chain {
	return csg.Linearize(t)
}

// RenderBoundaryRep renders a normalized CSG-term tree to a closed
// boundary-rep solid via the kernel package (§4.8), folding the linearized
// chain's leaves together with the boolean kernel in left-to-right order.
func RenderBoundaryRep(t *csg.Term, onProgress kernel.ProgressFunc) (kernel.Polyhedron, error) {
	chain := Linearize(t)
	return kernel.RenderChain(chain, kernel.RenderOptions{OnProgress: onProgress})
}

// ExportSTL serializes a PolySet to STL, in binary or ASCII form.
func ExportSTL(ps *geom.PolySet, binary bool) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if binary {
		err = geom.EncodeSTLBinary(&buf, ps)
	} else {
		err = geom.EncodeSTLAscii(&buf, ps, "scad")
	}
	if err != nil {
		return nil, fmt.Errorf("STL export error: %w", err)
	}
	return buf.Bytes(), nil
}

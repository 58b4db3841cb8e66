package eval

import (
	"testing"

	"github.com/gopenscad/scad/lang"
	"github.com/gopenscad/scad/tree"
	"github.com/gopenscad/scad/value"
)

func parseSource(t *testing.T, src string) *lang.File {
	t.Helper()
	toks, err := lang.NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	file, err := lang.NewParser(toks, src).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return file
}

func TestEval_SimpleCube(t *testing.T) {
	file := parseSource(t, `cube([1,2,3]);`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children()))
	}
	cube, ok := root.Children()[0].(*tree.Primitive3DNode)
	if !ok {
		t.Fatalf("got %T, want *tree.Primitive3DNode", root.Children()[0])
	}
	if cube.Size != [3]float64{1, 2, 3} {
		t.Errorf("Size = %v, want [1 2 3]", cube.Size)
	}
}

func TestEval_UnionOfTwoPrimitives(t *testing.T) {
	file := parseSource(t, `union() { cube(1); sphere(2); }`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	csg, ok := root.Children()[0].(*tree.CSGNode)
	if !ok {
		t.Fatalf("got %T, want *tree.CSGNode", root.Children()[0])
	}
	if csg.Op != tree.CSGUnion {
		t.Errorf("Op = %v, want CSGUnion", csg.Op)
	}
	if len(csg.Children()) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(csg.Children()))
	}
}

func TestEval_TranslateWrapsChild(t *testing.T) {
	file := parseSource(t, `translate([1,0,0]) cube(1);`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	tn, ok := root.Children()[0].(*tree.TransformNode)
	if !ok {
		t.Fatalf("got %T, want *tree.TransformNode", root.Children()[0])
	}
	if tn.Matrix.Translation.X != 1 {
		t.Errorf("Translation.X = %v, want 1", tn.Matrix.Translation.X)
	}
}

func TestEval_IfElse(t *testing.T) {
	file := parseSource(t, `if (false) { cube(1); } else { sphere(1); }`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children()))
	}
	if _, ok := root.Children()[0].(*tree.Primitive3DNode); !ok {
		t.Fatalf("got %T, want *tree.Primitive3DNode", root.Children()[0])
	}
}

func TestEval_ForLoopUnionsIterations(t *testing.T) {
	file := parseSource(t, `for (i = [0:2]) cube(1);`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	if len(root.Children()) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children()))
	}
}

func TestEval_UserModuleWithChildren(t *testing.T) {
	file := parseSource(t, `
		module wrapper() {
			union() { children(); }
		}
		wrapper() { cube(1); sphere(1); }
	`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	union, ok := root.Children()[0].(*tree.CSGNode)
	if !ok {
		t.Fatalf("got %T, want *tree.CSGNode", root.Children()[0])
	}
	if len(union.Children()) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(union.Children()))
	}
}

func TestEval_UserFunction(t *testing.T) {
	file := parseSource(t, `
		function sq(x) = x * x;
		y = sq(3);
	`)
	ev := NewEvaluator(NewDefaultRegistry())
	ev.Evaluate(file)
	// y is a root-scope variable, not observable from outside; exercise
	// the function directly via evalExpr against a fresh root context.
	ctx := NewRootContext()
	ev2 := NewEvaluator(NewDefaultRegistry())
	for _, fn := range file.Functions {
		ev2.functions[fn.Name] = fn
	}
	call := &lang.CallExpr{Name: "sq", Args: []lang.Arg{{Value: &lang.Literal{Kind: lang.LitNumber, Num: 4}}}}
	v := ev2.evalExpr(ctx, call)
	n, ok := value.AsNumber(v)
	if !ok || n != 16 {
		t.Fatalf("sq(4) = %v, want 16", v)
	}
}

func TestEval_DisabledModifierIsDropped(t *testing.T) {
	file := parseSource(t, `*cube(1);`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	if len(root.Children()) != 0 {
		t.Fatalf("expected 0 children, got %d", len(root.Children()))
	}
}

func TestEval_ForLoopMultiVariableOrderIsDeterministic(t *testing.T) {
	src := `for (x = [0:1], y = [0:1]) translate([x, y, 0]) cube(1);`
	file := parseSource(t, src)

	var dumps []string
	for i := 0; i < 5; i++ {
		ev := NewEvaluator(NewDefaultRegistry())
		root := ev.Evaluate(file)
		dumps = append(dumps, root.Dump())
	}
	for i := 1; i < len(dumps); i++ {
		if dumps[i] != dumps[0] {
			t.Fatalf("for() binding order is nondeterministic across runs:\n%s\nvs\n%s", dumps[0], dumps[i])
		}
	}

	// x must vary slower than y: the first two children share x=0 (y=0,1),
	// the next two share x=1, matching source order x-then-y.
	file2 := parseSource(t, src)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file2)
	if len(root.Children()) != 4 {
		t.Fatalf("expected 4 children, got %d", len(root.Children()))
	}
	xOf := func(i int) float64 {
		tn := root.Children()[i].(*tree.TransformNode)
		return tn.Matrix.Translation.X
	}
	if xOf(0) != 0 || xOf(1) != 0 || xOf(2) != 1 || xOf(3) != 1 {
		t.Fatalf("expected x to vary slower than y (source order x,y), got x values %v %v %v %v",
			xOf(0), xOf(1), xOf(2), xOf(3))
	}
}

func TestEval_DxfDimMissingFileReturnsUndef(t *testing.T) {
	ctx := NewRootContext()
	ev := NewEvaluator(NewDefaultRegistry())
	fn, ok := ev.registry.Functions["dxf_dim"]
	if !ok {
		t.Fatal("dxf_dim is not registered")
	}
	args := Args{Named: map[string]value.Value{"file": value.String("/nonexistent/does-not-exist.dxf")}}
	got := fn(ev, ctx, args)
	if !got.IsUndef() {
		t.Errorf("dxf_dim on a missing file = %v, want undef", got)
	}
}

func TestEval_HighlightModifierWrapsNode(t *testing.T) {
	file := parseSource(t, `#cube(1);`)
	ev := NewEvaluator(NewDefaultRegistry())
	root := ev.Evaluate(file)
	mod, ok := root.Children()[0].(*tree.ModifierNode)
	if !ok {
		t.Fatalf("got %T, want *tree.ModifierNode", root.Children()[0])
	}
	if !mod.Highlight {
		t.Errorf("expected Highlight flag set")
	}
}

package lang

import "testing"

func mustParse(t *testing.T, source string) *File {
	t.Helper()
	toks, err := NewLexer(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	file, err := NewParser(toks, source).Parse()
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return file
}

func TestParser_SimpleInstantiation(t *testing.T) {
	file := mustParse(t, `cube(10);`)
	if len(file.Root) != 1 {
		t.Fatalf("len(Root) = %d, want 1", len(file.Root))
	}
	inst := file.Root[0].Instantiation
	if inst == nil {
		t.Fatalf("Root[0] is not an instantiation")
	}
	if inst.Name != "cube" {
		t.Errorf("Name = %q, want cube", inst.Name)
	}
	if len(inst.Args) != 1 {
		t.Fatalf("len(Args) = %d, want 1", len(inst.Args))
	}
}

func TestParser_NamedArgsAndChildBlock(t *testing.T) {
	file := mustParse(t, `translate(v = [1, 2, 3]) { cube(1); sphere(2); }`)
	inst := file.Root[0].Instantiation
	if inst.Name != "translate" {
		t.Fatalf("Name = %q", inst.Name)
	}
	if inst.Args[0].Name != "v" {
		t.Errorf("Args[0].Name = %q, want v", inst.Args[0].Name)
	}
	if len(inst.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(inst.Children))
	}
}

func TestParser_TagPrefixes(t *testing.T) {
	file := mustParse(t, `#cube(1);`)
	inst := file.Root[0].Instantiation
	if !inst.Tags.Has(TagHighlight) {
		t.Errorf("expected TagHighlight set")
	}
}

func TestParser_LabeledInstantiation(t *testing.T) {
	file := mustParse(t, `mylabel: cube(1);`)
	inst := file.Root[0].Instantiation
	if inst.Label != "mylabel" {
		t.Errorf("Label = %q, want mylabel", inst.Label)
	}
}

func TestParser_SingleStatementChild(t *testing.T) {
	file := mustParse(t, `translate([1,0,0]) cube(1);`)
	inst := file.Root[0].Instantiation
	if len(inst.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(inst.Children))
	}
}

func TestParser_IfElse(t *testing.T) {
	file := mustParse(t, `if (x > 0) { cube(1); } else { sphere(1); }`)
	inst := file.Root[0].Instantiation
	if inst.Name != "if" {
		t.Fatalf("Name = %q, want if", inst.Name)
	}
	if len(inst.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(inst.Children))
	}
	if len(inst.Else) != 1 {
		t.Fatalf("len(Else) = %d, want 1", len(inst.Else))
	}
}

func TestParser_Assignment(t *testing.T) {
	file := mustParse(t, `x = 5;`)
	if file.Root[0].Assign == nil {
		t.Fatalf("expected assignment")
	}
	if file.Root[0].Assign.Name != "x" {
		t.Errorf("Name = %q, want x", file.Root[0].Assign.Name)
	}
}

func TestParser_ModuleAndFunctionDecl(t *testing.T) {
	file := mustParse(t, `
		function sq(x) = x * x;
		module box(size = 1) { cube(size); }
	`)
	if len(file.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(file.Functions))
	}
	if file.Functions[0].Name != "sq" {
		t.Errorf("Name = %q, want sq", file.Functions[0].Name)
	}
	if len(file.Modules) != 1 {
		t.Fatalf("len(Modules) = %d, want 1", len(file.Modules))
	}
	if file.Modules[0].Params[0].Default == nil {
		t.Errorf("expected default value for size param")
	}
}

func TestParser_IncludeAndUse(t *testing.T) {
	file := mustParse(t, `
		include <lib/a.scad>;
		use <lib/b.scad>;
	`)
	if len(file.Includes) != 1 || file.Includes[0].Path != "lib/a.scad" {
		t.Fatalf("Includes = %+v", file.Includes)
	}
	if len(file.Uses) != 1 || file.Uses[0].Path != "lib/b.scad" {
		t.Fatalf("Uses = %+v", file.Uses)
	}
}

func TestParser_ExpressionPrecedence(t *testing.T) {
	file := mustParse(t, `x = 1 + 2 * 3;`)
	bin, ok := file.Root[0].Assign.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("Value is %T, want *BinaryExpr", file.Root[0].Assign.Value)
	}
	if bin.Op != BinAdd {
		t.Fatalf("top-level op = %v, want BinAdd", bin.Op)
	}
	rhs, ok := bin.Right.(*BinaryExpr)
	if !ok || rhs.Op != BinMul {
		t.Fatalf("rhs = %+v, want BinMul", bin.Right)
	}
}

func TestParser_TernaryExpression(t *testing.T) {
	file := mustParse(t, `x = a > 0 ? 1 : -1;`)
	tern, ok := file.Root[0].Assign.Value.(*TernaryExpr)
	if !ok {
		t.Fatalf("Value is %T, want *TernaryExpr", file.Root[0].Assign.Value)
	}
	if _, ok := tern.Cond.(*BinaryExpr); !ok {
		t.Errorf("Cond is %T, want *BinaryExpr", tern.Cond)
	}
}

func TestParser_RangeAndVectorLiterals(t *testing.T) {
	file := mustParse(t, `x = [0:2:10];`)
	rng, ok := file.Root[0].Assign.Value.(*RangeExpr)
	if !ok {
		t.Fatalf("Value is %T, want *RangeExpr", file.Root[0].Assign.Value)
	}
	if rng.Step == nil {
		t.Errorf("expected explicit step")
	}

	file2 := mustParse(t, `v = [1, 2, 3];`)
	vec, ok := file2.Root[0].Assign.Value.(*VectorExpr)
	if !ok {
		t.Fatalf("Value is %T, want *VectorExpr", file2.Root[0].Assign.Value)
	}
	if len(vec.Elements) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(vec.Elements))
	}
}

func TestParser_IndexAndMemberAccess(t *testing.T) {
	file := mustParse(t, `x = v[0] + v.x;`)
	bin := file.Root[0].Assign.Value.(*BinaryExpr)
	if _, ok := bin.Left.(*IndexExpr); !ok {
		t.Errorf("Left is %T, want *IndexExpr", bin.Left)
	}
	if _, ok := bin.Right.(*MemberExpr); !ok {
		t.Errorf("Right is %T, want *MemberExpr", bin.Right)
	}
}

func TestParser_FunctionCallExpression(t *testing.T) {
	file := mustParse(t, `x = sin(45) + sqrt(2);`)
	bin := file.Root[0].Assign.Value.(*BinaryExpr)
	call, ok := bin.Left.(*CallExpr)
	if !ok {
		t.Fatalf("Left is %T, want *CallExpr", bin.Left)
	}
	if call.Name != "sin" {
		t.Errorf("Name = %q, want sin", call.Name)
	}
}

func TestParser_UnknownTokenIsError(t *testing.T) {
	toks, err := NewLexer(`x = ;`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := NewParser(toks, `x = ;`).Parse(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParser_EmptyVectorLiteral(t *testing.T) {
	file := mustParse(t, `x = [];`)
	vec, ok := file.Root[0].Assign.Value.(*VectorExpr)
	if !ok {
		t.Fatalf("Value is %T, want *VectorExpr", file.Root[0].Assign.Value)
	}
	if len(vec.Elements) != 0 {
		t.Errorf("len(Elements) = %d, want 0", len(vec.Elements))
	}
}

package value

import "testing"

func TestArithmetic_NumberNumber(t *testing.T) {
	cases := []struct {
		name string
		op   func(a, b Value) Value
		a, b float64
		want float64
	}{
		{"add", Add, 2, 3, 5},
		{"sub", Sub, 5, 3, 2},
		{"mul", Mul, 4, 3, 12},
		{"div", Div, 9, 3, 3},
		{"mod", Mod, 7, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.op(Number(c.a), Number(c.b))
			n, ok := got.Number()
			if !ok || n != c.want {
				t.Errorf("%s(%v, %v) = %v, want %v", c.name, c.a, c.b, got, c.want)
			}
		})
	}
}

func TestArithmetic_MismatchedKindsYieldUndef(t *testing.T) {
	cases := []Value{
		Add(Number(1), Bool(true)),
		Add(String("a"), Number(1)),
		Sub(Bool(true), Bool(false)),
		Mul(String("a"), String("b")),
		Div(NewVector([]Value{Number(1)}), NewVector([]Value{Number(2)})),
		Neg(String("x")),
		Neg(Bool(true)),
	}
	for i, v := range cases {
		if !v.IsUndef() {
			t.Errorf("case %d: expected Undef, got %v", i, v)
		}
	}
}

func TestArithmetic_VectorBroadcastAndZip(t *testing.T) {
	v := NewVector([]Value{Number(1), Number(2), Number(3)})

	scaled := Mul(v, Number(2))
	items, _ := scaled.Vector()
	want := []float64{2, 4, 6}
	for i, item := range items {
		n, _ := item.Number()
		if n != want[i] {
			t.Errorf("Mul broadcast[%d] = %v, want %v", i, n, want[i])
		}
	}

	summed := Add(v, v)
	items, _ = summed.Vector()
	want = []float64{2, 4, 6}
	for i, item := range items {
		n, _ := item.Number()
		if n != want[i] {
			t.Errorf("Add zip[%d] = %v, want %v", i, n, want[i])
		}
	}
}

func TestArithmetic_VectorDivVectorIsUndef(t *testing.T) {
	a := NewVector([]Value{Number(4), Number(6)})
	b := NewVector([]Value{Number(2), Number(3)})
	if !Div(a, b).IsUndef() {
		t.Error("vector/vector should be Undef")
	}
}

func TestArithmetic_MismatchedLengthVectorsYieldUndef(t *testing.T) {
	a := NewVector([]Value{Number(1), Number(2)})
	b := NewVector([]Value{Number(1), Number(2), Number(3)})
	if !Add(a, b).IsUndef() {
		t.Error("mismatched-length vector add should be Undef")
	}
}

func TestEqual_Structural(t *testing.T) {
	a := NewVector([]Value{Number(1), String("x"), Bool(true)})
	b := NewVector([]Value{Number(1), String("x"), Bool(true)})
	c := NewVector([]Value{Number(1), String("x"), Bool(false)})

	if !Equal(a, b) {
		t.Error("structurally identical vectors should be equal")
	}
	if Equal(a, c) {
		t.Error("structurally different vectors should not be equal")
	}
	if Equal(Number(1), String("1")) {
		t.Error("different kinds should never be equal")
	}
}

func TestLess_OnlyDefinedForNumbers(t *testing.T) {
	if less, ok := Less(Number(1), Number(2)); !ok || !less {
		t.Error("1 < 2 should hold")
	}
	if _, ok := Less(String("a"), String("b")); ok {
		t.Error("Less should be undefined for strings")
	}
}

func TestRange_SeqInclusiveWithFloatTolerance(t *testing.T) {
	r := NewRange(0, 2, 10)
	seq := r.Seq()
	if len(seq) != 6 {
		t.Fatalf("expected 6 elements (0,2,4,6,8,10), got %d", len(seq))
	}
	want := []float64{0, 2, 4, 6, 8, 10}
	for i, v := range seq {
		n, _ := v.Number()
		if n != want[i] {
			t.Errorf("seq[%d] = %v, want %v", i, n, want[i])
		}
	}
}

func TestRange_StepOvershootTolerance(t *testing.T) {
	// 0:0.1:1 should still include 1.0 despite float accumulation error.
	r := NewRange(0, 0.1, 1)
	seq := r.Seq()
	n, _ := seq[len(seq)-1].Number()
	if n < 0.95 {
		t.Errorf("expected last element near 1.0, got %v (len=%d)", n, len(seq))
	}
}

func TestCoercion_As3VectorExtendsFromTwo(t *testing.T) {
	v := NewVector([]Value{Number(1), Number(2)})
	got := As3Vector(v, [3]float64{9, 9, 9})
	if got != (([3]float64{1, 2, 0})) {
		t.Errorf("As3Vector = %v, want [1 2 0]", got)
	}
}

func TestCoercion_FailureReturnsDefault(t *testing.T) {
	got := As3Vector(Undef(), [3]float64{1, 1, 1})
	if got != (([3]float64{1, 1, 1})) {
		t.Errorf("As3Vector(undef) = %v, want default", got)
	}
}

func TestDump_Deterministic(t *testing.T) {
	v := NewVector([]Value{Number(1), Number(2.5), String("hi"), Bool(true), Undef()})
	want := `[1, 2.5, "hi", true, undef]`
	if got := v.Dump(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestDump_RangeAndEquality(t *testing.T) {
	a := NewRange(0, 1, 10)
	b := NewRange(0, 1, 10)
	if a.Dump() != b.Dump() {
		t.Error("identical ranges must dump identically")
	}
}

package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the dynamic type carried by a Value.
type Kind uint8

const (
	KindUndef Kind = iota
	KindBool
	KindNumber
	KindRange
	KindVector
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindUndef:
		return "undef"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindRange:
		return "range"
	case KindVector:
		return "vector"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Range is an OpenSCAD range literal [begin:end] or [begin:step:end].
// Step defaults to 1 when omitted in the source (applied at evaluation time;
// the parser leaves it unset).
type Range struct {
	Begin float64
	Step  float64
	End   float64
}

// Value is the tagged-union dynamic value of the scripting language.
// The zero Value is Undef.
type Value struct {
	kind Kind
	b    bool
	n    float64
	r    Range
	vec  []Value
	s    string
}

// Undef returns the undefined value.
func Undef() Value { return Value{kind: KindUndef} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// NewRange builds a range value.
func NewRange(begin, step, end float64) Value {
	return Value{kind: KindRange, r: Range{Begin: begin, Step: step, End: end}}
}

// NewVector builds a vector value from already-evaluated elements.
// The slice is taken by reference; callers must not mutate it afterwards.
func NewVector(items []Value) Value {
	return Value{kind: KindVector, vec: items}
}

// Kind reports the dynamic type tag.
func (v Value) Kind() Kind { return v.kind }

// IsUndef reports whether v is the undefined value.
func (v Value) IsUndef() bool { return v.kind == KindUndef }

// Bool returns the boolean payload; ok is false for non-bool values.
func (v Value) Bool() (b, ok bool) { return v.b, v.kind == KindBool }

// Number returns the numeric payload; ok is false for non-number values.
func (v Value) Number() (n float64, ok bool) { return v.n, v.kind == KindNumber }

// Str returns the string payload; ok is false for non-string values.
func (v Value) Str() (s string, ok bool) { return v.s, v.kind == KindString }

// RangeVal returns the range payload; ok is false for non-range values.
func (v Value) RangeVal() (r Range, ok bool) { return v.r, v.kind == KindRange }

// Vector returns the vector payload; ok is false for non-vector values.
// The returned slice must not be mutated by the caller.
func (v Value) Vector() (items []Value, ok bool) { return v.vec, v.kind == KindVector }

// Len returns the element count of a vector or range ("as sequence"),
// or 0 for anything else.
func (v Value) Len() int {
	switch v.kind {
	case KindVector:
		return len(v.vec)
	case KindRange:
		return rangeLen(v.r)
	default:
		return 0
	}
}

func rangeLen(r Range) int {
	if r.Step == 0 {
		return 0
	}
	n := (r.End-r.Begin)/r.Step + 1
	if n < 0 {
		return 0
	}
	// floating-point tolerant rounding: a step that should land exactly
	// on End but overshoots by epsilon must still count that element.
	const eps = 1e-9
	count := int(math.Floor(n + eps))
	if count < 0 {
		return 0
	}
	return count
}

// Seq materializes a range or vector into a flat slice of Values, inclusive
// of the range endpoint subject to floating-point tolerance (§4.1).
func (v Value) Seq() []Value {
	switch v.kind {
	case KindVector:
		return v.vec
	case KindRange:
		n := rangeLen(v.r)
		out := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, Number(v.r.Begin+float64(i)*v.r.Step))
		}
		return out
	default:
		return nil
	}
}

// ---------------------------------------------------------------------------
// Arithmetic — total, never traps. Any unsupported combination yields Undef.
// ---------------------------------------------------------------------------

// Add implements the + operator: componentwise on equal-length vectors,
// numeric addition on numbers, concatenation on two strings; anything else
// is Undef.
func Add(a, b Value) Value {
	if a.kind == KindNumber && b.kind == KindNumber {
		return Number(a.n + b.n)
	}
	if a.kind == KindVector && b.kind == KindVector {
		return zipVectors(a, b, Add)
	}
	if a.kind == KindString && b.kind == KindString {
		return String(a.s + b.s)
	}
	return Undef()
}

// Sub implements the - operator.
func Sub(a, b Value) Value {
	if a.kind == KindNumber && b.kind == KindNumber {
		return Number(a.n - b.n)
	}
	if a.kind == KindVector && b.kind == KindVector {
		return zipVectors(a, b, Sub)
	}
	return Undef()
}

// Mul implements the * operator: number*number, scalar*vector broadcast in
// either order, and (as a convenience for dot-product-style code) equal
// length vector*vector componentwise multiplication.
func Mul(a, b Value) Value {
	if a.kind == KindNumber && b.kind == KindNumber {
		return Number(a.n * b.n)
	}
	if a.kind == KindNumber && b.kind == KindVector {
		return broadcastScalar(b, a.n, func(x, s float64) float64 { return x * s })
	}
	if a.kind == KindVector && b.kind == KindNumber {
		return broadcastScalar(a, b.n, func(x, s float64) float64 { return x * s })
	}
	if a.kind == KindVector && b.kind == KindVector {
		return zipVectors(a, b, Mul)
	}
	return Undef()
}

// Div implements the / operator: vector/scalar is componentwise;
// vector/vector is Undef per §3.1.
func Div(a, b Value) Value {
	if a.kind == KindNumber && b.kind == KindNumber {
		return Number(a.n / b.n)
	}
	if a.kind == KindVector && b.kind == KindNumber {
		return broadcastScalar(a, b.n, func(x, s float64) float64 { return x / s })
	}
	return Undef()
}

// Mod implements the % operator, componentwise on equal-length vectors.
func Mod(a, b Value) Value {
	if a.kind == KindNumber && b.kind == KindNumber {
		return Number(math.Mod(a.n, b.n))
	}
	if a.kind == KindVector && b.kind == KindVector {
		return zipVectors(a, b, Mod)
	}
	return Undef()
}

// Neg implements unary minus: number and vector only.
func Neg(a Value) Value {
	switch a.kind {
	case KindNumber:
		return Number(-a.n)
	case KindVector:
		out := make([]Value, len(a.vec))
		for i, e := range a.vec {
			out[i] = Neg(e)
		}
		return NewVector(out)
	default:
		return Undef()
	}
}

func zipVectors(a, b Value, op func(a, b Value) Value) Value {
	if len(a.vec) != len(b.vec) {
		return Undef()
	}
	out := make([]Value, len(a.vec))
	for i := range a.vec {
		out[i] = op(a.vec[i], b.vec[i])
	}
	return NewVector(out)
}

func broadcastScalar(vec Value, scalar float64, op func(x, s float64) float64) Value {
	out := make([]Value, len(vec.vec))
	for i, e := range vec.vec {
		if n, ok := e.Number(); ok {
			out[i] = Number(op(n, scalar))
		} else {
			out[i] = Undef()
		}
	}
	return NewVector(out)
}

// Equal is structural equality.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndef:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindRange:
		return a.r == b.r
	case KindVector:
		if len(a.vec) != len(b.vec) {
			return false
		}
		for i := range a.vec {
			if !Equal(a.vec[i], b.vec[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less defines ordering for numbers only; ok is false otherwise.
func Less(a, b Value) (less, ok bool) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return false, false
	}
	return a.n < b.n, true
}

// ---------------------------------------------------------------------------
// Coercion helpers
// ---------------------------------------------------------------------------

// AsNumber coerces to a float64, returning ok=false (and 0) on failure.
func AsNumber(v Value) (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// As2Vector coerces v to a 2-element [x, y] pair, falling back to def when
// v isn't a usable 2-vector (wrong length or non-numeric elements).
func As2Vector(v Value, def [2]float64) [2]float64 {
	if v.kind != KindVector || len(v.vec) < 2 {
		return def
	}
	x, okx := v.vec[0].Number()
	y, oky := v.vec[1].Number()
	if !okx || !oky {
		return def
	}
	return [2]float64{x, y}
}

// As3Vector coerces v to a 3-element [x, y, z] triple, falling back to def.
// A 2-vector is accepted and extended with z=0, matching OpenSCAD's
// permissive treatment of e.g. translate([1,2]).
func As3Vector(v Value, def [3]float64) [3]float64 {
	if v.kind != KindVector || len(v.vec) < 2 {
		return def
	}
	x, okx := v.vec[0].Number()
	y, oky := v.vec[1].Number()
	if !okx || !oky {
		return def
	}
	z := 0.0
	if len(v.vec) >= 3 {
		if zz, ok := v.vec[2].Number(); ok {
			z = zz
		} else {
			return def
		}
	}
	return [3]float64{x, y, z}
}

// AsBool coerces v to a bool; non-bool values yield false.
func AsBool(v Value) bool {
	b, _ := v.Bool()
	return b
}

// ---------------------------------------------------------------------------
// Dump — stable, locale-independent, deterministic (feeds cache fingerprints)
// ---------------------------------------------------------------------------

// Dump renders v in the canonical textual form used for fingerprinting
// (§3.11). It must never depend on map iteration order, locale, or pointer
// identity.
func (v Value) Dump() string {
	var sb strings.Builder
	v.dumpTo(&sb)
	return sb.String()
}

func (v Value) dumpTo(sb *strings.Builder) {
	switch v.kind {
	case KindUndef:
		sb.WriteString("undef")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(formatNumber(v.n))
	case KindString:
		sb.WriteByte('"')
		sb.WriteString(v.s)
		sb.WriteByte('"')
	case KindRange:
		sb.WriteByte('[')
		sb.WriteString(formatNumber(v.r.Begin))
		sb.WriteByte(':')
		sb.WriteString(formatNumber(v.r.Step))
		sb.WriteByte(':')
		sb.WriteString(formatNumber(v.r.End))
		sb.WriteByte(']')
	case KindVector:
		sb.WriteByte('[')
		for i, e := range v.vec {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.dumpTo(sb)
		}
		sb.WriteByte(']')
	}
}

// formatNumber renders a number in minimal %g-like form, deterministically.
func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "nan"
	}
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func (v Value) String() string { return v.Dump() }

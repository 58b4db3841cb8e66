package csg

// Normalize rewrites t into sum-of-products form via the fixed nine-rule
// system of Kirsch & Döller's OpenCSG paper (§4.5), run to a fixed point.
func Normalize(t *Term) *Term {
	if t.IsLeaf() {
		t.Ref()
		return t
	}

	x := Normalize(t.Left)
	y := Normalize(t.Right)

	var t1 *Term
	if x != t.Left || y != t.Right {
		t1 = NewCombination(t.Op, x, y)
	} else {
		t1 = t
		t1.Ref()
	}
	x.Unref()
	y.Unref()

	for {
		t2 := normalizeTail(t1)
		t1.Unref()
		if t2 == t1 {
			return t2
		}
		t1 = t2
	}
}

// normalizeTail applies the first matching rewrite rule at the root of t;
// when none matches there it searches t's children the same way and
// rebuilds t over any rewritten child. It returns t itself (ref'd) when no
// rule matches anywhere in t.
func normalizeTail(t *Term) *Term {
	if t.IsLeaf() || t.Right == nil {
		t.Ref()
		return t
	}

	// Part A: x . (y . z)
	if t.Right.Op != OpLeaf {
		x, y, z := t.Left, t.Right.Left, t.Right.Right

		switch {
		case t.Op == OpDifference && t.Right.Op == OpUnion:
			// 1. x - (y + z) -> (x - y) - z
			return NewCombination(OpDifference, NewCombination(OpDifference, x, y), z)
		case t.Op == OpIntersection && t.Right.Op == OpUnion:
			// 2. x * (y + z) -> (x * y) + (x * z)
			return NewCombination(OpUnion, NewCombination(OpIntersection, x, y), NewCombination(OpIntersection, x, z))
		case t.Op == OpDifference && t.Right.Op == OpIntersection:
			// 3. x - (y * z) -> (x - y) + (x - z)
			return NewCombination(OpUnion, NewCombination(OpDifference, x, y), NewCombination(OpDifference, x, z))
		case t.Op == OpIntersection && t.Right.Op == OpIntersection:
			// 4. x * (y * z) -> (x * y) * z
			return NewCombination(OpIntersection, NewCombination(OpIntersection, x, y), z)
		case t.Op == OpDifference && t.Right.Op == OpDifference:
			// 5. x - (y - z) -> (x - y) + (x * z)
			return NewCombination(OpUnion, NewCombination(OpDifference, x, y), NewCombination(OpIntersection, x, z))
		case t.Op == OpIntersection && t.Right.Op == OpDifference:
			// 6. x * (y - z) -> (x * y) - z
			return NewCombination(OpDifference, NewCombination(OpIntersection, x, y), z)
		}
	}

	// Part B: (x . y) . z
	if t.Left.Op != OpLeaf {
		x, y, z := t.Left.Left, t.Left.Right, t.Right

		switch {
		case t.Left.Op == OpDifference && t.Op == OpIntersection:
			// 7. (x - y) * z -> (x * z) - y
			return NewCombination(OpDifference, NewCombination(OpIntersection, x, z), y)
		case t.Left.Op == OpUnion && t.Op == OpDifference:
			// 8. (x + y) - z -> (x - z) + (y - z)
			return NewCombination(OpUnion, NewCombination(OpDifference, x, z), NewCombination(OpDifference, y, z))
		case t.Left.Op == OpUnion && t.Op == OpIntersection:
			// 9. (x + y) * z -> (x * z) + (y * z)
			return NewCombination(OpUnion, NewCombination(OpIntersection, x, z), NewCombination(OpIntersection, y, z))
		}
	}

	// Part C: x . y — no rule matches at the root, so look for one in the
	// children (a rewrite above can leave a child out of normal form).
	x, y := normalizeTail(t.Left), normalizeTail(t.Right)
	if x != t.Left || y != t.Right {
		nt := NewCombination(t.Op, x, y)
		x.Unref()
		y.Unref()
		return nt
	}
	x.Unref()
	y.Unref()
	t.Ref()
	return t
}

package tree

import "gonum.org/v1/gonum/spatial/r3"

// Affine is a 3-D affine transform: a linear part plus a translation.
// gonum's r3 package has no native 4x4 homogeneous-coordinate type, so
// transforms are carried as the (Mat, Vec) pair the library does provide
// and composed by hand in Compose.
type Affine struct {
	Linear      r3.Mat
	Translation r3.Vec
}

// Identity is the identity affine transform.
func Identity() Affine {
	return Affine{Linear: *r3.NewMat([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})}
}

// Compose returns the transform that applies a first, then b: equivalent
// to the 4x4 product b*a in homogeneous coordinates.
func Compose(a, b Affine) Affine {
	var linear r3.Mat
	linear.Mul(&b.Linear, &a.Linear)
	translation := r3.Add(b.Linear.MulVec(a.Translation), b.Translation)
	return Affine{Linear: linear, Translation: translation}
}

// Apply transforms a point by the affine transform.
func (a Affine) Apply(p r3.Vec) r3.Vec {
	return r3.Add(a.Linear.MulVec(p), a.Translation)
}

// Translate returns a pure-translation affine transform.
func Translate(v r3.Vec) Affine {
	t := Identity()
	t.Translation = v
	return t
}

// Scale returns a pure-scale affine transform.
func Scale(v r3.Vec) Affine {
	return Affine{Linear: *r3.NewMat([]float64{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, v.Z,
	})}
}

// MirrorAcross returns the reflection across the plane through the origin
// with the given (non-zero) normal, per §4.6's mirror() semantics.
func MirrorAcross(n r3.Vec) Affine {
	norm := r3.Norm(n)
	if norm == 0 {
		return Identity()
	}
	n = r3.Scale(1/norm, n)
	// Householder reflection: I - 2*n*n^T
	m := r3.NewMat([]float64{
		1 - 2*n.X*n.X, -2 * n.X * n.Y, -2 * n.X * n.Z,
		-2 * n.Y * n.X, 1 - 2*n.Y*n.Y, -2 * n.Y * n.Z,
		-2 * n.Z * n.X, -2 * n.Z * n.Y, 1 - 2*n.Z*n.Z,
	})
	return Affine{Linear: *m}
}

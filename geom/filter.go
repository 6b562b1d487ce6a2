package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Error-bounded floating-point predicates.
//
// The sup and index functions follow "Exact Geometric Computation Using
// Cascading" by Burnikel, Funke and Seel. For an expression E over +, - and *,
// the supremum is the same expression with absolute values on the inputs and
// + substituted for -, and the index counts the operations contributing
// rounding error:
//
//	index(x op y) = 1 + max(index(x), index(y))  for + and -
//	index(x * y)  = 1 + index(x) + index(y)
//	index(x)      = 0 if x is exactly representable, else 1
//
// Then |E_exact - E| <= supremum(E) * index(E) * epsilon, so the sign of the
// double-precision E can be trusted whenever |E| exceeds that bound. These
// predicates never return a wrong certain sign; when unsure they report the
// "unknown" outcome and the caller falls back to exact arithmetic.

// dblEpsilon is the distance from 1.0 to the next larger float64 (DBL_EPSILON).
const dblEpsilon = 2.220446049250313e-16

// Index constants assume the inputs are approximations of exact values
// (index 1), not exactly representable doubles.
const (
	indexCross    = 11
	indexDot      = 5
	indexOrient3D = 11
)

func absVec3(a mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Abs(a.X()), math.Abs(a.Y()), math.Abs(a.Z())}
}

// supremumCrossSq bounds the squared length of cross(a, b); the caller
// compares it against the squared length of the computed cross product.
func supremumCrossSq(a, b mgl64.Vec3) float64 {
	aa := absVec3(a)
	ab := absVec3(b)
	c := mgl64.Vec3{
		aa.Y()*ab.Z() + aa.Z()*ab.Y(),
		aa.Z()*ab.X() + aa.X()*ab.Z(),
		aa.X()*ab.Y() + aa.Y()*ab.X(),
	}
	return c.Dot(c)
}

func supremumDot(a, b mgl64.Vec3) float64 {
	return absVec3(a).Dot(absVec3(b))
}

func supremumOrient3D(a, b, c, d mgl64.Vec3) float64 {
	aa := absVec3(a)
	ab := absVec3(b)
	ac := absVec3(c)
	ad := absVec3(d)
	adx := aa.X() + ad.X()
	bdx := ab.X() + ad.X()
	cdx := ac.X() + ad.X()
	ady := aa.Y() + ad.Y()
	bdy := ab.Y() + ad.Y()
	cdy := ac.Y() + ad.Y()
	adz := aa.Z() + ad.Z()
	bdz := ab.Z() + ad.Z()
	cdz := ac.Z() + ad.Z()

	return adz*(bdx*cdy+cdx*bdy) + bdz*(cdx*ady+adx*cdy) + cdz*(adx*bdy+bdx*ady)
}

// orient3DFast follows the same sign convention as the exact Orient3D:
// positive when d is on the positive side of the oriented plane (a, b, c).
// The d-difference determinant is the negation of that value, and the
// negation is exact, so the supremum bound applies unchanged.
func orient3DFast(a, b, c, d mgl64.Vec3) float64 {
	ad := a.Sub(d)
	bd := b.Sub(d)
	cd := c.Sub(d)
	return -ad.Dot(bd.Cross(cd))
}

// FilterOrient3D returns the sign of orient3d(a, b, c, d) computed in
// float64, but only when the sign is provably the same as the exact one:
// +1 or -1 are certain, 0 means unknown (or exactly coplanar) and the caller
// must fall back to exact arithmetic.
func FilterOrient3D(a, b, c, d mgl64.Vec3) int {
	fast := orient3DFast(a, b, c, d)
	if fast == 0.0 {
		return 0
	}
	bound := supremumOrient3D(a, b, c, d) * indexOrient3D * dblEpsilon
	if math.Abs(fast) > bound {
		if fast > 0.0 {
			return 1
		}
		return -1
	}
	return 0
}

// NearParallel reports whether a and b may be parallel. It returns false only
// when the vectors are provably not parallel, accounting for rounding error
// and input approximation.
func NearParallel(a, b mgl64.Vec3) bool {
	cr := a.Cross(b)
	crLenSq := cr.Dot(cr)
	if crLenSq == 0.0 {
		return true
	}
	bound := supremumCrossSq(a, b) * indexCross * dblEpsilon
	return crLenSq <= bound
}

// DotMustBePositive reports whether dot(a, b) is provably positive,
// accounting for rounding error and input approximation.
func DotMustBePositive(a, b mgl64.Vec3) bool {
	d := a.Dot(b)
	if d <= 0.0 {
		return false
	}
	bound := supremumDot(a, b) * indexDot * dblEpsilon
	return d > bound
}

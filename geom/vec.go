// Package geom provides the exact rational geometry kernel used by the mesh
// self-intersection resolver: arbitrary-precision rational 2- and 3-vectors,
// exact planes with cached floating-point approximations, exact orientation
// predicates, and error-bounded floating-point filter predicates.
//
// All topology decisions are made with exact arithmetic (math/big rationals);
// floating-point values appear only in fast paths that are guarded by proven
// error bounds.
package geom

import (
	"math/big"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is an exact rational 3D vector. Components are never nil and are never
// mutated in place; every operation allocates fresh rationals.
type Vec3 [3]*big.Rat

// Vec2 is an exact rational 2D vector.
type Vec2 [2]*big.Rat

// V3 builds a Vec3 from integer coordinates.
func V3(x, y, z int64) Vec3 {
	return Vec3{big.NewRat(x, 1), big.NewRat(y, 1), big.NewRat(z, 1)}
}

// V3Rat builds a Vec3 from rationals. The rationals are shared, not copied;
// callers must not mutate them afterwards.
func V3Rat(x, y, z *big.Rat) Vec3 {
	return Vec3{x, y, z}
}

// V3Float builds a Vec3 holding the exact rational values of the given
// float64 coordinates.
func V3Float(co mgl64.Vec3) Vec3 {
	return Vec3{
		new(big.Rat).SetFloat64(co.X()),
		new(big.Rat).SetFloat64(co.Y()),
		new(big.Rat).SetFloat64(co.Z()),
	}
}

// V2 builds a Vec2 from integer coordinates.
func V2(x, y int64) Vec2 {
	return Vec2{big.NewRat(x, 1), big.NewRat(y, 1)}
}

// V2Rat builds a Vec2 from rationals, shared not copied.
func V2Rat(x, y *big.Rat) Vec2 {
	return Vec2{x, y}
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{
		new(big.Rat).Add(v[0], w[0]),
		new(big.Rat).Add(v[1], w[1]),
		new(big.Rat).Add(v[2], w[2]),
	}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{
		new(big.Rat).Sub(v[0], w[0]),
		new(big.Rat).Sub(v[1], w[1]),
		new(big.Rat).Sub(v[2], w[2]),
	}
}

func (v Vec3) Scale(s *big.Rat) Vec3 {
	return Vec3{
		new(big.Rat).Mul(v[0], s),
		new(big.Rat).Mul(v[1], s),
		new(big.Rat).Mul(v[2], s),
	}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{
		new(big.Rat).Neg(v[0]),
		new(big.Rat).Neg(v[1]),
		new(big.Rat).Neg(v[2]),
	}
}

// Dot returns the exact dot product v·w.
func (v Vec3) Dot(w Vec3) *big.Rat {
	d := new(big.Rat).Mul(v[0], w[0])
	d.Add(d, new(big.Rat).Mul(v[1], w[1]))
	d.Add(d, new(big.Rat).Mul(v[2], w[2]))
	return d
}

// Cross returns the exact cross product v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		new(big.Rat).Sub(new(big.Rat).Mul(v[1], w[2]), new(big.Rat).Mul(v[2], w[1])),
		new(big.Rat).Sub(new(big.Rat).Mul(v[2], w[0]), new(big.Rat).Mul(v[0], w[2])),
		new(big.Rat).Sub(new(big.Rat).Mul(v[0], w[1]), new(big.Rat).Mul(v[1], w[0])),
	}
}

// Equal reports exact component-wise equality.
func (v Vec3) Equal(w Vec3) bool {
	return v[0].Cmp(w[0]) == 0 && v[1].Cmp(w[1]) == 0 && v[2].Cmp(w[2]) == 0
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v[0].Sign() == 0 && v[1].Sign() == 0 && v[2].Sign() == 0
}

// Approx returns the closest float64 vector. The approximation is used only
// in filtered fast paths, never for topology decisions.
func (v Vec3) Approx() mgl64.Vec3 {
	x, _ := v[0].Float64()
	y, _ := v[1].Float64()
	z, _ := v[2].Float64()
	return mgl64.Vec3{x, y, z}
}

// Key returns a canonical string encoding of the exact coordinates, suitable
// as a hash-map key. Two Vec3s have equal keys iff they are Equal.
func (v Vec3) Key() string {
	return v[0].RatString() + ";" + v[1].RatString() + ";" + v[2].RatString()
}

// DominantAxis returns the index of the component with the greatest absolute
// value. For a nonzero vector the returned component is guaranteed nonzero.
func (v Vec3) DominantAxis() int {
	ax := new(big.Rat).Abs(v[0])
	ay := new(big.Rat).Abs(v[1])
	az := new(big.Rat).Abs(v[2])
	axis := 0
	best := ax
	if ay.Cmp(best) > 0 {
		axis, best = 1, ay
	}
	if az.Cmp(best) > 0 {
		axis = 2
	}
	return axis
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{
		new(big.Rat).Add(v[0], w[0]),
		new(big.Rat).Add(v[1], w[1]),
	}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{
		new(big.Rat).Sub(v[0], w[0]),
		new(big.Rat).Sub(v[1], w[1]),
	}
}

func (v Vec2) Scale(s *big.Rat) Vec2 {
	return Vec2{
		new(big.Rat).Mul(v[0], s),
		new(big.Rat).Mul(v[1], s),
	}
}

// Dot returns the exact dot product v·w.
func (v Vec2) Dot(w Vec2) *big.Rat {
	d := new(big.Rat).Mul(v[0], w[0])
	d.Add(d, new(big.Rat).Mul(v[1], w[1]))
	return d
}

// Cross returns the exact 2D cross product (the z component of the 3D one).
func (v Vec2) Cross(w Vec2) *big.Rat {
	return new(big.Rat).Sub(new(big.Rat).Mul(v[0], w[1]), new(big.Rat).Mul(v[1], w[0]))
}

// Equal reports exact component-wise equality.
func (v Vec2) Equal(w Vec2) bool {
	return v[0].Cmp(w[0]) == 0 && v[1].Cmp(w[1]) == 0
}

// Key returns a canonical string encoding of the exact coordinates.
func (v Vec2) Key() string {
	return v[0].RatString() + ";" + v[1].RatString()
}

// ProjectAxis projects a 3D point to 2D by eliding the given axis. The
// projection is degeneracy-free as long as axis is the dominant axis of the
// originating plane's normal.
func ProjectAxis(p Vec3, axis int) Vec2 {
	switch axis {
	case 0:
		return Vec2{p[1], p[2]}
	case 1:
		return Vec2{p[0], p[2]}
	default:
		return Vec2{p[0], p[1]}
	}
}

package geom

import (
	"math/big"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the exact plane dot(Norm, p) + D == 0, with cached float64
// approximations for the filtered fast paths.
//
// The orientation of Norm is significant everywhere except in the canonical
// form returned by Canonical, which exists purely to serve as a hash-map key
// and may flip the orientation.
type Plane struct {
	Norm Vec3
	D    *big.Rat

	// Cached approximations of Norm and D.
	NormApprox mgl64.Vec3
	DApprox    float64
}

// NewPlane builds a plane from an exact normal and offset and caches the
// float64 approximations.
func NewPlane(norm Vec3, d *big.Rat) Plane {
	df, _ := d.Float64()
	return Plane{
		Norm:       norm,
		D:          d,
		NormApprox: norm.Approx(),
		DApprox:    df,
	}
}

// PlaneFromPoints builds the plane through point p with the given exact
// normal.
func PlaneFromPoints(norm Vec3, p Vec3) Plane {
	return NewPlane(norm, new(big.Rat).Neg(norm.Dot(p)))
}

// Equal reports exact equality of normal and offset. Two planes describing
// the same point set with scaled normals are not Equal; use Canonical keys to
// group those.
func (p Plane) Equal(q Plane) bool {
	return p.Norm.Equal(q.Norm) && p.D.Cmp(q.D) == 0
}

// Canonical returns the canonical form of the plane: the first nonzero
// normal component is forced to 1. All planes describing the same point set
// map to the same canonical form, so its Key can group coplanar faces.
// Canonicalization may flip orientation and must not be used for
// orientation-sensitive logic.
func (p Plane) Canonical() Plane {
	one := big.NewRat(1, 1)
	zero := new(big.Rat)
	var norm Vec3
	var den *big.Rat
	switch {
	case p.Norm[0].Sign() != 0:
		den = p.Norm[0]
		norm = Vec3{one, new(big.Rat).Quo(p.Norm[1], den), new(big.Rat).Quo(p.Norm[2], den)}
	case p.Norm[1].Sign() != 0:
		den = p.Norm[1]
		norm = Vec3{zero, one, new(big.Rat).Quo(p.Norm[2], den)}
	default:
		den = p.Norm[2]
		norm = Vec3{zero, new(big.Rat), one}
	}
	return NewPlane(norm, new(big.Rat).Quo(p.D, den))
}

// Key returns a hashable encoding of the exact normal and offset. Callers
// grouping coplanar faces must call Canonical first.
func (p Plane) Key() string {
	return p.Norm.Key() + "|" + p.D.RatString()
}

// Unproject lifts a 2D point, produced by ProjectAxis along the given axis,
// back onto the plane by solving the plane equation for the dropped
// coordinate. The axis must be one where the plane's normal component is
// nonzero (any dominant axis qualifies).
func (p Plane) Unproject(p2 Vec2, axis int) Vec3 {
	n := p.Norm
	switch axis {
	case 0:
		num := new(big.Rat).Mul(n[1], p2[0])
		num.Add(num, new(big.Rat).Mul(n[2], p2[1]))
		num.Add(num, p.D)
		num.Neg(num)
		return Vec3{num.Quo(num, n[0]), p2[0], p2[1]}
	case 1:
		num := new(big.Rat).Mul(n[0], p2[0])
		num.Add(num, new(big.Rat).Mul(n[2], p2[1]))
		num.Add(num, p.D)
		num.Neg(num)
		return Vec3{p2[0], num.Quo(num, n[1]), p2[1]}
	default:
		num := new(big.Rat).Mul(n[0], p2[0])
		num.Add(num, new(big.Rat).Mul(n[1], p2[1]))
		num.Add(num, p.D)
		num.Neg(num)
		return Vec3{p2[0], p2[1], num.Quo(num, n[2])}
	}
}

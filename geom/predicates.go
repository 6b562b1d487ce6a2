package geom

import "math/big"

// Orient2D returns the sign of the signed area of triangle (a, b, c):
// +1 when c is strictly left of the directed line a→b (counter-clockwise),
// -1 when strictly right, 0 when the three points are collinear.
func Orient2D(a, b, c Vec2) int {
	return b.Sub(a).Cross(c.Sub(a)).Sign()
}

// Orient3D returns the sign of the signed volume of tetrahedron (a, b, c, d):
// +1 when d is on the positive side of the oriented plane through a, b, c,
// -1 on the negative side, 0 when the four points are coplanar.
func Orient3D(a, b, c, d Vec3) int {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a)).Sign()
}

// InCircle returns the sign of the incircle determinant: +1 when d lies
// strictly inside the circumcircle of the counter-clockwise triangle
// (a, b, c), -1 when strictly outside, 0 when cocircular.
func InCircle(a, b, c, d Vec2) int {
	adx := new(big.Rat).Sub(a[0], d[0])
	ady := new(big.Rat).Sub(a[1], d[1])
	bdx := new(big.Rat).Sub(b[0], d[0])
	bdy := new(big.Rat).Sub(b[1], d[1])
	cdx := new(big.Rat).Sub(c[0], d[0])
	cdy := new(big.Rat).Sub(c[1], d[1])

	ad2 := new(big.Rat).Add(new(big.Rat).Mul(adx, adx), new(big.Rat).Mul(ady, ady))
	bd2 := new(big.Rat).Add(new(big.Rat).Mul(bdx, bdx), new(big.Rat).Mul(bdy, bdy))
	cd2 := new(big.Rat).Add(new(big.Rat).Mul(cdx, cdx), new(big.Rat).Mul(cdy, cdy))

	bxcy := new(big.Rat).Sub(new(big.Rat).Mul(bdx, cdy), new(big.Rat).Mul(cdx, bdy))
	cxay := new(big.Rat).Sub(new(big.Rat).Mul(cdx, ady), new(big.Rat).Mul(adx, cdy))
	axby := new(big.Rat).Sub(new(big.Rat).Mul(adx, bdy), new(big.Rat).Mul(bdx, ady))

	det := new(big.Rat).Mul(ad2, bxcy)
	det.Add(det, new(big.Rat).Mul(bd2, cxay))
	det.Add(det, new(big.Rat).Mul(cd2, axby))
	return det.Sign()
}

// OnSegment reports whether p lies on the closed segment [a, b]. The segment
// may be degenerate (a == b), in which case only p == a qualifies.
func OnSegment(p, a, b Vec2) bool {
	if a.Equal(b) {
		return p.Equal(a)
	}
	if Orient2D(a, b, p) != 0 {
		return false
	}
	ab := b.Sub(a)
	ap := p.Sub(a)
	t := ap.Dot(ab)
	if t.Sign() < 0 {
		return false
	}
	return t.Cmp(ab.Dot(ab)) <= 0
}

// SegSegIntersection returns the single exact intersection point of segments
// [a, b] and [c, d], when one exists and the segments are not collinear.
// Endpoint touches count. The second result is false for parallel or
// non-intersecting segments.
func SegSegIntersection(a, b, c, d Vec2) (Vec2, bool) {
	ab := b.Sub(a)
	cd := d.Sub(c)
	denom := ab.Cross(cd)
	if denom.Sign() == 0 {
		return Vec2{}, false
	}
	ac := c.Sub(a)
	t := new(big.Rat).Quo(ac.Cross(cd), denom)
	s := new(big.Rat).Quo(ac.Cross(ab), denom)
	one := big.NewRat(1, 1)
	if t.Sign() < 0 || t.Cmp(one) > 0 || s.Sign() < 0 || s.Cmp(one) > 0 {
		return Vec2{}, false
	}
	return a.Add(ab.Scale(t)), true
}

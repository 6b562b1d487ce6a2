package shard

import (
	"math/big"

	"github.com/akmonengine/shard/geom"
	"github.com/akmonengine/shard/mesh"
)

// This file implements exact triangle-triangle intersection with the
// algorithm of Guigue and Devillers, "Faster Triangle-Triangle Intersection
// Tests". The canonical vertex permutations of the paper are expressed as
// explicit decision tables over plane-side sign triples rather than the
// usual nested conditionals.

type ittKind int

const (
	ittNone ittKind = iota
	ittPoint
	ittSegment
	ittCoplanar
)

// ittValue is the outcome of one exact triangle-triangle intersection:
// nothing, a single point, a segment from p1 to p2, or coplanarity (resolved
// later by the cluster machinery). tSource is the index of the second
// triangle, for attributing coplanar results.
type ittValue struct {
	kind    ittKind
	p1, p2  geom.Vec3
	tSource int
}

// permutations of a vertex triple (p, q, r)
const (
	permPQR = iota
	permQRP
	permRPQ
)

func applyPerm(perm int, p, q, r geom.Vec3) (geom.Vec3, geom.Vec3, geom.Vec3) {
	switch perm {
	case permQRP:
		return q, r, p
	case permRPQ:
		return r, p, q
	default:
		return p, q, r
	}
}

type ittDispatch struct {
	perm     int
	swap     bool
	coplanar bool
}

// ittOuter canonicalizes triangle 1. Keyed by the signs of triangle 1's
// vertices against triangle 2's plane, it gives the rotation that brings the
// vertex with a sign different from the other two to the front, and whether
// triangle 2 must be relabeled (q2, r2 swapped, likewise its signs) to keep
// the front vertex on the positive side. The all-positive and all-negative
// triples were already rejected as non-intersecting; the all-zero triple is
// the coplanar case.
var ittOuter = map[[3]int]ittDispatch{
	{1, 1, -1}:  {perm: permRPQ, swap: true},
	{1, 1, 0}:   {perm: permRPQ, swap: true},
	{1, -1, 1}:  {perm: permQRP, swap: true},
	{1, 0, 1}:   {perm: permQRP, swap: true},
	{1, -1, -1}: {perm: permPQR},
	{1, -1, 0}:  {perm: permPQR},
	{1, 0, -1}:  {perm: permPQR},
	{1, 0, 0}:   {perm: permPQR},

	{-1, -1, 1}: {perm: permRPQ},
	{-1, -1, 0}: {perm: permRPQ},
	{-1, 1, -1}: {perm: permQRP},
	{-1, 0, -1}: {perm: permQRP},
	{-1, 1, 1}:  {perm: permPQR, swap: true},
	{-1, 1, 0}:  {perm: permPQR, swap: true},
	{-1, 0, 1}:  {perm: permPQR, swap: true},
	{-1, 0, 0}:  {perm: permPQR, swap: true},

	{0, -1, 0}:  {perm: permQRP, swap: true},
	{0, -1, 1}:  {perm: permQRP, swap: true},
	{0, -1, -1}: {perm: permPQR},
	{0, 1, 1}:   {perm: permPQR, swap: true},
	{0, 1, 0}:   {perm: permQRP},
	{0, 1, -1}:  {perm: permQRP},
	{0, 0, 1}:   {perm: permRPQ},
	{0, 0, -1}:  {perm: permRPQ, swap: true},
	{0, 0, 0}:   {coplanar: true},
}

// ittCanon1 canonicalizes triangle 2 after triangle 1 is canonical. Keyed by
// the (possibly relabeled) signs of triangle 2's vertices against triangle
// 1's plane, it gives the rotation of triangle 2's vertices and whether
// triangle 1 must flip to (p1, r1, q1).
var ittCanon1 = map[[3]int]ittDispatch{
	{1, 1, -1}:  {perm: permRPQ, swap: true},
	{1, 1, 0}:   {perm: permRPQ, swap: true},
	{1, -1, 1}:  {perm: permQRP, swap: true},
	{1, 0, 1}:   {perm: permQRP, swap: true},
	{1, -1, -1}: {perm: permPQR},
	{1, -1, 0}:  {perm: permPQR},
	{1, 0, -1}:  {perm: permPQR},
	{1, 0, 0}:   {perm: permPQR},

	{-1, -1, 1}: {perm: permRPQ},
	{-1, -1, 0}: {perm: permRPQ},
	{-1, 1, -1}: {perm: permQRP},
	{-1, 0, -1}: {perm: permQRP},
	{-1, 1, 1}:  {perm: permPQR, swap: true},
	{-1, 1, 0}:  {perm: permPQR, swap: true},
	{-1, 0, 1}:  {perm: permPQR, swap: true},
	{-1, 0, 0}:  {perm: permPQR, swap: true},

	{0, -1, 0}:  {perm: permQRP, swap: true},
	{0, -1, 1}:  {perm: permQRP, swap: true},
	{0, -1, -1}: {perm: permPQR},
	{0, 1, 1}:   {perm: permPQR, swap: true},
	{0, 1, 0}:   {perm: permQRP},
	{0, 1, -1}:  {perm: permQRP},
	{0, 0, 1}:   {perm: permRPQ},
	{0, 0, -1}:  {perm: permRPQ, swap: true},
	{0, 0, 0}:   {coplanar: true},
}

// intersectTriTri computes the exact intersection of two triangles. t2 is
// the mesh index of tri2, recorded on coplanar results.
func intersectTriTri(tri1, tri2 *mesh.Face, t2 int, c Counters) ittValue {
	incr(c, CounterTriTriCalls)

	// Cheap certain-separation checks first: if all of one triangle's
	// vertices are provably strictly on one side of the other's plane, the
	// triangles cannot intersect and the exact signs are never computed.
	if filterTriSeparated(tri2, tri1) || filterTriSeparated(tri1, tri2) {
		incr(c, CounterFilterDecided)
		return ittValue{kind: ittNone, tSource: mesh.NoIndex}
	}

	p1, q1, r1 := tri1.Vert[0].CoExact, tri1.Vert[1].CoExact, tri1.Vert[2].CoExact
	p2, q2, r2 := tri2.Vert[0].CoExact, tri2.Vert[1].CoExact, tri2.Vert[2].CoExact
	n1 := tri1.Plane.Norm
	n2 := tri2.Plane.Norm

	// Signs of t1's vertices' distances to the plane of t2.
	sp1 := n2.Dot(p1.Sub(r2)).Sign()
	sq1 := n2.Dot(q1.Sub(r2)).Sign()
	sr1 := n2.Dot(r1.Sub(r2)).Sign()
	if sp1*sq1 > 0 && sp1*sr1 > 0 {
		incr(c, CounterExactDecided)
		return ittValue{kind: ittNone, tSource: mesh.NoIndex}
	}

	// And of t2's vertices against the plane of t1.
	sp2 := n1.Dot(p2.Sub(r1)).Sign()
	sq2 := n1.Dot(q2.Sub(r1)).Sign()
	sr2 := n1.Dot(r2.Sub(r1)).Sign()
	if sp2*sq2 > 0 && sp2*sr2 > 0 {
		incr(c, CounterExactDecided)
		return ittValue{kind: ittNone, tSource: mesh.NoIndex}
	}

	d1 := ittOuter[[3]int{sp1, sq1, sr1}]
	if d1.coplanar {
		return ittValue{kind: ittCoplanar, tSource: t2}
	}
	a1, b1, c1 := applyPerm(d1.perm, p1, q1, r1)
	a2, b2, c2 := p2, q2, r2
	s2 := [3]int{sp2, sq2, sr2}
	if d1.swap {
		b2, c2 = c2, b2
		s2 = [3]int{sp2, sr2, sq2}
	}

	d2 := ittCanon1[s2]
	if d2.coplanar {
		return ittValue{kind: ittCoplanar, tSource: t2}
	}
	if d2.swap {
		b1, c1 = c1, b1
	}
	a2, b2, c2 = applyPerm(d2.perm, a2, b2, c2)

	ans := ittCanon2(a1, b1, c1, a2, b2, c2, n1, n2)
	ans.tSource = t2
	if ans.kind != ittNone {
		incr(c, CounterIntersectsKept)
	}
	return ans
}

// filterTriSeparated reports whether all vertices of t are provably
// strictly on one side of tri's plane, by filtered float arithmetic alone.
func filterTriSeparated(tri, t *mesh.Face) bool {
	s0 := filterTriPlaneVertOrient(tri, t.Vert[0])
	if s0 == 0 {
		return false
	}
	return filterTriPlaneVertOrient(tri, t.Vert[1]) == s0 &&
		filterTriPlaneVertOrient(tri, t.Vert[2]) == s0
}

// ittCanon2 intersects fully canonicalized triangles: p1 and p2 are on the
// positive sides of the other triangle's plane, q and r on the
// non-positive. The intersection, if any, is the overlap of the two
// segments cut from the plane crossing line, computed by exact linear
// interpolation.
func ittCanon2(p1, q1, r1, p2, q2, r2, n1, n2 geom.Vec3) ittValue {
	var source, target geom.Vec3
	ok := false

	v1 := q1.Sub(p1)
	v2 := r2.Sub(p1)
	n := v1.Cross(v2)
	v := p2.Sub(p1)
	if v.Dot(n).Sign() > 0 {
		v1 = r1.Sub(p1)
		n = v1.Cross(v2)
		if v.Dot(n).Sign() <= 0 {
			v2 = q2.Sub(p1)
			n = v1.Cross(v2)
			if v.Dot(n).Sign() > 0 {
				source = ittInterp(p1, p2, r1, n2)
				target = ittInterp(p2, p1, r2, n1)
			} else {
				source = ittInterp(p2, p1, q2, n1)
				target = ittInterp(p2, p1, r2, n1)
			}
			ok = true
		}
	} else {
		v2 = q2.Sub(p1)
		n = v1.Cross(v2)
		if v.Dot(n).Sign() >= 0 {
			v1 = r1.Sub(p1)
			n = v1.Cross(v2)
			if v.Dot(n).Sign() > 0 {
				source = ittInterp(p1, p2, r1, n2)
				target = ittInterp(p1, p2, q1, n2)
			} else {
				source = ittInterp(p2, p1, q2, n1)
				target = ittInterp(p1, p2, q1, n2)
			}
			ok = true
		}
	}

	if !ok {
		return ittValue{kind: ittNone}
	}
	if source.Equal(target) {
		return ittValue{kind: ittPoint, p1: source}
	}
	return ittValue{kind: ittSegment, p1: source, p2: target}
}

// ittInterp returns the point where segment (a, c) crosses the plane with
// normal n through b, as a - (a-c) * (n·(a-b))/(n·(a-c)).
func ittInterp(a, b, c, n geom.Vec3) geom.Vec3 {
	num := a.Sub(b).Dot(n)
	den := a.Sub(c).Dot(n)
	alpha := new(big.Rat).Quo(num, den)
	return a.Sub(a.Sub(c).Scale(alpha))
}

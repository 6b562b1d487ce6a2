package shard

import (
	"github.com/akmonengine/shard/geom"
	"github.com/akmonengine/shard/mesh"
)

// filterTriPlaneVertOrient returns the certain sign of v against the plane
// of tri, or 0 when the floating-point filter cannot decide.
func filterTriPlaneVertOrient(tri *mesh.Face, v *mesh.Vert) int {
	return geom.FilterOrient3D(tri.Vert[2].Co, tri.Vert[0].Co, tri.Vert[1].Co, v.Co)
}

// mayNonTriviallyIntersect reports whether triangles t1 and t2 might
// intersect in more than shared vertices or a shared edge. It only uses
// cheap filtered tests, so a true result proves nothing; a false result is
// certain and lets the caller skip the exact intersection entirely.
func mayNonTriviallyIntersect(t1, t2 *mesh.Face) bool {
	var share1Pos, share2Pos [3]int
	nShared := 0
	for p1 := 0; p1 < 3; p1++ {
		for p2 := 0; p2 < 3; p2++ {
			if t1.Vert[p1] == t2.Vert[p2] {
				share1Pos[nShared] = p1
				share2Pos[nShared] = p2
				nShared++
			}
		}
	}
	switch nShared {
	case 2:
		// t1 and t2 share an entire edge. If their normals are not parallel,
		// they cannot non-trivially intersect.
		if !geom.NearParallel(t1.Plane.NormApprox, t2.Plane.NormApprox) {
			return false
		}
		// The normals are parallel or nearly parallel. If they point the
		// same way and the shared edge runs in opposite directions in the
		// two triangles, the triangles are on opposite sides of the edge.
		erev1 := t1.PrevPos(share1Pos[0]) == share1Pos[1]
		erev2 := t2.PrevPos(share2Pos[0]) == share2Pos[1]
		if erev1 != erev2 && geom.DotMustBePositive(t1.Plane.NormApprox, t2.Plane.NormApprox) {
			return false
		}
	case 1:
		// t1 and t2 share a vertex, but not an entire edge. If the two
		// non-shared verts of one triangle are certainly on the same side of
		// the other's plane, they cannot non-trivially intersect. There are
		// further cases that could be caught here, but they cost more than
		// they save.
		p := share2Pos[0]
		v2a, v2b := otherTwoVerts(t2, p)
		o1 := filterTriPlaneVertOrient(t1, v2a)
		o2 := filterTriPlaneVertOrient(t1, v2b)
		if o1 == o2 && o1 != 0 {
			return false
		}
		p = share1Pos[0]
		v1a, v1b := otherTwoVerts(t1, p)
		o1 = filterTriPlaneVertOrient(t2, v1a)
		o2 = filterTriPlaneVertOrient(t2, v1b)
		if o1 == o2 && o1 != 0 {
			return false
		}
	}
	// We weren't able to prove that any intersection is trivial.
	return true
}

// otherTwoVerts returns the two vertices of tri other than position p, in
// face order.
func otherTwoVerts(tri *mesh.Face, p int) (*mesh.Vert, *mesh.Vert) {
	switch p {
	case 0:
		return tri.Vert[1], tri.Vert[2]
	case 1:
		return tri.Vert[0], tri.Vert[2]
	default:
		return tri.Vert[0], tri.Vert[1]
	}
}

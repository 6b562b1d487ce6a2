package shard

import (
	"github.com/akmonengine/shard/geom"
	"github.com/akmonengine/shard/mesh"
)

// coplanarCluster is a set of triangles lying in one exact plane that
// pairwise intersect, directly or transitively, in more than shared
// vertices or edges. All its triangles must be retriangulated together.
type coplanarCluster struct {
	tris []int
	bb   AABB
}

func newCluster(t int, bb AABB) coplanarCluster {
	return coplanarCluster{tris: []int{t}, bb: bb}
}

func (cl *coplanarCluster) addTri(t int, bb AABB) {
	cl.tris = append(cl.tris, t)
	cl.bb.CombineBox(bb)
}

// clusterInfo indexes the clusters of a mesh and answers which cluster, if
// any, a triangle belongs to.
type clusterInfo struct {
	clusters   []coplanarCluster
	triCluster []int // face index -> cluster id, or mesh.NoIndex
}

func (ci *clusterInfo) clusterOf(t int) int { return ci.triCluster[t] }

// findClusters groups the mesh's triangles into coplanar clusters. Cluster
// ids are assigned in first-seen order of their planes, which makes the
// resolver's output deterministic.
//
// A triangle that non-trivially intersects two or more existing clusters in
// its plane bridges them; the clusters are merged.
func findClusters(m *mesh.Mesh, boxes []AABB, c Counters) clusterInfo {
	planeCls := make(map[string][]coplanarCluster)
	var planeOrder []string
	for t := 0; t < m.Len(); t++ {
		// The canonical plane identifies coplanar triangles regardless of
		// winding. It can't be stored on the face because canonicalizing
		// loses the normal's orientation.
		tplane := m.Face(t).Plane.Canonical()
		key := tplane.Key()
		curcls, seen := planeCls[key]
		if !seen {
			planeOrder = append(planeOrder, key)
			planeCls[key] = []coplanarCluster{newCluster(t, boxes[t])}
			continue
		}
		projAxis := tplane.Norm.DominantAxis()
		var intCls, noIntCls []int
		for i := range curcls {
			if boxes[t].Overlaps(curcls[i].bb) &&
				nonTriviallyCoplanarIntersects(m, t, &curcls[i], projAxis) {
				intCls = append(intCls, i)
			} else {
				noIntCls = append(noIntCls, i)
			}
		}
		switch len(intCls) {
		case 0:
			planeCls[key] = append(curcls, newCluster(t, boxes[t]))
		case 1:
			curcls[intCls[0]].addTri(t, boxes[t])
		default:
			// t bridges several clusters: merge them all into one.
			merged := newCluster(t, boxes[t])
			for _, i := range intCls {
				for _, ct := range curcls[i].tris {
					merged.addTri(ct, boxes[ct])
				}
			}
			newcls := []coplanarCluster{merged}
			for _, i := range noIntCls {
				newcls = append(newcls, curcls[i])
			}
			planeCls[key] = newcls
		}
	}

	ci := clusterInfo{triCluster: make([]int, m.Len())}
	for t := range ci.triCluster {
		ci.triCluster[t] = mesh.NoIndex
	}
	// Single-triangle clusters are uninteresting; such triangles go through
	// the ordinary pairwise narrow phase.
	for _, key := range planeOrder {
		for _, cl := range planeCls[key] {
			if len(cl.tris) > 1 {
				id := len(ci.clusters)
				ci.clusters = append(ci.clusters, cl)
				for _, t := range cl.tris {
					ci.triCluster[t] = id
				}
				maxCount(c, MaxClusterSize, len(cl.tris))
			}
		}
	}
	return ci
}

// tri2D is a projected triangle, normalized to CCW orientation.
type tri2D [3]geom.Vec2

func projectTriCCW(f *mesh.Face, projAxis int) tri2D {
	v0 := geom.ProjectAxis(f.Vert[0].CoExact, projAxis)
	v1 := geom.ProjectAxis(f.Vert[1].CoExact, projAxis)
	v2 := geom.ProjectAxis(f.Vert[2].CoExact, projAxis)
	if geom.Orient2D(v0, v1, v2) != 1 {
		v1, v2 = v2, v1
	}
	return tri2D{v0, v1, v2}
}

// nonTriviallyCoplanarIntersects reports whether triangle t, known to lie in
// the same plane as every triangle of cl, intersects any of them at more
// than shared vertices or edges. projAxis must be safe to project the plane
// along.
func nonTriviallyCoplanarIntersects(m *mesh.Mesh, t int, cl *coplanarCluster, projAxis int) bool {
	a := projectTriCCW(m.Face(t), projAxis)
	for _, clt := range cl.tris {
		if nonTrivially2DIntersect(a, projectTriCCW(m.Face(clt), projAxis)) {
			return true
		}
	}
	return false
}

// nonTrivially2DIntersect reports whether CCW 2D triangles a and b intersect
// at more than shared vertices or a shared edge. That happens when a vertex
// of one is non-trivially inside the other, when the two overlap in a
// hexagonal region with all vertices mutually outside, when a shared edge is
// folded over, or when the triangles coincide.
func nonTrivially2DIntersect(a, b tri2D) bool {
	// orients[0][ai][bi] is the orientation of a[ai] against the edge of b
	// starting at b[bi]; orients[1][bi][ai] the mirror image.
	var orients [2][3][3]int
	for ai := 0; ai < 3; ai++ {
		for bi := 0; bi < 3; bi++ {
			orients[0][ai][bi] = geom.Orient2D(b[bi], b[(bi+1)%3], a[ai])
			orients[1][bi][ai] = geom.Orient2D(a[ai], a[(ai+1)%3], b[bi])
		}
	}
	return pointInTri2D(&orients[0], 0) ||
		pointInTri2D(&orients[0], 1) ||
		pointInTri2D(&orients[0], 2) ||
		pointInTri2D(&orients[1], 0) ||
		pointInTri2D(&orients[1], 1) ||
		pointInTri2D(&orients[1], 2) ||
		hexOverlap2D(&orients) ||
		sharedEdgeOverlap2D(&orients, a, b) ||
		sameTriangles2D(a, b)
}

// pointInTri2D reports whether point pi is in the interior of the triangle,
// or on an edge but not at either endpoint: on or left of all three CCW
// edges, strictly left of at least two.
func pointInTri2D(orients *[3][3]int, pi int) bool {
	left01 := orients[pi][0]
	left12 := orients[pi][1]
	left20 := orients[pi][2]
	return left01 >= 0 && left12 >= 0 && left20 >= 0 &&
		left01+left12+left20 >= 2
}

// hexOverlap2D reports the hexagonal overlap pattern: every vertex of each
// triangle strictly right of exactly one edge of the other and strictly
// left of the other two.
func hexOverlap2D(orients *[2][3][3]int) bool {
	for ab := 0; ab < 2; ab++ {
		for i := 0; i < 3; i++ {
			if orients[ab][i][0]+orients[ab][i][1]+orients[ab][i][2] != 1 ||
				orients[ab][i][0] == 0 || orients[ab][i][1] == 0 || orients[ab][i][2] == 0 {
				return false
			}
		}
	}
	return true
}

// sharedEdgeOverlap2D reports a folded-over shared edge: the triangles share
// an edge and the third vertex of one is right of or on the far edges of the
// other.
func sharedEdgeOverlap2D(orients *[2][3][3]int, a, b tri2D) bool {
	for i := 0; i < 3; i++ {
		in := (i + 1) % 3
		inn := (i + 2) % 3
		for j := 0; j < 3; j++ {
			jn := (j + 1) % 3
			jnn := (j + 2) % 3
			if !a[i].Equal(b[j]) || !a[in].Equal(b[jn]) {
				continue
			}
			// Edge from a[i] is shared with edge from b[j]. See if a[inn] is
			// right of or on one of the other edges of b; when on, it must
			// be on the overlapping side of the shared edge.
			if orients[0][inn][jn] < 0 || orients[0][inn][jnn] < 0 {
				return true
			}
			if orients[0][inn][jn] == 0 && orients[0][inn][j] == 1 {
				return true
			}
			if orients[0][inn][jnn] == 0 && orients[0][inn][j] == -1 {
				return true
			}
			// Similarly for b[jnn].
			if orients[1][jnn][in] < 0 || orients[1][jnn][inn] < 0 {
				return true
			}
			if orients[1][jnn][in] == 0 && orients[1][jnn][i] == 1 {
				return true
			}
			if orients[1][jnn][inn] == 0 && orients[1][jnn][i] == -1 {
				return true
			}
		}
	}
	return false
}

// sameTriangles2D reports whether the triangles are equal up to a cyclic
// permutation of vertices.
func sameTriangles2D(a, b tri2D) bool {
	for i := 0; i < 3; i++ {
		if a[0].Equal(b[i]) && a[1].Equal(b[(i+1)%3]) && a[2].Equal(b[(i+2)%3]) {
			return true
		}
	}
	return false
}

package cdt

import (
	"testing"

	"github.com/akmonengine/shard/geom"
)

// findVert returns the result index of the vertex with the given integer
// coordinates, or -1.
func findVert(r *Result, x, y int64) int {
	want := geom.V2(x, y)
	for i, v := range r.Verts {
		if v.Equal(want) {
			return i
		}
	}
	return -1
}

// findEdgeOrig returns the provenance of the undirected output edge between
// result vertices a and b, or nil when the edge is absent.
func findEdgeOrig(r *Result, a, b int) []int {
	for e, edge := range r.Edges {
		if (edge[0] == a && edge[1] == b) || (edge[0] == b && edge[1] == a) {
			return r.EdgeOrig[e]
		}
	}
	return nil
}

func containsOrig(origs []int, want int) bool {
	for _, o := range origs {
		if o == want {
			return true
		}
	}
	return false
}

func TestTriangulateSingleTriangle(t *testing.T) {
	in := Input{
		Verts: []geom.Vec2{geom.V2(0, 0), geom.V2(4, 0), geom.V2(0, 4)},
		Faces: [][]int{{0, 1, 2}},
	}
	res, err := Triangulate(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(res.Faces))
	}
	if len(res.FaceOrig[0]) != 1 || res.FaceOrig[0][0] != 0 {
		t.Errorf("FaceOrig = %v, want [0]", res.FaceOrig[0])
	}
	if len(res.Verts) != 3 || len(res.Edges) != 3 {
		t.Fatalf("got %d verts and %d edges, want 3 and 3", len(res.Verts), len(res.Edges))
	}

	// Every boundary edge must carry face-edge provenance that decodes back
	// to face 0 and its position.
	o := findVert(res, 0, 0)
	x := findVert(res, 4, 0)
	y := findVert(res, 0, 4)
	wantPos := map[[2]int]int{
		{o, x}: 0,
		{x, y}: 1,
		{y, o}: 2,
	}
	for ends, pos := range wantPos {
		origs := findEdgeOrig(res, ends[0], ends[1])
		if len(origs) != 1 {
			t.Fatalf("edge %v origs = %v, want one entry", ends, origs)
		}
		if origs[0] < res.FaceEdgeOffset {
			t.Fatalf("edge %v orig %d is not a face edge", ends, origs[0])
		}
		face, gotPos := res.DecodeFaceEdge(origs[0])
		if face != 0 || gotPos != pos {
			t.Errorf("edge %v decodes to face %d pos %d, want face 0 pos %d", ends, face, gotPos, pos)
		}
	}
}

func TestTriangulateChord(t *testing.T) {
	// A constraint edge between two points lying on the triangle's boundary
	// splits it into three triangles.
	in := Input{
		Verts: []geom.Vec2{
			geom.V2(0, 0), geom.V2(4, 0), geom.V2(0, 4),
			geom.V2(0, 2), geom.V2(2, 0),
		},
		Edges: [][2]int{{3, 4}},
		Faces: [][]int{{0, 1, 2}},
	}
	res, err := Triangulate(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Faces) != 3 {
		t.Fatalf("got %d faces, want 3", len(res.Faces))
	}
	for f, origs := range res.FaceOrig {
		if len(origs) != 1 || origs[0] != 0 {
			t.Errorf("face %d FaceOrig = %v, want [0]", f, origs)
		}
	}

	chord := findEdgeOrig(res, findVert(res, 0, 2), findVert(res, 2, 0))
	if !containsOrig(chord, 0) {
		t.Errorf("chord origs = %v, want the input edge id 0", chord)
	}
	// A piece of the split bottom side keeps the face-edge provenance.
	bottom := findEdgeOrig(res, findVert(res, 0, 0), findVert(res, 2, 0))
	if len(bottom) != 1 || bottom[0] < res.FaceEdgeOffset {
		t.Fatalf("split bottom edge origs = %v, want one face edge", bottom)
	}
	if face, pos := res.DecodeFaceEdge(bottom[0]); face != 0 || pos != 0 {
		t.Errorf("bottom edge decodes to face %d pos %d, want face 0 pos 0", face, pos)
	}
}

func TestTriangulateCrossingConstraints(t *testing.T) {
	// Two diagonals of a square cross in the middle; the triangulation must
	// introduce the exact intersection as a Steiner point.
	in := Input{
		Verts: []geom.Vec2{
			geom.V2(0, 0), geom.V2(4, 0), geom.V2(4, 4), geom.V2(0, 4),
		},
		Edges: [][2]int{{0, 2}, {1, 3}},
		Faces: [][]int{{0, 1, 2, 3}},
	}
	res, err := Triangulate(in)
	if err != nil {
		t.Fatal(err)
	}
	center := findVert(res, 2, 2)
	if center == -1 {
		t.Fatal("Steiner point (2,2) missing from result")
	}
	if len(res.Verts) != 5 {
		t.Errorf("got %d verts, want 5", len(res.Verts))
	}
	if len(res.Faces) != 4 {
		t.Errorf("got %d faces, want 4", len(res.Faces))
	}

	// Each half of a diagonal keeps the diagonal's input edge id.
	for _, tc := range []struct {
		x, y int64
		orig int
	}{
		{0, 0, 0}, {4, 4, 0}, {4, 0, 1}, {0, 4, 1},
	} {
		origs := findEdgeOrig(res, findVert(res, tc.x, tc.y), center)
		if !containsOrig(origs, tc.orig) {
			t.Errorf("half-diagonal to (%d,%d) origs = %v, want %d", tc.x, tc.y, origs, tc.orig)
		}
	}
}

func TestTriangulateOutsideDropped(t *testing.T) {
	// A vertex far outside the only constraint face: every triangle using it
	// has its centroid outside the face and is discarded, and the vertex
	// does not appear in the result.
	in := Input{
		Verts: []geom.Vec2{
			geom.V2(0, 0), geom.V2(2, 0), geom.V2(0, 2), geom.V2(10, 10),
		},
		Faces: [][]int{{0, 1, 2}},
	}
	res, err := Triangulate(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(res.Faces))
	}
	if findVert(res, 10, 10) != -1 {
		t.Error("outside vertex leaked into the result")
	}
	if len(res.Verts) != 3 {
		t.Errorf("got %d verts, want 3", len(res.Verts))
	}
}

func TestTriangulateDuplicateVerts(t *testing.T) {
	// Duplicate coordinates merge to one canonical vertex.
	in := Input{
		Verts: []geom.Vec2{
			geom.V2(0, 0), geom.V2(3, 0), geom.V2(0, 3),
			geom.V2(0, 0), geom.V2(3, 0), geom.V2(0, 3),
		},
		Faces: [][]int{{0, 1, 2}, {3, 4, 5}},
	}
	res, err := Triangulate(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Verts) != 3 {
		t.Fatalf("got %d verts, want 3", len(res.Verts))
	}
	if len(res.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(res.Faces))
	}
	// The single output triangle is inside both input faces.
	if len(res.FaceOrig[0]) != 2 {
		t.Errorf("FaceOrig = %v, want both input faces", res.FaceOrig[0])
	}
}

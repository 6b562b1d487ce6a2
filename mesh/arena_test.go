package mesh

import (
	"math/big"
	"testing"

	"github.com/akmonengine/shard/geom"
	"github.com/go-gl/mathgl/mgl64"
)

func TestAddOrFindVertDedup(t *testing.T) {
	arena := NewArena()

	v1 := arena.AddOrFindVert(geom.V3(1, 0, 0), 7)
	v2 := arena.AddOrFindVert(geom.V3(1, 0, 0), 9)
	if v1 != v2 {
		t.Fatalf("same coordinate produced distinct verts %v and %v", v1, v2)
	}
	if v1.Orig != 7 {
		t.Errorf("Orig = %d, want the first insertion's 7", v1.Orig)
	}
	if got := arena.TotalVerts(); got != 1 {
		t.Errorf("TotalVerts = %d, want 1", got)
	}

	v3 := arena.AddOrFindVert(geom.V3(0, 1, 0), NoIndex)
	if v3 == v1 {
		t.Error("distinct coordinates produced the same vert")
	}
	if got := arena.TotalVerts(); got != 2 {
		t.Errorf("TotalVerts = %d, want 2", got)
	}
}

func TestAddOrFindVertFloat(t *testing.T) {
	arena := NewArena()
	vf := arena.AddOrFindVertFloat(mgl64.Vec3{0.5, 0, 0}, NoIndex)
	vr := arena.AddOrFindVert(geom.V3Rat(big.NewRat(1, 2), big.NewRat(0, 1), big.NewRat(0, 1)), NoIndex)
	if vf != vr {
		t.Error("0.5 as float and 1/2 as rational did not dedup to one vert")
	}
}

func TestFindVert(t *testing.T) {
	arena := NewArena()
	v := arena.AddOrFindVert(geom.V3(2, 3, 4), 0)
	if got := arena.FindVert(geom.V3(2, 3, 4)); got != v {
		t.Errorf("FindVert = %v, want %v", got, v)
	}
	if got := arena.FindVert(geom.V3(9, 9, 9)); got != nil {
		t.Errorf("FindVert for absent coordinate = %v, want nil", got)
	}
}

func TestAddFacePlane(t *testing.T) {
	arena := NewArena()
	v0 := arena.AddOrFindVert(geom.V3(0, 0, 0), 0)
	v1 := arena.AddOrFindVert(geom.V3(1, 0, 0), 1)
	v2 := arena.AddOrFindVert(geom.V3(0, 1, 0), 2)

	f := arena.AddFace([]*Vert{v0, v1, v2}, 0, nil)
	if !f.Plane.Norm.Equal(geom.V3(0, 0, 1)) {
		t.Errorf("triangle normal = %v, want (0,0,1)", f.Plane.Norm)
	}
	if f.Plane.D.Sign() != 0 {
		t.Errorf("plane offset = %v, want 0", f.Plane.D)
	}
	for _, eo := range f.EdgeOrig {
		if eo != NoIndex {
			t.Errorf("nil edgeOrigs should become NoIndex, got %d", eo)
		}
	}
}

func TestAddFaceQuadNewellPlane(t *testing.T) {
	arena := NewArena()
	v0 := arena.AddOrFindVert(geom.V3(0, 0, 3), 0)
	v1 := arena.AddOrFindVert(geom.V3(1, 0, 3), 1)
	v2 := arena.AddOrFindVert(geom.V3(1, 1, 3), 2)
	v3 := arena.AddOrFindVert(geom.V3(0, 1, 3), 3)

	f := arena.AddFace([]*Vert{v0, v1, v2, v3}, 0, nil)
	n := f.Plane.Norm
	if n[0].Sign() != 0 || n[1].Sign() != 0 || n[2].Sign() <= 0 {
		t.Errorf("quad normal = %v, want +z direction", n)
	}
	// All four corners must satisfy the plane equation.
	for i, v := range f.Vert {
		val := n.Dot(v.CoExact)
		val.Add(val, f.Plane.D)
		if val.Sign() != 0 {
			t.Errorf("corner %d off the Newell plane by %v", i, val)
		}
	}
}

func TestFindFace(t *testing.T) {
	arena := NewArena()
	v0 := arena.AddOrFindVert(geom.V3(0, 0, 0), 0)
	v1 := arena.AddOrFindVert(geom.V3(1, 0, 0), 1)
	v2 := arena.AddOrFindVert(geom.V3(0, 1, 0), 2)
	v3 := arena.AddOrFindVert(geom.V3(1, 1, 0), 3)
	f := arena.AddFace([]*Vert{v0, v1, v2}, 0, nil)

	if got := arena.FindFace([]*Vert{v1, v2, v0}); got != f {
		t.Errorf("FindFace with rotated verts = %v, want %v", got, f)
	}
	if got := arena.FindFace([]*Vert{v0, v1, v3}); got != nil {
		t.Errorf("FindFace for absent face = %v, want nil", got)
	}
}

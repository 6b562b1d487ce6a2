package mesh

import (
	"sync"

	"github.com/akmonengine/shard/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Arena is the sole owner of all Vert and Face storage for one resolution
// run. It deduplicates vertices by exact coordinate, so that only one Vert
// exists per distinct coordinate, and assigns dense monotonically increasing
// ids to vertices and faces in creation order. There is no deletion; the
// whole Arena is discarded when the caller is done with the output mesh.
//
// Vertex insertion is safe for concurrent use: parallel retriangulation
// workers may discover the same exact coordinate simultaneously and must
// agree on a single canonical Vert.
type Arena struct {
	mu    sync.Mutex
	vset  map[string]*Vert
	verts []*Vert
	faces []*Face
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{vset: make(map[string]*Vert)}
}

// Reserve pre-sizes the internal storage for the expected number of vertices
// and faces.
func (a *Arena) Reserve(vertHint, faceHint int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cap(a.verts) < vertHint {
		verts := make([]*Vert, len(a.verts), vertHint)
		copy(verts, a.verts)
		a.verts = verts
	}
	if cap(a.faces) < faceHint {
		faces := make([]*Face, len(a.faces), faceHint)
		copy(faces, a.faces)
		a.faces = faces
	}
}

// TotalVerts returns the number of allocated vertices.
func (a *Arena) TotalVerts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.verts)
}

// TotalFaces returns the number of allocated faces.
func (a *Arena) TotalFaces() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.faces)
}

// AddOrFindVert returns the unique Vert with the given exact coordinate,
// creating it if needed. The call is idempotent on the coordinate: when the
// coordinate is already present the existing Vert is returned unchanged, and
// its Orig keeps the value from the first insertion.
func (a *Arena) AddOrFindVert(co geom.Vec3, orig int) *Vert {
	key := co.Key()
	a.mu.Lock()
	defer a.mu.Unlock()
	if v, ok := a.vset[key]; ok {
		return v
	}
	v := &Vert{
		CoExact: co,
		Co:      co.Approx(),
		ID:      len(a.verts),
		Orig:    orig,
	}
	a.vset[key] = v
	a.verts = append(a.verts, v)
	return v
}

// AddOrFindVertFloat is AddOrFindVert for a float64 coordinate, converted
// exactly to rationals.
func (a *Arena) AddOrFindVertFloat(co mgl64.Vec3, orig int) *Vert {
	return a.AddOrFindVert(geom.V3Float(co), orig)
}

// AddFace allocates a new Face. Faces are never deduplicated; every call
// allocates. The plane is computed eagerly from the exact vertex
// coordinates. A nil edgeOrigs means no original-edge provenance anywhere.
func (a *Arena) AddFace(verts []*Vert, orig int, edgeOrigs []int) *Face {
	vs := make([]*Vert, len(verts))
	copy(vs, verts)
	eo := make([]int, len(verts))
	if edgeOrigs == nil {
		for i := range eo {
			eo[i] = NoIndex
		}
	} else {
		copy(eo, edgeOrigs)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	f := newFace(vs, len(a.faces), orig, eo)
	a.faces = append(a.faces, f)
	return f
}

// FindVert returns the Vert with the given exact coordinate, or nil if no
// such Vert has been created.
func (a *Arena) FindVert(co geom.Vec3) *Vert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vset[co.Key()]
}

// FindFace returns a Face whose vertex sequence is a cyclic rotation of vs,
// or nil. Linear in the number of faces; intended for tests.
func (a *Arena) FindFace(vs []*Vert) *Face {
	eo := make([]int, len(vs))
	for i := range eo {
		eo[i] = NoIndex
	}
	ftry := newFace(vs, NoIndex, NoIndex, eo)
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, f := range a.faces {
		if ftry.CyclicEqual(f) {
			return f
		}
	}
	return nil
}

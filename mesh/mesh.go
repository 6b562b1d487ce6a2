package mesh

import (
	"fmt"
	"io"
	"sort"
)

// Mesh is a named, ordered sequence of Face references. It owns no vertex or
// face memory (the Arena does); it lazily derives a deduplicated vertex index
// on demand.
type Mesh struct {
	faces []*Face

	verts       []*Vert
	vertToIndex map[*Vert]int
	populated   bool
}

// NewMesh builds a mesh over the given faces. The slice is not copied.
func NewMesh(faces []*Face) *Mesh {
	return &Mesh{faces: faces}
}

// Len returns the number of faces.
func (m *Mesh) Len() int { return len(m.faces) }

// Face returns the face at index i.
func (m *Mesh) Face(i int) *Face { return m.faces[i] }

// Faces returns the face slice. Callers must not modify it.
func (m *Mesh) Faces() []*Face { return m.faces }

// PopulateVerts derives the deduplicated vertex index. Vertices with a known
// Orig come first, ordered by Orig, followed by the rest ordered by
// allocation id. Idempotent.
func (m *Mesh) PopulateVerts() {
	if m.populated {
		return
	}
	m.vertToIndex = make(map[*Vert]int)
	for _, f := range m.faces {
		for _, v := range f.Vert {
			if _, ok := m.vertToIndex[v]; !ok {
				m.vertToIndex[v] = len(m.verts)
				m.verts = append(m.verts, v)
			}
		}
	}
	sort.SliceStable(m.verts, func(i, j int) bool {
		a, b := m.verts[i], m.verts[j]
		if a.Orig != NoIndex && b.Orig != NoIndex {
			return a.Orig < b.Orig
		}
		if a.Orig != NoIndex {
			return true
		}
		if b.Orig != NoIndex {
			return false
		}
		return a.ID < b.ID
	})
	for i, v := range m.verts {
		m.vertToIndex[v] = i
	}
	m.populated = true
}

// HasVerts reports whether the vertex index has been populated.
func (m *Mesh) HasVerts() bool { return m.populated }

// Verts returns the populated vertex slice. Callers must call PopulateVerts
// first.
func (m *Mesh) Verts() []*Vert { return m.verts }

// LookupVert returns the populated index of v, or NoIndex when v is not part
// of the mesh. Callers must call PopulateVerts first.
func (m *Mesh) LookupVert(v *Vert) int {
	if i, ok := m.vertToIndex[v]; ok {
		return i
	}
	return NoIndex
}

// EraseFacePositions replaces the face at index f with a copy that omits the
// positions marked true in erase, allocating the new face from the arena.
// The call is a no-op when nothing is marked or when fewer than 3 vertices
// would remain.
func (m *Mesh) EraseFacePositions(f int, erase []bool, arena *Arena) {
	cur := m.faces[f]
	n := 0
	for i := range cur.Vert {
		if erase[i] {
			n++
		}
	}
	if n == 0 || cur.Len()-n < 3 {
		return
	}
	newVerts := make([]*Vert, 0, cur.Len()-n)
	newOrigs := make([]int, 0, cur.Len()-n)
	for i := range cur.Vert {
		if !erase[i] {
			newVerts = append(newVerts, cur.Vert[i])
			newOrigs = append(newOrigs, cur.EdgeOrig[i])
		}
	}
	m.faces[f] = arena.AddFace(newVerts, cur.Orig, newOrigs)
}

// WriteOBJ writes an OBJ-style textual dump of the mesh (vertex list plus
// 1-indexed faces) for debugging and inspection. It populates the vertex
// index as a side effect.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	m.PopulateVerts()
	for _, v := range m.verts {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", v.Co.X(), v.Co.Y(), v.Co.Z()); err != nil {
			return err
		}
	}
	for _, f := range m.faces {
		if _, err := io.WriteString(w, "f"); err != nil {
			return err
		}
		for _, v := range f.Vert {
			if _, err := fmt.Fprintf(w, " %d", m.LookupVert(v)+1); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

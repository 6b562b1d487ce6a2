// Package mesh provides the arena-backed mesh model used by the
// self-intersection resolver: vertices with exact rational coordinates,
// faces with per-edge provenance and eagerly computed exact planes, and the
// Arena that owns and deduplicates all vertex and face storage for one run.
//
// Vertex identity is exact-coordinate identity: the Arena guarantees at most
// one Vert per distinct exact coordinate, so pointer equality of Verts equals
// value equality of their coordinates.
package mesh

import (
	"fmt"

	"github.com/akmonengine/shard/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// NoIndex marks an absent provenance index (no originating vertex, face or
// edge in the caller's input mesh).
const NoIndex = -1

// Vert is a mesh vertex. It carries the exact rational coordinate (the
// identity), a cached float64 approximation for fast paths, a dense id in
// allocation order, and the index of the originating vertex in the caller's
// input (or NoIndex).
//
// Verts are created only by an Arena and referenced freely by any number of
// Faces for the Arena's lifetime.
type Vert struct {
	CoExact geom.Vec3
	Co      mgl64.Vec3
	ID      int
	Orig    int
}

// SameCoordinate reports exact-coordinate equality. Within one Arena this is
// equivalent to v == w.
func (v *Vert) SameCoordinate(w *Vert) bool {
	return v.CoExact.Equal(w.CoExact)
}

func (v *Vert) String() string {
	if v.Orig != NoIndex {
		return fmt.Sprintf("v%do%d", v.ID, v.Orig)
	}
	return fmt.Sprintf("v%d", v.ID)
}

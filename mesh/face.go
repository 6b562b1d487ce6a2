package mesh

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/akmonengine/shard/geom"
)

// Face is a triangle or polygon: an ordered sequence of Vert references with
// one original-edge index per position (the edge from position i to i+1), a
// dense id, the index of the input face it derives from (or NoIndex), and
// the exact plane it lies in.
//
// Faces share Verts with other faces; the Arena owns both.
type Face struct {
	Vert     []*Vert
	EdgeOrig []int
	Plane    geom.Plane
	ID       int
	Orig     int
}

func newFace(verts []*Vert, id, orig int, edgeOrigs []int) *Face {
	f := &Face{
		Vert:     verts,
		EdgeOrig: edgeOrigs,
		ID:       id,
		Orig:     orig,
	}
	var normal geom.Vec3
	if len(verts) > 3 {
		// Newell's method: sum of cross products of successive vertex pairs.
		normal = geom.V3(0, 0, 0)
		for i, v := range verts {
			w := verts[(i+1)%len(verts)]
			normal = normal.Add(v.CoExact.Cross(w.CoExact))
		}
	} else {
		tr02 := verts[0].CoExact.Sub(verts[2].CoExact)
		tr12 := verts[1].CoExact.Sub(verts[2].CoExact)
		normal = tr02.Cross(tr12)
	}
	d := new(big.Rat).Neg(normal.Dot(verts[0].CoExact))
	f.Plane = geom.NewPlane(normal, d)
	return f
}

// Len returns the number of vertices.
func (f *Face) Len() int { return len(f.Vert) }

// IsTri reports whether the face is a triangle.
func (f *Face) IsTri() bool { return len(f.Vert) == 3 }

// NextPos returns the position after p, cyclically.
func (f *Face) NextPos(p int) int { return (p + 1) % len(f.Vert) }

// PrevPos returns the position before p, cyclically.
func (f *Face) PrevPos(p int) int { return (p + len(f.Vert) - 1) % len(f.Vert) }

// Equal reports exact sequence equality. Vert pointers can be compared
// directly because the Arena guarantees unique Verts per exact coordinate.
func (f *Face) Equal(other *Face) bool {
	if f.Len() != other.Len() {
		return false
	}
	for i := range f.Vert {
		if f.Vert[i] != other.Vert[i] {
			return false
		}
	}
	return true
}

// CyclicEqual reports whether the two faces have the same vertex sequence up
// to rotation. Reversed windings are not recognized unless they coincide
// with a rotation.
func (f *Face) CyclicEqual(other *Face) bool {
	if f.Len() != other.Len() {
		return false
	}
	n := f.Len()
	for start := 0; start < n; start++ {
		ok := true
		for i := 0; ok && i < n; i++ {
			if f.Vert[i] != other.Vert[(start+i)%n] {
				ok = false
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// IsDegenerate reports whether a triangle face has a repeated vertex or an
// exactly-zero cross product of its edges (zero area).
func (f *Face) IsDegenerate() bool {
	v0, v1, v2 := f.Vert[0], f.Vert[1], f.Vert[2]
	if v0 == v1 || v0 == v2 || v1 == v2 {
		return true
	}
	a := v2.CoExact.Sub(v0.CoExact)
	b := v2.CoExact.Sub(v1.CoExact)
	return a.Cross(b).IsZero()
}

func (f *Face) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "f%do%d[", f.ID, f.Orig)
	for i, v := range f.Vert {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

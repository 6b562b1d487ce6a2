package shard

import (
	"github.com/akmonengine/shard/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

const dblEpsilon = 2.220446049250313e-16

// AABB is an axis-aligned bounding box over float64 coordinates. Boxes are
// only ever used to prove separation, never intersection, so they are padded
// to absorb the rounding error of the exact-to-float conversion.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Overlaps reports whether the two closed boxes intersect.
func (b AABB) Overlaps(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// CombinePoint grows the box to contain p.
func (b *AABB) CombinePoint(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// CombineBox grows the box to contain o.
func (b *AABB) CombineBox(o AABB) {
	b.CombinePoint(o.Min)
	b.CombinePoint(o.Max)
}

// Expand pads the box by pad on every side.
func (b *AABB) Expand(pad float64) {
	for i := 0; i < 3; i++ {
		b.Min[i] -= pad
		b.Max[i] += pad
	}
}

// maxAbsCoord returns the largest absolute coordinate appearing in the box.
func (b AABB) maxAbsCoord() float64 {
	m := 0.0
	for i := 0; i < 3; i++ {
		if v := -b.Min[i]; v > m {
			m = v
		}
		if v := b.Max[i]; v > m {
			m = v
		}
	}
	return m
}

// triBoundingBoxes computes one padded box per face of m, in parallel. The
// pad covers the maximum rounding error of the cached float64 vertex
// coordinates, with a generous safety factor, so a reported non-overlap is
// certain even though the boxes are floats.
func triBoundingBoxes(m *mesh.Mesh, workers int) []AABB {
	boxes := make([]AABB, m.Len())
	idxs := intRange(m.Len())
	task(workers, idxs, func(t int) {
		f := m.Face(t)
		b := AABB{Min: f.Vert[0].Co, Max: f.Vert[0].Co}
		for _, v := range f.Vert[1:] {
			b.CombinePoint(v.Co)
		}
		boxes[t] = b
	})

	maxAbs := 0.0
	for _, b := range boxes {
		if v := b.maxAbsCoord(); v > maxAbs {
			maxAbs = v
		}
	}
	pad := 2 * dblEpsilon * maxAbs * 10
	if maxAbs == 0 {
		pad = 10 * dblEpsilon
	}
	task(workers, idxs, func(t int) {
		boxes[t].Expand(pad)
	})
	return boxes
}

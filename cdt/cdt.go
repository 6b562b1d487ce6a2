// Package cdt implements exact 2D constrained Delaunay triangulation with
// input provenance tracking, used as the retriangulation collaborator of the
// mesh self-intersection resolver.
//
// The triangulation is incremental: points are inserted into a bounding-quad
// triangulation with circumcircle flips, then constraint edges are enforced
// by removing the triangles they cross and retriangulating the two resulting
// pseudo-polygons. All predicates are exact rational signs, so there are no
// tolerance knobs and no failure modes from near-degenerate input.
// Constraint edges that cross each other are pre-split at their exact
// intersection points (Steiner points), and at any input vertex lying on
// them, so that enforcement only ever meets unconstrained edges.
//
// Every output triangle is tagged with the input faces whose interior
// contains it, and every output edge with the input edges and face edges it
// lies on. Triangles inside no input face are discarded.
//
// References:
//   - Domiter, Žalik: "Sweep-line algorithm for constrained Delaunay
//     triangulation" (the incremental variant without sweep structures)
//   - Anglada: "An improved incremental algorithm for constructing
//     restricted Delaunay triangulations" (pseudo-polygon retriangulation)
package cdt

import (
	"fmt"
	"math/big"

	"github.com/akmonengine/shard/geom"
)

// Input is a planar straight-line graph: a vertex set, constraint edges as
// vertex-index pairs, and constraint faces as vertex-index polygon outlines.
// Duplicate vertices are allowed and are merged by exact coordinate.
type Input struct {
	Verts []geom.Vec2
	Edges [][2]int
	Faces [][]int
}

// Result is the constrained triangulation. Verts may include Steiner points
// introduced at constraint-edge crossings. FaceOrig holds, per output
// triangle, the indices of the input faces whose interior contains it.
// EdgeOrig holds, per output edge, encoded provenance ids: values below
// FaceEdgeOffset are input-edge indices; values >= FaceEdgeOffset encode a
// face edge as FaceEdgeOffset*(face+1) + position.
type Result struct {
	Verts          []geom.Vec2
	Faces          [][3]int
	Edges          [][2]int
	FaceOrig       [][]int
	EdgeOrig       [][]int
	FaceEdgeOffset int
}

// DecodeFaceEdge splits an encoded face-edge provenance id into the input
// face index and the edge position within that face. Only valid for ids >=
// FaceEdgeOffset.
func (r *Result) DecodeFaceEdge(orig int) (face, pos int) {
	return orig/r.FaceEdgeOffset - 1, orig % r.FaceEdgeOffset
}

// segment is a constraint segment between canonical point indices, carrying
// the encoded provenance ids of every input edge or face edge that produced
// or covers it.
type segment struct {
	a, b  int
	origs []int
}

// Triangulate computes the constrained Delaunay triangulation of in.
func Triangulate(in Input) (*Result, error) {
	p := newPSLG(in)
	p.splitSegments()

	t := newTriangulation(p.pts)
	for i := range p.pts {
		if err := t.insertPoint(i); err != nil {
			return nil, err
		}
	}
	for _, s := range p.subSegs {
		if err := t.insertConstraint(s.a, s.b); err != nil {
			return nil, err
		}
	}
	return p.extract(t)
}

// triangulation is an incremental exact Delaunay triangulation over a fixed
// point set, seeded with a bounding quad of four super points. Triangle
// adjacency is recovered by directed-edge search; the per-call point counts
// are small enough that linear scans dominate any acceleration structure.
type triangulation struct {
	pts   []geom.Vec2 // real points followed by the 4 super points
	nReal int
	tris  [][3]int // CCW vertex triples
	fixed map[[2]int]bool
}

func newTriangulation(pts []geom.Vec2) *triangulation {
	t := &triangulation{nReal: len(pts), fixed: make(map[[2]int]bool)}
	minX, minY := new(big.Rat), new(big.Rat)
	maxX, maxY := new(big.Rat), new(big.Rat)
	if len(pts) > 0 {
		minX.Set(pts[0][0])
		maxX.Set(pts[0][0])
		minY.Set(pts[0][1])
		maxY.Set(pts[0][1])
	}
	for _, p := range pts[1:] {
		if p[0].Cmp(minX) < 0 {
			minX.Set(p[0])
		}
		if p[0].Cmp(maxX) > 0 {
			maxX.Set(p[0])
		}
		if p[1].Cmp(minY) < 0 {
			minY.Set(p[1])
		}
		if p[1].Cmp(maxY) > 0 {
			maxY.Set(p[1])
		}
	}
	// Margin of one full extent plus one keeps every real point strictly
	// inside the quad.
	margin := new(big.Rat).Sub(maxX, minX)
	margin.Add(margin, new(big.Rat).Sub(maxY, minY))
	margin.Add(margin, big.NewRat(1, 1))
	lox := new(big.Rat).Sub(minX, margin)
	hix := new(big.Rat).Add(maxX, margin)
	loy := new(big.Rat).Sub(minY, margin)
	hiy := new(big.Rat).Add(maxY, margin)

	t.pts = make([]geom.Vec2, len(pts), len(pts)+4)
	copy(t.pts, pts)
	s0 := len(t.pts)
	t.pts = append(t.pts,
		geom.Vec2{lox, loy},
		geom.Vec2{hix, loy},
		geom.Vec2{hix, hiy},
		geom.Vec2{lox, hiy},
	)
	t.tris = [][3]int{
		{s0, s0 + 1, s0 + 2},
		{s0, s0 + 2, s0 + 3},
	}
	return t
}

func sortedPair(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

// findTri returns the index of the triangle containing the directed edge
// a->b, or -1.
func (t *triangulation) findTri(a, b int) int {
	for ti, tr := range t.tris {
		for i := 0; i < 3; i++ {
			if tr[i] == a && tr[(i+1)%3] == b {
				return ti
			}
		}
	}
	return -1
}

// apex returns the vertex of triangle ti that is neither a nor b.
func (t *triangulation) apex(ti, a, b int) int {
	for _, v := range t.tris[ti] {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

// insertPoint inserts point pi, splitting the containing triangle (or the
// two triangles sharing the containing edge) and restoring the Delaunay
// property by circumcircle flips.
func (t *triangulation) insertPoint(pi int) error {
	p := t.pts[pi]
	for ti, tr := range t.tris {
		o0 := geom.Orient2D(t.pts[tr[0]], t.pts[tr[1]], p)
		o1 := geom.Orient2D(t.pts[tr[1]], t.pts[tr[2]], p)
		o2 := geom.Orient2D(t.pts[tr[2]], t.pts[tr[0]], p)
		if o0 < 0 || o1 < 0 || o2 < 0 {
			continue
		}
		zeros := 0
		onEdge := -1
		for i, o := range []int{o0, o1, o2} {
			if o == 0 {
				zeros++
				onEdge = i
			}
		}
		switch zeros {
		case 0:
			t.splitInterior(ti, pi)
			return nil
		case 1:
			t.splitEdge(ti, onEdge, pi)
			return nil
		default:
			// Coincides with an existing vertex; points are pre-deduped, so
			// this is a caller bug.
			return fmt.Errorf("cdt: duplicate point %d", pi)
		}
	}
	return fmt.Errorf("cdt: point %d outside bounding quad", pi)
}

// splitInterior splits triangle ti into three at interior point pi.
func (t *triangulation) splitInterior(ti, pi int) {
	a, b, c := t.tris[ti][0], t.tris[ti][1], t.tris[ti][2]
	t.tris[ti] = [3]int{pi, a, b}
	t.tris = append(t.tris, [3]int{pi, b, c}, [3]int{pi, c, a})
	t.legalize([][3]int{{pi, a, b}, {pi, b, c}, {pi, c, a}})
}

// splitEdge splits triangle ti and its neighbor across edge e at point pi,
// which lies exactly on that edge.
func (t *triangulation) splitEdge(ti, e, pi int) {
	tr := t.tris[ti]
	a := tr[(e+2)%3] // vertex opposite the split edge
	b := tr[e]
	c := tr[(e+1)%3]
	ui := t.findTri(c, b)
	t.tris[ti] = [3]int{pi, a, b}
	t.tris = append(t.tris, [3]int{pi, c, a})
	check := [][3]int{{pi, a, b}, {pi, c, a}}
	if ui != -1 {
		d := t.apex(ui, b, c)
		t.tris[ui] = [3]int{pi, b, d}
		t.tris = append(t.tris, [3]int{pi, d, c})
		check = append(check, [3]int{pi, b, d}, [3]int{pi, d, c})
	}
	t.legalize(check)
}

// legalize restores the Delaunay property. Each stack entry (p, x, y) names
// a CCW triangle (p, x, y) whose edge (x, y) is suspect.
func (t *triangulation) legalize(stack [][3]int) {
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p, x, y := item[0], item[1], item[2]
		ti := t.findTri(x, y)
		if ti == -1 || t.apex(ti, x, y) != p {
			continue // triangle was changed by a later flip
		}
		if t.fixed[sortedPair(x, y)] {
			continue
		}
		ui := t.findTri(y, x)
		if ui == -1 {
			continue
		}
		w := t.apex(ui, x, y)
		if geom.InCircle(t.pts[p], t.pts[x], t.pts[y], t.pts[w]) <= 0 {
			continue
		}
		t.tris[ti] = [3]int{p, x, w}
		t.tris[ui] = [3]int{p, w, y}
		stack = append(stack, [3]int{p, x, w}, [3]int{p, w, y})
	}
}

// insertConstraint forces edge (a, b) into the triangulation. Both endpoints
// are existing vertices, no vertex lies in the open segment, and no other
// constraint crosses it (the PSLG pre-split guarantees all three).
func (t *triangulation) insertConstraint(a, b int) error {
	if t.findTri(a, b) != -1 || t.findTri(b, a) != -1 {
		t.fixed[sortedPair(a, b)] = true
		return nil
	}
	pa, pb := t.pts[a], t.pts[b]

	// Find the triangle at a whose opposite edge the segment exits through.
	start, left, right := -1, -1, -1
	for ti, tr := range t.tris {
		for i := 0; i < 3; i++ {
			if tr[i] != a {
				continue
			}
			v1 := tr[(i+1)%3]
			v2 := tr[(i+2)%3]
			if geom.Orient2D(pa, pb, t.pts[v1]) > 0 && geom.Orient2D(pa, pb, t.pts[v2]) < 0 {
				start, left, right = ti, v1, v2
			}
		}
	}
	if start == -1 {
		return fmt.Errorf("cdt: no crossing triangle at vertex %d for constraint (%d,%d)", a, a, b)
	}

	dead := map[int]bool{start: true}
	upper := []int{left}
	lower := []int{right}
	for {
		ni := t.findTri(right, left)
		if ni == -1 {
			return fmt.Errorf("cdt: constraint (%d,%d) walked off the triangulation", a, b)
		}
		dead[ni] = true
		w := t.apex(ni, left, right)
		if w == b {
			break
		}
		switch geom.Orient2D(pa, pb, t.pts[w]) {
		case 1:
			upper = append(upper, w)
			left = w
		case -1:
			lower = append(lower, w)
			right = w
		default:
			return fmt.Errorf("cdt: vertex %d lies on constraint (%d,%d)", w, a, b)
		}
	}

	var fresh [][3]int
	fresh = t.fillPseudoPolygon(fresh, upper, a, b)
	fresh = t.fillPseudoPolygon(fresh, lower, b, a)

	kept := t.tris[:0]
	for ti, tr := range t.tris {
		if !dead[ti] {
			kept = append(kept, tr)
		}
	}
	t.tris = append(kept, fresh...)
	t.fixed[sortedPair(a, b)] = true
	return nil
}

// fillPseudoPolygon triangulates the pseudo-polygon bounded by base edge
// (b0, b1) and the chain of vertices on its left, appending the resulting
// CCW triangles to out.
func (t *triangulation) fillPseudoPolygon(out [][3]int, chain []int, b0, b1 int) [][3]int {
	if len(chain) == 0 {
		return out
	}
	ci := 0
	for i := 1; i < len(chain); i++ {
		if geom.InCircle(t.pts[b0], t.pts[b1], t.pts[chain[ci]], t.pts[chain[i]]) > 0 {
			ci = i
		}
	}
	c := chain[ci]
	out = t.fillPseudoPolygon(out, chain[:ci], b0, c)
	out = t.fillPseudoPolygon(out, chain[ci+1:], c, b1)
	return append(out, [3]int{b0, b1, c})
}

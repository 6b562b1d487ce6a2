package cdt

import (
	"math/big"
	"sort"

	"github.com/akmonengine/shard/geom"
)

// pslg holds the canonicalized planar straight-line graph: deduplicated
// points, the merged constraint segments with their provenance ids, and the
// crossing-free sub-segments the triangulation actually enforces.
type pslg struct {
	in    Input
	foff  int
	pts   []geom.Vec2
	ptKey map[string]int
	inMap []int // input vertex index -> canonical point index

	segs    []segment // pre-split parents, used for output edge provenance
	subSegs []segment
}

func newPSLG(in Input) *pslg {
	p := &pslg{in: in, ptKey: make(map[string]int)}
	p.inMap = make([]int, len(in.Verts))
	for i, v := range in.Verts {
		p.inMap[i] = p.addPoint(v)
	}

	p.foff = len(in.Edges)
	for _, f := range in.Faces {
		if len(f) > p.foff {
			p.foff = len(f)
		}
	}
	if p.foff < 1 {
		p.foff = 1
	}

	for i, e := range in.Edges {
		p.addSegment(p.inMap[e[0]], p.inMap[e[1]], i)
	}
	for fi, f := range in.Faces {
		for pos := range f {
			a := p.inMap[f[pos]]
			b := p.inMap[f[(pos+1)%len(f)]]
			p.addSegment(a, b, p.foff*(fi+1)+pos)
		}
	}
	return p
}

func (p *pslg) addPoint(v geom.Vec2) int {
	key := v.Key()
	if i, ok := p.ptKey[key]; ok {
		return i
	}
	i := len(p.pts)
	p.ptKey[key] = i
	p.pts = append(p.pts, v)
	return i
}

// addSegment records a constraint segment, merging provenance with any
// existing segment between the same canonical endpoints. Segments collapsed
// by vertex merging are dropped.
func (p *pslg) addSegment(a, b, orig int) {
	if a == b {
		return
	}
	if a > b {
		a, b = b, a
	}
	for i := range p.segs {
		if p.segs[i].a == a && p.segs[i].b == b {
			p.segs[i].origs = append(p.segs[i].origs, orig)
			return
		}
	}
	p.segs = append(p.segs, segment{a: a, b: b, origs: []int{orig}})
}

// splitSegments computes all pairwise exact segment crossings as Steiner
// points, then splits every segment at each point lying on it. The resulting
// sub-segments neither cross each other nor contain a point in their open
// interior, which is what insertConstraint requires.
func (p *pslg) splitSegments() {
	for i := 0; i < len(p.segs); i++ {
		for j := i + 1; j < len(p.segs); j++ {
			si, sj := p.segs[i], p.segs[j]
			x, ok := geom.SegSegIntersection(p.pts[si.a], p.pts[si.b], p.pts[sj.a], p.pts[sj.b])
			if ok {
				p.addPoint(x)
			}
		}
	}

	sub := make(map[[2]int]*segment)
	for _, s := range p.segs {
		on := p.pointsOnSegment(s)
		for i := 0; i+1 < len(on); i++ {
			key := sortedPair(on[i], on[i+1])
			if cur, ok := sub[key]; ok {
				cur.origs = append(cur.origs, s.origs...)
			} else {
				origs := make([]int, len(s.origs))
				copy(origs, s.origs)
				sub[key] = &segment{a: key[0], b: key[1], origs: origs}
			}
		}
	}

	keys := make([][2]int, 0, len(sub))
	for k := range sub {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	p.subSegs = p.subSegs[:0]
	for _, k := range keys {
		s := *sub[k]
		s.origs = dedupSorted(s.origs)
		p.subSegs = append(p.subSegs, s)
	}
}

// pointsOnSegment returns the indices of every canonical point lying on
// segment s (endpoints included), ordered from s.a to s.b.
func (p *pslg) pointsOnSegment(s segment) []int {
	pa, pb := p.pts[s.a], p.pts[s.b]
	dir := pb.Sub(pa)
	var on []int
	for i, pt := range p.pts {
		if geom.OnSegment(pt, pa, pb) {
			on = append(on, i)
		}
	}
	// Order by the exact parameter along the segment direction.
	sort.Slice(on, func(i, j int) bool {
		ti := p.pts[on[i]].Sub(pa).Dot(dir)
		tj := p.pts[on[j]].Sub(pa).Dot(dir)
		return ti.Cmp(tj) < 0
	})
	return on
}

func dedupSorted(xs []int) []int {
	sort.Ints(xs)
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

var third = big.NewRat(1, 3)

// extract filters and remaps the raw triangulation into a Result: triangles
// touching the bounding quad or inside no input face are dropped, vertices
// are compacted to those in use, and faces and edges get their provenance.
func (p *pslg) extract(t *triangulation) (*Result, error) {
	outlines, signs := p.faceOutlines()

	var faces [][3]int
	var faceOrig [][]int
	for _, tr := range t.tris {
		if tr[0] >= t.nReal || tr[1] >= t.nReal || tr[2] >= t.nReal {
			continue
		}
		c := p.pts[tr[0]].Add(p.pts[tr[1]]).Add(p.pts[tr[2]]).Scale(third)
		var origs []int
		for fi := range outlines {
			if signs[fi] != 0 && p.insideOutline(c, outlines[fi], signs[fi]) {
				origs = append(origs, fi)
			}
		}
		if len(origs) == 0 {
			continue
		}
		faces = append(faces, rotateMinFirst(tr))
		faceOrig = append(faceOrig, origs)
	}

	// Compact the used points, keeping canonical index order.
	used := make(map[int]bool)
	for _, f := range faces {
		used[f[0]] = true
		used[f[1]] = true
		used[f[2]] = true
	}
	remap := make(map[int]int)
	res := &Result{FaceEdgeOffset: p.foff}
	for i := range p.pts {
		if used[i] {
			remap[i] = len(res.Verts)
			res.Verts = append(res.Verts, p.pts[i])
		}
	}

	edgeSet := make(map[[2]int]bool)
	for _, f := range faces {
		res.Faces = append(res.Faces, [3]int{remap[f[0]], remap[f[1]], remap[f[2]]})
		for i := 0; i < 3; i++ {
			edgeSet[sortedPair(f[i], f[(i+1)%3])] = true
		}
	}
	res.FaceOrig = faceOrig

	edges := make([][2]int, 0, len(edgeSet))
	for e := range edgeSet {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	for _, e := range edges {
		res.Edges = append(res.Edges, [2]int{remap[e[0]], remap[e[1]]})
		res.EdgeOrig = append(res.EdgeOrig, p.edgeProvenance(e))
	}
	return res, nil
}

// faceOutlines returns each input face as canonical point indices, with its
// orientation sign (+1 CCW, -1 CW, 0 degenerate).
func (p *pslg) faceOutlines() ([][]int, []int) {
	outlines := make([][]int, len(p.in.Faces))
	signs := make([]int, len(p.in.Faces))
	for fi, f := range p.in.Faces {
		outline := make([]int, len(f))
		for i, vi := range f {
			outline[i] = p.inMap[vi]
		}
		outlines[fi] = outline
		if len(f) < 3 {
			continue
		}
		// Twice the signed area, by the shoelace sum.
		area := new(big.Rat)
		for i := range outline {
			a := p.pts[outline[i]]
			b := p.pts[outline[(i+1)%len(outline)]]
			area.Add(area, a.Cross(b))
		}
		signs[fi] = area.Sign()
	}
	return outlines, signs
}

// insideOutline reports whether c is strictly inside the convex outline with
// the given orientation sign.
func (p *pslg) insideOutline(c geom.Vec2, outline []int, sign int) bool {
	for i := range outline {
		a := p.pts[outline[i]]
		b := p.pts[outline[(i+1)%len(outline)]]
		if sign*geom.Orient2D(a, b, c) <= 0 {
			return false
		}
	}
	return true
}

// edgeProvenance returns the sorted provenance ids of every pre-split
// segment that covers output edge e.
func (p *pslg) edgeProvenance(e [2]int) []int {
	pa, pb := p.pts[e[0]], p.pts[e[1]]
	var origs []int
	for _, s := range p.segs {
		if geom.OnSegment(pa, p.pts[s.a], p.pts[s.b]) && geom.OnSegment(pb, p.pts[s.a], p.pts[s.b]) {
			origs = append(origs, s.origs...)
		}
	}
	if origs == nil {
		return nil
	}
	return dedupSorted(origs)
}

// rotateMinFirst rotates a CCW triple so the smallest index comes first,
// giving a canonical representation without changing orientation.
func rotateMinFirst(t [3]int) [3]int {
	if t[1] < t[0] && t[1] <= t[2] {
		return [3]int{t[1], t[2], t[0]}
	}
	if t[2] < t[0] && t[2] <= t[1] {
		return [3]int{t[2], t[0], t[1]}
	}
	return t
}

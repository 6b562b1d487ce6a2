package shard

import (
	"sort"

	"github.com/akmonengine/shard/mesh"
)

// Options configure a resolution run. The zero value is valid: one worker,
// no counters, an R-tree broad phase.
type Options struct {
	// Workers is the number of goroutines used for the parallel pipeline
	// stages. Values below 1 mean 1.
	Workers int

	// Counters, when non-nil, receives event counts during the run.
	Counters Counters

	// NewIndex, when non-nil, supplies the broad-phase index. Defaults to
	// NewRTreeIndex.
	NewIndex func() SpatialIndex
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) newIndex() SpatialIndex {
	if o.NewIndex != nil {
		return o.NewIndex()
	}
	return NewRTreeIndex()
}

// SelfIntersect resolves the self-intersections of triangle mesh m. The
// result has the same geometry with all crossing triangles subdivided along
// their exact intersection curves; its faces are allocated from arena, in
// input-triangle order, and reference m's vertices wherever the coordinates
// coincide. m itself is not modified.
//
// Every input face must be a triangle with nonzero area; a DegenerateError
// is returned otherwise.
func SelfIntersect(m *mesh.Mesh, arena *mesh.Arena, opts Options) (*mesh.Mesh, error) {
	c := opts.Counters
	workers := opts.workers()

	for t := 0; t < m.Len(); t++ {
		f := m.Face(t)
		if !f.IsTri() || f.IsDegenerate() {
			return nil, &DegenerateError{Face: t}
		}
	}
	maxCount(c, MaxInputFaces, m.Len())

	boxes := triBoundingBoxes(m, workers)
	clinfo := findClusters(m, boxes, c)
	maxCount(c, MaxClusters, len(clinfo.clusters))

	triIndex := opts.newIndex()
	triIndex.Build(boxes)
	adj := overlapAdjacency(m.Len(), triIndex.SelfOverlaps())

	// For every cluster, the candidate triangles whose boxes reach it. A
	// second index over the cluster boxes keeps this near-linear when there
	// are many clusters.
	clusterCands := clusterCandidates(m, boxes, &clinfo)

	// Retriangulate each cluster with the intersections cut into it by
	// non-cluster triangles.
	clusterCDT := make([]*cdtInput, len(clinfo.clusters))
	clusterErr := make([]error, len(clinfo.clusters))
	clusterIDs := intRange(len(clinfo.clusters))
	task(workers, clusterIDs, func(cid int) {
		cl := &clinfo.clusters[cid]
		var itts []ittValue
		for _, tOther := range clusterCands[cid] {
			for _, t := range cl.tris {
				itt := intersectTriTri(m.Face(t), m.Face(tOther), tOther, c)
				if itt.kind != ittNone && itt.kind != ittCoplanar {
					itts = append(itts, itt)
				}
			}
		}
		cd := prepareCDTInputForCluster(m, cl, itts)
		if err := cd.runCDT(); err != nil {
			clusterErr[cid] = err
			return
		}
		clusterCDT[cid] = cd
	})
	for _, err := range clusterErr {
		if err != nil {
			return nil, err
		}
	}

	// Per-triangle subdivision: cluster members extract their share of the
	// cluster result; the rest run the pairwise narrow phase against their
	// broad-phase partners; untouched triangles pass through unchanged.
	subdivided := make([]*mesh.Mesh, m.Len())
	triErr := make([]error, m.Len())
	task(workers, intRange(m.Len()), func(t int) {
		if cid := clinfo.clusterOf(t); cid != mesh.NoIndex {
			sub, err := clusterCDT[cid].extractSubdividedTri(m, t, arena)
			if err != nil {
				triErr[t] = err
				return
			}
			subdivided[t] = sub
			return
		}
		var itts []ittValue
		for _, tOther := range adj[t] {
			if !mayNonTriviallyIntersect(m.Face(t), m.Face(tOther)) {
				incr(c, CounterTrivialSkips)
				continue
			}
			itt := intersectTriTri(m.Face(t), m.Face(tOther), tOther, c)
			if itt.kind != ittNone {
				itts = append(itts, itt)
			}
		}
		if len(itts) == 0 {
			subdivided[t] = extractSingleTri(m, t)
			return
		}
		cd := prepareCDTInput(m, t, itts)
		if err := cd.runCDT(); err != nil {
			triErr[t] = err
			return
		}
		sub, err := cd.extractSubdividedTri(m, t, arena)
		if err != nil {
			triErr[t] = err
			return
		}
		subdivided[t] = sub
	})
	for _, err := range triErr {
		if err != nil {
			return nil, err
		}
	}

	return unionSubdivided(subdivided), nil
}

// overlapAdjacency turns the (a, b) overlap pairs into per-triangle partner
// lists, each sorted ascending.
func overlapAdjacency(n int, pairs [][2]int) [][]int {
	adj := make([][]int, n)
	for _, p := range pairs {
		adj[p[0]] = append(adj[p[0]], p[1])
		adj[p[1]] = append(adj[p[1]], p[0])
	}
	for t := range adj {
		sort.Ints(adj[t])
	}
	return adj
}

// clusterCandidates returns, per cluster, the ascending list of non-member
// triangles whose padded boxes overlap the cluster's box.
func clusterCandidates(m *mesh.Mesh, boxes []AABB, clinfo *clusterInfo) [][]int {
	cands := make([][]int, len(clinfo.clusters))
	if len(clinfo.clusters) == 0 {
		return cands
	}
	clusterIndex := NewRTreeIndex()
	clusterBoxes := make([]AABB, len(clinfo.clusters))
	for cid := range clinfo.clusters {
		clusterBoxes[cid] = clinfo.clusters[cid].bb
	}
	clusterIndex.Build(clusterBoxes)
	for t := 0; t < m.Len(); t++ {
		for _, cid := range clusterIndex.Search(boxes[t]) {
			if clinfo.clusterOf(t) != cid {
				cands[cid] = append(cands[cid], t)
			}
		}
	}
	return cands
}

// unionSubdivided concatenates the per-triangle results in input order.
func unionSubdivided(subdivided []*mesh.Mesh) *mesh.Mesh {
	total := 0
	for _, sub := range subdivided {
		total += sub.Len()
	}
	faces := make([]*mesh.Face, 0, total)
	for _, sub := range subdivided {
		faces = append(faces, sub.Faces()...)
	}
	return mesh.NewMesh(faces)
}

func intRange(n int) []int {
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	return idxs
}

package shard

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// SpatialIndex is the broad-phase acceleration structure over padded
// bounding boxes. Build is called once per index; Search and SelfOverlaps
// may then be called from multiple goroutines.
type SpatialIndex interface {
	Build(boxes []AABB)
	// SelfOverlaps returns every overlapping index pair (a, b) with a < b,
	// sorted lexicographically.
	SelfOverlaps() [][2]int
	// Search returns the indices of all boxes overlapping the query box, in
	// ascending order.
	Search(box AABB) []int
}

// RTreeIndex is the default SpatialIndex, an R-tree over the padded boxes.
type RTreeIndex struct {
	tree  *rtreego.Rtree
	boxes []AABB
}

// NewRTreeIndex returns an empty RTreeIndex.
func NewRTreeIndex() SpatialIndex {
	return &RTreeIndex{}
}

type boxEntry struct {
	rect rtreego.Rect
	idx  int
}

func (e *boxEntry) Bounds() rtreego.Rect { return e.rect }

func rectOf(b AABB) rtreego.Rect {
	lengths := make([]float64, 3)
	for i := 0; i < 3; i++ {
		lengths[i] = b.Max[i] - b.Min[i]
		if lengths[i] <= 0 {
			lengths[i] = dblEpsilon
		}
	}
	r, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1], b.Min[2]}, lengths)
	if err != nil {
		// Lengths are forced positive above, so this cannot happen.
		panic(err)
	}
	return r
}

func (x *RTreeIndex) Build(boxes []AABB) {
	x.boxes = boxes
	x.tree = rtreego.NewTree(3, 2, 8)
	for i, b := range boxes {
		x.tree.Insert(&boxEntry{rect: rectOf(b), idx: i})
	}
}

func (x *RTreeIndex) Search(box AABB) []int {
	found := x.tree.SearchIntersect(rectOf(box))
	idxs := make([]int, 0, len(found))
	for _, sp := range found {
		idxs = append(idxs, sp.(*boxEntry).idx)
	}
	sort.Ints(idxs)
	return idxs
}

func (x *RTreeIndex) SelfOverlaps() [][2]int {
	var pairs [][2]int
	for a := range x.boxes {
		for _, b := range x.Search(x.boxes[a]) {
			if b > a {
				pairs = append(pairs, [2]int{a, b})
			}
		}
	}
	return pairs
}

package shard

import (
	"testing"

	"github.com/akmonengine/shard/geom"
	"github.com/akmonengine/shard/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

func tri2(ax, ay, bx, by, cx, cy int64) tri2D {
	return tri2D{geom.V2(ax, ay), geom.V2(bx, by), geom.V2(cx, cy)}
}

func TestNonTrivially2DIntersect(t *testing.T) {
	// All triangles CCW, as projectTriCCW guarantees.
	tests := []struct {
		name     string
		a, b     tri2D
		expected bool
	}{
		{
			name:     "disjoint",
			a:        tri2(0, 0, 1, 0, 0, 1),
			b:        tri2(5, 0, 6, 0, 5, 1),
			expected: false,
		},
		{
			name:     "vertex_inside",
			a:        tri2(0, 0, 4, 0, 0, 4),
			b:        tri2(1, 1, 5, 1, 1, 5),
			expected: true,
		},
		{
			name:     "shared_edge_opposite_sides",
			a:        tri2(0, 0, 1, 0, 0, 1),
			b:        tri2(1, 0, 0, 0, 0, -1),
			expected: false,
		},
		{
			name:     "shared_edge_folded_over",
			a:        tri2(0, 0, 1, 0, 0, 1),
			b:        tri2(0, 0, 1, 0, 1, 1),
			expected: true,
		},
		{
			name:     "shared_vertex_only",
			a:        tri2(0, 0, 1, 0, 0, 1),
			b:        tri2(0, 0, -1, 0, 0, -1),
			expected: false,
		},
		{
			name:     "same_triangle_rotated",
			a:        tri2(0, 0, 2, 0, 0, 2),
			b:        tri2(0, 2, 0, 0, 2, 0),
			expected: true,
		},
		{
			name:     "hexagonal_overlap",
			a:        tri2(-2, 1, 0, -2, 2, 1),
			b:        tri2(-2, -1, 2, -1, 0, 2),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nonTrivially2DIntersect(tt.a, tt.b); got != tt.expected {
				t.Errorf("nonTrivially2DIntersect = %v, want %v", got, tt.expected)
			}
			// The relation is symmetric.
			if got := nonTrivially2DIntersect(tt.b, tt.a); got != tt.expected {
				t.Errorf("nonTrivially2DIntersect reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFindClustersHexagram(t *testing.T) {
	arena := mesh.NewArena()
	star1 := buildTri(arena, mgl64.Vec3{-2, 1, 0}, mgl64.Vec3{2, 1, 0}, mgl64.Vec3{0, -2, 0})
	star2 := buildTri(arena, mgl64.Vec3{-2, -1, 0}, mgl64.Vec3{2, -1, 0}, mgl64.Vec3{0, 2, 0})
	apart := buildTri(arena, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 1, 1})
	m := mesh.NewMesh([]*mesh.Face{star1, star2, apart})

	boxes := triBoundingBoxes(m, 1)
	ci := findClusters(m, boxes, nil)
	if len(ci.clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(ci.clusters))
	}
	if len(ci.clusters[0].tris) != 2 {
		t.Errorf("cluster tris = %v, want the two star triangles", ci.clusters[0].tris)
	}
	if ci.clusterOf(0) != 0 || ci.clusterOf(1) != 0 {
		t.Errorf("clusterOf = %d, %d, want 0, 0", ci.clusterOf(0), ci.clusterOf(1))
	}
	if ci.clusterOf(2) != mesh.NoIndex {
		t.Errorf("clusterOf(2) = %d, want NoIndex", ci.clusterOf(2))
	}
}

func TestFindClustersDisjointCoplanar(t *testing.T) {
	// Coplanar but trivially separated triangles must not cluster.
	arena := mesh.NewArena()
	t1 := buildTri(arena, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	t2 := buildTri(arena, mgl64.Vec3{5, 0, 0}, mgl64.Vec3{6, 0, 0}, mgl64.Vec3{5, 1, 0})
	m := mesh.NewMesh([]*mesh.Face{t1, t2})

	ci := findClusters(m, triBoundingBoxes(m, 1), nil)
	if len(ci.clusters) != 0 {
		t.Fatalf("got %d clusters, want 0", len(ci.clusters))
	}
	if ci.clusterOf(0) != mesh.NoIndex || ci.clusterOf(1) != mesh.NoIndex {
		t.Error("unclustered triangles should map to NoIndex")
	}
}

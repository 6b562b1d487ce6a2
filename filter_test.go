package shard

import (
	"testing"

	"github.com/akmonengine/shard/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

func TestMayNonTriviallyIntersect(t *testing.T) {
	tests := []struct {
		name     string
		t1, t2   [3]mgl64.Vec3
		expected bool
	}{
		{
			name:     "shared_edge_bent",
			t1:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			t2:       [3]mgl64.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 0, 1}},
			expected: false,
		},
		{
			name:     "shared_edge_coplanar_opposite_sides",
			t1:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			t2:       [3]mgl64.Vec3{{1, 0, 0}, {0, 0, 0}, {0, -1, 0}},
			expected: false,
		},
		{
			name:     "shared_edge_coplanar_overlapping",
			t1:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			t2:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
			expected: true,
		},
		{
			name:     "shared_vertex_other_side_clear",
			t1:       [3]mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}},
			t2:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 3}, {0, 1, 3}},
			expected: false,
		},
		{
			name:     "shared_vertex_straddling",
			t1:       [3]mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}},
			t2:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 1}, {0, 1, -1}},
			expected: true,
		},
		{
			name:     "no_shared_verts",
			t1:       [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			t2:       [3]mgl64.Vec3{{5, 5, 5}, {6, 5, 5}, {5, 6, 5}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arena := mesh.NewArena()
			tri1 := buildTri(arena, tt.t1[0], tt.t1[1], tt.t1[2])
			tri2 := buildTri(arena, tt.t2[0], tt.t2[1], tt.t2[2])
			if got := mayNonTriviallyIntersect(tri1, tri2); got != tt.expected {
				t.Errorf("mayNonTriviallyIntersect = %v, want %v", got, tt.expected)
			}
		})
	}
}

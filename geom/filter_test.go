package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFilterOrient3D(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d mgl64.Vec3
		expected   int
	}{
		{
			name: "clearly_above",
			a:    mgl64.Vec3{0, 0, 0}, b: mgl64.Vec3{1, 0, 0},
			c: mgl64.Vec3{0, 1, 0}, d: mgl64.Vec3{0, 0, 1},
			expected: 1,
		},
		{
			name: "clearly_below",
			a:    mgl64.Vec3{0, 0, 0}, b: mgl64.Vec3{1, 0, 0},
			c: mgl64.Vec3{0, 1, 0}, d: mgl64.Vec3{0, 0, -1},
			expected: -1,
		},
		{
			name: "exactly_coplanar",
			a:    mgl64.Vec3{0, 0, 0}, b: mgl64.Vec3{1, 0, 0},
			c: mgl64.Vec3{0, 1, 0}, d: mgl64.Vec3{7, -3, 0},
			expected: 0,
		},
		{
			// The offset is far below the error bound, so the filter must
			// refuse to decide even though the float sign happens to be right.
			name: "within_error_bound",
			a:    mgl64.Vec3{0, 0, 0}, b: mgl64.Vec3{1, 0, 0},
			c: mgl64.Vec3{0, 1, 0}, d: mgl64.Vec3{0.5, 0.5, 1e-17},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterOrient3D(tt.a, tt.b, tt.c, tt.d); got != tt.expected {
				t.Errorf("FilterOrient3D = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNearParallel(t *testing.T) {
	tests := []struct {
		name     string
		a, b     mgl64.Vec3
		expected bool
	}{
		{"identical", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, true},
		{"scaled", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{-2, -4, -6}, true},
		{"orthogonal", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, false},
		{"nearly_parallel", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1.0000000000000002, 1, 0}, true},
		{"clearly_apart", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0.5, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearParallel(tt.a, tt.b); got != tt.expected {
				t.Errorf("NearParallel = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDotMustBePositive(t *testing.T) {
	tests := []struct {
		name     string
		a, b     mgl64.Vec3
		expected bool
	}{
		{"aligned", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 2}, true},
		{"opposed", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, false},
		{"orthogonal", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, false},
		{"tiny_positive_uncertain", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1, -1 + 1e-16, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DotMustBePositive(tt.a, tt.b); got != tt.expected {
				t.Errorf("DotMustBePositive = %v, want %v", got, tt.expected)
			}
		})
	}
}

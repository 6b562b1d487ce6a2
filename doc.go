// Package shard resolves self-intersections in triangle meshes exactly.
//
// Given a triangle mesh that may intersect itself, SelfIntersect produces a
// mesh with identical geometry in which no two triangles cross: wherever
// triangles intersected, they are subdivided along the exact intersection
// curves, and coincident geometry is merged by exact coordinate. All
// topology decisions use arbitrary-precision rational arithmetic, so the
// result is independent of evaluation order and free of tolerance artifacts.
// Floating-point computations appear only as conservative filters that
// discard pairs which provably cannot intersect.
//
// The resolution pipeline is: a broad phase over padded bounding boxes, a
// grouping of near-coplanar triangles into clusters that are retriangulated
// together, an exact triangle-triangle narrow phase for the remaining pairs,
// and a constrained Delaunay retriangulation of every triangle that gained
// intersection geometry.
//
// References:
//   - Guigue, Devillers: "Faster Triangle-Triangle Intersection Tests" (2003)
//   - Burnikel, Funke, Seel: "Exact Geometric Computation Using Cascading" (2001)
package shard

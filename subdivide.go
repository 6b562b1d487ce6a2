package shard

import (
	"github.com/akmonengine/shard/cdt"
	"github.com/akmonengine/shard/geom"
	"github.com/akmonengine/shard/mesh"
)

// cdtInput accumulates the 2D retriangulation input for one plane: the
// projected triangles that must be subdivided together plus the intersection
// points and segments cut into them by other triangles. Everything is
// projected along the dominant axis of the plane normal; the cdt package
// dedups the projected vertices.
type cdtInput struct {
	plane    geom.Plane
	projAxis int
	in       cdt.Input

	// Parallel to in.Faces: the mesh face index each came from, and whether
	// projection reversed its winding.
	inputFace  []int
	isReversed []bool

	out *cdt.Result
}

func newCDTInput(pl geom.Plane) *cdtInput {
	return &cdtInput{plane: pl, projAxis: pl.Norm.DominantAxis()}
}

func (cd *cdtInput) addVert(p geom.Vec3) int {
	cd.in.Verts = append(cd.in.Verts, geom.ProjectAxis(p, cd.projAxis))
	return len(cd.in.Verts) - 1
}

func (cd *cdtInput) addEdge(p1, p2 geom.Vec3) {
	v1 := cd.addVert(p1)
	v2 := cd.addVert(p2)
	cd.in.Edges = append(cd.in.Edges, [2]int{v1, v2})
}

// addTri projects face t of m as a constraint face, normalizing to CCW in
// the projected plane.
func (cd *cdtInput) addTri(m *mesh.Mesh, t int) {
	tri := m.Face(t)
	v0 := cd.addVert(tri.Vert[0].CoExact)
	v1 := cd.addVert(tri.Vert[1].CoExact)
	v2 := cd.addVert(tri.Vert[2].CoExact)
	// Looking down the y axis, the remaining axes are not right-and-up, so
	// the projection itself flips the winding there.
	var rev bool
	if cd.plane.Norm[cd.projAxis].Sign() >= 0 {
		rev = cd.projAxis == 1
	} else {
		rev = cd.projAxis != 1
	}
	// A face whose plane is opposite to cd.plane flips once more.
	if tri.Plane.Norm[cd.projAxis].Sign() != cd.plane.Norm[cd.projAxis].Sign() {
		rev = !rev
	}
	if rev {
		cd.in.Faces = append(cd.in.Faces, []int{v0, v2, v1})
	} else {
		cd.in.Faces = append(cd.in.Faces, []int{v0, v1, v2})
	}
	cd.inputFace = append(cd.inputFace, t)
	cd.isReversed = append(cd.isReversed, rev)
}

// prepareCDTInput builds the retriangulation input for single triangle t and
// the intersections itts cut into it.
func prepareCDTInput(m *mesh.Mesh, t int, itts []ittValue) *cdtInput {
	cd := newCDTInput(m.Face(t).Plane)
	cd.addTri(m, t)
	for _, itt := range itts {
		switch itt.kind {
		case ittPoint:
			cd.addVert(itt.p1)
		case ittSegment:
			cd.addEdge(itt.p1, itt.p2)
		case ittCoplanar:
			cd.addTri(m, itt.tSource)
		}
	}
	return cd
}

// prepareCDTInputForCluster builds the retriangulation input for a whole
// coplanar cluster. Coplanar itts are not included: a coplanar triangle that
// actually intersected would already be part of the cluster.
func prepareCDTInputForCluster(m *mesh.Mesh, cl *coplanarCluster, itts []ittValue) *cdtInput {
	cd := newCDTInput(m.Face(cl.tris[0]).Plane)
	for _, t := range cl.tris {
		cd.addTri(m, t)
	}
	for _, itt := range itts {
		switch itt.kind {
		case ittPoint:
			cd.addVert(itt.p1)
		case ittSegment:
			cd.addEdge(itt.p1, itt.p2)
		}
	}
	return cd
}

// runCDT performs the constrained triangulation on the accumulated input.
func (cd *cdtInput) runCDT() error {
	out, err := cdt.Triangulate(cd.in)
	if err != nil {
		return &InternalError{Op: "retriangulate", Err: err}
	}
	cd.out = out
	return nil
}

// getCDTEdgeOrig maps output edge (i0, i1) back to an original-edge id of
// the input mesh, or mesh.NoIndex. Face-edge provenance is decoded through
// the face's EdgeOrig; for reversed faces the projected position p
// corresponds to input position 2-p. Plain input edges (intersection
// segments) carry no original-edge id.
func (cd *cdtInput) getCDTEdgeOrig(i0, i1 int, m *mesh.Mesh) int {
	foff := cd.out.FaceEdgeOffset
	for e, edge := range cd.out.Edges {
		if !(edge[0] == i0 && edge[1] == i1) && !(edge[0] == i1 && edge[1] == i0) {
			continue
		}
		// Pick an arbitrary orig, preferring one that is not NoIndex.
		for _, origIndex := range cd.out.EdgeOrig[e] {
			if origIndex < foff {
				continue
			}
			inFaceIndex, pos := cd.out.DecodeFaceEdge(origIndex)
			facep := m.Face(cd.inputFace[inFaceIndex])
			var eorig int
			if cd.isReversed[inFaceIndex] {
				eorig = facep.EdgeOrig[2-pos]
			} else {
				eorig = facep.EdgeOrig[pos]
			}
			if eorig != mesh.NoIndex {
				return eorig
			}
		}
		return mesh.NoIndex
	}
	return mesh.NoIndex
}

// extractSubdividedTri collects the output triangles that lie inside input
// triangle t, unprojects them back to 3D and allocates them from the arena.
// Reversed faces are emitted with their original winding restored.
func (cd *cdtInput) extractSubdividedTri(m *mesh.Mesh, t int, arena *mesh.Arena) (*mesh.Mesh, error) {
	tInCDT := -1
	for i, ft := range cd.inputFace {
		if ft == t {
			tInCDT = i
		}
	}
	if tInCDT == -1 {
		return nil, internalf("extract", "face %d missing from retriangulation input", t)
	}
	tOrig := m.Face(t).Orig
	var faces []*mesh.Face
	for f, outFace := range cd.out.Faces {
		if !containsInt(cd.out.FaceOrig[f], tInCDT) {
			continue
		}
		i0, i1, i2 := outFace[0], outFace[1], outFace[2]
		// No original index is needed here: a coordinate matching an input
		// vertex is already in the arena with the right orig.
		v0 := arena.AddOrFindVert(cd.plane.Unproject(cd.out.Verts[i0], cd.projAxis), mesh.NoIndex)
		v1 := arena.AddOrFindVert(cd.plane.Unproject(cd.out.Verts[i1], cd.projAxis), mesh.NoIndex)
		v2 := arena.AddOrFindVert(cd.plane.Unproject(cd.out.Verts[i2], cd.projAxis), mesh.NoIndex)
		var face *mesh.Face
		if cd.isReversed[tInCDT] {
			oe0 := cd.getCDTEdgeOrig(i0, i2, m)
			oe1 := cd.getCDTEdgeOrig(i2, i1, m)
			oe2 := cd.getCDTEdgeOrig(i1, i0, m)
			face = arena.AddFace([]*mesh.Vert{v0, v2, v1}, tOrig, []int{oe0, oe1, oe2})
		} else {
			oe0 := cd.getCDTEdgeOrig(i0, i1, m)
			oe1 := cd.getCDTEdgeOrig(i1, i2, m)
			oe2 := cd.getCDTEdgeOrig(i2, i0, m)
			face = arena.AddFace([]*mesh.Vert{v0, v1, v2}, tOrig, []int{oe0, oe1, oe2})
		}
		faces = append(faces, face)
	}
	return mesh.NewMesh(faces), nil
}

func extractSingleTri(m *mesh.Mesh, t int) *mesh.Mesh {
	return mesh.NewMesh([]*mesh.Face{m.Face(t)})
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

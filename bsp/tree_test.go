package bsp

import (
	"testing"

	"wmoexport/vecmath"
)

// buildGridMesh returns the vertex pool and triangle-index stream for an
// nx*ny grid of unit quads in the XY plane at z=0, each quad split into
// two triangles.
func buildGridMesh(nx, ny int) ([]vecmath.Vector3, []uint16) {
	var verts []vecmath.Vector3
	for y := 0; y <= ny; y++ {
		for x := 0; x <= nx; x++ {
			verts = append(verts, vecmath.Vector3{float32(x), float32(y), 0})
		}
	}

	stride := nx + 1
	var indices []uint16
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			i0 := uint16(y*stride + x)
			i1 := i0 + 1
			i2 := uint16((y+1)*stride + x)
			i3 := i2 + 1
			indices = append(indices, i0, i1, i2, i1, i3, i2)
		}
	}

	return verts, indices
}

func boxOf(verts []vecmath.Vector3) vecmath.BoundingBox {
	b := vecmath.NewEmptyBoundingBox()
	for _, v := range verts {
		b.Extend(v)
	}
	return b
}

// TestBuildLeafFallbackWhenUnderNodeSize covers a 3x3 grid of 18
// triangles with node_size=30, which should never split.
func TestBuildLeafFallbackWhenUnderNodeSize(t *testing.T) {
	verts, indices := buildGridMesh(3, 3)
	tree := Build(verts, indices, boxOf(verts), 30)

	if len(tree.Nodes) != 1 {
		t.Fatalf("expected a single root node, got %d", len(tree.Nodes))
	}

	root := tree.Nodes[0]
	if !root.IsLeaf() {
		t.Fatal("expected root to be a leaf")
	}
	if root.NumFaces != 18 {
		t.Errorf("root.NumFaces = %d, want 18", root.NumFaces)
	}
	if root.FirstFace != 0 {
		t.Errorf("root.FirstFace = %d, want 0", root.FirstFace)
	}
	if root.Children != ([2]int16{-1, -1}) {
		t.Errorf("root.Children = %v, want {-1,-1}", root.Children)
	}
	if len(tree.Faces) != 18 {
		t.Errorf("len(tree.Faces) = %d, want 18", len(tree.Faces))
	}
}

// TestBuildSplitsOnLargerMesh exercises the recursive split path and the
// node-shape invariants: inner nodes carry no faces, leaves carry no
// children, child indices always point forward, and every face appears
// in at least one leaf. The grid is wider than it is tall so that X is
// the strictly longest axis; a square flat grid would pick the Z split.
func TestBuildSplitsOnLargerMesh(t *testing.T) {
	verts, indices := buildGridMesh(20, 10)
	tree := Build(verts, indices, boxOf(verts), 8)

	if len(tree.Nodes) < 2 {
		t.Fatalf("expected the tree to split, got %d node(s)", len(tree.Nodes))
	}

	faceCount := len(indices) / 3
	seen := make([]bool, faceCount)
	var totalLeafFaces int

	for i, n := range tree.Nodes {
		if n.IsLeaf() {
			if n.Children != ([2]int16{-1, -1}) {
				t.Errorf("node %d: leaf children = %v, want {-1,-1}", i, n.Children)
			}
			totalLeafFaces += int(n.NumFaces)
			for _, f := range tree.Faces[n.FirstFace : n.FirstFace+uint32(n.NumFaces)] {
				seen[f] = true
			}
			continue
		}

		if n.NumFaces != 0 || n.FirstFace != 0 {
			t.Errorf("node %d: inner node has num_faces=%d first_face=%d, want 0,0", i, n.NumFaces, n.FirstFace)
		}
		if n.PlaneType != YZPlane && n.PlaneType != XZPlane && n.PlaneType != XYPlane {
			t.Errorf("node %d: inner node has plane_type=%d", i, n.PlaneType)
		}
		for _, c := range n.Children {
			if c != -1 && int(c) <= i {
				t.Errorf("node %d: child index %d is not strictly greater than parent", i, c)
			}
		}
	}

	for f, ok := range seen {
		if !ok {
			t.Errorf("face %d never appears in any leaf", f)
		}
	}
}

package meshdata

import (
	"testing"

	"wmoexport/colorutil"
	"wmoexport/vecmath"
)

func newTestMesh() *Mesh {
	return &Mesh{
		Positions:  []vecmath.Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		LoopVertex: []uint32{0, 1, 2},
		Triangles: []CornerTriangle{
			{Loops: [3]uint32{0, 1, 2}, Poly: 0},
		},
		VertexNormals: []vecmath.Vector3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		DeformGroups: [][]DeformWeight{
			{{GroupID: 3, Weight: 1}},
			nil,
			{{GroupID: 1, Weight: 0.5}},
		},
	}
}

func TestVertexOfLoopResolves(t *testing.T) {
	m := newTestMesh()
	if got := m.VertexOfLoop(2); got != 2 {
		t.Errorf("VertexOfLoop(2) = %d, want 2", got)
	}
}

func TestIsInDeformGroupMember(t *testing.T) {
	m := newTestMesh()
	if !m.IsInDeformGroup(0, 3) {
		t.Error("expected vertex 0 to be a member of group 3")
	}
}

func TestIsInDeformGroupNonMember(t *testing.T) {
	m := newTestMesh()
	if m.IsInDeformGroup(1, 3) {
		t.Error("expected vertex 1 (no groups) to not be a member of group 3")
	}
}

func TestIsInDeformGroupDisabledGroupID(t *testing.T) {
	m := newTestMesh()
	if m.IsInDeformGroup(0, -1) {
		t.Error("expected a negative group id to always report false")
	}
}

func TestColorAtPerLoopLayer(t *testing.T) {
	m := newTestMesh()
	layer := NewByteColorLayer(true, []colorutil.RGBA{
		{R: 10, G: 20, B: 30, A: 40},
		{R: 50, G: 60, B: 70, A: 80},
		{R: 90, G: 100, B: 110, A: 120},
	})

	got := m.ColorAt(layer, 1)
	want := colorutil.RGBA{R: 50, G: 60, B: 70, A: 0xFF}
	if got != want {
		t.Errorf("ColorAt(loop 1) = %+v, want %+v", got, want)
	}
}

func TestColorAtPerVertexLayerResolvesThroughLoop(t *testing.T) {
	m := newTestMesh()
	layer := NewByteColorLayer(false, []colorutil.RGBA{
		{R: 1, G: 1, B: 1, A: 1},
		{R: 2, G: 2, B: 2, A: 2},
		{R: 3, G: 3, B: 3, A: 3},
	})

	got := m.ColorAt(layer, 2)
	want := colorutil.RGBA{R: 3, G: 3, B: 3, A: 0xFF}
	if got != want {
		t.Errorf("ColorAt(loop 2) = %+v, want %+v", got, want)
	}
}

func TestAttrTableColorLookupMissing(t *testing.T) {
	table := AttrTable{}
	if _, ok := table.Color("Nonexistent"); ok {
		t.Error("expected lookup of an absent layer to report false")
	}
}

package liquid

import (
	"testing"

	"wmoexport/meshdata"
	"wmoexport/vecmath"
)

// newGridMesh3x3 returns a 3x3 vertex grid: a 2x2-tile water surface
// with every vertex at integer XY and z=0.5.
func newGridMesh3x3() *meshdata.Mesh {
	var positions []vecmath.Vector3
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			positions = append(positions, vecmath.Vector3{float32(x), float32(y), 0.5})
		}
	}
	return &meshdata.Mesh{Positions: positions}
}

func TestBuildWaterGridSizesAndHeights(t *testing.T) {
	mesh := newGridMesh3x3()
	g := Build(Params{
		Mesh:        mesh,
		MatrixWorld: vecmath.Mat4FromColMajor([16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}),
		XTiles:      2,
		YTiles:      2,
		MatID:       0,
		IsWater:     true,
	})

	if g.Header.Verts.X != 3 || g.Header.Verts.Y != 3 {
		t.Errorf("header.Verts = %+v, want {3,3}", g.Header.Verts)
	}
	if g.Header.Tiles.X != 2 || g.Header.Tiles.Y != 2 {
		t.Errorf("header.Tiles = %+v, want {2,2}", g.Header.Tiles)
	}
	if len(g.Vertices) != 9 {
		t.Fatalf("len(Vertices) = %d, want 9", len(g.Vertices))
	}
	for i, v := range g.Vertices {
		if v.Height != 0.5 {
			t.Errorf("vertex %d height = %v, want 0.5", i, v.Height)
		}
		if v.Flow1 != 0 || v.Flow2 != 0 || v.Flow1Pct != 0 {
			t.Errorf("vertex %d flows are nonzero: %+v", i, v)
		}
	}
	if len(g.Tiles) != 0 {
		t.Errorf("len(Tiles) = %d, want 0 (mesh carries no face data)", len(g.Tiles))
	}
}

func TestEncodeHeaderSize(t *testing.T) {
	mesh := newGridMesh3x3()
	g := Build(Params{
		Mesh:        mesh,
		MatrixWorld: vecmath.Mat4FromColMajor([16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}),
		XTiles:      2,
		YTiles:      2,
		IsWater:     true,
	})

	if got := len(g.EncodeHeader()); got != HeaderSize {
		t.Errorf("EncodeHeader() length = %d, want %d", got, HeaderSize)
	}
}

func TestEncodeVerticesWaterLayoutSize(t *testing.T) {
	mesh := newGridMesh3x3()
	g := Build(Params{
		Mesh:        mesh,
		MatrixWorld: vecmath.Mat4FromColMajor([16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}),
		XTiles:      2,
		YTiles:      2,
		IsWater:     true,
	})

	if got, want := len(g.EncodeVertices()), len(g.Vertices)*VertSize; got != want {
		t.Errorf("EncodeVertices() length = %d, want %d", got, want)
	}
}

func TestLiquidCornerPicksMinimalXYSum(t *testing.T) {
	mesh := &meshdata.Mesh{
		Positions: []vecmath.Vector3{
			{5, 5, 0},
			{-2, -3, 1},
			{1, 1, 2},
			{0, 0, 3},
		},
	}
	g := Build(Params{
		Mesh:        mesh,
		MatrixWorld: vecmath.Mat4FromColMajor([16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}),
		XTiles:      1,
		YTiles:      1,
		IsWater:     true,
	})

	want := vecmath.Vector3{-2, -3, 1}
	if g.Header.Corner != want {
		t.Errorf("liquid corner = %v, want %v", g.Header.Corner, want)
	}
}

package liquid

import (
	"fmt"

	"wmoexport/colorutil"
	"wmoexport/meshdata"
	"wmoexport/vecmath"
)

// Params configures a liquid grid export.
type Params struct {
	Mesh        *meshdata.Mesh
	MatrixWorld vecmath.Mat4
	XTiles      uint32
	YTiles      uint32
	MatID       uint16
	IsWater     bool
}

// Grid is the fully built liquid payload: a header plus its vertex and
// tile arrays, ready for little-endian encoding.
type Grid struct {
	Header   Header
	Vertices []Vert
	Tiles    []Tile

	isWater bool
}

// blueKey is the "checked" sentinel flag_* layers compare against.
var blueKey = colorutil.RGBA{R: 0, G: 0, B: 255, A: 255}

// Build constructs a liquid grid from p. Panics if IsWater is false and
// the mesh carries no "UVMap" layer — magma liquid without a UV map is a
// precondition violation, not a recoverable error.
func Build(p Params) *Grid {
	g := &Grid{isWater: p.IsWater}

	g.Header.Tiles = vecmath.Vector2i{X: int32(p.XTiles), Y: int32(p.YTiles)}
	g.Header.Verts = vecmath.Vector2i{X: int32(p.XTiles + 1), Y: int32(p.YTiles + 1)}
	g.Header.MatID = p.MatID

	g.Header.Corner = vecmath.TransformPoint(p.MatrixWorld, p.Mesh.Positions[0])

	vertSum := float32(0)
	for _, pos := range p.Mesh.Positions {
		world := vecmath.TransformPoint(p.MatrixWorld, pos)
		sum := world[0] + world[1]
		if sum < vertSum {
			g.Header.Corner = world
			vertSum = sum
		}
	}

	vertCount := int(g.Header.Verts.X) * int(g.Header.Verts.Y)

	if p.IsWater {
		g.Vertices = buildWaterVertices(p, vertCount)
	} else {
		g.Vertices = buildMagmaVertices(p, vertCount)
	}

	g.Tiles = buildTiles(p.Mesh)

	return g
}

func buildWaterVertices(p Params, vertCount int) []Vert {
	out := make([]Vert, vertCount)
	for i := 0; i < vertCount; i++ {
		world := vecmath.TransformPoint(p.MatrixWorld, p.Mesh.Positions[i])
		out[i] = Vert{Height: world[2]}
	}
	return out
}

func buildMagmaVertices(p Params, vertCount int) []Vert {
	uvLayer, ok := p.Mesh.Attrs.UV("UVMap")
	if !ok {
		panic("liquid: magma liquid requires a UVMap layer")
	}

	vertexToUV := make(map[uint32]vecmath.Vector2, len(p.Mesh.LoopVertex))
	for loop, vertex := range p.Mesh.LoopVertex {
		vertexToUV[vertex] = uvLayer[loop]
	}

	out := make([]Vert, vertCount)
	for i := 0; i < vertCount; i++ {
		uv := vertexToUV[uint32(i)]
		world := vecmath.TransformPoint(p.MatrixWorld, p.Mesh.Positions[i])
		out[i] = Vert{
			S:      int16(roundHalfAwayFromZero(uv[0] * 255)),
			T:      int16(roundHalfAwayFromZero(uv[1] * 255)),
			Height: world[2],
		}
	}
	return out
}

func roundHalfAwayFromZero(x float32) int32 {
	if x >= 0 {
		return int32(x + 0.5)
	}
	return -int32(-x + 0.5)
}

const maxFlagLayers = 8

func buildTiles(mesh *meshdata.Mesh) []Tile {
	layers := make([]*meshdata.ColorLayer, maxFlagLayers)
	for i := 0; i < maxFlagLayers; i++ {
		if l, ok := mesh.Attrs.Color(fmt.Sprintf("flag_%d", i)); ok {
			layers[i] = l
		}
	}

	tiles := make([]Tile, len(mesh.Triangles))
	firstLoopOfFace := firstLoopPerFace(mesh)

	for faceIdx, loop := range firstLoopOfFace {
		var flags uint8
		notRendered := false

		for i, layer := range layers {
			if layer == nil {
				continue
			}
			bit := uint8(1) << uint(i)
			checked := colorutil.Equal(mesh.ColorAt(layer, loop), blueKey)

			if bit == 0x1 && checked {
				notRendered = true
			}

			switch {
			case bit <= 0x8:
				if notRendered {
					flags |= bit
				}
			case checked:
				flags |= bit
			}
		}

		tiles[faceIdx] = Tile{Flags: flags}
	}

	return tiles
}

// firstLoopPerFace returns, for each face in mesh order, the loop index of
// its first corner-triangle corner — the face's first-loop color is what
// the flag_* layers are sampled at.
func firstLoopPerFace(mesh *meshdata.Mesh) []uint32 {
	seen := make(map[uint32]bool)
	out := make([]uint32, 0, len(mesh.Triangles))
	for _, tri := range mesh.Triangles {
		if seen[tri.Poly] {
			continue
		}
		seen[tri.Poly] = true
		out = append(out, tri.Loops[0])
	}
	return out
}

// EncodeHeader little-endian packs the header.
func (g *Grid) EncodeHeader() []byte {
	return g.Header.AppendBytes(make([]byte, 0, HeaderSize))
}

// EncodeVertices little-endian packs the vertex array, using the water or
// magma layout recorded at Build time.
func (g *Grid) EncodeVertices() []byte {
	out := make([]byte, 0, len(g.Vertices)*VertSize)
	for _, v := range g.Vertices {
		if g.isWater {
			out = v.AppendWaterBytes(out)
		} else {
			out = v.AppendMagmaBytes(out)
		}
	}
	return out
}

// EncodeTiles packs the tile flag-byte array.
func (g *Grid) EncodeTiles() []byte {
	out := make([]byte, len(g.Tiles))
	for i, t := range g.Tiles {
		out[i] = t.Flags
	}
	return out
}

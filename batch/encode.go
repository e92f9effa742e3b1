package batch

import (
	"encoding/binary"
	"math"

	"wmoexport/colorutil"
	"wmoexport/vecmath"
)

func math32bits(f float32) uint32 { return math.Float32bits(f) }

// Batches little-endian packs the MOBABatch array.
func (b *Batcher) Batches() []byte {
	out := make([]byte, 0, len(b.batches)*BatchSize)
	for _, batch := range b.batches {
		out = batch.AppendBytes(out)
	}
	return out
}

// Vertices little-endian packs the vertex position pool.
func (b *Batcher) Vertices() []byte {
	return packVec3(b.vertices)
}

// Normals little-endian packs the vertex normal pool.
func (b *Batcher) Normals() []byte {
	return packVec3(b.normals)
}

// TexCoords little-endian packs the primary UV pool.
func (b *Batcher) TexCoords() []byte {
	return packVec2(b.texCoords)
}

// TexCoords2 little-endian packs the secondary UV pool, empty when the
// mesh carries no UVMap.001 layer.
func (b *Batcher) TexCoords2() []byte {
	return packVec2(b.texCoords2)
}

// VertexColors little-endian packs the primary vertex color pool, empty
// unless UseVertexColor was set.
func (b *Batcher) VertexColors() []byte {
	return packRGBA(b.vertexColors)
}

// VertexColors2 little-endian packs the secondary vertex color pool,
// empty unless the mesh carries a Blendmap layer.
func (b *Batcher) VertexColors2() []byte {
	return packRGBA(b.vertexColors2)
}

// TriangleIndices little-endian packs the triangle index stream, render
// triangles first then collision-only triangles.
func (b *Batcher) TriangleIndices() []byte {
	out := make([]byte, len(b.triangleIndices)*2)
	for i, idx := range b.triangleIndices {
		binary.LittleEndian.PutUint16(out[i*2:], idx)
	}
	return out
}

// TriangleMaterials little-endian packs the MOPY array.
func (b *Batcher) TriangleMaterials() []byte {
	out := make([]byte, 0, len(b.triangleMaterials)*2)
	for _, m := range b.triangleMaterials {
		out = m.AppendBytes(out)
	}
	return out
}

// BSPNodes little-endian packs the BSP node array.
func (b *Batcher) BSPNodes() []byte {
	return b.bspTree.EncodeNodes()
}

// BSPFaces little-endian packs the BSP face-id array.
func (b *Batcher) BSPFaces() []byte {
	return b.bspTree.EncodeFaces()
}

// LiquidHeader little-endian packs the MLIQHeader. Panics if New was
// called without liquid parameters — accessing liquid data that was
// never configured is a contract violation.
func (b *Batcher) LiquidHeader() []byte {
	b.requireLiquid()
	return b.liquidGrid.EncodeHeader()
}

// LiquidVertices little-endian packs the SMOLVert array.
func (b *Batcher) LiquidVertices() []byte {
	b.requireLiquid()
	return b.liquidGrid.EncodeVertices()
}

// LiquidTiles little-endian packs the SMOLTile array.
func (b *Batcher) LiquidTiles() []byte {
	b.requireLiquid()
	return b.liquidGrid.EncodeTiles()
}

func (b *Batcher) requireLiquid() {
	if b.liquidGrid == nil {
		panic("batch: attempted accessing liquid data, but no liquid params were provided")
	}
}

func packVec3(vals []vecmath.Vector3) []byte {
	out := make([]byte, len(vals)*12)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*12:], math32bits(v[0]))
		binary.LittleEndian.PutUint32(out[i*12+4:], math32bits(v[1]))
		binary.LittleEndian.PutUint32(out[i*12+8:], math32bits(v[2]))
	}
	return out
}

func packVec2(vals []vecmath.Vector2) []byte {
	out := make([]byte, len(vals)*8)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*8:], math32bits(v[0]))
		binary.LittleEndian.PutUint32(out[i*8+4:], math32bits(v[1]))
	}
	return out
}

func packRGBA(vals []colorutil.RGBA) []byte {
	out := make([]byte, len(vals)*4)
	for i, c := range vals {
		out[i*4] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}

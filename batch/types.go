// Package batch orchestrates triangle classification, batch-boundary
// sorting, per-batch vertex deduplication, attribute unpacking, BSP
// construction and liquid export into the parallel output buffers a WMO
// group needs.
package batch

import (
	"encoding/binary"

	"wmoexport/colorutil"
	"wmoexport/liquid"
	"wmoexport/vecmath"
)

// Type is the visual classification of a render batch.
type Type uint8

const (
	Trans Type = iota
	Int
	Ext
)

// MOBA flag bits.
const (
	FlagUnk             uint8 = 0x1
	FlagLargeMaterialID uint8 = 0x2
)

// MOPY flag bits, LSB to MSB.
const (
	FUnk01        uint8 = 0x01
	FNoCamCollide uint8 = 0x02
	FDetail       uint8 = 0x04
	FCollision    uint8 = 0x08
	FHint         uint8 = 0x10
	FRender       uint8 = 0x20
	FUnk40        uint8 = 0x40
	FCollideHit   uint8 = 0x80
)

// CollisionMatNr is the legacy sentinel material id that marks a render
// triangle as collision-only on the render mesh itself.
const CollisionMatNr = 32767

// BatchSize is the packed on-disk size of a Batch (MOBABatch) in bytes.
const BatchSize = 24

// Batch is one MOBABatch record. The first 12 bytes are a union: either
// the quantized per-batch AABB (BBMin/BBMax), or 10 bytes of padding plus
// a large material id, selected by Flags&FlagLargeMaterialID.
type Batch struct {
	Type Type

	BBMin, BBMax    [3]int16
	MaterialIDLarge uint16

	StartIndex   uint32
	IndicesCount uint16
	MinIndex     uint16
	MaxIndex     uint16
	Flags        uint8
	MaterialID   uint8
}

// AppendBytes little-endian encodes b onto dst.
func (b Batch) AppendBytes(dst []byte) []byte {
	var buf [BatchSize]byte

	if b.Flags&FlagLargeMaterialID != 0 {
		binary.LittleEndian.PutUint16(buf[10:12], b.MaterialIDLarge)
	} else {
		for i := 0; i < 3; i++ {
			binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(b.BBMin[i]))
		}
		for i := 0; i < 3; i++ {
			binary.LittleEndian.PutUint16(buf[6+i*2:8+i*2], uint16(b.BBMax[i]))
		}
	}

	binary.LittleEndian.PutUint32(buf[12:16], b.StartIndex)
	binary.LittleEndian.PutUint16(buf[16:18], b.IndicesCount)
	binary.LittleEndian.PutUint16(buf[18:20], b.MinIndex)
	binary.LittleEndian.PutUint16(buf[20:22], b.MaxIndex)
	buf[22] = b.Flags
	buf[23] = b.MaterialID

	return append(dst, buf[:]...)
}

// TriangleMaterial is a MOPY entry.
type TriangleMaterial struct {
	Flags      uint8
	MaterialID uint8
}

// AppendBytes little-endian encodes m onto dst.
func (m TriangleMaterial) AppendBytes(dst []byte) []byte {
	return append(dst, m.Flags, m.MaterialID)
}

// vertexInfo is a candidate vertex's unpacked attributes, compared against
// previously emitted vertices sharing the same source vertex id.
type vertexInfo struct {
	localIndex uint32

	uv0, uv1     vecmath.Vector2
	vcol0, vcol1 colorutil.RGBA
	loopNormal   vecmath.Vector3
}

// Config carries the per-batcher construction parameters.
type Config struct {
	MeshMatrixWorld      vecmath.Mat4
	CollisionMatrixWorld vecmath.Mat4

	UseLargeMaterialID bool
	UseVertexColor     bool
	UseCustomNormals   bool

	// CollisionGroupID is the deform-group id used to decide whether a
	// render corner counts as collidable. Negative disables the check.
	CollisionGroupID int

	NodeSize uint32
}

// LiquidParams configures an optional liquid grid export alongside the
// geometry batch.
type LiquidParams = liquid.Params

// Err values surfaced by Batcher.Err().
var (
	// ErrLooseMaterialID reports a FaceMaterialIndex value outside the
	// bounds of the supplied material id table.
	ErrLooseMaterialID = looseMaterialIDError{}
)

type looseMaterialIDError struct{}

func (looseMaterialIDError) Error() string {
	return "batch: face material index out of range of the material id table"
}

// Package liquid converts a regular grid mesh into the fixed-layout
// tile/vertex arrays and bit-packed flags a WMO group liquid surface
// needs.
package liquid

import (
	"encoding/binary"
	"math"

	"wmoexport/vecmath"
)

// HeaderSize is the packed on-disk size of a Header in bytes.
const HeaderSize = 22

// Header is the MLIQHeader chunk payload. Verts and Tiles are logically
// Vector2i, but the on-disk MLIQHeader packs them as i16 pairs rather
// than a general-purpose i32 pair — that's the only way
// liquid_verts(4) + liquid_tiles(4) + liquid_corner(12) + liquid_mat_id(2)
// adds up to the documented 22-byte sizeof.
type Header struct {
	Verts  vecmath.Vector2i
	Tiles  vecmath.Vector2i
	Corner vecmath.Vector3
	MatID  uint16
}

// AppendBytes little-endian encodes h onto dst.
func (h Header) AppendBytes(dst []byte) []byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(h.Verts.X))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(h.Verts.Y))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(h.Tiles.X))
	binary.LittleEndian.PutUint16(buf[6:8], uint16(h.Tiles.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(h.Corner[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(h.Corner[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(h.Corner[2]))
	binary.LittleEndian.PutUint16(buf[20:22], h.MatID)
	return append(dst, buf[:]...)
}

// VertSize is the packed on-disk size of a Vert in bytes.
const VertSize = 8

// Vert is a liquid vertex. Exactly one of the two shapes is populated,
// selected by the Grid's IsWater flag: water carries flow data, magma
// carries a UV-derived s/t pair. Both carry Height.
type Vert struct {
	// Water layout
	Flow1, Flow2, Flow1Pct, Filler uint8
	// Magma layout
	S, T int16

	Height float32
}

// AppendWaterBytes little-endian encodes v as a water vertex.
func (v Vert) AppendWaterBytes(dst []byte) []byte {
	var buf [VertSize]byte
	buf[0] = v.Flow1
	buf[1] = v.Flow2
	buf[2] = v.Flow1Pct
	buf[3] = v.Filler
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Height))
	return append(dst, buf[:]...)
}

// AppendMagmaBytes little-endian encodes v as a magma vertex.
func (v Vert) AppendMagmaBytes(dst []byte) []byte {
	var buf [VertSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(v.S))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(v.T))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Height))
	return append(dst, buf[:]...)
}

// Tile bit positions, LSB to MSB.
const (
	TileFlagFishable = 1 << 6
	TileFlagShared   = 1 << 7
)

// Tile is the bit-packed SMOLTile flag byte:
// legacy_liquid_type:4, unknown_1:1, unknown_2:1, fishable:1, shared:1.
type Tile struct {
	Flags uint8
}

// Package bsp builds the axis-aligned BSP spatial index over a batcher's
// vertex pool and triangle-index stream.
package bsp

import (
	"encoding/binary"
	"math"
)

// PlaneType identifies the split axis of an inner node, or marks a leaf.
type PlaneType int16

const (
	YZPlane PlaneType = 0 // split on X
	XZPlane PlaneType = 1 // split on Y
	XYPlane PlaneType = 2 // split on Z
	Leaf    PlaneType = 4
)

// NodeSize is the packed on-disk size of a Node in bytes.
const NodeSize = 16

// Node is one entry of the flat, pre-order BSP node array. For inner
// nodes NumFaces==0 and FirstFace==0; for leaves Children=={-1,-1} and
// Dist==0.
type Node struct {
	PlaneType PlaneType
	Children  [2]int16
	NumFaces  uint16
	FirstFace uint32
	Dist      float32
}

// IsLeaf reports whether this node is a leaf.
func (n Node) IsLeaf() bool {
	return n.PlaneType == Leaf
}

// AppendBytes little-endian encodes n onto dst and returns the result.
func (n Node) AppendBytes(dst []byte) []byte {
	var buf [NodeSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(n.PlaneType))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(n.Children[0]))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(n.Children[1]))
	binary.LittleEndian.PutUint16(buf[6:8], n.NumFaces)
	binary.LittleEndian.PutUint32(buf[8:12], n.FirstFace)
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(n.Dist))
	return append(dst, buf[:]...)
}

package bsp

import (
	"encoding/binary"
	"fmt"
	"sort"

	"wmoexport/vecmath"
)

const (
	maxDepth              = 16
	maxDuplicationRatio   = 1.3
	minSplitRatio         = 0.2
	softBalanceSizeFactor = 1.5
)

// Tree is the flat, pre-order BSP node array plus the face-id array its
// leaves reference. Nodes[0] is always the root; children precede
// siblings.
type Tree struct {
	Nodes []Node
	Faces []uint16

	vertices []vecmath.Vector3
	indices  []uint16
	nodeSize uint32
}

// Build recursively subdivides box over the triangles described by
// vertices/indices (a flat list of per-triangle vertex index triples)
// into a BSP tree with target leaf size nodeSize.
//
// Panics if len(indices) is not a multiple of three — a BSP triangle
// stream that isn't whole triangles is a contract violation, not a
// recoverable error.
func Build(vertices []vecmath.Vector3, indices []uint16, box vecmath.BoundingBox, nodeSize uint32) *Tree {
	if len(indices)%3 != 0 {
		panic(fmt.Sprintf("bsp: triangle index stream length %d is not a multiple of three", len(indices)))
	}

	t := &Tree{vertices: vertices, indices: indices, nodeSize: nodeSize}

	faceCount := len(indices) / 3
	faces := make([]uint32, faceCount)
	for i := range faces {
		faces[i] = uint32(i)
	}

	t.addNode(box, faces, 0)
	return t
}

func (t *Tree) triangle(face uint32) [3]vecmath.Vector3 {
	base := face * 3
	return [3]vecmath.Vector3{
		t.vertices[t.indices[base]],
		t.vertices[t.indices[base+1]],
		t.vertices[t.indices[base+2]],
	}
}

// addNode implements the "reserve first, fill last" discipline: the
// node's slot is appended before recursing so that a stored index
// survives later reallocation of t.Nodes, and the slot is re-read (not
// held by reference) after the recursive calls return.
func (t *Tree) addNode(box vecmath.BoundingBox, facesInBox []uint32, depth int) int16 {
	iNode := int16(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{})

	totalSize := uint32(len(facesInBox))

	if depth > maxDepth || totalSize <= t.nodeSize {
		t.finalizeLeaf(iNode, facesInBox)
		return iNode
	}

	planeType := longestAxis(box)
	splitDist, child1Box, child2Box := t.splitBox(box, planeType, facesInBox)

	var child1Faces, child2Faces []uint32
	for _, f := range facesInBox {
		tri := t.triangle(f)
		if collideBoxTri(child1Box, tri) {
			child1Faces = append(child1Faces, f)
		}
		if collideBoxTri(child2Box, tri) {
			child2Faces = append(child2Faces, f)
		}
	}

	child1Size := uint32(len(child1Faces))
	child2Size := uint32(len(child2Faces))
	minFaces := t.nodeSize / 2

	duplicationRatio := float64(child1Size+child2Size) / float64(totalSize)
	balance := float64(min32(child1Size, child2Size)) / float64(totalSize)

	if duplicationRatio > maxDuplicationRatio ||
		child1Size < minFaces || child2Size < minFaces ||
		(balance < minSplitRatio && float64(totalSize) <= float64(t.nodeSize)*softBalanceSizeFactor) {
		t.finalizeLeaf(iNode, facesInBox)
		return iNode
	}

	var iChild1, iChild2 int16 = -1, -1
	if len(child1Faces) > 0 {
		iChild1 = t.addNode(child1Box, child1Faces, depth+1)
	}
	if len(child2Faces) > 0 {
		iChild2 = t.addNode(child2Box, child2Faces, depth+1)
	}

	node := &t.Nodes[iNode]
	node.PlaneType = planeType
	node.Children = [2]int16{iChild1, iChild2}
	node.NumFaces = 0
	node.FirstFace = 0
	node.Dist = splitDist

	return iNode
}

func (t *Tree) finalizeLeaf(iNode int16, facesInBox []uint32) {
	node := &t.Nodes[iNode]
	node.PlaneType = Leaf
	node.Children = [2]int16{-1, -1}
	node.NumFaces = uint16(len(facesInBox))
	node.FirstFace = uint32(len(t.Faces))
	node.Dist = 0

	for _, f := range facesInBox {
		t.Faces = append(t.Faces, uint16(f))
	}
}

// longestAxis picks the split axis as the axis with the largest box
// extent; ties broken X>Y,X>Z => YZ; else Y>X,Y>Z => XZ; else XY.
func longestAxis(box vecmath.BoundingBox) PlaneType {
	sx, sy, sz := box.Axis(0), box.Axis(1), box.Axis(2)
	switch {
	case sx > sy && sx > sz:
		return YZPlane
	case sy > sx && sy > sz:
		return XZPlane
	default:
		return XYPlane
	}
}

func axisIndex(p PlaneType) int {
	switch p {
	case YZPlane:
		return 0
	case XZPlane:
		return 1
	default:
		return 2
	}
}

// splitBox computes the median split distance on the chosen axis across
// every vertex of every triangle in facesInBox, falling back to the box
// midpoint when the median is degenerate (on/outside the box, or zero).
func (t *Tree) splitBox(box vecmath.BoundingBox, axis PlaneType, facesInBox []uint32) (float32, vecmath.BoundingBox, vecmath.BoundingBox) {
	ai := axisIndex(axis)

	positions := make([]float32, 0, len(facesInBox)*3)
	for _, f := range facesInBox {
		tri := t.triangle(f)
		positions = append(positions, tri[0][ai], tri[1][ai], tri[2][ai])
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	splitDist := positions[len(positions)/2]

	if splitDist <= box.Min[ai] || splitDist >= box.Max[ai] || splitDist == 0 {
		splitDist = (box.Min[ai] + box.Max[ai]) / 2
	}

	child1 := box
	child1.Max[ai] = splitDist

	child2 := box
	child2.Min[ai] = splitDist

	return splitDist, child1, child2
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// EncodeNodes little-endian packs the node array.
func (t *Tree) EncodeNodes() []byte {
	out := make([]byte, 0, len(t.Nodes)*NodeSize)
	for _, n := range t.Nodes {
		out = n.AppendBytes(out)
	}
	return out
}

// EncodeFaces little-endian packs the face-id array.
func (t *Tree) EncodeFaces() []byte {
	out := make([]byte, len(t.Faces)*2)
	for i, f := range t.Faces {
		binary.LittleEndian.PutUint16(out[i*2:], f)
	}
	return out
}

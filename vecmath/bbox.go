package vecmath

import "math"

// BoundingBox is an axis-aligned box. After initialisation from any
// non-empty vertex set, Min[i] <= Max[i] on every axis.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewEmptyBoundingBox returns a box primed so that the first call to
// Extend establishes real bounds ([+MaxFloat32 x3] .. [-MaxFloat32 x3]).
func NewEmptyBoundingBox() BoundingBox {
	inf := float32(math.MaxFloat32)
	return BoundingBox{
		Min: Vector3{inf, inf, inf},
		Max: Vector3{-inf, -inf, -inf},
	}
}

// Extend grows the box so it also contains v.
func (b *BoundingBox) Extend(v Vector3) {
	for i := 0; i < 3; i++ {
		if v[i] < b.Min[i] {
			b.Min[i] = v[i]
		}
		if v[i] > b.Max[i] {
			b.Max[i] = v[i]
		}
	}
}

// Axis returns the box's extent along the given axis (0=x, 1=y, 2=z).
func (b BoundingBox) Axis(axis int) float32 {
	return b.Max[axis] - b.Min[axis]
}

// Corners returns the 8 corners of the box in a fixed, deterministic order.
func (b BoundingBox) Corners() [8]Vector3 {
	return [8]Vector3{
		b.Min,
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
	}
}

// Package vecmath provides the float vector, integer vector and matrix
// primitives shared by every other package in this module, plus the
// approximate-equality and bounding-box helpers built on top of them.
package vecmath

import "github.com/go-gl/mathgl/mgl32"

// Vector3 is a 3D float vector. It is mgl32.Vec3 under the hood, which is
// itself a [3]float32 array, so v[0]==x, v[1]==y, v[2]==z for free.
type Vector3 = mgl32.Vec3

// Vector2 is a 2D float vector (UV coordinates).
type Vector2 = mgl32.Vec2

// Mat4 is a column-major 4x4 float matrix, matching the glm convention the
// original exporter used for mesh_matrix_world / collision_mtx_world.
type Mat4 = mgl32.Mat4

// Vector2i is a 2D signed integer vector (liquid grid dimensions).
// mathgl has no integer vector type, so this one is hand-rolled.
type Vector2i struct {
	X, Y int32
}

// Mat4FromColMajor builds a Mat4 from 16 column-major float32 values, the
// layout the host content tool hands us for mesh/collision world matrices.
func Mat4FromColMajor(m [16]float32) Mat4 {
	return Mat4(m)
}

// TransformPoint applies m to the homogeneous point (v, 1) and returns xyz.
func TransformPoint(m Mat4, v Vector3) Vector3 {
	r := m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 1})
	return Vector3{r[0], r[1], r[2]}
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 of m,
// used to transform normals so that non-uniform scale doesn't skew them.
func NormalMatrix(m Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// TransformNormal applies the normal matrix to v and normalizes the result.
func TransformNormal(normalMtx mgl32.Mat3, v Vector3) Vector3 {
	return normalMtx.Mul3x1(v).Normalize()
}

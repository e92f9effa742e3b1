package batch

import (
	"wmoexport/colorutil"
	"wmoexport/meshdata"
	"wmoexport/vecmath"
)

// collisionSource is a mesh plus the world matrix to transform it by,
// shared by both ways a collision-only triangle can reach the batcher: a
// dedicated collision mesh, or a render-mesh triangle flagged with
// CollisionMatNr.
type collisionSource struct {
	mesh   *meshdata.Mesh
	matrix vecmath.Mat4
}

// collisionVert emits a strictly vertex-identity-deduped collision
// vertex, pushing one element onto every active parallel array, and
// returns its local index.
func (b *Batcher) collisionVert(src collisionSource, vertex uint32) uint32 {
	if idx, ok := b.collisionVertexMap[vertex]; ok {
		return idx
	}

	localIndex := uint32(len(b.vertices))

	worldPos := vecmath.TransformPoint(src.matrix, src.mesh.Positions[vertex])
	b.vertices = append(b.vertices, worldPos)

	normalMtx := vecmath.NormalMatrix(src.matrix)
	worldNormal := vecmath.TransformNormal(normalMtx, src.mesh.VertexNormals[vertex])
	b.normals = append(b.normals, worldNormal)

	b.texCoords = append(b.texCoords, vecmath.Vector2{0, 0})
	if b.hasUV2 {
		b.texCoords2 = append(b.texCoords2, vecmath.Vector2{0, 0})
	}
	if b.cfg.UseVertexColor {
		b.vertexColors = append(b.vertexColors, colorutil.RGBA{R: 0x7F, G: 0x7F, B: 0x7F, A: 0x00})
	}
	if b.hasBlendmap {
		b.vertexColors2 = append(b.vertexColors2, colorutil.RGBA{})
	}

	b.collisionVertexMap[vertex] = localIndex
	b.extendBounds(worldPos)

	return localIndex
}

// collisionTriangle emits one MOPY entry with F_COLLISION set and routes
// tri's three corners through collisionVert.
func (b *Batcher) collisionTriangle(src collisionSource, tri meshdata.CornerTriangle) {
	b.triangleMaterials = append(b.triangleMaterials, TriangleMaterial{Flags: FCollision, MaterialID: 0xFF})

	for _, loop := range tri.Loops {
		vert := src.mesh.VertexOfLoop(loop)
		idx := b.collisionVert(src, vert)
		b.triangleIndices = append(b.triangleIndices, uint16(idx))
	}
}

package batch

import (
	"sort"

	"wmoexport/bsp"
	"wmoexport/colorutil"
	"wmoexport/liquid"
	"wmoexport/meshdata"
	"wmoexport/vecmath"
)

// Batcher runs the full classify -> sort -> dedup/emit -> BSP build ->
// liquid export pipeline synchronously in New, then exposes read-only
// byte-range views of its output buffers.
type Batcher struct {
	cfg Config

	batches           []Batch
	vertices          []vecmath.Vector3
	normals           []vecmath.Vector3
	texCoords         []vecmath.Vector2
	texCoords2        []vecmath.Vector2
	vertexColors      []colorutil.RGBA
	vertexColors2     []colorutil.RGBA
	triangleIndices   []uint16
	triangleMaterials []TriangleMaterial

	transCount, intCount, extCount uint16

	bbox vecmath.BoundingBox

	hasUV2      bool
	hasBlendmap bool

	collisionVertexMap map[uint32]uint32

	bspTree    *bsp.Tree
	liquidGrid *liquid.Grid

	err error
}

// sortedTriangle pairs a render triangle with its precomputed batch type
// and resolved material id, the key the presort sorts on.
type sortedTriangle struct {
	tri   meshdata.CornerTriangle
	btype Type
	matID uint16
}

// New builds a Batcher from mesh (and an optional collisionMesh), running
// the whole pipeline before returning. liquidParams is optional; pass nil
// to skip liquid export.
func New(mesh *meshdata.Mesh, collisionMesh *meshdata.Mesh, cfg Config, materialIDs []uint16, liquidParams *LiquidParams) *Batcher {
	b := &Batcher{
		cfg:                cfg,
		bbox:               vecmath.NewEmptyBoundingBox(),
		collisionVertexMap: map[uint32]uint32{},
	}

	_, b.hasUV2 = mesh.Attrs.UV("UVMap.001")
	_, b.hasBlendmap = mesh.Attrs.Color("Blendmap")

	matIDFor := func(poly uint32) uint16 {
		idx := mesh.FaceMaterialIndex[poly]
		if idx < 0 || int(idx) >= len(materialIDs) {
			b.err = ErrLooseMaterialID
			return 0
		}
		return materialIDs[idx]
	}

	var render []sortedTriangle
	var legacyCollision []meshdata.CornerTriangle

	for _, tri := range mesh.Triangles {
		matID := matIDFor(tri.Poly)
		if matID == CollisionMatNr {
			legacyCollision = append(legacyCollision, tri)
			continue
		}
		render = append(render, sortedTriangle{tri: tri, btype: classify(mesh, tri), matID: matID})
	}

	sort.SliceStable(render, func(i, j int) bool {
		if render[i].btype != render[j].btype {
			return render[i].btype < render[j].btype
		}
		return render[i].matID < render[j].matID
	})

	b.emitRenderBatches(mesh, render)

	meshSrc := collisionSource{mesh: mesh, matrix: cfg.MeshMatrixWorld}
	for _, tri := range legacyCollision {
		b.collisionTriangle(meshSrc, tri)
	}

	if collisionMesh != nil {
		collisionSrc := collisionSource{mesh: collisionMesh, matrix: cfg.CollisionMatrixWorld}
		for _, tri := range collisionMesh.Triangles {
			b.collisionTriangle(collisionSrc, tri)
		}
	}

	b.bspTree = bsp.Build(b.vertices, b.triangleIndices, b.bbox, cfg.NodeSize)

	if liquidParams != nil {
		b.liquidGrid = liquid.Build(*liquidParams)
	}

	return b
}

// Err reports the advisory loose-material-id anomaly, or nil when every
// face's material index resolved within the material table.
func (b *Batcher) Err() error {
	return b.err
}

func (b *Batcher) emitRenderBatches(mesh *meshdata.Mesh, render []sortedTriangle) {
	var curBatch *Batch
	var curBatchIdx int = -1
	curType := Type(255)
	curMatID := uint16(0)
	var vmap vertexMap

	for _, st := range render {
		if curBatch == nil || st.btype != curType || st.matID != curMatID {
			if curBatch != nil {
				curBatch.MaxIndex = uint16(len(b.vertices) - 1)
			}
			curBatchIdx = b.openBatch(st.btype, st.matID)
			curBatch = &b.batches[curBatchIdx]
			curType = st.btype
			curMatID = st.matID
			vmap = vertexMap{}
		}

		b.emitRenderTriangle(mesh, st.tri, curBatch, vmap)
	}

	if curBatch != nil {
		curBatch.MaxIndex = uint16(len(b.vertices) - 1)
	}
}

// openBatch appends a new, empty batch of the given type and material id
// and returns its index.
func (b *Batcher) openBatch(btype Type, matID uint16) int {
	nb := Batch{
		Type:       btype,
		StartIndex: uint32(len(b.triangleIndices)),
		MinIndex:   uint16(len(b.vertices)),
		BBMin:      [3]int16{int16Max, int16Max, int16Max},
		BBMax:      [3]int16{int16Min, int16Min, int16Min},
	}

	if b.cfg.UseLargeMaterialID && matID > 255 {
		nb.Flags |= FlagLargeMaterialID
		nb.MaterialIDLarge = matID
		nb.MaterialID = 0
	} else {
		nb.MaterialID = uint8(matID)
	}

	switch btype {
	case Trans:
		b.transCount++
	case Int:
		b.intCount++
	case Ext:
		b.extCount++
	}

	b.batches = append(b.batches, nb)
	return len(b.batches) - 1
}

const (
	int16Max = int16(32767)
	int16Min = int16(-32768)
)

// emitRenderTriangle deduplicates and appends tri's vertices, extends the
// active batch's bounds, and records its MOPY entry.
func (b *Batcher) emitRenderTriangle(mesh *meshdata.Mesh, tri meshdata.CornerTriangle, curBatch *Batch, vmap vertexMap) {
	triMat := TriangleMaterial{Flags: FRender, MaterialID: curBatch.MaterialID}

	collisionCount := 0
	for _, loop := range tri.Loops {
		vert := mesh.VertexOfLoop(loop)

		info := vertexInfo{
			vcol0: colorutil.RGBA{R: 0x7F, G: 0x7F, B: 0x7F, A: 0x00},
			vcol1: colorutil.RGBA{},
		}

		unpackCorner(mesh, b.cfg, loop, &info, &triMat.Flags)

		if !vmap.match(vert, &info, b.cfg.UseCustomNormals) {
			info.localIndex = b.newVert(mesh, vert, loop, curBatch, info)
			vmap.record(vert, info)
		}

		if mesh.IsInDeformGroup(vert, b.cfg.CollisionGroupID) {
			collisionCount++
		}

		b.triangleIndices = append(b.triangleIndices, uint16(info.localIndex))
		curBatch.IndicesCount++
	}

	if collisionCount != 3 {
		triMat.Flags |= FDetail
	}

	b.triangleMaterials = append(b.triangleMaterials, triMat)
}

// newVert pushes one element onto every active parallel array and
// returns the new local index.
func (b *Batcher) newVert(mesh *meshdata.Mesh, vert, loop uint32, curBatch *Batch, info vertexInfo) uint32 {
	localIndex := uint32(len(b.vertices))

	worldPos := vecmath.TransformPoint(b.cfg.MeshMatrixWorld, mesh.Positions[vert])
	b.vertices = append(b.vertices, worldPos)

	normalMtx := vecmath.NormalMatrix(b.cfg.MeshMatrixWorld)
	sourceNormal := mesh.VertexNormals[vert]
	if b.cfg.UseCustomNormals && mesh.HasLoopNormals() {
		sourceNormal = mesh.LoopNormals[loop]
	}
	b.normals = append(b.normals, vecmath.TransformNormal(normalMtx, sourceNormal))

	b.texCoords = append(b.texCoords, info.uv0)
	if b.hasUV2 {
		b.texCoords2 = append(b.texCoords2, info.uv1)
	}
	if b.cfg.UseVertexColor {
		b.vertexColors = append(b.vertexColors, info.vcol0)
	}
	if b.hasBlendmap {
		b.vertexColors2 = append(b.vertexColors2, info.vcol1)
	}

	b.extendBounds(worldPos)
	if !b.cfg.UseLargeMaterialID {
		b.extendBatchBounds(curBatch, worldPos)
	}

	return localIndex
}

func (b *Batcher) extendBounds(v vecmath.Vector3) {
	b.bbox.Extend(v)
}

func (b *Batcher) extendBatchBounds(batch *Batch, v vecmath.Vector3) {
	for i := 0; i < 3; i++ {
		r := vecmath.RoundAwayFromZero(v[i])
		if r < batch.BBMin[i] {
			batch.BBMin[i] = r
		}
		if r > batch.BBMax[i] {
			batch.BBMax[i] = r
		}
	}
}

// BBMin returns the mesh-wide float bounding box minimum.
func (b *Batcher) BBMin() vecmath.Vector3 { return b.bbox.Min }

// BBMax returns the mesh-wide float bounding box maximum.
func (b *Batcher) BBMax() vecmath.Vector3 { return b.bbox.Max }

// TransBatchCount returns the number of TRANS batches emitted.
func (b *Batcher) TransBatchCount() uint16 { return b.transCount }

// IntBatchCount returns the number of INT batches emitted.
func (b *Batcher) IntBatchCount() uint16 { return b.intCount }

// ExtBatchCount returns the number of EXT batches emitted.
func (b *Batcher) ExtBatchCount() uint16 { return b.extCount }

package batch

import (
	"wmoexport/colorutil"
	"wmoexport/vecmath"
)

// vertexMap is the fresh per-batch source_vertex_id -> candidates table.
type vertexMap map[uint32][]vertexInfo

// match scans the candidates stored for vert against info. On a match it
// writes the stored local index into info and reports true; the caller
// must allocate a fresh vertex when it reports false.
func (m vertexMap) match(vert uint32, info *vertexInfo, useCustomNormals bool) bool {
	for _, stored := range m[vert] {
		if !vecmath.ApproxEqualV2(stored.uv0, info.uv0, vecmath.UVConnectLimit) ||
			!vecmath.ApproxEqualV2(stored.uv1, info.uv1, vecmath.UVConnectLimit) ||
			!colorutil.Equal(stored.vcol0, info.vcol0) ||
			!colorutil.Equal(stored.vcol1, info.vcol1) {
			continue
		}

		if useCustomNormals && !vecmath.ApproxEqualV3(stored.loopNormal, info.loopNormal, vecmath.UVConnectLimit) {
			continue
		}

		info.localIndex = stored.localIndex
		return true
	}
	return false
}

func (m vertexMap) record(vert uint32, info vertexInfo) {
	m[vert] = append(m[vert], info)
}

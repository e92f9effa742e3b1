package batch

import (
	"wmoexport/colorutil"
	"wmoexport/meshdata"
	"wmoexport/vecmath"
)

// unpackCorner fills in info from the mesh's named attribute layers for
// the given loop, folding in the F_UNK01 lightmap-attenuation flag onto
// triFlags when applicable.
func unpackCorner(mesh *meshdata.Mesh, cfg Config, loop uint32, info *vertexInfo, triFlags *uint8) {
	if cfg.UseVertexColor {
		if colLayer, ok := mesh.Attrs.Color("Col"); ok {
			c := mesh.ColorAt(colLayer, loop)
			// storage is BGR: swap red and blue.
			info.vcol0.R = c.B
			info.vcol0.G = c.G
			info.vcol0.B = c.R

			if lightLayer, ok := mesh.Attrs.Color("Lightmap"); ok {
				attenuation := colorutil.Grayscale(mesh.ColorAt(lightLayer, loop))
				if attenuation > 0 {
					*triFlags |= FUnk01
				}
				info.vcol0.A = attenuation
			}
		}
	}

	if blendLayer, ok := mesh.Attrs.Color("Blendmap"); ok {
		info.vcol1.A = colorutil.Grayscale(mesh.ColorAt(blendLayer, loop))
	}

	if uv0, ok := mesh.Attrs.UV("UVMap"); ok {
		info.uv0 = flipV(uv0[loop])
	}

	if uv1, ok := mesh.Attrs.UV("UVMap.001"); ok {
		info.uv1 = flipV(uv1[loop])
	}

	if cfg.UseCustomNormals && mesh.HasLoopNormals() {
		info.loopNormal = mesh.LoopNormals[loop]
	}
}

func flipV(uv vecmath.Vector2) vecmath.Vector2 {
	return vecmath.Vector2{uv[0], 1.0 - uv[1]}
}

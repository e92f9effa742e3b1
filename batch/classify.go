package batch

import (
	"wmoexport/colorutil"
	"wmoexport/meshdata"
)

// classify reports a render triangle's batch type: TRANS if all
// three corners are keyed in BatchmapTrans, else INT if all three are
// keyed in BatchmapInt, else EXT. Absent either layer, every triangle is
// EXT.
func classify(mesh *meshdata.Mesh, tri meshdata.CornerTriangle) Type {
	transLayer, hasTrans := mesh.Attrs.Color("BatchmapTrans")
	intLayer, hasInt := mesh.Attrs.Color("BatchmapInt")

	if !hasTrans && !hasInt {
		return Ext
	}

	transCount, intCount := 0, 0
	for _, loop := range tri.Loops {
		if hasTrans && colorutil.IsKeyed(rgbOnly(mesh.ColorAt(transLayer, loop))) {
			transCount++
		}
		if hasInt && colorutil.IsKeyed(rgbOnly(mesh.ColorAt(intLayer, loop))) {
			intCount++
		}
	}

	switch {
	case transCount == 3:
		return Trans
	case intCount == 3:
		return Int
	default:
		return Ext
	}
}

// rgbOnly clears alpha before the keyed test: layer reads always
// synthesise alpha as 0xFF, so only R/G/B say whether a corner is painted.
func rgbOnly(c colorutil.RGBA) colorutil.RGBA {
	c.A = 0
	return c
}

package meshdata

import (
	"wmoexport/colorutil"
	"wmoexport/vecmath"
)

// ColorKind distinguishes the two physical storage shapes a named color
// layer can have: 8-bit byte color, or linear float color.
type ColorKind int

const (
	// ColorKindByte stores already-8-bit color; R/G/B are used as-is and
	// alpha is always synthesised as 0xFF.
	ColorKindByte ColorKind = iota
	// ColorKindFloat stores linear-space float color; R/G/B only (alpha
	// is ignored at the source and synthesised as 0xFF downstream).
	ColorKindFloat
)

// ColorLayer is a named color attribute layer, per-loop or per-vertex,
// stored as byte color or float color. Mesh.ColorAt hides the distinction
// and always returns an 8-bit sRGB RGBA value.
type ColorLayer struct {
	PerLoop bool
	Kind    ColorKind

	byteData  []colorutil.RGBA // raw storage; alpha ignored, forced to 0xFF on read
	floatData [][3]float32     // raw linear R,G,B in [0,1]; alpha ignored
}

// NewByteColorLayer wraps raw per-entry byte color storage.
func NewByteColorLayer(perLoop bool, data []colorutil.RGBA) *ColorLayer {
	return &ColorLayer{PerLoop: perLoop, Kind: ColorKindByte, byteData: data}
}

// NewFloatColorLayer wraps raw per-entry linear float color storage.
func NewFloatColorLayer(perLoop bool, data [][3]float32) *ColorLayer {
	return &ColorLayer{PerLoop: perLoop, Kind: ColorKindFloat, floatData: data}
}

// Len returns the number of entries backing this layer.
func (l *ColorLayer) Len() int {
	if l.Kind == ColorKindByte {
		return len(l.byteData)
	}
	return len(l.floatData)
}

// at returns the color stored at raw storage index idx, converting float
// storage through the same quantize-then-gamma-correct path the legacy
// exporter used: scale the 0..1 linear channel to a byte first, then run
// that byte through the sRGB curve. This double-quantizes versus a
// direct float->sRGB conversion, and is preserved exactly rather than
// silently corrected.
func (l *ColorLayer) at(idx int) colorutil.RGBA {
	if l.Kind == ColorKindByte {
		c := l.byteData[idx]
		return colorutil.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}

	f := l.floatData[idx]
	quantized := colorutil.RGBA{
		R: uint8(f[0] * 255.0),
		G: uint8(f[1] * 255.0),
		B: uint8(f[2] * 255.0),
		A: 0xFF,
	}
	return colorutil.LinearToSRGB(quantized)
}

// UVLayer is a named per-loop UV attribute layer, stored exactly as
// authored (no V-flip — that happens where the batcher unpacks a
// corner).
type UVLayer []vecmath.Vector2

// AttrTable resolves named per-loop/per-vertex attribute layers by exact
// string, the way the host content tool's custom-data system does.
type AttrTable struct {
	ColorLayers map[string]*ColorLayer
	UVLayers    map[string]UVLayer
}

// Color looks up a named color layer. The second return reports
// existence; callers must check it before calling ColorAt.
func (t AttrTable) Color(name string) (*ColorLayer, bool) {
	l, ok := t.ColorLayers[name]
	return l, ok
}

// UV looks up a named per-loop UV layer.
func (t AttrTable) UV(name string) (UVLayer, bool) {
	l, ok := t.UVLayers[name]
	return l, ok
}

// ColorAt reads layer at loopIndex, resolving loop->vertex first when the
// layer is stored per-vertex.
func (m *Mesh) ColorAt(layer *ColorLayer, loopIndex uint32) colorutil.RGBA {
	idx := int(loopIndex)
	if !layer.PerLoop {
		idx = int(m.VertexOfLoop(loopIndex))
	}
	return layer.at(idx)
}

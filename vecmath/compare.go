package vecmath

import "math"

// UVConnectLimit is the tolerance used to decide whether two UV/normal
// values are "the same" for vertex-dedup purposes and for the BSP's
// near-zero edge-direction checks. 1/4096 matches the legacy content
// tool's stitching tolerance.
const UVConnectLimit = 1.0 / 4096.0

// ApproxEqualF reports whether a and b differ by no more than maxDiff.
func ApproxEqualF(a, b, maxDiff float32) bool {
	return float32(math.Abs(float64(a-b))) <= maxDiff
}

// ApproxEqualV2 compares two Vector2 component-wise within limit.
func ApproxEqualV2(a, b Vector2, limit float32) bool {
	return ApproxEqualF(a[0], b[0], limit) && ApproxEqualF(a[1], b[1], limit)
}

// ApproxEqualV3 compares two Vector3 component-wise within limit.
func ApproxEqualV3(a, b Vector3, limit float32) bool {
	return ApproxEqualF(a[0], b[0], limit) &&
		ApproxEqualF(a[1], b[1], limit) &&
		ApproxEqualF(a[2], b[2], limit)
}

// RoundAwayFromZero implements the legacy quantized-AABB rounding rule:
// round(x) = sign(x) * ceil(|x|). Used only for the per-batch int16 AABB.
func RoundAwayFromZero(x float32) int16 {
	sign := int16(1)
	if x < 0 {
		sign = -1
	}
	base := int16(math.Ceil(math.Abs(float64(x))))
	return sign * base
}

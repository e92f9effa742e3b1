package bsp

import (
	"wmoexport/vecmath"
)

// collideBoxTri reports whether box and tri overlap, using the
// separating-axis test: the three world axes, three
// triangle-edge projections through projectPoint, and a plane-box test.
func collideBoxTri(box vecmath.BoundingBox, tri [3]vecmath.Vector3) bool {
	triMin, triMax := minMax(tri[:])

	if !projOverlap(box.Min[0], box.Max[0], triMin[0], triMax[0]) ||
		!projOverlap(box.Min[1], box.Max[1], triMin[1], triMax[1]) ||
		!projOverlap(box.Min[2], box.Max[2], triMin[2], triMax[2]) {
		return false
	}

	corners := box.Corners()

	e0 := tri[1].Sub(tri[0])
	if projectedAxisSeparates(projectAll(corners[:], e0), projectAll(tri[:], e0)) {
		return false
	}

	e1 := tri[2].Sub(tri[1])
	if projectedAxisSeparates(projectAll(corners[:], e1), projectAll(tri[:], e1)) {
		return false
	}

	e2 := tri[0].Sub(tri[2])
	if projectedAxisSeparates(projectAll(corners[:], e2), projectAll(tri[:], e2)) {
		return false
	}

	if !planeBoxOverlap(e0.Cross(e1), tri[0], box) {
		return false
	}

	return true
}

func projectAll(pts []vecmath.Vector3, v vecmath.Vector3) []vecmath.Vector3 {
	out := make([]vecmath.Vector3, len(pts))
	for i, p := range pts {
		out[i] = projectPoint(p, v)
	}
	return out
}

// projectedAxisSeparates reports whether the two projected point sets
// fail to overlap on any of their three components.
func projectedAxisSeparates(boxPts, triPts []vecmath.Vector3) bool {
	boxMin, boxMax := minMax(boxPts)
	triMin, triMax := minMax(triPts)
	return !projOverlap(boxMin[0], boxMax[0], triMin[0], triMax[0]) ||
		!projOverlap(boxMin[1], boxMax[1], triMin[1], triMax[1]) ||
		!projOverlap(boxMin[2], boxMax[2], triMin[2], triMax[2])
}

func minMax(pts []vecmath.Vector3) (vecmath.Vector3, vecmath.Vector3) {
	min := pts[0]
	max := pts[0]
	for _, v := range pts {
		if v[0] < min[0] {
			min[0] = v[0]
		} else if v[0] > max[0] {
			max[0] = v[0]
		}
		if v[1] < min[1] {
			min[1] = v[1]
		} else if v[1] > max[1] {
			max[1] = v[1]
		}
		if v[2] < min[2] {
			min[2] = v[2]
		} else if v[2] > max[2] {
			max[2] = v[2]
		}
	}
	return min, max
}

func projOverlap(min1, max1, min2, max2 float32) bool {
	return !(max1 < min2 || max2 < min1)
}

// projectPoint is deliberately NOT a textbook SAT edge projection. The
// component assignments below (x/y/z mixed across axes) reproduce a
// transcription quirk in the legacy exporter verbatim, kept bit-for-bit
// so the emitted tree matches what the legacy client expects.
func projectPoint(pt, v vecmath.Vector3) vecmath.Vector3 {
	var proj vecmath.Vector3
	var l float32

	if vecmath.ApproxEqualF(v[1], 0, vecmath.UVConnectLimit) {
		l = 0
	} else {
		l = -pt[1] / v[1]
	}
	proj[2] = pt[0] + l*v[0]

	if vecmath.ApproxEqualF(v[2], 0, vecmath.UVConnectLimit) {
		l = 0
	} else {
		l = -pt[2] / v[2]
	}
	proj[1] = pt[0] + l*v[0]

	proj[0] = pt[1] + l*v[1]

	return proj
}

// planeBoxOverlap tests the triangle plane (normal, through vert) against
// box using only the far vertex per axis.
func planeBoxOverlap(normal, vert vecmath.Vector3, box vecmath.BoundingBox) bool {
	var vMax vecmath.Vector3

	for i := 0; i < 3; i++ {
		v := vert[i]
		if normal[i] > 0 {
			vMax[i] = box.Max[i] - v
		} else {
			vMax[i] = box.Min[i] - v
		}
	}

	return normal.Dot(vMax) >= 0
}

package walker

import (
	"github.com/go-gl/mathgl/mgl64"
)

// projectOntoTangent removes the component of v along normal and normalizes the remainder.
// ok is false when the remainder is too short to normalize safely.
func projectOntoTangent(v, normal mgl64.Vec3, minLenSq float64) (projected mgl64.Vec3, ok bool) {
	p := v.Sub(normal.Mul(v.Dot(normal)))
	if p.LenSqr() < minLenSq {
		return mgl64.Vec3{}, false
	}
	return p.Normalize(), true
}

// storedForward returns the stored facing direction in the body frame.
func (o *surfaceObserver) storedForward() mgl64.Vec3 {
	return o.orientation.Rotate(CanonicalForward)
}

// levelForward projects the stored forward onto the tangent plane at normal.
// When the stored forward is parallel to the normal, CanonicalForward is projected instead, and world +X after that.
// For a unit normal at least one of the two fallbacks always has a usable projection.
func (o *surfaceObserver) levelForward(normal mgl64.Vec3) mgl64.Vec3 {
	for _, candidate := range [...]mgl64.Vec3{o.storedForward(), CanonicalForward, fallbackAxis} {
		if forward, ok := projectOntoTangent(candidate, normal, o.cfg.DegenerateLenSq); ok {
			return forward
		}
	}
	return fallbackAxis
}

func (o *surfaceObserver) TangentFrame() TangentFrame {
	normal := o.localPosition.Normalize()
	forward := o.levelForward(normal)
	right := forward.Cross(normal).Normalize()

	yaw := mgl64.QuatRotate(o.yaw, normal)
	return TangentFrame{
		Forward: yaw.Rotate(forward),
		Right:   yaw.Rotate(right),
		Normal:  normal,
	}
}

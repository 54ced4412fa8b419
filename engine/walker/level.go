package walker

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func (o *surfaceObserver) AutoLevel(deltaTime float64) {
	if o.cfg.AutoLevelStrength <= 0 || deltaTime <= 0 {
		return
	}

	normal := o.localPosition.Normalize()
	forward, ok := projectOntoTangent(o.storedForward(), normal, o.cfg.DegenerateLenSq)
	if !ok {
		return
	}

	target := levelOrientation(forward, normal)
	amount := math.Min(1, o.cfg.AutoLevelStrength*deltaTime*10)
	o.orientation = slerpShortest(o.orientation, target, amount).Normalize()
}

// levelOrientation builds the orientation whose basis is {right, normal, -forward}, i.e. the rotation that maps
// CanonicalForward to forward and +Y to normal. forward must be a unit vector orthogonal to normal.
func levelOrientation(forward, normal mgl64.Vec3) mgl64.Quat {
	right := forward.Cross(normal).Normalize()
	basis := mgl64.Mat4FromCols(
		right.Vec4(0),
		normal.Vec4(0),
		forward.Mul(-1).Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return mgl64.Mat4ToQuat(basis).Normalize()
}

// slerpShortest interpolates along the shorter arc between two unit quaternions.
func slerpShortest(from, to mgl64.Quat, amount float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, amount)
}

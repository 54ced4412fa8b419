package walker

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func (o *surfaceObserver) Move(intent MovementIntent, deltaTime float64) bool {
	if !intent.Moving() || deltaTime <= 0 {
		return false
	}

	frame := o.TangentFrame()

	speed := o.cfg.WalkSpeed
	if intent.Sprint {
		speed *= o.cfg.SprintMultiplier
	}
	step := speed * deltaTime

	// Diagonal input is summed without renormalization.
	var move mgl64.Vec3
	if intent.Forward {
		move = move.Add(frame.Forward.Mul(step))
	}
	if intent.Backward {
		move = move.Sub(frame.Forward.Mul(step))
	}
	if intent.Right {
		move = move.Add(frame.Right.Mul(step))
	}
	if intent.Left {
		move = move.Sub(frame.Right.Mul(step))
	}

	// move lies in the tangent plane, so the sum is never shorter than the unit position.
	o.localPosition = o.localPosition.Add(move).Normalize()
	o.transport(frame.Normal, o.localPosition)
	return true
}

// transport rotates the stored orientation by the rotation that carries oldNormal onto newNormal,
// keeping "forward" consistent while walking over curved terrain.
func (o *surfaceObserver) transport(oldNormal, newNormal mgl64.Vec3) {
	axis := oldNormal.Cross(newNormal)
	if axis.LenSqr() <= o.cfg.RotationAxisLenSq {
		return
	}

	angle := math.Acos(mgl64.Clamp(oldNormal.Dot(newNormal), -1, 1))
	rotation := mgl64.QuatRotate(angle, axis.Normalize())
	o.orientation = rotation.Mul(o.orientation).Normalize()
}

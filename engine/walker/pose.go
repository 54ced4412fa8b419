package walker

import (
	"github.com/go-gl/mathgl/mgl64"
)

func (o *surfaceObserver) Pose(body HostBody) Pose {
	frame := o.TangentFrame()

	// The pitch axis is horizontal and perpendicular to the yawed look direction.
	look := frame.Forward
	pitchAxis := frame.Normal.Cross(look).Normalize()
	look = mgl64.QuatRotate(o.pitch, pitchAxis).Rotate(look)

	position := body.Center.Add(o.localPosition.Mul(body.Radius * (1 + o.cfg.SurfaceHeight)))
	return Pose{
		Position:  position,
		Up:        frame.Normal,
		Direction: look,
		Target:    position.Add(look),
	}
}

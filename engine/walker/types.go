// package walker implements first-person locomotion on the surface of a spinning sphere. An observer keeps a unit position
// relative to the body center and a quaternion that tracks its "forward" direction, so walking over the poles never hits the
// singularities of a latitude/longitude parameterization.
package walker

import (
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// CanonicalForward is the body-local facing direction of an identity orientation.
	CanonicalForward = mgl64.Vec3{0, 0, -1}

	// SpinAxis is the axis every host body spins about.
	SpinAxis = mgl64.Vec3{0, 1, 0}

	// NorthPole is the unit position a fresh observer starts at.
	NorthPole = mgl64.Vec3{0, 1, 0}

	// fallbackAxis is projected when both the stored and canonical forward directions are parallel to the surface normal.
	fallbackAxis = mgl64.Vec3{1, 0, 0}
)

// HostBody is a read-only snapshot of the sphere an observer walks on, taken once per frame.
type HostBody struct {
	// Center is the world-space position of the body center.
	Center mgl64.Vec3
	// Radius is the current (scaled) radius of the body.
	Radius float64
	// SpinAngle is the accumulated rotation of the body about SpinAxis, in radians.
	SpinAngle float64
}

// MovementIntent is the set of movement keys held during a frame.
type MovementIntent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
}

// Moving reports whether any directional key is held. Sprint alone does not move the observer.
//
// Returns:
//   - bool: true if at least one of forward, backward, left or right is set
func (m MovementIntent) Moving() bool {
	return m.Forward || m.Backward || m.Left || m.Right
}

// TangentFrame is the orthonormal basis at the observer's location after yaw has been applied.
type TangentFrame struct {
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Normal  mgl64.Vec3
}

// Pose is the camera transform produced for a frame.
type Pose struct {
	// Position is the world-space eye position.
	Position mgl64.Vec3
	// Up is the camera up vector (the surface normal).
	Up mgl64.Vec3
	// Direction is the unit look direction after yaw and pitch.
	Direction mgl64.Vec3
	// Target is Position + Direction.
	Target mgl64.Vec3
}

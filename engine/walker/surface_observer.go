package walker

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// surfaceObserver is the single implementation of SurfaceObserver.
// It is owned by one player controller and is not safe for concurrent use.
type surfaceObserver struct {
	cfg Config

	// localPosition is the unit direction from the body center to the observer.
	localPosition mgl64.Vec3
	// orientation maps CanonicalForward to the stored facing direction in the body frame.
	orientation mgl64.Quat

	// Look angles driven by pointer input
	yaw   float64
	pitch float64

	// lastSpinAngle is the host body spin angle seen by the previous SyncRotation.
	lastSpinAngle float64
}

// SurfaceObserver is a first-person observer constrained to the surface of a unit sphere.
// One observer exists per walking session; it is created at the north pole of the body and discarded when walking ends.
type SurfaceObserver interface {
	// LocalPosition returns the observer's unit position relative to the body center.
	//
	// Returns:
	//   - mgl64.Vec3: unit-length surface position
	LocalPosition() mgl64.Vec3

	// Orientation returns the unit quaternion that maps CanonicalForward to the stored forward direction.
	//
	// Returns:
	//   - mgl64.Quat: the stored orientation
	Orientation() mgl64.Quat

	// Yaw returns the look yaw in radians, applied about the surface normal.
	//
	// Returns:
	//   - float64: yaw in radians
	Yaw() float64

	// Pitch returns the look pitch in radians, within [-π/2, π/2].
	//
	// Returns:
	//   - float64: pitch in radians
	Pitch() float64

	// SetYaw sets the look yaw.
	//
	// Parameters:
	//   - yaw: yaw in radians
	SetYaw(yaw float64)

	// SetPitch sets the look pitch, clamped to [-π/2, π/2].
	//
	// Parameters:
	//   - pitch: pitch in radians
	SetPitch(pitch float64)

	// AddLook offsets yaw and pitch by already-scaled deltas. Pitch is clamped after the offset.
	//
	// Parameters:
	//   - dYaw: yaw offset in radians
	//   - dPitch: pitch offset in radians
	AddLook(dYaw, dPitch float64)

	// LastSpinAngle returns the host spin angle recorded by the previous rotation sync.
	//
	// Returns:
	//   - float64: spin angle in radians
	LastSpinAngle() float64

	// Config returns the tuning the observer was built with.
	//
	// Returns:
	//   - Config: observer configuration
	Config() Config

	// SyncRotation carries the observer along with the host body's spin since the previous call.
	// The spin angle is always recorded; the position and orientation only change when the delta exceeds the spin epsilon.
	//
	// Parameters:
	//   - spinAngle: the host body's current spin angle in radians
	//
	// Returns:
	//   - bool: true if a rotation was applied
	SyncRotation(spinAngle float64) bool

	// TangentFrame derives the yawed forward/right/normal basis at the current position.
	//
	// Returns:
	//   - TangentFrame: mutually orthogonal unit vectors
	TangentFrame() TangentFrame

	// Move integrates one frame of movement in the tangent plane, projects the result back onto the sphere
	// and transports the stored orientation to the new position.
	//
	// Parameters:
	//   - intent: movement keys held this frame
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - bool: true if the observer's position was updated
	Move(intent MovementIntent, deltaTime float64) bool

	// AutoLevel pulls the stored orientation back toward the tangent plane to cancel accumulated drift.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	AutoLevel(deltaTime float64)

	// Pose computes the camera transform for the given body snapshot. It does not modify the observer.
	//
	// Parameters:
	//   - body: the host body snapshot for this frame
	//
	// Returns:
	//   - Pose: camera position, up, look direction and target
	Pose(body HostBody) Pose

	// Update runs one full frame: rotation sync, movement, pose output and auto-level.
	//
	// Parameters:
	//   - body: the host body snapshot for this frame
	//   - intent: movement keys held this frame
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - Pose: the camera transform for this frame
	Update(body HostBody, intent MovementIntent, deltaTime float64) Pose
}

var _ SurfaceObserver = &surfaceObserver{}

// NewSurfaceObserver creates an observer standing on the north pole, facing CanonicalForward with zero yaw and pitch.
//
// Parameters:
//   - spinAngle: the host body's spin angle at the moment walking starts
//   - options: functional options to configure the observer
//
// Returns:
//   - SurfaceObserver: the newly created observer
func NewSurfaceObserver(spinAngle float64, options ...SurfaceObserverOption) SurfaceObserver {
	o := &surfaceObserver{
		cfg:           DefaultConfig(),
		localPosition: NorthPole,
		orientation:   mgl64.QuatIdent(),
		lastSpinAngle: spinAngle,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *surfaceObserver) LocalPosition() mgl64.Vec3 {
	return o.localPosition
}

func (o *surfaceObserver) Orientation() mgl64.Quat {
	return o.orientation
}

func (o *surfaceObserver) Yaw() float64 {
	return o.yaw
}

func (o *surfaceObserver) Pitch() float64 {
	return o.pitch
}

func (o *surfaceObserver) SetYaw(yaw float64) {
	o.yaw = yaw
}

func (o *surfaceObserver) SetPitch(pitch float64) {
	o.pitch = mgl64.Clamp(pitch, -math.Pi/2, math.Pi/2)
}

func (o *surfaceObserver) AddLook(dYaw, dPitch float64) {
	o.yaw += dYaw
	o.SetPitch(o.pitch + dPitch)
}

func (o *surfaceObserver) LastSpinAngle() float64 {
	return o.lastSpinAngle
}

func (o *surfaceObserver) Config() Config {
	return o.cfg
}

func (o *surfaceObserver) SyncRotation(spinAngle float64) bool {
	delta := spinAngle - o.lastSpinAngle
	o.lastSpinAngle = spinAngle
	if math.Abs(delta) <= o.cfg.SpinEpsilon {
		return false
	}

	spin := mgl64.QuatRotate(delta, SpinAxis)
	o.localPosition = spin.Rotate(o.localPosition).Normalize()
	o.orientation = spin.Mul(o.orientation).Normalize()
	return true
}

func (o *surfaceObserver) Update(body HostBody, intent MovementIntent, deltaTime float64) Pose {
	o.SyncRotation(body.SpinAngle)
	o.Move(intent, deltaTime)
	pose := o.Pose(body)
	o.AutoLevel(deltaTime)
	return pose
}

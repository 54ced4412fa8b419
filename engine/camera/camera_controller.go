package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the interface the Camera reads its pose from.
// Controllers own positional state (position, target, up). Camera reads from the controller
// and computes view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector in world space
	Up() mgl32.Vec3
}

// OrbitController provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point. Its up vector is always world +Y.
type OrbitController interface {
	CameraController

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	// The camera keeps its offset from the target, so moving the target carries the camera along.
	//
	// Parameters:
	//   - target: world-space pivot point
	SetTarget(target mgl32.Vec3)

	// LookFrom places the camera at a world-space position, deriving the spherical coordinates from its offset to
	// the current target. Radius and elevation are clamped to their bounds.
	//
	// Parameters:
	//   - position: world-space camera position
	LookFrom(position mgl32.Vec3)

	// Orbit rotates the camera around the target. Deltas are scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dAzimuth: horizontal delta (e.g. mouse x movement)
	//   - dElevation: vertical delta (e.g. mouse y movement)
	Orbit(dAzimuth, dElevation float32)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetRadiusBounds changes the allowed radius range and re-clamps the current radius.
	//
	// Parameters:
	//   - minRadius: minimum zoom distance
	//   - maxRadius: maximum zoom distance
	SetRadiusBounds(minRadius, maxRadius float32)
}

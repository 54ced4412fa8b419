package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in radians. Non-positive values keep the default.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if fov > 0 {
			c.fov = fov
		}
	}
}

// WithFovDegrees sets the vertical field of view in degrees.
func WithFovDegrees(degrees float32) CameraBuilderOption {
	return WithFov(mgl32.DegToRad(degrees))
}

// WithAspect sets the aspect ratio (width / height). Non-positive values keep the default.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithClipRange sets both clipping plane distances.
//
// Parameters:
//   - near: near plane distance, 0.001 lets a walking observer see the ground at their feet
//   - far: far plane distance, large enough to contain the outermost orbit
//
// Returns:
//   - CameraBuilderOption: functional option to set the clip range
func WithClipRange(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near, c.far = near, far
	}
}

// WithController attaches the controller the camera reads its position, target and up vector from.
// The camera computes its matrices from the controller once all options are applied.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
// When up is parallel to the view direction (looking straight along the up vector) a perpendicular up is substituted so
// the matrix never contains NaN.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation
//
// Returns:
//   - mgl32.Mat4: the view matrix (column-major)
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	forward := center.Sub(eye)
	if forward.LenSqr() == 0 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()

	if up.LenSqr() == 0 || forward.Cross(up).LenSqr() < 1e-10 {
		up = PerpendicularTo(forward)
	}
	return mgl32.LookAtV(eye, eye.Add(forward), up)
}

// PerpendicularTo returns a unit vector perpendicular to v, preferring world +Y then world +Z.
//
// Parameters:
//   - v: a non-zero vector
//
// Returns:
//   - mgl32.Vec3: a unit vector orthogonal to v
func PerpendicularTo(v mgl32.Vec3) mgl32.Vec3 {
	for _, axis := range [...]mgl32.Vec3{{0, 1, 0}, {0, 0, 1}} {
		if c := v.Cross(axis); c.LenSqr() > 1e-10 {
			return c.Cross(v).Normalize()
		}
	}
	return mgl32.Vec3{1, 0, 0}
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space depth range [0, 1] instead of OpenGL's [-1, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ScreenRay converts a window-space cursor position into a world-space ray from the eye.
// Window coordinates have their origin in the top-left corner, matching GLFW cursor positions.
// The ray is built in float64 from the view basis and the field of view, so it stays accurate for near planes
// far too small for a float32 inverse projection.
//
// Parameters:
//   - eye, center, up: the camera placement as passed to LookAt
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - x, y: cursor position in pixels
//   - width, height: viewport size in pixels
//
// Returns:
//   - origin: the eye position
//   - direction: unit ray direction
//   - ok: false if the viewport is empty or eye and center coincide
func ScreenRay(eye, center, up mgl32.Vec3, fovY, aspect, x, y float32, width, height int) (origin, direction mgl32.Vec3, ok bool) {
	if width <= 0 || height <= 0 {
		return origin, direction, false
	}
	e := Vec64(eye)
	forward := Vec64(center).Sub(e)
	if forward.Len() == 0 {
		return origin, direction, false
	}
	forward = forward.Normalize()

	right := forward.Cross(Vec64(up))
	if right.Len() < 1e-5 {
		right = forward.Cross(Vec64(PerpendicularTo(Vec32(forward))))
	}
	right = right.Normalize()
	camUp := right.Cross(forward)

	tanHalf := math.Tan(float64(fovY) / 2)
	ndcX := 2*float64(x)/float64(width) - 1
	ndcY := 1 - 2*float64(y)/float64(height)

	dir := forward.
		Add(right.Mul(ndcX * tanHalf * float64(aspect))).
		Add(camUp.Mul(ndcY * tanHalf))
	return eye, Vec32(dir.Normalize()), true
}

// InverseMat4 inverts m in float64 and narrows the result. Projections with a tiny near plane lose too much
// precision when inverted in float32.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - mgl32.Mat4: the inverse, or the zero matrix if m is singular
func InverseMat4(m mgl32.Mat4) mgl32.Mat4 {
	inv := Mat64(m).Inv()
	var out mgl32.Mat4
	for i, v := range inv {
		out[i] = float32(v)
	}
	return out
}

// Mat64 widens a float32 matrix to float64.
func Mat64(m mgl32.Mat4) mgl64.Mat4 {
	var out mgl64.Mat4
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

// Vec32 narrows a float64 vector to float32 for GPU-facing code.
//
// Parameters:
//   - v: the float64 vector
//
// Returns:
//   - mgl32.Vec3: the converted vector
func Vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Vec64 widens a float32 vector to float64 for simulation code.
//
// Parameters:
//   - v: the float32 vector
//
// Returns:
//   - mgl64.Vec3: the converted vector
func Vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

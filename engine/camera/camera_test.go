package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type fixedController struct {
	position, target, up mgl32.Vec3
}

func (f *fixedController) Position() mgl32.Vec3 { return f.position }
func (f *fixedController) Target() mgl32.Vec3   { return f.target }
func (f *fixedController) Up() mgl32.Vec3       { return f.up }

func TestOrbitController_SphericalPosition(t *testing.T) {
	cc := NewOrbitController(WithRadius(10), WithAzimuth(0), WithElevation(0))
	if got := cc.Position(); got.Sub(mgl32.Vec3{0, 0, 10}).Len() > 1e-4 {
		t.Errorf("Position() = %v, want (0, 0, 10)", got)
	}

	cc.SetTarget(mgl32.Vec3{1, 2, 3})
	if got := cc.Position(); got.Sub(mgl32.Vec3{1, 2, 13}).Len() > 1e-4 {
		t.Errorf("Position() after SetTarget = %v, want (1, 2, 13)", got)
	}
	if got := cc.Up(); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up() = %v", got)
	}
}

func TestOrbitController_LookFrom(t *testing.T) {
	cc := NewOrbitController()
	want := mgl32.Vec3{360, 180, 360}
	cc.LookFrom(want)

	if got := cc.Position(); got.Sub(want).Len() > 1e-2 {
		t.Errorf("Position() = %v, want %v", got, want)
	}
	if got := cc.Radius(); math.Abs(float64(got-540)) > 1e-2 {
		t.Errorf("Radius() = %v, want 540", got)
	}
}

func TestOrbitController_Bounds(t *testing.T) {
	cc := NewOrbitController(WithRadiusBounds(5, 50), WithElevationBounds(-0.5, 0.5), WithRadius(20))

	cc.Zoom(100)
	if got := cc.Radius(); got != 5 {
		t.Errorf("Radius() after zoom in = %v, want 5", got)
	}
	cc.SetRadius(1000)
	if got := cc.Radius(); got != 50 {
		t.Errorf("Radius() after SetRadius = %v, want 50", got)
	}
	cc.Orbit(0, 10000)
	if got := cc.Elevation(); got != 0.5 {
		t.Errorf("Elevation() = %v, want 0.5", got)
	}
	cc.SetRadiusBounds(60, 100)
	if got := cc.Radius(); got != 60 {
		t.Errorf("Radius() after SetRadiusBounds = %v, want 60", got)
	}
}

func TestCamera_ReadsUpFromController(t *testing.T) {
	ctrl := &fixedController{
		position: mgl32.Vec3{0, 0, 5},
		target:   mgl32.Vec3{},
		up:       mgl32.Vec3{1, 0, 0},
	}
	cam := NewCamera(WithController(ctrl))

	if got := cam.Up(); got != ctrl.up {
		t.Fatalf("Up() = %v, want %v", got, ctrl.up)
	}
	// world +X is screen up, so a point above the target on X projects to positive view Y
	p := cam.ViewMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if p.Y() <= 0 {
		t.Errorf("view-space y = %v, want > 0", p.Y())
	}

	ctrl.up = mgl32.Vec3{0, 1, 0}
	cam.Update()
	if got := cam.Up(); got != ctrl.up {
		t.Errorf("Up() after Update = %v, want %v", got, ctrl.up)
	}
}

func TestCamera_NearPlaneAndInverse(t *testing.T) {
	cam := NewCamera(WithController(NewOrbitController(WithRadius(10), WithElevation(0))), WithAspect(2))
	cam.SetNear(0.001)
	if got := cam.Near(); got != 0.001 {
		t.Errorf("Near() = %v", got)
	}

	id := common.Mat64(cam.ViewProjectionMatrix()).Mul4(common.Mat64(cam.InverseViewProjectionMatrix()))
	want := mgl64.Ident4()
	for i := range id {
		if math.Abs(id[i]-want[i]) > 1e-3 {
			t.Fatalf("VP * inv(VP) = %v", id)
		}
	}
}

func TestCamera_ScreenRayAndFrustum(t *testing.T) {
	cam := NewCamera(WithController(NewOrbitController(WithRadius(10), WithElevation(0), WithAzimuth(0))))

	origin, dir, ok := cam.ScreenRay(400, 300, 800, 600)
	if !ok {
		t.Fatal("ScreenRay returned !ok")
	}
	if dir.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-4 {
		t.Errorf("direction = %v", dir)
	}
	if origin.Z() > 10 || origin.Z() < 9.8 {
		t.Errorf("origin = %v", origin)
	}

	f := cam.Frustum()
	if !f.IntersectsSphere(mgl32.Vec3{}, 1) {
		t.Error("origin should be visible")
	}
	if f.IntersectsSphere(mgl32.Vec3{0, 0, 30}, 1) {
		t.Error("sphere behind the camera should not be visible")
	}
}

func TestCameraOptionsIgnoreInvalidValues(t *testing.T) {
	cam := NewCamera(WithFov(-1), WithAspect(0), WithClipRange(0.001, 500))
	if got := cam.Fov(); math.Abs(float64(got)-75*math.Pi/180) > 1e-6 {
		t.Errorf("fov = %v, want default 75 degrees", got)
	}
	if got := cam.Aspect(); got != 1 {
		t.Errorf("aspect = %v, want default 1", got)
	}
	if cam.Near() != 0.001 || cam.Far() != 500 {
		t.Errorf("clip range = %v..%v, want 0.001..500", cam.Near(), cam.Far())
	}

	cam = NewCamera(WithFovDegrees(90))
	if got := cam.Fov(); math.Abs(float64(got)-math.Pi/2) > 1e-6 {
		t.Errorf("fov = %v, want pi/2", got)
	}
}

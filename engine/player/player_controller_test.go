package player

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestController(options ...PlayerControllerOption) PlayerController {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlayerController(append([]PlayerControllerOption{WithLogger(logger)}, options...)...)
}

var earth = walker.HostBody{Center: mgl64.Vec3{10, 0, 0}, Radius: 2, SpinAngle: 0.5}

func TestMode_String(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		want string
	}{
		{ModeFlying, "flying"},
		{ModeWalking, "walking"},
		{Mode(7), "unknown"},
	} {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tc.mode, got, tc.want)
		}
	}
}

func TestPlayerController_StartsFlying(t *testing.T) {
	orbit := camera.NewOrbitController(camera.WithRadius(10), camera.WithElevation(0))
	p := newTestController(WithOrbitController(orbit))

	if p.Walking() || p.Observer() != nil {
		t.Fatal("new controller should be flying without an observer")
	}
	if got, want := p.Position(), orbit.Position(); got != want {
		t.Errorf("Position() = %v, want orbit position %v", got, want)
	}
	if got := p.Up(); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up() = %v", got)
	}
}

func TestPlayerController_EnterPlacesObserverAtPole(t *testing.T) {
	p := newTestController()
	if err := p.Enter("Earth", earth); err != nil {
		t.Fatalf("Enter() error = %v", err)
	}

	if p.Mode() != ModeWalking || p.BodyName() != "Earth" {
		t.Fatalf("mode = %v, body = %q", p.Mode(), p.BodyName())
	}
	obs := p.Observer()
	if obs.LocalPosition() != walker.NorthPole || obs.Yaw() != 0 || obs.Pitch() != 0 {
		t.Errorf("observer not reset: pos %v yaw %v pitch %v", obs.LocalPosition(), obs.Yaw(), obs.Pitch())
	}
	if obs.LastSpinAngle() != earth.SpinAngle {
		t.Errorf("LastSpinAngle() = %v, want %v", obs.LastSpinAngle(), earth.SpinAngle)
	}

	// 2 * 1.05 above the center
	want := mgl32.Vec3{10, 2.1, 0}
	if got := p.Position(); got.Sub(want).Len() > 1e-4 {
		t.Errorf("Position() = %v, want %v", got, want)
	}
	if got := p.Up(); got.Sub(mgl32.Vec3{0, 1, 0}).Len() > 1e-6 {
		t.Errorf("Up() = %v", got)
	}
}

func TestPlayerController_EnterWithoutBody(t *testing.T) {
	p := newTestController()
	for _, body := range []walker.HostBody{{}, {Radius: -1}, {Radius: math.NaN()}} {
		if err := p.Enter("nothing", body); !errors.Is(err, ErrNoBody) {
			t.Errorf("Enter(%v) error = %v, want ErrNoBody", body, err)
		}
	}
	if p.Walking() {
		t.Error("controller should still be flying")
	}
}

func TestPlayerController_ToggleAndExit(t *testing.T) {
	p := newTestController()

	mode, err := p.Toggle("Earth", earth)
	if err != nil || mode != ModeWalking {
		t.Fatalf("Toggle() = %v, %v", mode, err)
	}
	mode, err = p.Toggle("Earth", earth)
	if err != nil || mode != ModeFlying {
		t.Fatalf("Toggle() = %v, %v", mode, err)
	}
	if p.Observer() != nil || p.BodyName() != "" {
		t.Error("observer should be discarded on exit")
	}
	if got := p.Up(); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up() after exit = %v", got)
	}

	// Exit while flying is a no-op
	p.Exit()
	if p.Walking() {
		t.Error("Exit() while flying changed mode")
	}
}

func TestPlayerController_ReenterOnOtherBodyReinitializes(t *testing.T) {
	p := newTestController()
	if err := p.Enter("Earth", earth); err != nil {
		t.Fatal(err)
	}
	p.Update(0.1, 0, 0, walker.MovementIntent{Forward: true}, earth)
	if p.Observer().LocalPosition() == walker.NorthPole {
		t.Fatal("observer did not move")
	}

	mars := walker.HostBody{Center: mgl64.Vec3{0, 0, 30}, Radius: 1, SpinAngle: 2}
	if err := p.Enter("Mars", mars); err != nil {
		t.Fatal(err)
	}
	if p.Observer().LocalPosition() != walker.NorthPole || p.Observer().LastSpinAngle() != 2 {
		t.Error("observer was not re-initialized on the new body")
	}
	if p.BodyName() != "Mars" {
		t.Errorf("BodyName() = %q", p.BodyName())
	}
}

func TestPlayerController_WalkingLookSigns(t *testing.T) {
	p := newTestController()
	if err := p.Enter("Earth", earth); err != nil {
		t.Fatal(err)
	}

	// dragging right turns right (yaw decreases), dragging down looks down (pitch increases)
	p.Update(0, 100, 50, walker.MovementIntent{}, earth)
	obs := p.Observer()
	if math.Abs(obs.Yaw()-(-0.2)) > 1e-12 {
		t.Errorf("Yaw() = %v, want -0.2", obs.Yaw())
	}
	if math.Abs(obs.Pitch()-0.1) > 1e-12 {
		t.Errorf("Pitch() = %v, want 0.1", obs.Pitch())
	}

	p.Update(0, 0, 1e6, walker.MovementIntent{}, earth)
	if got := p.Observer().Pitch(); got != math.Pi/2 {
		t.Errorf("Pitch() = %v, want clamp to pi/2", got)
	}
	dir := p.Target().Sub(p.Position())
	for i, v := range dir {
		if math.IsNaN(float64(v)) {
			t.Fatalf("look direction[%d] is NaN", i)
		}
	}
}

func TestPlayerController_FlyingLookOrbits(t *testing.T) {
	orbit := camera.NewOrbitController(camera.WithRadius(10), camera.WithElevation(0), camera.WithMouseSensitivity(0.01))
	p := newTestController(WithOrbitController(orbit))

	p.Update(0.016, 0, 20, walker.MovementIntent{Forward: true}, earth)
	if got := orbit.Elevation(); math.Abs(float64(got)-0.2) > 1e-6 {
		t.Errorf("Elevation() = %v, want 0.2", got)
	}
	if p.Walking() {
		t.Error("flying update entered walking mode")
	}
}

func TestPlayerController_FollowsSpinningBody(t *testing.T) {
	p := newTestController(WithObserverOptions(walker.WithAutoLevelStrength(0)))
	if err := p.Enter("Earth", earth); err != nil {
		t.Fatal(err)
	}
	p.Update(0.1, 0, 0, walker.MovementIntent{Forward: true}, earth)
	before := p.Observer().LocalPosition()

	spun := earth
	spun.SpinAngle += 0.4
	p.Update(0.016, 0, 0, walker.MovementIntent{}, spun)

	want := mgl64.QuatRotate(0.4, walker.SpinAxis).Rotate(before)
	if got := p.Observer().LocalPosition(); got.Sub(want).Len() > 1e-9 {
		t.Errorf("LocalPosition() = %v, want %v", got, want)
	}
}

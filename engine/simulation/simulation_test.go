package simulation

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/celestial"
	"github.com/Carmen-Shannon/oxy-orrery/engine/input"
	"github.com/Carmen-Shannon/oxy-orrery/engine/player"
	"github.com/go-gl/mathgl/mgl32"
)

const frame = 1.0 / 60

func newTestSimulation(t *testing.T) Simulation {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	system := celestial.NewSystem(celestial.WithLogger(logger), celestial.WithSeed(7), celestial.WithWorkers(2))
	t.Cleanup(system.Close)

	sim := NewSimulation(WithLogger(logger), WithSystem(system), WithViewport(800, 600))
	if err := sim.LoadSystem("solar"); err != nil {
		t.Fatalf("LoadSystem: %v", err)
	}
	return sim
}

// press taps the key bound to kind in the default key map.
func press(t *testing.T, m input.Manager, kind input.CommandKind) {
	t.Helper()
	for key, k := range input.DefaultKeyMap().Commands {
		if k == kind {
			m.KeyDown(key)
			m.KeyUp(key)
			return
		}
	}
	t.Fatalf("no key bound to %s", kind)
}

func TestLoadSystemPlacesCamera(t *testing.T) {
	sim := newTestSimulation(t)

	orbit := sim.Player().Orbit()
	if got := orbit.Radius(); math.Abs(float64(got)-540) > 1e-3 {
		t.Errorf("orbit radius = %v, want 540", got)
	}
	want := mgl32.Vec3{360, 180, 360}
	if got := sim.Camera().Position(); got.Sub(want).Len() > 1e-2 {
		t.Errorf("camera position = %v, want %v", got, want)
	}
	if got := orbit.Target(); got != (mgl32.Vec3{}) {
		t.Errorf("orbit target = %v, want origin", got)
	}
	if got := sim.Picker().Selected(); got != 0 {
		t.Errorf("selected = %d, want 0", got)
	}
}

func TestLoadSystemUnknownKey(t *testing.T) {
	sim := newTestSimulation(t)

	err := sim.LoadSystem("andromeda")
	if !errors.Is(err, celestial.ErrUnknownSystem) {
		t.Fatalf("LoadSystem error = %v, want ErrUnknownSystem", err)
	}
	if got := sim.Status().System; got != "Solar System" {
		t.Errorf("system after failed load = %q, want Solar System", got)
	}
}

func TestLoadSystemExitsWalking(t *testing.T) {
	sim := newTestSimulation(t)
	press(t, sim.Input(), input.CommandToggleWalking)
	sim.Tick(frame)
	if !sim.Player().Walking() {
		t.Fatal("expected walking after toggle")
	}

	if err := sim.LoadSystem("jovian"); err != nil {
		t.Fatalf("LoadSystem: %v", err)
	}
	if sim.Player().Walking() {
		t.Error("still walking after LoadSystem")
	}
	if got := sim.Camera().Near(); got != FlyingNearPlane {
		t.Errorf("near = %v, want %v", got, FlyingNearPlane)
	}
	if got := sim.System().Len(); got != 7 {
		t.Errorf("body count = %d, want 7", got)
	}
}

func TestToggleWalkingSwitchesNearPlane(t *testing.T) {
	sim := newTestSimulation(t)

	press(t, sim.Input(), input.CommandToggleWalking)
	sim.Tick(frame)
	if got := sim.Player().Mode(); got != player.ModeWalking {
		t.Fatalf("mode = %s, want walking", got)
	}
	if got := sim.Player().BodyName(); got != "Sun" {
		t.Errorf("walking on %q, want Sun", got)
	}
	if got := sim.Camera().Near(); got != WalkingNearPlane {
		t.Errorf("walking near = %v, want %v", got, WalkingNearPlane)
	}

	press(t, sim.Input(), input.CommandToggleWalking)
	sim.Tick(frame)
	if got := sim.Player().Mode(); got != player.ModeFlying {
		t.Fatalf("mode = %s, want flying", got)
	}
	if got := sim.Camera().Near(); got != FlyingNearPlane {
		t.Errorf("flying near = %v, want %v", got, FlyingNearPlane)
	}
}

func TestCycleWhileWalkingMovesToNextBody(t *testing.T) {
	sim := newTestSimulation(t)
	press(t, sim.Input(), input.CommandToggleWalking)
	sim.Tick(frame)

	press(t, sim.Input(), input.CommandCycleBody)
	sim.Tick(frame)

	if got := sim.Picker().Selected(); got != 1 {
		t.Fatalf("selected = %d, want 1", got)
	}
	if !sim.Player().Walking() {
		t.Fatal("cycling dropped out of walking mode")
	}
	if got := sim.Player().BodyName(); got != "Mercury" {
		t.Errorf("walking on %q, want Mercury", got)
	}

	// the camera sits just above Mercury's surface
	body, err := sim.System().Body(1)
	if err != nil {
		t.Fatalf("Body(1): %v", err)
	}
	dist := float64(sim.Camera().Position().Sub(common.Vec32(body.Position)).Len())
	if dist < body.Radius || dist > body.Radius*1.1 {
		t.Errorf("camera distance from Mercury = %v, want just above radius %v", dist, body.Radius)
	}
}

func TestPauseFreezesBodies(t *testing.T) {
	sim := newTestSimulation(t)
	press(t, sim.Input(), input.CommandTogglePause)
	sim.Tick(frame)
	if !sim.Status().Paused {
		t.Fatal("expected paused")
	}

	before := sim.System().Bodies()
	for range 10 {
		sim.Tick(frame)
	}
	after := sim.System().Bodies()
	for i := range before {
		if before[i].Position != after[i].Position || before[i].SpinAngle != after[i].SpinAngle {
			t.Errorf("%s moved while paused", before[i].Config.Name)
		}
	}

	press(t, sim.Input(), input.CommandTogglePause)
	sim.Tick(frame)
	if sim.Status().Paused {
		t.Error("expected running after second toggle")
	}
	if got := sim.System().Bodies()[1].OrbitAngle; got == after[1].OrbitAngle {
		t.Error("Mercury did not advance after resuming")
	}
}

func TestTimeScaleChangeResumes(t *testing.T) {
	sim := newTestSimulation(t)
	press(t, sim.Input(), input.CommandTogglePause)
	press(t, sim.Input(), input.CommandTimeUp)
	sim.Tick(frame)

	st := sim.Status()
	if st.Paused {
		t.Error("time scale change should resume")
	}
	if st.TimeScale != 1.5 {
		t.Errorf("time scale = %v, want 1.5", st.TimeScale)
	}

	for range 5 {
		press(t, sim.Input(), input.CommandTimeDown)
	}
	sim.Tick(frame)
	if got := sim.Status().TimeScale; got != 0 {
		t.Errorf("time scale = %v, want clamp at 0", got)
	}
}

func TestScaleCommands(t *testing.T) {
	sim := newTestSimulation(t)

	press(t, sim.Input(), input.CommandDistanceUp)
	sim.Tick(frame)
	if got := sim.System().DistanceScale(); math.Abs(got-distanceScaleFor(1.1)) > 1e-9 {
		t.Errorf("distance scale = %v, want %v", got, distanceScaleFor(1.1))
	}

	press(t, sim.Input(), input.CommandToggleWalking)
	sim.Tick(frame)
	press(t, sim.Input(), input.CommandSizeDown)
	sim.Tick(frame)

	if got := sim.System().SizeScale(); math.Abs(got-1.6) > 1e-9 {
		t.Errorf("size scale = %v, want 1.6", got)
	}
	if !sim.Player().Walking() {
		t.Fatal("size change dropped out of walking mode")
	}
	sun, err := sim.System().Body(0)
	if err != nil {
		t.Fatalf("Body(0): %v", err)
	}
	if got := sun.Radius; math.Abs(got-32) > 1e-9 {
		t.Errorf("sun radius = %v, want 32", got)
	}
	dist := float64(sim.Camera().Position().Len())
	if dist < sun.Radius || dist > sun.Radius*1.1 {
		t.Errorf("camera distance from Sun = %v, want just above rescaled radius %v", dist, sun.Radius)
	}
}

func TestScaleMappings(t *testing.T) {
	tests := []struct {
		display      float64
		wantSize     float64
		wantDistance float64
	}{
		{0.5, 0, 0.5},
		{1, 2, 1.8},
		{2, 3, 2},
	}
	for _, tt := range tests {
		if got := sizeScaleFor(tt.display); math.Abs(got-tt.wantSize) > 1e-9 {
			t.Errorf("sizeScaleFor(%v) = %v, want %v", tt.display, got, tt.wantSize)
		}
		if got := distanceScaleFor(tt.display); math.Abs(got-tt.wantDistance) > 1e-9 {
			t.Errorf("distanceScaleFor(%v) = %v, want %v", tt.display, got, tt.wantDistance)
		}
	}

	if got := stepDisplay(2, 1); got != 2 {
		t.Errorf("stepDisplay past max = %v, want 2", got)
	}
	if got := stepDisplay(0.5, -3); got != 0.5 {
		t.Errorf("stepDisplay past min = %v, want 0.5", got)
	}
	if got := stepTimeScale(9.5, 3); got != 10 {
		t.Errorf("stepTimeScale past max = %v, want 10", got)
	}
}

func TestPickSelectsBodyUnderCursor(t *testing.T) {
	sim := newTestSimulation(t)
	click := func(x, y int32) {
		sim.Input().MouseDown(common.MouseButtonLeft, x, y)
		sim.Input().MouseUp(common.MouseButtonLeft, x+1, y)
		sim.Tick(frame)
	}

	// the camera looks at the origin, so the viewport center is over the Sun
	click(400, 300)
	if pinned, ok := sim.Picker().Pinned(); !ok || pinned != 0 {
		t.Errorf("pinned = %d, %v, want 0, true", pinned, ok)
	}

	// cycling makes the orbit camera follow Venus
	press(t, sim.Input(), input.CommandCycleBody)
	press(t, sim.Input(), input.CommandCycleBody)
	sim.Tick(frame)
	venus, err := sim.System().Body(2)
	if err != nil {
		t.Fatalf("Body(2): %v", err)
	}
	if got := sim.Player().Orbit().Target(); got.Sub(common.Vec32(venus.Position)).Len() > 1e-3 {
		t.Errorf("orbit target = %v, want Venus at %v", got, venus.Position)
	}

	click(400, 300)
	if got := sim.Picker().Selected(); got != 2 {
		t.Errorf("selected after pick = %d, want 2", got)
	}
	if pinned, ok := sim.Picker().Pinned(); !ok || pinned != 2 {
		t.Errorf("pinned = %d, %v, want 2, true", pinned, ok)
	}

	// the top corner looks above the orbital plane and misses everything
	click(0, 0)
	if _, ok := sim.Picker().Pinned(); ok {
		t.Error("pin should be cleared by a miss")
	}
	if got := sim.Picker().Selected(); got != 2 {
		t.Errorf("a miss changed the selection to %d", got)
	}
}

func TestPickWhileWalking(t *testing.T) {
	sim := newTestSimulation(t)
	press(t, sim.Input(), input.CommandCycleBody)
	sim.Tick(frame)
	press(t, sim.Input(), input.CommandToggleWalking)
	sim.Tick(frame)
	if got := sim.Player().BodyName(); got != "Mercury" {
		t.Fatalf("walking on %q, want Mercury", got)
	}
	if got := sim.Camera().Near(); got != WalkingNearPlane {
		t.Fatalf("near = %v, want %v", got, WalkingNearPlane)
	}

	// drag down to look at the ground; a drag is not a click
	sim.Input().MouseDown(common.MouseButtonLeft, 400, 300)
	sim.Input().MouseMove(400, 900)
	sim.Input().MouseUp(common.MouseButtonLeft, 400, 900)
	sim.Tick(frame)
	if pitch := sim.Player().Observer().Pitch(); pitch < 1 {
		t.Fatalf("pitch = %v, want looking down", pitch)
	}

	if err := sim.Picker().Select(3); err != nil {
		t.Fatalf("Select(3): %v", err)
	}
	sim.Input().MouseDown(common.MouseButtonLeft, 400, 300)
	sim.Input().MouseUp(common.MouseButtonLeft, 400, 300)
	sim.Tick(frame)

	if got := sim.Picker().Selected(); got != 1 {
		t.Errorf("selected = %d, want the ground under the observer (1)", got)
	}
	if pinned, ok := sim.Picker().Pinned(); !ok || pinned != 1 {
		t.Errorf("pinned = %d, %v, want 1, true", pinned, ok)
	}
	if !sim.Player().Walking() {
		t.Error("picking dropped out of walking mode")
	}
}

func TestScrollZoomsWhileFlying(t *testing.T) {
	sim := newTestSimulation(t)
	before := sim.Player().Orbit().Radius()

	sim.Input().Scroll(2)
	sim.Tick(frame)

	if got := sim.Player().Orbit().Radius(); got >= before {
		t.Errorf("radius after scroll = %v, want less than %v", got, before)
	}
}

func TestTickClampsDeltaTime(t *testing.T) {
	walkFor := func(dt float64) mgl32.Vec3 {
		sim := newTestSimulation(t)
		press(t, sim.Input(), input.CommandTogglePause)
		press(t, sim.Input(), input.CommandToggleWalking)
		sim.Tick(0)
		sim.Input().KeyDown(common.KeyW)
		sim.Tick(dt)
		return common.Vec32(sim.Player().Observer().LocalPosition())
	}

	clamped := walkFor(DefaultMaxDeltaTime)
	huge := walkFor(30)
	if huge.Sub(clamped).Len() > 1e-4 {
		t.Errorf("position after 30s frame = %v, want clamped %v", huge, clamped)
	}

	still := walkFor(0)
	if negative := walkFor(-1); negative.Sub(still).Len() > 1e-6 {
		t.Errorf("negative frame moved the observer: %v, want %v", negative, still)
	}
}

func TestStatusString(t *testing.T) {
	sim := newTestSimulation(t)
	press(t, sim.Input(), input.CommandTogglePause)
	sim.Tick(frame)

	got := sim.Status().String()
	for _, want := range []string{"Solar System", "Sun", "(1/9)", "flying", "paused"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q missing %q", got, want)
		}
	}
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("ORRERY_SYSTEM", "")
	if got := SystemKey(""); got != DefaultSystemKey {
		t.Errorf("SystemKey = %q, want %q", got, DefaultSystemKey)
	}
	if got := SystemKey("kepler47"); got != "kepler47" {
		t.Errorf("SystemKey fallback = %q, want kepler47", got)
	}
	t.Setenv("ORRERY_SYSTEM", " trappist ")
	if got := SystemKey("kepler47"); got != "trappist" {
		t.Errorf("SystemKey = %q, want trappist", got)
	}

	t.Setenv("ORRERY_LOG_LEVEL", "DEBUG")
	if got := LogLevel(); got != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", got)
	}
	t.Setenv("ORRERY_LOG_LEVEL", "verbose")
	if got := LogLevel(); got != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", got)
	}
}

package player

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoBody is returned when walking mode is requested without a valid host body.
var ErrNoBody = errors.New("player: no host body")

// DefaultLookSpeed converts pointer deltas in pixels to radians.
const DefaultLookSpeed = 0.002

// worldUp is the camera up vector outside walking mode.
var worldUp = mgl32.Vec3{0, 1, 0}

type playerControllerImpl struct {
	mu     *sync.Mutex
	logger *slog.Logger

	mode      Mode
	bodyName  string
	observer  walker.SurfaceObserver
	pose      walker.Pose
	lookSpeed float64

	orbit           camera.OrbitController
	observerOptions []walker.SurfaceObserverOption
}

// PlayerController owns the Flying/Walking mode machine and feeds the camera.
// In flying mode the camera pose comes from an orbit controller; in walking mode it comes from a
// walker.SurfaceObserver standing on the host body.
type PlayerController interface {
	camera.CameraController

	// Mode returns the current control mode.
	Mode() Mode

	// Walking reports whether the controller is in walking mode.
	Walking() bool

	// BodyName returns the name of the host body while walking, or "" while flying.
	BodyName() string

	// Observer returns the active surface observer, or nil while flying.
	Observer() walker.SurfaceObserver

	// Orbit returns the orbit controller used in flying mode.
	Orbit() camera.OrbitController

	// Pose returns the last walking pose. It is the zero Pose while flying.
	Pose() walker.Pose

	// Enter starts walking on a body. A fresh observer is placed at the north pole with zero yaw and pitch and
	// records the body's current spin angle. Entering while already walking re-initializes on the new body.
	//
	// Parameters:
	//   - name: the body's display name
	//   - body: snapshot of the host body
	//
	// Returns:
	//   - error: ErrNoBody if the body has no positive radius
	Enter(name string, body walker.HostBody) error

	// Exit returns to flying mode, discarding the observer and restoring the world up vector.
	// Exit is a no-op while flying.
	Exit()

	// Toggle enters walking mode on body while flying, and exits while walking.
	//
	// Parameters:
	//   - name: the body's display name
	//   - body: snapshot of the host body
	//
	// Returns:
	//   - Mode: the mode after the toggle
	//   - error: ErrNoBody if entering failed
	Toggle(name string, body walker.HostBody) (Mode, error)

	// Update advances the controller by one frame.
	// Look deltas are pointer movement in pixels and are scaled by the look speed. In walking mode dragging down
	// looks down; in flying mode the deltas orbit the camera around its target.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - lookX, lookY: pointer deltas in pixels
	//   - intent: the movement keys held this frame
	//   - body: snapshot of the host body, ignored while flying
	Update(deltaTime, lookX, lookY float64, intent walker.MovementIntent, body walker.HostBody)
}

var _ PlayerController = &playerControllerImpl{}

// NewPlayerController creates a PlayerController in flying mode.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - PlayerController: the newly created controller
func NewPlayerController(options ...PlayerControllerOption) PlayerController {
	p := &playerControllerImpl{
		mu:        &sync.Mutex{},
		logger:    slog.Default(),
		mode:      ModeFlying,
		lookSpeed: DefaultLookSpeed,
	}
	for _, option := range options {
		option(p)
	}
	if p.orbit == nil {
		p.orbit = camera.NewOrbitController()
	}
	return p
}

func (p *playerControllerImpl) Position() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeWalking {
		return common.Vec32(p.pose.Position)
	}
	return p.orbit.Position()
}

func (p *playerControllerImpl) Target() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeWalking {
		return common.Vec32(p.pose.Target)
	}
	return p.orbit.Target()
}

func (p *playerControllerImpl) Up() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeWalking {
		return common.Vec32(p.pose.Up)
	}
	return worldUp
}

func (p *playerControllerImpl) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *playerControllerImpl) Walking() bool {
	return p.Mode() == ModeWalking
}

func (p *playerControllerImpl) BodyName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bodyName
}

func (p *playerControllerImpl) Observer() walker.SurfaceObserver {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.observer
}

func (p *playerControllerImpl) Orbit() camera.OrbitController {
	return p.orbit
}

func (p *playerControllerImpl) Pose() walker.Pose {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pose
}

func (p *playerControllerImpl) Enter(name string, body walker.HostBody) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enter(name, body)
}

func (p *playerControllerImpl) Exit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exit()
}

func (p *playerControllerImpl) Toggle(name string, body walker.HostBody) (Mode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeWalking {
		p.exit()
		return p.mode, nil
	}
	err := p.enter(name, body)
	return p.mode, err
}

func (p *playerControllerImpl) Update(deltaTime, lookX, lookY float64, intent walker.MovementIntent, body walker.HostBody) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeWalking {
		if lookX != 0 || lookY != 0 {
			p.orbit.Orbit(float32(lookX), float32(lookY))
		}
		return
	}

	p.observer.AddLook(-lookX*p.lookSpeed, lookY*p.lookSpeed)
	p.pose = p.observer.Update(body, intent, deltaTime)
}

// enter places a fresh observer on the body. Caller must hold the mutex.
func (p *playerControllerImpl) enter(name string, body walker.HostBody) error {
	if !(body.Radius > 0) || math.IsInf(body.Radius, 0) {
		return fmt.Errorf("enter walking mode on %q: %w", name, ErrNoBody)
	}

	p.observer = walker.NewSurfaceObserver(body.SpinAngle, p.observerOptions...)
	p.mode = ModeWalking
	p.bodyName = name
	p.pose = p.observer.Update(body, walker.MovementIntent{}, 0)

	p.logger.Info("entered walking mode", "body", name, "radius", body.Radius)
	return nil
}

// exit drops back to flying mode. Caller must hold the mutex.
func (p *playerControllerImpl) exit() {
	if p.mode != ModeWalking {
		return
	}
	p.logger.Info("exited walking mode", "body", p.bodyName)

	p.mode = ModeFlying
	p.observer = nil
	p.bodyName = ""
	p.pose = walker.Pose{}
}

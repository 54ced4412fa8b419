package simulation

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/celestial"
	"github.com/Carmen-Shannon/oxy-orrery/engine/input"
	"github.com/Carmen-Shannon/oxy-orrery/engine/player"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultMaxDeltaTime caps the frame time fed to the player and bodies.
	DefaultMaxDeltaTime = 0.1
	// WalkingNearPlane lets the camera see the ground right below the observer.
	WalkingNearPlane = 0.001
	// FlyingNearPlane is the near plane outside walking mode.
	FlyingNearPlane = 0.1
	// viewDistance and viewHeight place the camera after a load, before distance scaling.
	viewDistance = 200.0
	viewHeight   = 100.0
)

// Status summarizes the simulation for display.
type Status struct {
	System    string
	Body      string
	Selected  int
	Bodies    int
	Mode      player.Mode
	Paused    bool
	TimeScale float64
}

func (s Status) String() string {
	state := fmt.Sprintf("%.1fx", s.TimeScale)
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("%s | %s (%d/%d) | %s | %s", s.System, s.Body, s.Selected+1, s.Bodies, s.Mode, state)
}

type simulationImpl struct {
	mu     *sync.Mutex
	logger *slog.Logger

	input   input.Manager
	system  celestial.System
	picker  celestial.Picker
	player  player.PlayerController
	orbit   camera.OrbitController
	camera  camera.Camera
	ownsSys bool

	maxDeltaTime float64
	width        int
	height       int

	systemKey       string
	paused          bool
	timeScale       float64
	sizeDisplay     float64
	distanceDisplay float64

	// walkBody is the body index the player walks on; follow makes the orbit camera track the selection
	walkBody int
	follow   bool
}

// Simulation drives one frame of the orrery: it applies queued input commands, advances the bodies, updates the
// player on its host body and refreshes the camera.
type Simulation interface {
	// LoadSystem loads an embedded preset. Walking mode is exited, the selection is reset, and the camera is
	// placed above the orbital plane looking at the center.
	//
	// Parameters:
	//   - key: the preset key
	//
	// Returns:
	//   - error: wrapping celestial.ErrUnknownSystem; the current system stays loaded on error
	LoadSystem(key string) error

	// Tick advances the simulation by one frame. deltaTime is clamped to [0, max delta time].
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	Tick(deltaTime float64)

	// SetViewport sets the viewport size used for picking and the camera aspect ratio.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// Status returns a summary of the current state.
	Status() Status

	// Camera returns the camera fed by the player.
	Camera() camera.Camera

	// Player returns the player controller.
	Player() player.PlayerController

	// System returns the celestial system.
	System() celestial.System

	// Picker returns the body picker.
	Picker() celestial.Picker

	// Input returns the input manager the simulation drains each tick.
	Input() input.Manager

	// Close releases the celestial system's workers if the simulation created the system.
	Close()
}

var _ Simulation = &simulationImpl{}

// NewSimulation creates a Simulation with no system loaded. Call LoadSystem before the first Tick.
//
// Parameters:
//   - options: functional options to configure the simulation
//
// Returns:
//   - Simulation: the newly created simulation
func NewSimulation(options ...SimulationBuilderOption) Simulation {
	s := &simulationImpl{
		mu:              &sync.Mutex{},
		logger:          slog.Default(),
		maxDeltaTime:    DefaultMaxDeltaTime,
		width:           1280,
		height:          720,
		timeScale:       1,
		sizeDisplay:     1,
		distanceDisplay: 1,
	}
	for _, option := range options {
		option(s)
	}

	if s.input == nil {
		s.input = input.NewManager()
	}
	if s.system == nil {
		s.system = celestial.NewSystem(celestial.WithLogger(s.logger))
		s.ownsSys = true
	}
	s.picker = celestial.NewPicker(s.system, s.logger)
	s.orbit = camera.NewOrbitController(camera.WithRadiusBounds(1, 20000))
	s.player = player.NewPlayerController(player.WithLogger(s.logger), player.WithOrbitController(s.orbit))
	s.camera = camera.NewCamera(
		camera.WithController(s.player),
		camera.WithFovDegrees(75),
		camera.WithClipRange(FlyingNearPlane, 50000),
		camera.WithAspect(float32(s.width)/float32(s.height)),
	)
	return s
}

func (s *simulationImpl) LoadSystem(key string) error {
	cfg, err := celestial.LoadPreset(key)
	if err != nil {
		return fmt.Errorf("load system: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.exitWalking()
	if err := s.system.Load(cfg); err != nil {
		return fmt.Errorf("load system %q: %w", key, err)
	}
	s.picker.Reset()
	s.systemKey = key
	s.follow = false

	ds := float32(s.system.DistanceScale())
	s.orbit.SetTarget(mgl32.Vec3{})
	s.orbit.LookFrom(mgl32.Vec3{viewDistance * ds, viewHeight * ds, viewDistance * ds})
	s.camera.Update()
	return nil
}

func (s *simulationImpl) Tick(deltaTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deltaTime = common.Clamp(deltaTime, 0, s.maxDeltaTime)

	for _, cmd := range s.input.DrainCommands() {
		s.apply(cmd)
	}

	timeScale := s.timeScale
	if s.paused {
		timeScale = 0
	}
	s.system.Update(timeScale)

	lookX, lookY := s.input.ConsumeLook()
	scroll := s.input.ConsumeScroll()
	intent := s.input.Movement()

	var host walker.HostBody
	if s.player.Walking() {
		h, err := s.system.HostBody(s.walkBody)
		if err != nil {
			s.logger.Warn("host body vanished", "index", s.walkBody, "error", err)
			s.exitWalking()
		} else {
			host = h
		}
	} else {
		if scroll != 0 {
			s.orbit.Zoom(float32(scroll))
		}
		if s.follow {
			if b, err := s.system.Body(s.picker.Selected()); err == nil {
				s.orbit.SetTarget(common.Vec32(b.Position))
			}
		}
	}

	s.player.Update(deltaTime, lookX, lookY, intent, host)
	s.camera.Update()
}

func (s *simulationImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.camera.SetAspect(float32(width) / float32(height))
}

func (s *simulationImpl) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.picker.Selected()
	st := Status{
		System:    s.system.Config().Name,
		Selected:  selected,
		Bodies:    s.system.Len(),
		Mode:      s.player.Mode(),
		Paused:    s.paused,
		TimeScale: s.timeScale,
	}
	if b, err := s.system.Body(selected); err == nil {
		st.Body = b.Config.Name
	}
	return st
}

func (s *simulationImpl) Camera() camera.Camera {
	return s.camera
}

func (s *simulationImpl) Player() player.PlayerController {
	return s.player
}

func (s *simulationImpl) System() celestial.System {
	return s.system
}

func (s *simulationImpl) Picker() celestial.Picker {
	return s.picker
}

func (s *simulationImpl) Input() input.Manager {
	return s.input
}

func (s *simulationImpl) Close() {
	if s.ownsSys {
		s.system.Close()
	}
}

// apply handles one queued command. Caller must hold the mutex.
func (s *simulationImpl) apply(cmd input.Command) {
	switch cmd.Kind {
	case input.CommandToggleWalking:
		if s.player.Walking() {
			s.exitWalking()
		} else {
			s.enterWalking(s.picker.Selected())
		}

	case input.CommandCycleBody:
		selected := s.picker.Cycle()
		s.follow = true
		if s.player.Walking() {
			s.enterWalking(selected)
		}

	case input.CommandTogglePause:
		s.paused = !s.paused
		s.logger.Info("pause toggled", "paused", s.paused)

	case input.CommandTimeUp, input.CommandTimeDown:
		n := 1
		if cmd.Kind == input.CommandTimeDown {
			n = -1
		}
		s.timeScale = stepTimeScale(s.timeScale, n)
		// changing the speed resumes a paused simulation
		s.paused = false
		s.logger.Info("time scale changed", "scale", s.timeScale)

	case input.CommandSizeUp, input.CommandSizeDown:
		n := 1
		if cmd.Kind == input.CommandSizeDown {
			n = -1
		}
		s.sizeDisplay = stepDisplay(s.sizeDisplay, n)
		s.system.SetSizeScale(sizeScaleFor(s.sizeDisplay))
		s.logger.Info("size scale changed", "scale", s.system.SizeScale())
		if s.player.Walking() {
			s.enterWalking(s.walkBody)
		}

	case input.CommandDistanceUp, input.CommandDistanceDown:
		n := 1
		if cmd.Kind == input.CommandDistanceDown {
			n = -1
		}
		s.distanceDisplay = stepDisplay(s.distanceDisplay, n)
		s.system.SetDistanceScale(distanceScaleFor(s.distanceDisplay))
		s.logger.Info("distance scale changed", "scale", s.system.DistanceScale())

	case input.CommandPick:
		s.camera.Update()
		origin, dir, ok := s.camera.ScreenRay(cmd.X, cmd.Y, s.width, s.height)
		if !ok {
			return
		}
		if _, hit := s.picker.Pick(origin, dir); hit {
			s.follow = true
		}
	}
}

// enterWalking starts walking on body i and switches to the walking near plane. Caller must hold the mutex.
func (s *simulationImpl) enterWalking(i int) {
	body, err := s.system.Body(i)
	if err != nil {
		s.logger.Warn("cannot walk on body", "index", i, "error", err)
		return
	}
	if err := s.player.Enter(body.Config.Name, body.Host()); err != nil {
		s.logger.Warn("cannot walk on body", "body", body.Config.Name, "error", err)
		s.exitWalking()
		return
	}
	s.walkBody = i
	s.camera.SetNear(WalkingNearPlane)
}

// exitWalking returns to flying mode and restores the flying near plane. Caller must hold the mutex.
func (s *simulationImpl) exitWalking() {
	s.player.Exit()
	s.camera.SetNear(FlyingNearPlane)
}

package celestial

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultSizeScale multiplies every configured radius.
	DefaultSizeScale = 2.0
	// DefaultDistanceScale multiplies every configured orbit distance.
	DefaultDistanceScale = 1.8
)

// Body is a read-only snapshot of one body at the current scales.
type Body struct {
	Index  int
	Config BodyConfig

	// Radius and Distance include the current size and distance scales.
	Radius   float64
	Distance float64

	Position   mgl64.Vec3
	OrbitAngle float64
	SpinAngle  float64
}

// Host returns the body as a walker.HostBody.
func (b Body) Host() walker.HostBody {
	return walker.HostBody{Center: b.Position, Radius: b.Radius, SpinAngle: b.SpinAngle}
}

// bodyState is the mutable per-body simulation state.
type bodyState struct {
	cfg BodyConfig

	// animated bodies are advanced by Update; static center bodies are not
	animated      bool
	orbitSpeed    float64
	rotationSpeed float64

	distance float64
	angle    float64
	spin     float64
	position mgl64.Vec3
}

// advance moves an animated body one step along its orbit and spin.
func (b *bodyState) advance(timeScale float64) {
	if !b.animated {
		return
	}
	b.angle += b.orbitSpeed * timeScale
	b.spin += b.rotationSpeed * timeScale
	b.place()
}

// place recomputes the position from the orbit angle and scaled distance.
func (b *bodyState) place() {
	if b.distance == 0 {
		b.position = mgl64.Vec3{}
		return
	}
	b.position = mgl64.Vec3{math.Cos(b.angle) * b.distance, 0, math.Sin(b.angle) * b.distance}
}

type systemImpl struct {
	mu     *sync.RWMutex
	logger *slog.Logger
	rng    *rand.Rand

	cfg    SystemConfig
	bodies []bodyState

	sizeScale     float64
	distanceScale float64

	workers    int
	updatePool worker.DynamicWorkerPool
	closed     bool
}

// System holds the bodies of a loaded planetary system and advances their orbits and spins.
// All methods are safe for concurrent use.
type System interface {
	// Load replaces the current bodies with those of cfg at the current scales.
	// Orbiting bodies start at their InitialAngle, or a random angle when it is unset.
	//
	// Parameters:
	//   - cfg: the system to load
	//
	// Returns:
	//   - error: wrapping ErrInvalidConfig if cfg fails validation
	Load(cfg SystemConfig) error

	// Config returns the loaded system configuration.
	Config() SystemConfig

	// Update advances every animated body by one step.
	// Orbit angles grow by orbitSpeed × timeScale and spins by rotationSpeed × timeScale.
	//
	// Parameters:
	//   - timeScale: simulation speed multiplier, 0 when paused
	Update(timeScale float64)

	// Len returns the number of bodies.
	Len() int

	// Body returns a snapshot of the body at index i.
	//
	// Returns:
	//   - Body: the snapshot
	//   - error: wrapping ErrNoBody if i is out of range
	Body(i int) (Body, error)

	// Bodies returns snapshots of all bodies in configuration order.
	Bodies() []Body

	// HostBody returns the body at index i as the walker sees it.
	//
	// Returns:
	//   - walker.HostBody: center, scaled radius and spin angle
	//   - error: wrapping ErrNoBody if i is out of range
	HostBody(i int) (walker.HostBody, error)

	// Visible returns the indices of bodies whose bounding sphere intersects the frustum.
	Visible(frustum common.Frustum) []int

	// SizeScale returns the radius multiplier.
	SizeScale() float64

	// SetSizeScale changes the radius multiplier. Negative values are clamped to 0.
	SetSizeScale(scale float64)

	// DistanceScale returns the orbit distance multiplier.
	DistanceScale() float64

	// SetDistanceScale changes the orbit distance multiplier and moves every body to its new distance at its
	// current angle. Negative values are clamped to 0.
	SetDistanceScale(scale float64)

	// Close stops the update worker pool. Later updates run on the calling goroutine.
	Close()
}

var _ System = &systemImpl{}

// NewSystem creates an empty System. Call Load to populate it.
//
// Parameters:
//   - options: functional options to configure the system
//
// Returns:
//   - System: the newly created system
func NewSystem(options ...SystemBuilderOption) System {
	s := &systemImpl{
		mu:            &sync.RWMutex{},
		logger:        slog.Default(),
		sizeScale:     DefaultSizeScale,
		distanceScale: DefaultDistanceScale,
		workers:       max(1, runtime.NumCPU()/2),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	s.updatePool = worker.NewDynamicWorkerPool(s.workers, 256, time.Second)
	return s
}

func (s *systemImpl) Load(cfg SystemConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	bodies := make([]bodyState, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		b := bodyState{cfg: bc}
		if bc.Orbits() {
			b.animated = true
			b.orbitSpeed = bc.OrbitSpeed
			b.rotationSpeed = DefaultRotationSpeed
			if bc.RotationSpeed != nil {
				b.rotationSpeed = *bc.RotationSpeed
			}
			if bc.InitialAngle != nil {
				b.angle = *bc.InitialAngle
			} else {
				b.angle = s.rng.Float64() * 2 * math.Pi
			}
		} else if bc.RotationSpeed != nil && *bc.RotationSpeed != 0 {
			// center bodies spin in place without orbiting
			b.animated = true
			b.rotationSpeed = *bc.RotationSpeed
		}
		bodies[i] = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.bodies = bodies
	for i := range s.bodies {
		s.bodies[i].distance = s.bodies[i].cfg.Distance * s.distanceScale
		s.bodies[i].place()
	}

	s.logger.Info("loaded system", "key", cfg.Key, "name", cfg.Name, "bodies", len(bodies))
	return nil
}

func (s *systemImpl) Config() SystemConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *systemImpl) Update(timeScale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		for i := range s.bodies {
			s.bodies[i].advance(timeScale)
		}
		return
	}

	// Each task owns one body, and the WaitGroup is the per-update barrier.
	var wg sync.WaitGroup
	for i := range s.bodies {
		if !s.bodies[i].animated {
			continue
		}
		wg.Add(1)
		b := &s.bodies[i]
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				b.advance(timeScale)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *systemImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bodies)
}

func (s *systemImpl) Body(i int) (Body, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.bodies) {
		return Body{}, fmt.Errorf("body %d of %d: %w", i, len(s.bodies), ErrNoBody)
	}
	return s.snapshot(i), nil
}

func (s *systemImpl) Bodies() []Body {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Body, len(s.bodies))
	for i := range s.bodies {
		out[i] = s.snapshot(i)
	}
	return out
}

func (s *systemImpl) HostBody(i int) (walker.HostBody, error) {
	b, err := s.Body(i)
	if err != nil {
		return walker.HostBody{}, err
	}
	return b.Host(), nil
}

func (s *systemImpl) Visible(frustum common.Frustum) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var visible []int
	for i := range s.bodies {
		b := s.snapshot(i)
		if frustum.IntersectsSphere(common.Vec32(b.Position), float32(b.Radius)) {
			visible = append(visible, i)
		}
	}
	return visible
}

func (s *systemImpl) SizeScale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sizeScale
}

func (s *systemImpl) SetSizeScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizeScale = max(scale, 0)
	s.logger.Debug("size scale changed", "scale", s.sizeScale)
}

func (s *systemImpl) DistanceScale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.distanceScale
}

func (s *systemImpl) SetDistanceScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distanceScale = max(scale, 0)
	for i := range s.bodies {
		s.bodies[i].distance = s.bodies[i].cfg.Distance * s.distanceScale
		s.bodies[i].place()
	}
	s.logger.Debug("distance scale changed", "scale", s.distanceScale)
}

func (s *systemImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.updatePool.Stop()
}

// snapshot copies body i at the current scales. Caller must hold the lock.
func (s *systemImpl) snapshot(i int) Body {
	b := &s.bodies[i]
	return Body{
		Index:      i,
		Config:     b.cfg,
		Radius:     b.cfg.Radius * s.sizeScale,
		Distance:   b.distance,
		Position:   b.position,
		OrbitAngle: b.angle,
		SpinAngle:  b.spin,
	}
}

// intersectRay returns the distance along a unit ray to the first hit on a sphere.
func intersectRay(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayFrom32 widens a camera ray for intersection against float64 body positions.
func rayFrom32(origin, dir mgl32.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return common.Vec64(origin), common.Vec64(dir).Normalize()
}

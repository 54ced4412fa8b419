package celestial

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type pickerImpl struct {
	mu     *sync.Mutex
	logger *slog.Logger
	system System

	selected int
	pinned   int
}

// Picker tracks the selected body of a System. Selection drives which body walking mode uses.
type Picker interface {
	// Selected returns the selected body index.
	Selected() int

	// Select selects body i.
	//
	// Returns:
	//   - error: wrapping ErrNoBody if i is out of range
	Select(i int) error

	// Cycle advances the selection to the next body, wrapping to the first.
	//
	// Returns:
	//   - int: the new selected index
	Cycle() int

	// Reset selects the first body and clears the pinned body.
	Reset()

	// Pinned returns the body last chosen by Pick.
	//
	// Returns:
	//   - int: the pinned index
	//   - bool: false if nothing is pinned
	Pinned() (int, bool)

	// Pick selects and pins the nearest body hit by a world-space ray. A miss clears the pin and keeps the selection.
	//
	// Parameters:
	//   - origin: ray origin
	//   - dir: ray direction
	//
	// Returns:
	//   - int: the hit body index, -1 on a miss
	//   - bool: true if a body was hit
	Pick(origin, dir mgl32.Vec3) (int, bool)
}

var _ Picker = &pickerImpl{}

// NewPicker creates a Picker over system with the first body selected.
//
// Parameters:
//   - system: the system to pick from
//   - logger: logger for selection changes, nil for slog.Default()
//
// Returns:
//   - Picker: the newly created picker
func NewPicker(system System, logger *slog.Logger) Picker {
	if system == nil {
		panic("celestial: NewPicker requires a system")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &pickerImpl{
		mu:     &sync.Mutex{},
		logger: logger,
		system: system,
		pinned: -1,
	}
}

func (p *pickerImpl) Selected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *pickerImpl) Select(i int) error {
	body, err := p.system.Body(i)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = i
	p.logger.Info("selected body", "index", i, "name", body.Config.Name)
	return nil
}

func (p *pickerImpl) Cycle() int {
	n := p.system.Len()
	p.mu.Lock()
	defer p.mu.Unlock()
	if n == 0 {
		return p.selected
	}
	p.selected = (p.selected + 1) % n
	if body, err := p.system.Body(p.selected); err == nil {
		p.logger.Info("selected body", "index", p.selected, "name", body.Config.Name)
	}
	return p.selected
}

func (p *pickerImpl) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = 0
	p.pinned = -1
}

func (p *pickerImpl) Pinned() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pinned, p.pinned >= 0
}

func (p *pickerImpl) Pick(origin, dir mgl32.Vec3) (int, bool) {
	if dir.LenSqr() == 0 {
		return -1, false
	}
	o, d := rayFrom32(origin, dir)

	hit, nearest := -1, math.Inf(1)
	for _, b := range p.system.Bodies() {
		if t, ok := intersectRay(o, d, b.Position, b.Radius); ok && t < nearest {
			hit, nearest = b.Index, t
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if hit < 0 {
		p.pinned = -1
		return -1, false
	}
	p.selected = hit
	p.pinned = hit
	p.logger.Info("picked body", "index", hit, "distance", nearest)
	return hit, true
}

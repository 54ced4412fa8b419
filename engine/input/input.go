package input

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
	"github.com/Carmen-Shannon/oxy-orrery/engine/window"
)

// DefaultClickThreshold is the largest press-to-release cursor travel, in pixels, still treated as a click.
const DefaultClickThreshold = 5.0

type managerImpl struct {
	mu *sync.Mutex

	keyMap         KeyMap
	lookButton     int
	clickThreshold float64

	held map[uint32]bool

	// Pointer state for drag-to-look and click detection
	dragging   bool
	downX      float64
	downY      float64
	lastX      float64
	lastY      float64
	lookDeltaX float64
	lookDeltaY float64
	scroll     float64

	commands []Command
}

// Manager collects raw window events and turns them into per-frame movement intent, look deltas and
// queued commands. Event methods are called from the window thread; the consume methods from the tick.
type Manager interface {
	// KeyDown records a key press. Key repeats of a held key do not queue commands again.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	KeyUp(keyCode uint32)

	// MouseDown starts a drag when the look button is pressed.
	//
	// Parameters:
	//   - button: the mouse button index
	//   - x, y: cursor position in pixels
	MouseDown(button int, x, y int32)

	// MouseUp ends a drag. A release within the click threshold of the press queues a CommandPick.
	//
	// Parameters:
	//   - button: the mouse button index
	//   - x, y: cursor position in pixels
	MouseUp(button int, x, y int32)

	// MouseMove accumulates look deltas while dragging.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y int32)

	// Scroll accumulates mouse wheel travel.
	//
	// Parameters:
	//   - delta: wheel offset, positive when scrolling up
	Scroll(delta float32)

	// Movement returns the movement keys currently held.
	//
	// Returns:
	//   - walker.MovementIntent: the held movement keys
	Movement() walker.MovementIntent

	// ConsumeLook returns the pointer travel accumulated since the previous call and zeroes it.
	//
	// Returns:
	//   - dx, dy: pointer deltas in pixels
	ConsumeLook() (dx, dy float64)

	// ConsumeScroll returns the wheel travel accumulated since the previous call and zeroes it.
	//
	// Returns:
	//   - float64: the accumulated wheel offset
	ConsumeScroll() float64

	// DrainCommands returns the queued commands in arrival order and empties the queue.
	//
	// Returns:
	//   - []Command: the queued commands, nil if none
	DrainCommands() []Command

	// Attach registers the manager's event methods as the window's input callbacks.
	//
	// Parameters:
	//   - w: the window to listen to
	Attach(w window.Window)
}

var _ Manager = &managerImpl{}

// NewManager creates an input Manager with the default key map and left-button drag-to-look.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the newly created manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &managerImpl{
		mu:             &sync.Mutex{},
		keyMap:         DefaultKeyMap(),
		lookButton:     common.MouseButtonLeft,
		clickThreshold: DefaultClickThreshold,
		held:           make(map[uint32]bool),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *managerImpl) KeyDown(keyCode uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	repeat := m.held[keyCode]
	m.held[keyCode] = true
	if repeat {
		return
	}
	if kind, ok := m.keyMap.Commands[keyCode]; ok {
		m.commands = append(m.commands, Command{Kind: kind})
	}
}

func (m *managerImpl) KeyUp(keyCode uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, keyCode)
}

func (m *managerImpl) MouseDown(button int, x, y int32) {
	if button != m.lookButton {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dragging = true
	m.downX, m.downY = float64(x), float64(y)
	m.lastX, m.lastY = float64(x), float64(y)
}

func (m *managerImpl) MouseUp(button int, x, y int32) {
	if button != m.lookButton {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dragging {
		return
	}
	m.dragging = false
	if math.Hypot(float64(x)-m.downX, float64(y)-m.downY) < m.clickThreshold {
		m.commands = append(m.commands, Command{Kind: CommandPick, X: float32(x), Y: float32(y)})
	}
}

func (m *managerImpl) MouseMove(x, y int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fx, fy := float64(x), float64(y)
	if m.dragging {
		m.lookDeltaX += fx - m.lastX
		m.lookDeltaY += fy - m.lastY
	}
	m.lastX, m.lastY = fx, fy
}

func (m *managerImpl) Scroll(delta float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scroll += float64(delta)
}

func (m *managerImpl) Movement() walker.MovementIntent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var intent walker.MovementIntent
	for key := range m.held {
		switch m.keyMap.Movement[key] {
		case MoveForward:
			intent.Forward = true
		case MoveBackward:
			intent.Backward = true
		case MoveLeft:
			intent.Left = true
		case MoveRight:
			intent.Right = true
		case MoveSprint:
			intent.Sprint = true
		}
	}
	return intent
}

func (m *managerImpl) ConsumeLook() (dx, dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dx, dy = m.lookDeltaX, m.lookDeltaY
	m.lookDeltaX, m.lookDeltaY = 0, 0
	return dx, dy
}

func (m *managerImpl) ConsumeScroll() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	scroll := m.scroll
	m.scroll = 0
	return scroll
}

func (m *managerImpl) DrainCommands() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	commands := m.commands
	m.commands = nil
	return commands
}

func (m *managerImpl) Attach(w window.Window) {
	w.SetKeyDownCallback(m.KeyDown)
	w.SetKeyUpCallback(m.KeyUp)
	w.SetMouseDownCallback(m.MouseDown)
	w.SetMouseUpCallback(m.MouseUp)
	w.SetMouseMoveCallback(m.MouseMove)
	w.SetScrollCallback(m.Scroll)
}

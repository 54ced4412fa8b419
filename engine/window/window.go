package window

import (
	"fmt"
	"runtime"
	"sync"
)

// Window is a GLFW window that reports raw input and resize events through callbacks and shows a title.
// Callbacks run on the thread that created the window, inside ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop iteration, after events are dispatched.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function receiving the new framebuffer size in pixels.
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function receiving vertical scroll offsets, positive away from the user.
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function called on key press and on key repeat.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function called on key release.
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the function called when any mouse button is pressed.
	//
	// Parameters:
	//   - callback: function receiving the button (see common.MouseButton*) and the cursor position in pixels
	SetMouseDownCallback(callback func(button int, x, y int32))

	// SetMouseUpCallback sets the function called when any mouse button is released.
	SetMouseUpCallback(callback func(button int, x, y int32))

	// SetMouseMoveCallback sets the function receiving the cursor position in pixels.
	SetMouseMoveCallback(callback func(x, y int32))

	// SetTitle queues a new title. Safe to call from any goroutine; the title is applied on the next message
	// loop iteration.
	SetTitle(title string)

	// IsRunning reports whether the window is open.
	IsRunning() bool

	// Close destroys the window. Must be called on the thread that created it.
	//
	// Returns:
	//   - error: error if the window was never created or is already closed
	Close() error

	// ProcessMessages runs the message loop until the window closes.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// engineWindow is the GLFW-backed Window.
type engineWindow struct {
	title string

	// resize limits in screen coordinates, 0 means unlimited
	minWidth, minHeight int
	maxWidth, maxHeight int

	// framebuffer size in pixels
	width, height int

	internalWindow any // *glfwWindow once created

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button int, x, y int32)
	onMouseUp   func(button int, x, y int32)
	onMouseMove func(x, y int32)

	// titleMu guards pendingTitle, which is written by SetTitle and consumed by the message loop.
	titleMu      sync.Mutex
	pendingTitle *string
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-orrery",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.clampSize()
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button int, x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button int, x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetTitle(title string) {
	w.titleMu.Lock()
	defer w.titleMu.Unlock()
	w.pendingTitle = &title
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		w.titleMu.Lock()
		if w.pendingTitle != nil {
			w.title = *w.pendingTitle
			w.pendingTitle = nil
			platformSetTitle(w)
		}
		w.titleMu.Unlock()

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

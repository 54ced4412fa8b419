package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow initializes GLFW on the calling thread, creates the window and routes its events to the
// engineWindow callbacks. The window only collects input and shows status in its title, so no client API
// context is created.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(glfwLimit(w.minWidth), glfwLimit(w.minHeight), glfwLimit(w.maxWidth), glfwLimit(w.maxHeight))

	gw := &glfwWindow{parent: w, window: win, running: true}
	gw.installCallbacks()
	w.internalWindow = gw

	// Sizes are reported in framebuffer pixels, which differ from screen coordinates on high-DPI displays.
	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// installCallbacks registers the GLFW input and resize handlers.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window
func (gw *glfwWindow) installCallbacks() {
	gw.window.SetKeyCallback(gw.onKey)
	gw.window.SetScrollCallback(gw.onScroll)
	gw.window.SetMouseButtonCallback(gw.onMouseButton)
	gw.window.SetCursorPosCallback(gw.onCursorPos)
	gw.window.SetFramebufferSizeCallback(gw.onFramebufferSize)
}

// onKey forwards presses and repeats as key down, releases as key up. Escape closes the window.
func (gw *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w := gw.parent
	if key == glfw.KeyEscape && action == glfw.Press {
		gw.running = false
		gw.window.SetShouldClose(true)
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		if w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	case glfw.Release:
		if w.onKeyUp != nil {
			w.onKeyUp(uint32(key))
		}
	}
}

func (gw *glfwWindow) onScroll(_ *glfw.Window, _, yoff float64) {
	if gw.parent.onScroll != nil {
		gw.parent.onScroll(float32(yoff))
	}
}

func (gw *glfwWindow) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	w := gw.parent
	x, y := gw.cursorPixels(gw.window.GetCursorPos())
	switch action {
	case glfw.Press:
		if w.onMouseDown != nil {
			w.onMouseDown(int(button), x, y)
		}
	case glfw.Release:
		if w.onMouseUp != nil {
			w.onMouseUp(int(button), x, y)
		}
	}
}

func (gw *glfwWindow) onCursorPos(_ *glfw.Window, xpos, ypos float64) {
	if gw.parent.onMouseMove != nil {
		gw.parent.onMouseMove(gw.cursorPixels(xpos, ypos))
	}
}

func (gw *glfwWindow) onFramebufferSize(_ *glfw.Window, width, height int) {
	w := gw.parent
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// cursorPixels converts a cursor position from screen coordinates to framebuffer pixels so it matches the
// size passed to the resize callback.
func (gw *glfwWindow) cursorPixels(x, y float64) (int32, int32) {
	winW, winH := gw.window.GetSize()
	if winW > 0 && winH > 0 {
		fbW, fbH := gw.window.GetFramebufferSize()
		x *= float64(fbW) / float64(winW)
		y *= float64(fbH) / float64(winH)
	}
	return int32(x), int32(y)
}

// glfwLimit maps an unset size limit to glfw.DontCare.
func glfwLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// platformSetTitle pushes the stored title to the GLFW window. Must run on the thread that created the window.
func platformSetTitle(w *engineWindow) {
	if gw, ok := w.internalWindow.(*glfwWindow); ok {
		gw.window.SetTitle(w.title)
	}
}

// platformIsRunningCheck reports whether the window is open and has not been asked to close.
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
//
// Returns:
//   - error: error if the window is not initialized or already closed
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return errors.New("window is not initialized")
	}
	w.internalWindow = nil
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls pending GLFW events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

package input

// ManagerBuilderOption is a functional option for configuring a Manager.
type ManagerBuilderOption func(*managerImpl)

// WithKeyMap replaces the default key bindings.
//
// Parameters:
//   - keyMap: the bindings to use
//
// Returns:
//   - ManagerBuilderOption: functional option to set the key map
func WithKeyMap(keyMap KeyMap) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.keyMap = keyMap
	}
}

// WithLookButton sets the mouse button that drags the view.
//
// Parameters:
//   - button: the mouse button index (see common.MouseButton*)
//
// Returns:
//   - ManagerBuilderOption: functional option to set the look button
func WithLookButton(button int) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.lookButton = button
	}
}

// WithClickThreshold sets the cursor travel below which a press and release count as a click.
//
// Parameters:
//   - pixels: the threshold in pixels
//
// Returns:
//   - ManagerBuilderOption: functional option to set the click threshold
func WithClickThreshold(pixels float64) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.clickThreshold = pixels
	}
}

package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW            = 87  // W key (ASCII)
	KeyA            = 65  // A key (ASCII)
	KeyS            = 83  // S key (ASCII)
	KeyD            = 68  // D key (ASCII)
	KeyP            = 80  // P key (ASCII)
	KeyR            = 82  // R key (ASCII)
	KeyComma        = 44  // , key (ASCII)
	KeyMinus        = 45  // - key (ASCII)
	KeyPeriod       = 46  // . key (ASCII)
	KeyEqual        = 61  // = key (ASCII)
	KeyLeftBracket  = 91  // [ key (ASCII)
	KeyRightBracket = 93  // ] key (ASCII)
	KeySpace        = 32  // Spacebar (ASCII)
	KeyEsc          = 256 // Escape key (GLFW)
	KeyTab          = 258 // Tab key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// Mouse buttons, matching GLFW button indices.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

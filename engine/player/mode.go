package player

// Mode is the camera control mode of a PlayerController.
type Mode int

const (
	// ModeFlying orbits the selected body with the free camera.
	ModeFlying Mode = iota
	// ModeWalking constrains the camera to the surface of a host body.
	ModeWalking
)

func (m Mode) String() string {
	switch m {
	case ModeFlying:
		return "flying"
	case ModeWalking:
		return "walking"
	default:
		return "unknown"
	}
}

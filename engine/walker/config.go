package walker

// Config holds the tunables of a SurfaceObserver.
type Config struct {
	// Locomotion
	WalkSpeed        float64 // Unit-sphere distance per second at normal pace
	SprintMultiplier float64 // Speed factor while sprint is held

	// Orientation upkeep
	AutoLevelStrength float64 // 0 disables auto-level; slerp fraction per frame is min(1, strength*dt*10)

	// Camera
	SurfaceHeight float64 // Eye height above the surface as a fraction of the radius

	// Numerical thresholds
	SpinEpsilon       float64 // Spin deltas at or below this are ignored
	DegenerateLenSq   float64 // Squared length under which a tangent projection is considered degenerate
	RotationAxisLenSq float64 // Squared length under which a normal-to-normal rotation axis is considered zero
}

// DefaultConfig returns the tuning used by the solar-system walker.
//
// Returns:
//   - Config: default walker configuration
func DefaultConfig() Config {
	return Config{
		WalkSpeed:        2.0,
		SprintMultiplier: 3.0,

		AutoLevelStrength: 0.15,

		SurfaceHeight: 0.05,

		SpinEpsilon:       1e-6,
		DegenerateLenSq:   1e-3,
		RotationAxisLenSq: 1e-6,
	}
}

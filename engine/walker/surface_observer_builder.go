package walker

// SurfaceObserverOption is a functional option for configuring a SurfaceObserver.
type SurfaceObserverOption func(*surfaceObserver)

// WithConfig replaces the whole observer configuration.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - SurfaceObserverOption: functional option to set the configuration
func WithConfig(cfg Config) SurfaceObserverOption {
	return func(o *surfaceObserver) {
		o.cfg = cfg
	}
}

// WithWalkSpeed sets the base walking speed in unit-sphere distance per second.
//
// Parameters:
//   - speed: walking speed
//
// Returns:
//   - SurfaceObserverOption: functional option to set the walk speed
func WithWalkSpeed(speed float64) SurfaceObserverOption {
	return func(o *surfaceObserver) {
		o.cfg.WalkSpeed = speed
	}
}

// WithSprintMultiplier sets the speed factor applied while sprint is held.
//
// Parameters:
//   - multiplier: sprint speed factor
//
// Returns:
//   - SurfaceObserverOption: functional option to set the sprint multiplier
func WithSprintMultiplier(multiplier float64) SurfaceObserverOption {
	return func(o *surfaceObserver) {
		o.cfg.SprintMultiplier = multiplier
	}
}

// WithAutoLevelStrength sets how strongly the orientation is pulled back onto the tangent plane each frame.
// A value of 0 disables auto-level.
//
// Parameters:
//   - strength: auto-level strength
//
// Returns:
//   - SurfaceObserverOption: functional option to set the auto-level strength
func WithAutoLevelStrength(strength float64) SurfaceObserverOption {
	return func(o *surfaceObserver) {
		o.cfg.AutoLevelStrength = strength
	}
}

// WithSurfaceHeight sets the eye height above the surface as a fraction of the body radius.
//
// Parameters:
//   - fraction: height fraction (0.05 = 5% of the radius)
//
// Returns:
//   - SurfaceObserverOption: functional option to set the surface height
func WithSurfaceHeight(fraction float64) SurfaceObserverOption {
	return func(o *surfaceObserver) {
		o.cfg.SurfaceHeight = fraction
	}
}

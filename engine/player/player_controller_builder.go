package player

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
)

// PlayerControllerOption is a functional option for configuring a PlayerController.
type PlayerControllerOption func(*playerControllerImpl)

// WithLogger sets the logger used for mode transitions.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - PlayerControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) PlayerControllerOption {
	return func(p *playerControllerImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLookSpeed sets the radians per pixel applied to pointer deltas in walking mode.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - PlayerControllerOption: functional option to set the look speed
func WithLookSpeed(speed float64) PlayerControllerOption {
	return func(p *playerControllerImpl) {
		p.lookSpeed = speed
	}
}

// WithOrbitController sets the orbit controller used in flying mode.
//
// Parameters:
//   - orbit: the orbit controller
//
// Returns:
//   - PlayerControllerOption: functional option to set the orbit controller
func WithOrbitController(orbit camera.OrbitController) PlayerControllerOption {
	return func(p *playerControllerImpl) {
		p.orbit = orbit
	}
}

// WithObserverOptions sets the options every new surface observer is created with.
//
// Parameters:
//   - options: surface observer options
//
// Returns:
//   - PlayerControllerOption: functional option to set the observer options
func WithObserverOptions(options ...walker.SurfaceObserverOption) PlayerControllerOption {
	return func(p *playerControllerImpl) {
		p.observerOptions = options
	}
}

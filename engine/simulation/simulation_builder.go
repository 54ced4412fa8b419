package simulation

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-orrery/engine/celestial"
	"github.com/Carmen-Shannon/oxy-orrery/engine/input"
)

// SimulationBuilderOption is a functional option for configuring a Simulation.
type SimulationBuilderOption func(*simulationImpl)

// WithLogger sets the logger shared by the simulation and the components it creates.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - SimulationBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) SimulationBuilderOption {
	return func(s *simulationImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInput sets the input manager drained each tick.
//
// Parameters:
//   - m: the input manager
//
// Returns:
//   - SimulationBuilderOption: functional option to set the input manager
func WithInput(m input.Manager) SimulationBuilderOption {
	return func(s *simulationImpl) {
		s.input = m
	}
}

// WithSystem sets the celestial system. The caller keeps ownership and must close it.
//
// Parameters:
//   - system: the celestial system
//
// Returns:
//   - SimulationBuilderOption: functional option to set the system
func WithSystem(system celestial.System) SimulationBuilderOption {
	return func(s *simulationImpl) {
		s.system = system
	}
}

// WithMaxDeltaTime sets the upper bound for the frame time.
//
// Parameters:
//   - seconds: the largest delta time a tick will use
//
// Returns:
//   - SimulationBuilderOption: functional option to set the clamp
func WithMaxDeltaTime(seconds float64) SimulationBuilderOption {
	return func(s *simulationImpl) {
		s.maxDeltaTime = seconds
	}
}

// WithViewport sets the initial viewport size.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - SimulationBuilderOption: functional option to set the viewport
func WithViewport(width, height int) SimulationBuilderOption {
	return func(s *simulationImpl) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

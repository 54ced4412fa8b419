package celestial

import (
	"log/slog"
	"math/rand/v2"
)

// SystemBuilderOption is a functional option for configuring a System.
type SystemBuilderOption func(*systemImpl)

// WithLogger sets the logger for load and scale events.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - SystemBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) SystemBuilderOption {
	return func(s *systemImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed makes the random starting orbit angles reproducible.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - SystemBuilderOption: functional option to seed the random source
func WithSeed(seed uint64) SystemBuilderOption {
	return func(s *systemImpl) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithWorkers sets the size of the worker pool that advances bodies in parallel.
//
// Parameters:
//   - n: maximum number of workers (at least 1)
//
// Returns:
//   - SystemBuilderOption: functional option to set the worker count
func WithWorkers(n int) SystemBuilderOption {
	return func(s *systemImpl) {
		s.workers = max(1, n)
	}
}

// WithScales sets the initial size and distance scales.
//
// Parameters:
//   - size: radius multiplier
//   - distance: orbit distance multiplier
//
// Returns:
//   - SystemBuilderOption: functional option to set the scales
func WithScales(size, distance float64) SystemBuilderOption {
	return func(s *systemImpl) {
		s.sizeScale = max(size, 0)
		s.distanceScale = max(distance, 0)
	}
}

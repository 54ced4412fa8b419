package celestial

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrUnknownSystem is returned when a preset key does not name an embedded system.
	ErrUnknownSystem = errors.New("celestial: unknown system")
	// ErrInvalidConfig is returned when a system configuration fails validation.
	ErrInvalidConfig = errors.New("celestial: invalid system config")
	// ErrNoBody is returned for body indices outside the loaded system.
	ErrNoBody = errors.New("celestial: no such body")
)

// DefaultRotationSpeed is the spin applied per update to orbiting bodies that do not set one.
const DefaultRotationSpeed = 0.002

// Color is an RGB color with components in [0, 1]. It decodes from "#rrggbb" JSON strings.
type Color [3]float32

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", s, err)
	}
	c[0] = float32((v>>16)&0xff) / 255
	c[1] = float32((v>>8)&0xff) / 255
	c[2] = float32(v&0xff) / 255
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	r := uint32(c[0]*255 + 0.5)
	g := uint32(c[1]*255 + 0.5)
	b := uint32(c[2]*255 + 0.5)
	return json.Marshal(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// BodyConfig describes one body of a system at unit scale.
type BodyConfig struct {
	Name       string  `json:"name"`
	Radius     float64 `json:"radius"`
	Distance   float64 `json:"distance"`
	OrbitSpeed float64 `json:"orbitSpeed"`
	// RotationSpeed is the spin per update. Nil means DefaultRotationSpeed for orbiting bodies and no spin for
	// bodies at the center.
	RotationSpeed *float64 `json:"rotationSpeed,omitempty"`
	// InitialAngle fixes the starting orbit angle. Nil picks a random angle.
	InitialAngle *float64 `json:"initialAngle,omitempty"`
	Color        Color    `json:"color"`
	Emissive     *Color   `json:"emissive,omitempty"`
}

// Orbits reports whether the body moves around the system center.
func (b BodyConfig) Orbits() bool {
	return b.Distance > 0
}

// SystemConfig describes a planetary system preset.
type SystemConfig struct {
	Key                  string       `json:"key"`
	Name                 string       `json:"name"`
	CenterLightIntensity float64      `json:"centerLightIntensity"`
	CameraStart          mgl64.Vec3   `json:"cameraStart"`
	Bodies               []BodyConfig `json:"bodies"`
}

// Validate checks that the system has bodies with usable dimensions.
//
// Returns:
//   - error: wrapping ErrInvalidConfig on the first problem found, nil otherwise
func (s SystemConfig) Validate() error {
	if len(s.Bodies) == 0 {
		return fmt.Errorf("system %q has no bodies: %w", s.Key, ErrInvalidConfig)
	}
	for i, b := range s.Bodies {
		switch {
		case b.Name == "":
			return fmt.Errorf("system %q body %d has no name: %w", s.Key, i, ErrInvalidConfig)
		case !(b.Radius > 0):
			return fmt.Errorf("system %q body %q radius %v: %w", s.Key, b.Name, b.Radius, ErrInvalidConfig)
		case b.Distance < 0:
			return fmt.Errorf("system %q body %q distance %v: %w", s.Key, b.Name, b.Distance, ErrInvalidConfig)
		}
	}
	return nil
}

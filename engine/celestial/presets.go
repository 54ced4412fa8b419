package celestial

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
)

//go:embed systems/*.json
var presetFS embed.FS

// presetKeys lists the embedded systems in menu order.
var presetKeys = []string{
	"solar",
	"jovian",
	"saturnian",
	"trappist",
	"kepler90",
	"kepler47",
	"alpha-centauri",
}

// PresetKeys returns the keys of the embedded system presets in menu order.
func PresetKeys() []string {
	return append([]string(nil), presetKeys...)
}

// LoadPreset decodes the embedded system preset with the given key.
//
// Parameters:
//   - key: the preset key, e.g. "solar"
//
// Returns:
//   - SystemConfig: the decoded and validated configuration
//   - error: wrapping ErrUnknownSystem if no preset has the key
func LoadPreset(key string) (SystemConfig, error) {
	data, err := presetFS.ReadFile("systems/" + key + ".json")
	if err != nil {
		return SystemConfig{}, fmt.Errorf("load preset %q: %w", key, ErrUnknownSystem)
	}
	cfg, err := DecodeSystemConfig(bytes.NewReader(data))
	if err != nil {
		return SystemConfig{}, fmt.Errorf("load preset %q: %w", key, err)
	}
	return cfg, nil
}

// DecodeSystemConfig reads a JSON system configuration and validates it.
//
// Parameters:
//   - r: the JSON source
//
// Returns:
//   - SystemConfig: the decoded configuration
//   - error: a decoding error, or one wrapping ErrInvalidConfig
func DecodeSystemConfig(r io.Reader) (SystemConfig, error) {
	var cfg SystemConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return SystemConfig{}, fmt.Errorf("decode system config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SystemConfig{}, err
	}
	return cfg, nil
}

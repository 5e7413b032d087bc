// Application configuration with TOML file support
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"interpolation-preview/internal/resample"
)

// Config holds every tunable of the application.
type Config struct {
	Mitchell  MitchellConfig  `toml:"mitchell"`
	Lanczos   LanczosConfig   `toml:"lanczos"`
	Resample  ResampleConfig  `toml:"resample"`
	Preview   PreviewConfig   `toml:"preview"`
	Transform TransformConfig `toml:"transform"`
	Log       LogConfig       `toml:"log"`
}

type MitchellConfig struct {
	B float64 `toml:"b"`
	C float64 `toml:"c"`
}

type LanczosConfig struct {
	A int `toml:"a"`
}

type ResampleConfig struct {
	Edge string `toml:"edge"` // "omit" or "clamp"
}

type PreviewConfig struct {
	DebounceMS int `toml:"debounce_ms"`
	MaxPixels  int `toml:"max_pixels"` // crop area limit before magnification
	// Region is the side of the centred square used when nothing is
	// selected. Zero means the whole image.
	Region int `toml:"region"`
}

type TransformConfig struct {
	Backend string `toml:"backend"` // "opencv" or "gift"
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mitchell: MitchellConfig{
			B: resample.DefaultMitchellB,
			C: resample.DefaultMitchellC,
		},
		Lanczos:   LanczosConfig{A: resample.DefaultLanczosA},
		Resample:  ResampleConfig{Edge: "omit"},
		Preview:   PreviewConfig{DebounceMS: 200, MaxPixels: 512 * 512, Region: 128},
		Transform: TransformConfig{Backend: "opencv"},
		Log:       LogConfig{Level: "info", JSON: true},
	}
}

// Load reads path on top of the defaults. An empty path yields Default().
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if err := c.MitchellParams().Validate(); err != nil {
		return err
	}
	if c.Lanczos.A < 1 || c.Lanczos.A > 8 {
		return fmt.Errorf("lanczos.a must be within 1..8, got %d: %w", c.Lanczos.A, resample.ErrInvalidInput)
	}
	if _, err := resample.ParseEdgeMode(c.Resample.Edge); err != nil {
		return fmt.Errorf("resample.edge: %w", err)
	}
	if c.Preview.DebounceMS < 0 {
		return fmt.Errorf("preview.debounce_ms must not be negative")
	}
	if c.Preview.MaxPixels < 1 {
		return fmt.Errorf("preview.max_pixels must be positive")
	}
	if c.Preview.Region < 0 {
		return fmt.Errorf("preview.region must not be negative")
	}
	switch c.Transform.Backend {
	case "opencv", "gift":
	default:
		return fmt.Errorf("unknown transform.backend %q", c.Transform.Backend)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// EdgeMode returns the parsed resample.edge value.
func (c Config) EdgeMode() resample.EdgeMode {
	m, _ := resample.ParseEdgeMode(c.Resample.Edge)
	return m
}

func (c Config) MitchellParams() resample.MitchellParams {
	return resample.MitchellParams{
		B:       c.Mitchell.B,
		C:       c.Mitchell.C,
		Options: resample.Options{Edge: c.EdgeMode()},
	}
}

func (c Config) LanczosParams() resample.LanczosParams {
	return resample.LanczosParams{
		A:       c.Lanczos.A,
		Options: resample.Options{Edge: c.EdgeMode()},
	}
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.Preview.DebounceMS) * time.Millisecond
}

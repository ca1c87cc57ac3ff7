// Package config handles slicer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/stlslice/pkg/mesh"
	"github.com/Faultbox/stlslice/pkg/slicer"
)

// Config holds all slicer settings.
type Config struct {
	Slice   SliceConfig   `yaml:"slice"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// SliceConfig holds the parameters of a slice request.
type SliceConfig struct {
	Height    float64 `yaml:"height"`
	Pitch     float64 `yaml:"pitch"`
	Direction string  `yaml:"direction"` // +X, -X, +Y, -Y, +Z or -Z
	Scale     float64 `yaml:"scale"`
	Speed     float64 `yaml:"speed"`
	Fast      float64 `yaml:"fast"`
	RetryStep float64 `yaml:"retry_step"`
	Workers   int     `yaml:"workers"` // concurrent z levels, 1 for sequential
}

// OutputConfig holds result dump settings.
type OutputConfig struct {
	Format string `yaml:"format"` // xml or yaml
	Path   string `yaml:"path"`   // empty writes to stdout; a .gz suffix compresses
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // Prometheus textfile path, empty to disable
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock slicing parameters.
func Default() *Config {
	p := slicer.DefaultParams()
	return &Config{
		Slice: SliceConfig{
			Height:    p.Height,
			Pitch:     p.Pitch,
			Direction: p.Direction.String(),
			Scale:     p.Scale,
			Speed:     p.Speed,
			Fast:      p.Fast,
			RetryStep: p.RetryStep,
			Workers:   1,
		},
		Output: OutputConfig{
			Format: "xml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the slice settings into validated slicer parameters.
func (c SliceConfig) Params() (slicer.Params, error) {
	dir, err := mesh.ParseDirection(c.Direction)
	if err != nil {
		return slicer.Params{}, fmt.Errorf("%w: %w", slicer.ErrInvalidParameter, err)
	}
	p := slicer.Params{
		Height:    c.Height,
		Pitch:     c.Pitch,
		Direction: dir,
		Scale:     c.Scale,
		Speed:     c.Speed,
		Fast:      c.Fast,
		RetryStep: c.RetryStep,
	}
	if err := p.Validate(); err != nil {
		return slicer.Params{}, err
	}
	return p, nil
}

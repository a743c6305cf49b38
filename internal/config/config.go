package config

import (
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/cloth"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
	DefaultMaterial = "cotton"
)

type Config struct {
	Grid          GridConfig    `yaml:"grid"`
	Material      string        `yaml:"material"`
	Dt            float64       `yaml:"dt"`
	Duration      float64       `yaml:"duration"`
	Seed          int64         `yaml:"seed"`
	ValidateState bool          `yaml:"validate_state"`
	Pointer       PointerConfig `yaml:"pointer"`
}

type GridConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Spacing      float64 `yaml:"spacing"`
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
}

// PointerConfig is a fixed grab applied during a headless run. A zero
// Release frame holds the grab until the end.
type PointerConfig struct {
	Enabled bool    `yaml:"enabled"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Press   int     `yaml:"press_frame"`
	Release int     `yaml:"release_frame"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Width:        cloth.DefaultGridWidth,
			Height:       cloth.DefaultGridHeight,
			Spacing:      cloth.DefaultSpacing,
			CanvasWidth:  cloth.DefaultCanvasWidth,
			CanvasHeight: cloth.DefaultCanvasHeight,
		},
		Material:      DefaultMaterial,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		ValidateState: true,
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto decodes the file at path over a copy of base. Keys the file
// leaves out keep base's values, so a partial file can adjust a preset.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Layout() cloth.Layout {
	return cloth.Layout{
		Width:        c.Grid.Width,
		Height:       c.Grid.Height,
		Spacing:      c.Grid.Spacing,
		CanvasWidth:  c.Grid.CanvasWidth,
		CanvasHeight: c.Grid.CanvasHeight,
	}
}

func (c *Config) GetMaterial() (cloth.Material, error) {
	return cloth.MaterialByName(c.Material)
}

// Frames is the number of fixed steps covering Duration.
func (c *Config) Frames() int {
	return int(c.Duration/c.Dt + 0.5)
}

// Validate reports the first field that cannot drive a run.
func (c *Config) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return err
	}
	if _, err := c.GetMaterial(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return &cloth.ConfigError{Field: "dt", Value: c.Dt, Wrapped: cloth.ErrInvalidConfig}
	}
	if c.Duration <= 0 {
		return &cloth.ConfigError{Field: "duration", Value: c.Duration, Wrapped: cloth.ErrInvalidConfig}
	}
	if c.Pointer.Enabled && c.Pointer.Release != 0 && c.Pointer.Release < c.Pointer.Press {
		return &cloth.ConfigError{
			Field:   "pointer.release_frame",
			Value:   fmt.Sprintf("%d < %d", c.Pointer.Release, c.Pointer.Press),
			Wrapped: cloth.ErrInvalidConfig,
		}
	}
	return nil
}

// PointerAt returns the configured pointer state for a frame.
func (c *Config) PointerAt(frame int) cloth.Pointer {
	p := c.Pointer
	if !p.Enabled || frame < p.Press || (p.Release != 0 && frame >= p.Release) {
		return cloth.Pointer{}
	}
	return cloth.Pointer{Pressed: true, X: p.X, Y: p.Y}
}

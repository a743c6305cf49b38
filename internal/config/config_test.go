package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Material != "cotton" {
		t.Errorf("expected material cotton, got %s", cfg.Material)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Frames() != 600 {
		t.Errorf("expected 600 frames, got %d", cfg.Frames())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("handkerchief")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Material != "silk" {
		t.Errorf("expected silk, got %s", cfg.Material)
	}

	cfg.Material = "denim"
	if Presets["handkerchief"].Material != "silk" {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero spacing", func(c *Config) { c.Grid.Spacing = 0 }, cloth.ErrInvalidLayout},
		{"zero width", func(c *Config) { c.Grid.Width = 0 }, cloth.ErrInvalidLayout},
		{"unknown material", func(c *Config) { c.Material = "wool" }, cloth.ErrUnknownMaterial},
		{"zero dt", func(c *Config) { c.Dt = 0 }, cloth.ErrInvalidConfig},
		{"negative duration", func(c *Config) { c.Duration = -1 }, cloth.ErrInvalidConfig},
		{"release before press", func(c *Config) {
			c.Pointer = PointerConfig{Enabled: true, Press: 10, Release: 5}
		}, cloth.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")

	cfg := DefaultConfig()
	cfg.Material = "denim"
	cfg.Grid.Width = 10
	cfg.Pointer = PointerConfig{Enabled: true, X: 1, Y: 2, Press: 3}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadIntoPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.005\ngrid:\n  spacing: 12\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	base := GetPreset("tug")
	cfg, err := LoadInto(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Dt != 0.005 || cfg.Grid.Spacing != 12 {
		t.Errorf("file values not applied: dt=%f spacing=%f", cfg.Dt, cfg.Grid.Spacing)
	}
	if cfg.Grid.Width != 20 || cfg.Grid.Height != 15 || cfg.Grid.CanvasWidth != 400 {
		t.Errorf("preset grid lost: %+v", cfg.Grid)
	}
	if !cfg.Pointer.Enabled || cfg.Pointer.Press != 60 || cfg.Pointer.Release != 240 {
		t.Errorf("preset pointer lost: %+v", cfg.Pointer)
	}
	if base.Dt != DefaultDt || Presets["tug"].Dt != DefaultDt {
		t.Error("LoadInto should not modify its base")
	}
}

func TestPointerAt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pointer = PointerConfig{Enabled: true, X: 5, Y: 6, Press: 2, Release: 4}

	tests := []struct {
		frame   int
		pressed bool
	}{
		{0, false},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, tt := range tests {
		p := cfg.PointerAt(tt.frame)
		if p.Pressed != tt.pressed {
			t.Errorf("frame %d: expected pressed=%v", tt.frame, tt.pressed)
		}
		if p.Pressed && (p.X != 5 || p.Y != 6) {
			t.Errorf("frame %d: unexpected position %+v", tt.frame, p)
		}
	}
}

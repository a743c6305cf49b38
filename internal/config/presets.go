package config

import (
	"sort"

	"github.com/san-kum/clothsim/internal/cloth"
)

var Presets = map[string]*Config{
	"curtain": {
		Grid: GridConfig{
			Width: cloth.DefaultGridWidth, Height: cloth.DefaultGridHeight, Spacing: cloth.DefaultSpacing,
			CanvasWidth: cloth.DefaultCanvasWidth, CanvasHeight: cloth.DefaultCanvasHeight,
		},
		Material: "cotton", Dt: DefaultDt, Duration: 10.0, ValidateState: true,
	},
	"handkerchief": {
		Grid: GridConfig{
			Width: 12, Height: 12, Spacing: 10,
			CanvasWidth: 200, CanvasHeight: 200,
		},
		Material: "silk", Dt: DefaultDt, Duration: 5.0, ValidateState: true,
	},
	"banner": {
		Grid: GridConfig{
			Width: 40, Height: 10, Spacing: 15,
			CanvasWidth: 800, CanvasHeight: 300,
		},
		Material: "denim", Dt: DefaultDt, Duration: 8.0, ValidateState: true,
	},
	"tug": {
		Grid: GridConfig{
			Width: 20, Height: 15, Spacing: 15,
			CanvasWidth: 400, CanvasHeight: 400,
		},
		Material: "cotton", Dt: DefaultDt, Duration: 6.0, ValidateState: true,
		Pointer: PointerConfig{Enabled: true, X: 200, Y: 330, Press: 60, Release: 240},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

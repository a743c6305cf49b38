package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of material switches and pointer drags
// played against one cloth.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep holds for Frames frames. When Pointer is pressed it moves
// linearly from Pointer to To (or stays put if To is omitted).
type ScenarioStep struct {
	Frames   int          `yaml:"frames"`
	Material string       `yaml:"material"`
	Pointer  PointerState `yaml:"pointer"`
	To       *Point       `yaml:"to"`
}

type PointerState struct {
	Pressed bool    `yaml:"pressed"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return &cloth.ConfigError{Field: "steps", Value: 0, Wrapped: cloth.ErrInvalidConfig}
	}
	for i, step := range s.Steps {
		if step.Frames <= 0 {
			return fmt.Errorf("step %d: %w", i+1, &cloth.ConfigError{Field: "frames", Value: step.Frames, Wrapped: cloth.ErrInvalidConfig})
		}
		if step.Material != "" {
			if _, err := cloth.MaterialByName(step.Material); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// TotalFrames is the length of the whole script.
func (s *Scenario) TotalFrames() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Frames
	}
	return n
}

// locate returns the step covering frame and the offset into it.
func (s *Scenario) locate(frame int) (int, int, bool) {
	for i, step := range s.Steps {
		if frame < step.Frames {
			return i, frame, true
		}
		frame -= step.Frames
	}
	return 0, 0, false
}

// Frame implements sim.Driver. The step's material is selected on its
// first frame; past the end of the script the pointer is released.
func (s *Scenario) Frame(frame int, c *cloth.Cloth) cloth.Pointer {
	idx, offset, ok := s.locate(frame)
	if !ok {
		return cloth.Pointer{}
	}
	step := s.Steps[idx]

	if offset == 0 && step.Material != "" {
		if m, err := cloth.MaterialByName(step.Material); err == nil {
			c.SetActiveMaterial(m)
		}
	}

	if !step.Pointer.Pressed {
		return cloth.Pointer{}
	}
	ptr := cloth.Pointer{Pressed: true, X: step.Pointer.X, Y: step.Pointer.Y}
	if step.To != nil && step.Frames > 1 {
		f := float64(offset) / float64(step.Frames-1)
		ptr.X += (step.To.X - step.Pointer.X) * f
		ptr.Y += (step.To.Y - step.Pointer.Y) * f
	}
	return ptr
}

// RunScenario plays scenario against a fresh cloth built from cfg. The
// run lasts exactly as long as the script.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config, metrics []sim.Metric) (*sim.Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := cfg.GetMaterial()
	if err != nil {
		return nil, err
	}
	c, err := cloth.New(cfg.Layout(), m)
	if err != nil {
		return nil, err
	}

	s := sim.New(c, scenario)
	for _, metric := range metrics {
		s.AddMetric(metric)
	}

	fmt.Printf("running scenario %q (%d steps, %d frames)\n", scenario.Name, len(scenario.Steps), scenario.TotalFrames())

	return s.Run(ctx, sim.Config{
		Dt:            cfg.Dt,
		Duration:      float64(scenario.TotalFrames()) * cfg.Dt,
		Seed:          cfg.Seed,
		ValidateState: cfg.ValidateState,
	})
}

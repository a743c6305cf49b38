package sim

import (
	"context"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Simulator steps one cloth at a fixed dt.
type Simulator struct {
	cloth     *cloth.Cloth
	driver    Driver
	metrics   []Metric
	observers []Observer
}

// New wraps c. A nil driver means no pointer input and no material switches.
func New(c *cloth.Cloth, driver Driver) *Simulator {
	return &Simulator{
		cloth:     c,
		driver:    driver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Cloth() *cloth.Cloth    { return s.cloth }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	result := &Result{
		Frames:  make([]Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	c := s.cloth
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		var ptr cloth.Pointer
		if s.driver != nil {
			ptr = s.driver.Frame(i, c)
		}

		c.Step(cfg.Dt, ptr)
		result.StepsTaken++

		if cfg.ValidateState && !c.Grid().Finite() {
			s.finish(result)
			return result, &cloth.FrameError{Frame: i, Time: c.Time(), Wrapped: cloth.ErrUnstable}
		}

		f := Frame{
			Index:    i,
			Time:     c.Time(),
			Material: c.ActiveMaterial().Name(),
			Pressed:  ptr.Pressed,
			Energy:   c.Energy(),
			Sag:      c.Sag(),
			Strain:   c.MaxStrain(),
		}
		result.Frames = append(result.Frames, f)

		for _, m := range s.metrics {
			m.Observe(c)
		}
		for _, obs := range s.observers {
			obs.OnFrame(c, f)
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	g := s.cloth.Grid()
	result.Positions = g.Positions(make([]float64, 0, 2*g.Len()))
	result.Locked = make([]bool, g.Len())
	for i := range g.Particles {
		result.Locked[i] = g.Particles[i].Locked
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return &cloth.ConfigError{Field: "dt", Value: cfg.Dt, Wrapped: cloth.ErrInvalidConfig}
	}
	if cfg.Duration <= 0 {
		return &cloth.ConfigError{Field: "duration", Value: cfg.Duration, Wrapped: cloth.ErrInvalidConfig}
	}
	return nil
}

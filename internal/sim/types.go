package sim

import "github.com/san-kum/clothsim/internal/cloth"

// Driver supplies the per-frame input of a headless run. It is called
// before each step and may switch the cloth's material.
type Driver interface {
	Frame(frame int, c *cloth.Cloth) cloth.Pointer
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(frame int, c *cloth.Cloth) cloth.Pointer

func (f DriverFunc) Frame(frame int, c *cloth.Cloth) cloth.Pointer { return f(frame, c) }

type Metric interface {
	Name() string
	Observe(c *cloth.Cloth)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(c *cloth.Cloth, f Frame)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

// Frame is the per-frame sample recorded by a run.
type Frame struct {
	Index    int
	Time     float64
	Material string
	Pressed  bool
	Energy   float64
	Sag      float64
	Strain   float64
}

type Result struct {
	Frames     []Frame
	Positions  []float64
	Locked     []bool
	Metrics    map[string]float64
	StepsTaken int
}

// Series extracts one column of the recorded frames.
func (r *Result) Series(field func(Frame) float64) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = field(f)
	}
	return out
}

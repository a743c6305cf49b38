package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Sag is the peak downward displacement of any free particle.
type Sag struct {
	name string
	peak float64
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(c *cloth.Cloth) {
	s.peak = math.Max(s.peak, c.Sag())
}

func (s *Sag) Value() float64 { return s.peak }

func (s *Sag) Reset() { s.peak = 0 }

// Strain is the peak relative stretch of any constraint.
type Strain struct {
	name string
	peak float64
}

func NewStrain() *Strain {
	return &Strain{name: "strain"}
}

func (s *Strain) Name() string { return s.name }

func (s *Strain) Observe(c *cloth.Cloth) {
	s.peak = math.Max(s.peak, c.MaxStrain())
}

func (s *Strain) Value() float64 { return s.peak }

func (s *Strain) Reset() { s.peak = 0 }

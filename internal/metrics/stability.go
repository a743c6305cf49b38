package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Stability is the fraction of frames in which every position is finite
// and no link is stretched past the limit.
type Stability struct {
	limit     float64
	frames    int
	nonFinite int
	overLimit int
	first     int
}

func NewStability(limit float64) *Stability {
	return &Stability{limit: limit, first: -1}
}

func (*Stability) Name() string { return "stability" }

func (s *Stability) Observe(c *cloth.Cloth) {
	switch {
	case !c.Grid().Finite():
		s.nonFinite++
	case c.MaxStrain() > s.limit:
		s.overLimit++
	default:
		s.frames++
		return
	}
	if s.first < 0 {
		s.first = s.frames
	}
	s.frames++
}

func (s *Stability) Value() float64 {
	if s.frames == 0 {
		return 1
	}
	return 1 - float64(s.nonFinite+s.overLimit)/float64(s.frames)
}

// FirstFailure is the index of the first bad observation, or -1.
func (s *Stability) FirstFailure() int { return s.first }

// Failures splits the bad frames into non-finite and over-stretched ones.
func (s *Stability) Failures() (nonFinite, overLimit int) {
	return s.nonFinite, s.overLimit
}

func (s *Stability) Reset() {
	*s = Stability{limit: s.limit, first: -1}
}

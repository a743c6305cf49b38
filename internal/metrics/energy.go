package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Energy is the mean total cloth energy over the observed frames. Peak is
// kept alongside for diagnostics.
type Energy struct {
	mean float64
	peak float64
	n    int
}

func NewEnergy() *Energy { return &Energy{} }

func (*Energy) Name() string { return "energy" }

// Observe folds the frame into a running mean so long runs do not
// accumulate one large sum.
func (e *Energy) Observe(c *cloth.Cloth) {
	v := c.Energy()
	e.n++
	e.mean += (v - e.mean) / float64(e.n)
	if e.n == 1 || v > e.peak {
		e.peak = v
	}
}

func (e *Energy) Value() float64 { return e.mean }

func (e *Energy) Peak() float64 { return e.peak }

func (e *Energy) Reset() { *e = Energy{} }

// driftFloor keeps the relative drift finite for a cloth that starts with
// (almost) zero energy; below it drift is measured in absolute units.
const driftFloor = 1e-9

// EnergyDrift is the largest relative change of cloth energy from the
// first observed frame.
type EnergyDrift struct {
	ref    float64
	worst  float64
	primed bool
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (*EnergyDrift) Name() string { return "energy_drift" }

func (d *EnergyDrift) Observe(c *cloth.Cloth) {
	v := c.Energy()
	if !d.primed {
		d.ref, d.primed = v, true
		return
	}
	scale := math.Max(math.Abs(d.ref), driftFloor)
	d.worst = math.Max(d.worst, math.Abs(v-d.ref)/scale)
}

func (d *EnergyDrift) Value() float64 { return d.worst }

func (d *EnergyDrift) Reset() { *d = EnergyDrift{} }

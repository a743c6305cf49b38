package analysis

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Divergence estimates how fast a small horizontal displacement of the
// centre hem particle grows or decays, as a mean log rate per second. Two
// identical clothes are stepped side by side. After every frame the
// perturbed one is rescaled toward the reference so the separation is
// perturbation again, keeping the pair in the linear regime.
func Divergence(l cloth.Layout, m cloth.Material, dt float64, frames int, perturbation float64) (float64, error) {
	ref, err := cloth.New(l, m)
	if err != nil {
		return 0, err
	}
	pert, err := cloth.New(l, m)
	if err != nil {
		return 0, err
	}
	if dt <= 0 || frames <= 0 || perturbation <= 0 {
		return 0, nil
	}

	g := pert.Grid()
	p := g.At(g.Width/2, g.Height-1)
	if p.Locked {
		return 0, nil
	}
	p.X += perturbation
	p.OldX += perturbation

	sumLog := 0.0
	count := 0
	a, b := ref.Grid().Particles, g.Particles

	for f := 0; f < frames; f++ {
		ref.Step(dt, cloth.Pointer{})
		pert.Step(dt, cloth.Pointer{})

		sep := separation(a, b)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, &cloth.FrameError{Frame: f, Time: pert.Time(), Wrapped: cloth.ErrUnstable}
		}
		if sep == 0 {
			continue
		}

		sumLog += math.Log(sep / perturbation)
		count++
		renormalize(a, b, perturbation/sep)
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

// separation is the Euclidean distance between the position vectors of two
// equally sized particle sets.
func separation(a, b []cloth.Particle) float64 {
	sum := 0.0
	for i := range a {
		dx, dy := b[i].X-a[i].X, b[i].Y-a[i].Y
		sum += dx*dx + dy*dy
	}
	return math.Sqrt(sum)
}

// renormalize scales the offset of b from a by scale across the whole
// particle state: current and previous positions and the stored velocity
// the next drag term reads.
func renormalize(a, b []cloth.Particle, scale float64) {
	lerp := func(ref, v float64) float64 { return ref + (v-ref)*scale }
	for i := range b {
		b[i].X, b[i].Y = lerp(a[i].X, b[i].X), lerp(a[i].Y, b[i].Y)
		b[i].OldX, b[i].OldY = lerp(a[i].OldX, b[i].OldX), lerp(a[i].OldY, b[i].OldY)
		b[i].VX, b[i].VY = lerp(a[i].VX, b[i].VX), lerp(a[i].VY, b[i].VY)
	}
}

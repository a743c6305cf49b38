package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func sine(n int, freq, rate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 5 + math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

func TestPowerSpectrumLength(t *testing.T) {
	if ps := PowerSpectrum(sine(64, 2, 64)); len(ps) != 32 {
		t.Errorf("expected 32 bins, got %d", len(ps))
	}
	if ps := PowerSpectrum(sine(100, 2, 64)); len(ps) != 64 {
		t.Errorf("expected 64 bins after padding, got %d", len(ps))
	}
	if ps := PowerSpectrum([]float64{1}); ps != nil {
		t.Errorf("expected nil for single sample, got %v", ps)
	}
}

func TestDominantFrequency(t *testing.T) {
	if f := DominantFrequency(sine(64, 2, 64), 64); math.Abs(f-2) > 1e-9 {
		t.Errorf("expected 2 Hz, got %f", f)
	}

	// 100 samples pad to 128, so bins are 0.5 Hz wide.
	if f := DominantFrequency(sine(100, 4, 64), 64); math.Abs(f-4) > 0.5 {
		t.Errorf("expected about 4 Hz, got %f", f)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	flat := make([]float64, 32)
	for i := range flat {
		flat[i] = 3
	}
	if f := DominantFrequency(flat, 60); f != 0 {
		t.Errorf("expected 0 for flat series, got %f", f)
	}
	if f := DominantFrequency(sine(64, 2, 64), 0); f != 0 {
		t.Errorf("expected 0 for zero sample rate, got %f", f)
	}
}

func TestSettleTime(t *testing.T) {
	data := []float64{5, 3, 1.5, 1.05, 1.01, 1.0}
	if got := SettleTime(data, 0.5, 0.1); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}
	if got := SettleTime([]float64{2, 2, 2}, 1, 0.1); got != 0 {
		t.Errorf("expected 0 for constant series, got %f", got)
	}
	if got := SettleTime(nil, 1, 0.1); got != -1 {
		t.Errorf("expected -1 for empty series, got %f", got)
	}
}

func TestDivergence(t *testing.T) {
	l := cloth.Layout{Width: 6, Height: 5, Spacing: 10, CanvasWidth: 200, CanvasHeight: 200}

	rate, err := Divergence(l, cloth.Cotton{}, 1.0/60, 120, 1e-3)
	if err != nil {
		t.Fatalf("divergence failed: %v", err)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		t.Errorf("expected finite rate, got %f", rate)
	}

	if rate, _ := Divergence(l, cloth.Cotton{}, 1.0/60, 120, 0); rate != 0 {
		t.Errorf("expected 0 without perturbation, got %f", rate)
	}
}

func TestDivergenceRenormalizesEveryFrame(t *testing.T) {
	l := cloth.Layout{Width: 6, Height: 5, Spacing: 10, CanvasWidth: 200, CanvasHeight: 200}
	const (
		dt     = 1.0 / 60
		frames = 5
		eps    = 1e-6
	)

	// In the linear regime the per-frame log growths telescope to the log
	// growth of an unrenormalized twin over the whole run.
	ref, _ := cloth.New(l, cloth.Cotton{})
	twin, _ := cloth.New(l, cloth.Cotton{})
	g := twin.Grid()
	p := g.At(g.Width/2, g.Height-1)
	p.X += eps
	p.OldX += eps
	for f := 0; f < frames; f++ {
		ref.Step(dt, cloth.Pointer{})
		twin.Step(dt, cloth.Pointer{})
	}
	want := math.Log(separation(ref.Grid().Particles, g.Particles)/eps) / (frames * dt)

	got, err := Divergence(l, cloth.Cotton{}, dt, frames, eps)
	if err != nil {
		t.Fatalf("divergence failed: %v", err)
	}
	if math.Abs(got-want) > 1e-3*math.Max(1, math.Abs(want)) {
		t.Errorf("expected rate %f, got %f", want, got)
	}
}

func TestRenormalize(t *testing.T) {
	a := []cloth.Particle{{X: 1, Y: 1, OldX: 1, OldY: 1}, {X: 5, Y: 5, OldX: 5, OldY: 5}}
	b := []cloth.Particle{{X: 4, Y: 5, OldX: 3, OldY: 1, VX: 10}, {X: 5, Y: 5, OldX: 5, OldY: 5}}

	if sep := separation(a, b); sep != 5 {
		t.Fatalf("expected separation 5, got %f", sep)
	}
	renormalize(a, b, 0.2)
	if sep := separation(a, b); math.Abs(sep-1) > 1e-12 {
		t.Errorf("expected separation 1 after renormalizing, got %f", sep)
	}
	if math.Abs(b[0].OldX-1.4) > 1e-12 || b[0].OldY != 1 {
		t.Errorf("previous positions not scaled: %+v", b[0])
	}
	if math.Abs(b[0].VX-2) > 1e-12 {
		t.Errorf("velocity offset not scaled: %f", b[0].VX)
	}
}

func TestDivergenceInvalidLayout(t *testing.T) {
	_, err := Divergence(cloth.Layout{}, cloth.Cotton{}, 1.0/60, 10, 1e-3)
	if !errors.Is(err, cloth.ErrInvalidLayout) {
		t.Errorf("expected ErrInvalidLayout, got %v", err)
	}
}

package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func newTestCloth(t *testing.T) *cloth.Cloth {
	t.Helper()
	c, err := cloth.New(cloth.Layout{Width: 5, Height: 4, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}, cloth.Cotton{})
	if err != nil {
		t.Fatalf("new cloth: %v", err)
	}
	return c
}

func TestEnergyAtRest(t *testing.T) {
	c := newTestCloth(t)
	m := NewEnergy()

	m.Observe(c)

	// At rest only gravitational potential of the free rows remains.
	expected := 0.0
	for i := range c.Grid().Particles {
		p := c.Particle(i)
		if !p.Locked {
			expected += p.Mass * cloth.Gravity * p.Y
		}
	}
	if math.Abs(m.Value()-expected) > 1e-6 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	c := newTestCloth(t)
	m := NewEnergy()

	m.Observe(c)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	if m.Peak() != m.Value() {
		t.Errorf("single sample peak %f should equal mean %f", m.Peak(), m.Value())
	}

	m.Reset()
	if m.Value() != 0 || m.Peak() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyRunningMean(t *testing.T) {
	c := newTestCloth(t)
	m := NewEnergy()

	var sum float64
	for i := 0; i < 20; i++ {
		c.Step(1.0/60, cloth.Pointer{})
		sum += c.Energy()
		m.Observe(c)
	}
	if math.Abs(m.Value()-sum/20) > 1e-6*math.Abs(sum) {
		t.Errorf("expected mean %f, got %f", sum/20, m.Value())
	}
	if m.Peak() < m.Value() {
		t.Errorf("peak %f below mean %f", m.Peak(), m.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	c := newTestCloth(t)
	m := NewEnergyDrift()

	m.Observe(c)
	if m.Value() != 0 {
		t.Errorf("expected no drift on first sample, got %f", m.Value())
	}

	for i := 0; i < 10; i++ {
		c.Step(1.0/60, cloth.Pointer{})
		m.Observe(c)
	}
	if m.Value() <= 0 {
		t.Error("expected drift once the cloth moves")
	}
}

func TestShapeMetrics(t *testing.T) {
	c := newTestCloth(t)
	sag, strain := NewSag(), NewStrain()

	for i := 0; i < 30; i++ {
		c.Step(1.0/60, cloth.Pointer{})
		sag.Observe(c)
		strain.Observe(c)
	}
	if sag.Value() <= 0 || strain.Value() <= 0 {
		t.Errorf("expected positive sag and strain, got %f %f", sag.Value(), strain.Value())
	}

	sag.Reset()
	strain.Reset()
	if sag.Value() != 0 || strain.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestStability(t *testing.T) {
	c := newTestCloth(t)
	m := NewStability(DefaultStrainLimit)

	m.Observe(c)
	if m.Value() != 1 {
		t.Errorf("rest pose should be stable, got %f", m.Value())
	}

	c.Particle(12).X = math.NaN()
	m.Observe(c)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5 after one bad frame, got %f", m.Value())
	}
	if m.FirstFailure() != 1 {
		t.Errorf("expected first failure at 1, got %d", m.FirstFailure())
	}
	if nonFinite, over := m.Failures(); nonFinite != 1 || over != 0 {
		t.Errorf("expected one non-finite frame, got %d %d", nonFinite, over)
	}

	m.Reset()
	if m.Value() != 1 || m.FirstFailure() != -1 {
		t.Error("expected clean state after reset")
	}
}

func TestStabilityOverStretched(t *testing.T) {
	c := newTestCloth(t)
	m := NewStability(0.5)

	c.Grid().At(2, 3).Y += 20
	m.Observe(c)
	if m.Value() != 0 {
		t.Errorf("expected unstable frame, got %f", m.Value())
	}
	if _, over := m.Failures(); over != 1 {
		t.Errorf("expected one over-stretched frame, got %d", over)
	}
}

func TestDefaultMetrics(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range DefaultMetrics() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}

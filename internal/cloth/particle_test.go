package cloth

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	if err := l.Validate(); err != nil {
		t.Fatalf("default layout invalid: %v", err)
	}
	if l.ConstraintCount() != 49*30+50*29 {
		t.Errorf("unexpected constraint count %d", l.ConstraintCount())
	}

	// Float division: no truncation to whole canvas units.
	x, y := l.Origin()
	if x != 32.5 {
		t.Errorf("expected centered x origin 32.5, got %f", x)
	}
	if y != 41.25 {
		t.Errorf("expected upper-quarter y origin 41.25, got %f", y)
	}
}

func TestLayoutValidate(t *testing.T) {
	base := Layout{Width: 4, Height: 3, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}

	tests := []struct {
		name   string
		mutate func(*Layout)
		field  string
	}{
		{"zero width", func(l *Layout) { l.Width = 0 }, "width"},
		{"negative height", func(l *Layout) { l.Height = -2 }, "height"},
		{"zero spacing", func(l *Layout) { l.Spacing = 0 }, "spacing"},
		{"nan spacing", func(l *Layout) { l.Spacing = math.NaN() }, "spacing"},
		{"inf canvas", func(l *Layout) { l.CanvasWidth = math.Inf(1) }, "canvas_width"},
		{"negative canvas", func(l *Layout) { l.CanvasHeight = -1 }, "canvas_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base
			tt.mutate(&l)
			err := l.Validate()
			if !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("expected ErrInvalidLayout, got %v", err)
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) || cerr.Field != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, err)
			}
		})
	}
}

func TestInitialize(t *testing.T) {
	l := Layout{Width: 4, Height: 3, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}
	g, cs, err := Initialize(l, Silk{})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if g.Len() != 12 {
		t.Errorf("expected 12 particles, got %d", g.Len())
	}
	if len(cs) != l.ConstraintCount() || len(cs) != 3*3+4*2 {
		t.Errorf("expected %d constraints, got %d", l.ConstraintCount(), len(cs))
	}

	x0, y0 := l.Origin()
	for i := range g.Particles {
		p := &g.Particles[i]
		col, row := g.Coords(i)
		if p.X != x0+float64(col)*10 || p.Y != y0+float64(row)*10 {
			t.Errorf("particle %d seeded at (%f, %f)", i, p.X, p.Y)
		}
		if p.OldX != p.X || p.OldY != p.Y {
			t.Errorf("particle %d has non-zero implicit velocity", i)
		}
		if p.Locked != (row == 0) {
			t.Errorf("particle %d lock flag %v on row %d", i, p.Locked, row)
		}
		if p.Mass != silkProps.Mass || p.Material != (Silk{}) {
			t.Errorf("particle %d not seeded from silk", i)
		}
	}

	for _, c := range cs {
		if c.RestLength != 10 || c.Strength != silkProps.Stiffness {
			t.Errorf("constraint %+v has wrong rest or strength", c)
		}
		ac, ar := g.Coords(c.A)
		bc, br := g.Coords(c.B)
		if math.Abs(float64(ac-bc))+math.Abs(float64(ar-br)) != 1 {
			t.Errorf("constraint %+v links non-adjacent particles", c)
		}
	}
}

func TestInitializeRejectsNilMaterial(t *testing.T) {
	_, _, err := Initialize(DefaultLayout(), nil)
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("expected ErrUnknownMaterial, got %v", err)
	}
}

func TestSingleColumn(t *testing.T) {
	g, cs, err := Initialize(Layout{Width: 1, Height: 5, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}, Cotton{})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if len(cs) != 4 {
		t.Errorf("expected 4 vertical constraints, got %d", len(cs))
	}
	Step(g, cs, Cotton{}, 1.0/60, Pointer{})
	if !g.Finite() {
		t.Error("positions diverged")
	}
}

func TestNeighbors(t *testing.T) {
	g, _, err := Initialize(Layout{Width: 3, Height: 3, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}, Cotton{})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	tests := []struct {
		col, row int
		expected int
	}{
		{0, 0, 2},
		{1, 0, 3},
		{1, 1, 4},
		{2, 2, 2},
	}
	for _, tt := range tests {
		i := g.Index(tt.col, tt.row)
		ns := g.Neighbors(i)
		if len(ns) != tt.expected {
			t.Errorf("(%d,%d): expected %d neighbors, got %d", tt.col, tt.row, tt.expected, len(ns))
		}
		for _, n := range ns {
			if d := math.Hypot(n.X-g.Particles[i].X, n.Y-g.Particles[i].Y); d != 10 {
				t.Errorf("(%d,%d): neighbor at distance %f", tt.col, tt.row, d)
			}
		}
	}

	ns := g.Neighbors(g.Index(1, 1))
	ns[0].X += 1
	if g.Particles[g.Index(0, 1)].X != ns[0].X {
		t.Error("neighbors should alias grid particles")
	}
}

func TestAppendNeighborsReusesBuffer(t *testing.T) {
	g, _, err := Initialize(Layout{Width: 4, Height: 3, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}, Cotton{})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	buf := make([]*Particle, 0, 4)
	for i := range g.Particles {
		buf = g.AppendNeighbors(buf[:0], i)
		want := g.Neighbors(i)
		if len(buf) != len(want) {
			t.Fatalf("particle %d: expected %d neighbors, got %d", i, len(want), len(buf))
		}
		for k := range want {
			if buf[k] != want[k] {
				t.Errorf("particle %d: neighbor %d differs", i, k)
			}
		}
	}
}

func TestEnergyDoesNotAllocate(t *testing.T) {
	c, err := New(DefaultLayout(), Cotton{})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		c.Step(1.0/60, Pointer{})
	}

	want := 0.0
	g := c.Grid()
	for i := range g.Particles {
		want += Cotton{}.CalcEnergy(&g.Particles[i], g.Neighbors(i), g.Spacing)
	}
	if got := c.Energy(); got != want {
		t.Errorf("expected energy %f, got %f", want, got)
	}

	if allocs := testing.AllocsPerRun(20, func() { c.Energy() }); allocs != 0 {
		t.Errorf("expected no allocations per Energy call, got %.0f", allocs)
	}
}

func TestClothResetAndMetrics(t *testing.T) {
	c, err := New(Layout{Width: 5, Height: 5, Spacing: 10, CanvasWidth: 100, CanvasHeight: 100}, Cotton{})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if c.Sag() != 0 || c.MaxStrain() != 0 {
		t.Errorf("rest pose should have no sag or strain, got %f %f", c.Sag(), c.MaxStrain())
	}

	for i := 0; i < 30; i++ {
		c.Step(1.0/60, Pointer{})
	}
	if c.Sag() <= 0 {
		t.Error("cloth should sag under gravity")
	}
	if c.MaxStrain() <= 0 {
		t.Error("cloth should stretch under gravity")
	}
	if c.Frame() != 30 || math.Abs(c.Time()-0.5) > 1e-9 {
		t.Errorf("unexpected clock: frame %d time %f", c.Frame(), c.Time())
	}

	c.SetActiveMaterial(Denim{})
	c.Reset()
	if c.Sag() != 0 || c.Frame() != 0 || c.Time() != 0 {
		t.Error("reset should restore the rest pose")
	}
	if c.Particle(7).Mass != denimProps.Mass {
		t.Error("reset should seed from the active material")
	}
}

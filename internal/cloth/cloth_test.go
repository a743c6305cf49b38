package cloth_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

const frameDt = 1.0 / 60

func smallLayout(w, h int, spacing float64) cloth.Layout {
	return cloth.Layout{Width: w, Height: h, Spacing: spacing, CanvasWidth: 200, CanvasHeight: 200}
}

var _ = Describe("Cloth", func() {
	Describe("locked particles", func() {
		It("never move under forces, pointer or relaxation", func() {
			c, err := cloth.New(smallLayout(8, 6, 12), cloth.Denim{})
			Expect(err).NotTo(HaveOccurred())

			g := c.Grid()
			type pose struct{ x, y, ox, oy float64 }
			before := make(map[int]pose)
			for i := range g.Particles {
				if p := &g.Particles[i]; p.Locked {
					before[i] = pose{p.X, p.Y, p.OldX, p.OldY}
				}
			}
			Expect(before).To(HaveLen(8))

			top := g.At(3, 0)
			for frame := 0; frame < 120; frame++ {
				ptr := cloth.Pointer{Pressed: frame%2 == 0, X: top.X, Y: top.Y + 5}
				c.Step(frameDt, ptr)
				if frame == 40 {
					c.SetActiveMaterial(cloth.Silk{})
				}
			}

			for i, want := range before {
				p := &g.Particles[i]
				Expect(pose{p.X, p.Y, p.OldX, p.OldY}).To(Equal(want))
			}
		})
	})

	Describe("a single constraint", func() {
		var a, b *cloth.Particle

		BeforeEach(func() {
			a = &cloth.Particle{X: 0, Y: 0, OldX: 0, OldY: 0, Mass: 1, Material: cloth.Cotton{}}
			b = &cloth.Particle{X: 10, Y: 0, OldX: 10, OldY: 0, Mass: 1, Material: cloth.Cotton{}}
		})

		It("is a fixed point at its rest length", func() {
			for pass := 0; pass < 50; pass++ {
				cloth.Cotton{}.SolveConstraint(a, b, 10)
			}
			Expect(a.X).To(Equal(0.0))
			Expect(a.Y).To(Equal(0.0))
			Expect(b.X).To(Equal(10.0))
			Expect(b.Y).To(Equal(0.0))
		})

		It("pulls a stretched free end toward rest without overshooting the anchor", func() {
			a.Locked = true
			b.X, b.OldX = 20, 20

			prevErr := math.Abs(b.X - a.X - 10)
			for pass := 0; pass < cloth.RelaxationPasses; pass++ {
				cloth.Cotton{}.SolveConstraint(a, b, 10)
				errNow := math.Abs(b.X - a.X - 10)
				Expect(errNow).To(BeNumerically("<", prevErr))
				Expect(b.X).To(BeNumerically(">", a.X))
				prevErr = errNow
			}
			Expect(a.X).To(Equal(0.0))
		})

		It("skips correction when the endpoints coincide", func() {
			b.X, b.Y = a.X, a.Y
			cloth.Denim{}.SolveConstraint(a, b, 10)
			Expect(a.X).To(Equal(0.0))
			Expect(b.X).To(Equal(0.0))
			Expect(math.IsNaN(b.Y)).To(BeFalse())
		})
	})

	Describe("energy", func() {
		It("is non-negative for a particle at rest among relaxed neighbors", func() {
			g, _, err := cloth.Initialize(smallLayout(3, 3, 10), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())

			center := g.Index(1, 1)
			for _, m := range cloth.Materials() {
				e := m.CalcEnergy(&g.Particles[center], g.Neighbors(center), g.Spacing)
				Expect(e).To(BeNumerically(">=", 0), m.Name())
			}
		})

		It("is zero for locked particles", func() {
			g, _, err := cloth.Initialize(smallLayout(3, 3, 10), cloth.Silk{})
			Expect(err).NotTo(HaveOccurred())
			Expect(cloth.Silk{}.CalcEnergy(g.At(1, 0), g.Neighbors(1), 10)).To(Equal(0.0))
		})
	})

	Describe("material selection", func() {
		It("round-trips back to cotton exactly", func() {
			ref, err := cloth.New(smallLayout(6, 5, 10), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())
			sw, err := cloth.New(smallLayout(6, 5, 10), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())

			sw.SetActiveMaterial(cloth.Denim{})
			sw.SetActiveMaterial(cloth.Silk{})
			sw.SetActiveMaterial(cloth.Cotton{})

			for frame := 0; frame < 30; frame++ {
				ptr := cloth.Pointer{Pressed: frame > 10, X: 100, Y: 100}
				ref.Step(frameDt, ptr)
				sw.Step(frameDt, ptr)
			}

			Expect(sw.Grid().Particles).To(Equal(ref.Grid().Particles))
		})

		It("reassigns material and mass of every particle", func() {
			c, err := cloth.New(smallLayout(4, 4, 10), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())

			c.SetActiveMaterial(cloth.Denim{})
			Expect(c.ActiveMaterial()).To(Equal(cloth.Material(cloth.Denim{})))
			for i := range c.Grid().Particles {
				p := c.Particle(i)
				Expect(p.Material).To(Equal(cloth.Material(cloth.Denim{})))
				Expect(p.Mass).To(Equal(1.5))
			}
		})
	})

	Describe("one frame on a 2x2 grid", func() {
		var g *cloth.Grid
		var cs []cloth.Constraint
		var y0 float64

		BeforeEach(func() {
			var err error
			g, cs, err = cloth.Initialize(smallLayout(2, 2, 10), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())
			y0 = g.At(0, 1).Y
		})

		It("free-falls by g·dt² in the force pass", func() {
			for i := range g.Particles {
				cloth.Cotton{}.ApplyForce(&g.Particles[i], frameDt)
			}
			fall := cloth.Gravity * frameDt * frameDt
			Expect(g.At(0, 1).Y - y0).To(BeNumerically("~", fall, 1e-9))
			Expect(g.At(1, 1).Y - y0).To(BeNumerically("~", fall, 1e-9))
			Expect(fall).To(BeNumerically(">", 0.5*cloth.Gravity*frameDt*frameDt))
		})

		It("falls less once constraints pull back toward the anchors", func() {
			cloth.Step(g, cs, cloth.Cotton{}, frameDt, cloth.Pointer{})

			fall := cloth.Gravity * frameDt * frameDt
			for col := 0; col < 2; col++ {
				dy := g.At(col, 1).Y - y0
				Expect(dy).To(BeNumerically(">", 0))
				Expect(dy).To(BeNumerically("<", fall))
			}
			Expect(g.At(0, 1).X).To(BeNumerically("~", g.At(0, 0).X, 1e-9))
		})
	})

	Describe("pointer interaction", func() {
		It("leaves everything in place when pressed on a locked particle", func() {
			g, _, err := cloth.Initialize(smallLayout(3, 3, 25), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())

			before := append([]cloth.Particle(nil), g.Particles...)
			anchor := g.At(1, 0)
			n := cloth.Interact(g, cloth.Pointer{Pressed: true, X: anchor.X, Y: anchor.Y})

			Expect(n).To(BeZero())
			Expect(g.Particles).To(Equal(before))
		})

		It("snaps nearby free particles and zeroes their implicit velocity", func() {
			g, _, err := cloth.Initialize(smallLayout(3, 3, 25), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())

			target := g.At(1, 2)
			px, py := target.X+5, target.Y-5
			n := cloth.Interact(g, cloth.Pointer{Pressed: true, X: px, Y: py})

			Expect(n).To(Equal(1))
			Expect([]float64{target.X, target.Y, target.OldX, target.OldY}).To(Equal([]float64{px, py, px, py}))
		})

		It("does nothing when released", func() {
			g, _, err := cloth.Initialize(smallLayout(3, 3, 25), cloth.Cotton{})
			Expect(err).NotTo(HaveOccurred())
			target := g.At(1, 2)
			Expect(cloth.Interact(g, cloth.Pointer{X: target.X, Y: target.Y})).To(BeZero())
		})
	})
})

package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/clothsim/internal/cloth"
)

// drawCloth draws every constraint as a grey line and every particle as a
// small square, locked ones in red.
func (a *App) drawCloth() {
	g := a.Cloth.Grid()
	for _, cs := range a.Cloth.Constraints() {
		p1, p2 := &g.Particles[cs.A], &g.Particles[cs.B]
		rl.DrawLine(int32(p1.X), int32(p1.Y), int32(p2.X), int32(p2.Y), ColLink)
	}

	half := int32(particleSize / 2)
	for i := range g.Particles {
		p := &g.Particles[i]
		col := ColSelect
		if p.Locked {
			col = ColLocked
		}
		rl.DrawRectangle(int32(p.X)-half, int32(p.Y)-half, particleSize, particleSize, col)
	}
}

func (a *App) drawCursor() {
	if !a.Pointer.Pressed {
		return
	}
	rl.DrawCircleLines(int32(a.Pointer.X), int32(a.Pointer.Y), cloth.PointerRadius, ColCursor)
}

// DrawTelemetry plots the recent energy history inside the given box.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(x) + float32(i)/float32(len(a.Telemetry))*float32(width)
		norm := (v - lo) / (hi - lo)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColText)
	drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}

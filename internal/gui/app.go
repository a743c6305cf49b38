package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/clothsim/internal/cloth"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColLink    = rl.NewColor(130, 130, 130, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColLocked  = rl.NewColor(230, 41, 55, 255)
	ColCursor  = rl.NewColor(255, 255, 255, 60)
)

const (
	maxTelemetry = 200
	particleSize = 4
	// maxFrameDt keeps a dragged or stalled window from handing the
	// integrator a huge step.
	maxFrameDt = 1.0 / 20
)

type App struct {
	Cloth     *cloth.Cloth
	Title     string
	Running   bool
	Pointer   cloth.Pointer
	Telemetry []float64
	fps       int32
}

// initWindow opens a window the size of the cloth's canvas at 60 FPS and
// disables the default exit key.
func initWindow(l cloth.Layout, title string) {
	rl.InitWindow(int32(l.CanvasWidth), int32(l.CanvasHeight), title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(c *cloth.Cloth, title string) *App {
	return &App{
		Cloth:     c,
		Title:     title,
		Running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens a window for c and blocks until it is closed.
func Run(c *cloth.Cloth, title string) {
	initWindow(c.Layout(), title)
	defer rl.CloseWindow()
	NewApp(c, title).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update reads input and advances the cloth by the last frame time. It
// returns false when the user asks to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Cloth.Reset()
		a.Telemetry = a.Telemetry[:0]
		log.Printf("reset %s", a.Cloth.Layout())
	}

	mats := cloth.Materials()
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree} {
		if rl.IsKeyPressed(key) && i < len(mats) {
			a.Cloth.SetActiveMaterial(mats[i])
			log.Printf("material -> %s at t=%.2fs", mats[i].Name(), a.Cloth.Time())
		}
	}

	mouse := rl.GetMousePosition()
	a.Pointer = cloth.Pointer{
		Pressed: rl.IsMouseButtonDown(rl.MouseLeftButton),
		X:       float64(mouse.X),
		Y:       float64(mouse.Y),
	}
	a.fps = rl.GetFPS()

	if !a.Running {
		return true
	}

	dt := min(float64(rl.GetFrameTime()), maxFrameDt)
	a.Cloth.Step(dt, a.Pointer)

	a.Telemetry = append(a.Telemetry, a.Cloth.Energy())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawCloth()
	a.drawCursor()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	l := a.Cloth.Layout()
	w, h := int32(l.CanvasWidth), int32(l.CanvasHeight)

	drawText(a.Title, 20, 20, 20, ColSelect)
	drawText(fmt.Sprintf(":: %s", a.Cloth.ActiveMaterial().Name()), 20, 44, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	drawText(status, w-100, 20, 16, col)

	a.DrawTelemetry(20, h-90, 240, 40)
	drawText(fmt.Sprintf("%d FPS  t=%.1fs  strain %.3f", a.fps, a.Cloth.Time(), a.Cloth.MaxStrain()), 20, h-30, 14, ColTextDim)
	drawText("[1-3] FABRIC  [SPACE] PAUSE  [R] RESET  [Q] QUIT", w-400, h-30, 14, ColTextDim)
}

func drawText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}

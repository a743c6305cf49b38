package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 600
	statsWidth      = 45

	canvasPadX = 2
	canvasPadY = 1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live cloth view. Mouse drags grab the cloth, number keys
// switch material.
type Model struct {
	cloth      *cloth.Cloth
	title      string
	cols, rows int
	canvas     *Canvas
	clock      *Clock
	pool       *sim.PositionPool
	tension    *tensionGauge
	pointer    cloth.Pointer
	running    bool
	showHelp   bool

	energyHistory []float64
	sagHistory    []float64
	history       [][]float64
	playHead      int
	lastDt        float64
}

// NewModel wraps c in a live view. dt seeds the clock's first frame.
func NewModel(c *cloth.Cloth, title string, dt float64) Model {
	return Model{
		cloth:         c,
		title:         title,
		cols:          defaultCols,
		rows:          defaultRows,
		canvas:        NewCanvas(defaultCols, defaultRows),
		clock:         NewClock(dt),
		pool:          sim.NewPositionPool(c.Grid().Len()),
		tension:       newTensionGauge(min(tensionBands, c.Layout().Height)),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		sagHistory:    make([]float64, 0, historyCapacity),
		history:       make([][]float64, 0, historyCapacity),
		playHead:      -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the cloth.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "1", "2", "3":
			m.selectMaterial(int(msg.String()[0] - '1'))
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.pointer = m.pointerFor(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		dt := m.clock.Tick(time.Time(msg))
		if m.running {
			if m.playHead == -1 {
				m.step(dt)
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) selectMaterial(i int) {
	mats := cloth.Materials()
	if i < 0 || i >= len(mats) {
		return
	}
	m.cloth.SetActiveMaterial(mats[i])
	log.Printf("material -> %s at t=%.2fs", mats[i].Name(), m.cloth.Time())
}

// pointerFor maps a terminal mouse event to canvas coordinates. Only the
// left button grabs.
func (m Model) pointerFor(msg tea.MouseMsg) cloth.Pointer {
	p := m.pointer
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return p
		}
		p.Pressed = true
	case tea.MouseActionRelease:
		p.Pressed = false
		return p
	case tea.MouseActionMotion:
		if !p.Pressed {
			return p
		}
	}
	p.X, p.Y = m.toCanvas(msg.X, msg.Y)
	return p
}

// toCanvas converts a terminal cell to layout units, aiming at the cell's
// centre.
func (m Model) toCanvas(x, y int) (float64, float64) {
	l := m.cloth.Layout()
	cx := (float64(x-canvasPadX) + 0.5) / float64(m.cols) * l.CanvasWidth
	cy := (float64(y-canvasPadY) + 0.5) / float64(m.rows) * l.CanvasHeight
	return cx, cy
}

func (m *Model) resize(w, h int) {
	cols := max(w-statsWidth-2*canvasPadX-3, 20)
	rows := max(h-2*canvasPadY, 10)
	if cols == m.cols && rows == m.rows {
		return
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
}

func (m *Model) step(dt float64) {
	m.cloth.Step(dt, m.pointer)
	m.lastDt = dt

	m.energyHistory = appendCapped(m.energyHistory, m.cloth.Energy())
	m.sagHistory = appendCapped(m.sagHistory, m.cloth.Sag())
	m.tension.update(m.cloth)

	if len(m.history) == historyCapacity {
		m.pool.Put(m.history[0])
		m.history = m.history[1:]
	}
	m.history = append(m.history, m.pool.Snapshot(m.cloth.Grid()))
}

func appendCapped(s []float64, v float64) []float64 {
	if len(s) == historyCapacity {
		s = s[1:]
	}
	return append(s, v)
}

// scrub moves the playback position through recorded frames.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	m.cloth.Reset()
	m.clock.Reset()
	for _, snap := range m.history {
		m.pool.Put(snap)
	}
	m.history = m.history[:0]
	m.energyHistory = m.energyHistory[:0]
	m.sagHistory = m.sagHistory[:0]
	m.tension.reset()
	m.playHead = -1
	m.pointer = cloth.Pointer{}
	log.Printf("reset %s", m.cloth.Layout())
}

// positions returns the frame being shown: a recorded one while
// scrubbing, the live grid otherwise.
func (m Model) positions() []float64 {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.cloth.Grid().Positions(nil)
}

func (m Model) project(x, y float64) (int, int) {
	l := m.cloth.Layout()
	px := int(x / l.CanvasWidth * float64(m.canvas.SubWidth()))
	py := int(y / l.CanvasHeight * float64(m.canvas.SubHeight()))
	return px, py
}

func (m Model) draw() {
	m.canvas.Clear()
	pos := m.positions()
	for _, cs := range m.cloth.Constraints() {
		if 2*cs.B+1 >= len(pos) {
			continue
		}
		x0, y0 := m.project(pos[2*cs.A], pos[2*cs.A+1])
		x1, y1 := m.project(pos[2*cs.B], pos[2*cs.B+1])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	if m.pointer.Pressed && m.playHead == -1 {
		x, y := m.project(m.pointer.X, m.pointer.Y)
		m.canvas.DrawCross(x, y, 2)
	}
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	st := stylesFor(CurrentTheme)
	m.draw()
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(GradientText(strings.ToUpper(m.title), CurrentTheme.Primary, CurrentTheme.Accent)) + "\n")

	status := st.running.Render("RUNNING")
	switch {
	case m.playHead != -1:
		back := 0
		if len(m.history) > 0 {
			back = len(m.history) - 1 - m.playHead
		}
		status = st.paused.Render(fmt.Sprintf("REPLAY (-%d frames)", back))
	case !m.running:
		status = st.paused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.label.Render("Sag") + SparklineChart(m.sagHistory, 28, CurrentTheme) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.cloth.Time()))
	row("Frame", fmt.Sprintf("%d", m.cloth.Frame()))
	if m.lastDt > 0 {
		row("FPS", fmt.Sprintf("%.0f", 1/m.lastDt))
	}
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	row("Energy", fmt.Sprintf("%.1f", energy))
	row("Strain", fmt.Sprintf("%.3f", m.cloth.MaxStrain()))
	if m.pointer.Pressed {
		row("Grab", fmt.Sprintf("%.0f, %.0f", m.pointer.X, m.pointer.Y))
	}

	s.WriteString("\nTENSION\n" + m.tension.render(20, CurrentTheme))

	s.WriteString("\nMATERIAL\n")
	active := m.cloth.ActiveMaterial().Name()
	for i, mat := range cloth.Materials() {
		line := fmt.Sprintf("%d %-7s m=%.1f k=%.2f", i+1, mat.Name(), mat.Props().Mass, mat.Props().Elasticity)
		if mat.Name() == active {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.Render(line) + "\n")
		}
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n1-3:Material T:Theme ?:Help\n[ ]:Time-Travel  drag:Grab"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))

	if m.showHelp {
		return mainView + "\n" + st.help.Render(helpText)
	}
	return mainView
}

const helpText = `Space    pause / resume
R        reset the cloth to its rest pose
1 2 3    cotton / silk / denim
Mouse    drag to grab nearby particles
[ ]      step back / forward through recorded frames
T        cycle themes
Q        quit`

// Run opens the live view for c until the user quits.
func Run(c *cloth.Cloth, title string, dt float64) error {
	_, err := tea.NewProgram(NewModel(c, title, dt), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

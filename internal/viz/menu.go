package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
)

const (
	stateMenu = iota
	stateMaterial
	stateSim
)

var presetInfo = map[string]string{
	"curtain":      "full drape, pinned top edge",
	"handkerchief": "small square, quick settle",
	"banner":       "wide and shallow",
	"tug":          "scripted grab of the hem",
}

// menu picks a preset and a material before opening the live view.
type menu struct {
	state     int
	cursor    int
	presets   []string
	selected  string
	materials []cloth.Material
	err       error
	live      Model
}

func newMenu() menu {
	return menu{
		presets:   config.ListPresets(),
		materials: cloth.Materials(),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.options()-1 {
			m.cursor++
		}
	case "esc":
		if m.state == stateMaterial {
			m.state, m.cursor = stateMenu, 0
		}
	case "enter", " ":
		if m.state == stateMenu {
			m.selected = m.presets[m.cursor]
			m.state, m.cursor = stateMaterial, 0
			return m, nil
		}
		return m.start()
	}
	return m, nil
}

func (m menu) options() int {
	if m.state == stateMaterial {
		return len(m.materials)
	}
	return len(m.presets)
}

func (m menu) start() (menu, tea.Cmd) {
	cfg := config.GetPreset(m.selected)
	if cfg == nil {
		m.err = fmt.Errorf("unknown preset %q", m.selected)
		return m, nil
	}
	c, err := cloth.New(cfg.Layout(), m.materials[m.cursor])
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(c, m.selected, cfg.Dt)
	m.state = stateSim
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	t := CurrentTheme
	head := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	pick := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	item := lipgloss.NewStyle().Foreground(t.Text)

	var b strings.Builder
	title, caption := "CLOTHSIM", "mass-spring fabric"
	if m.state == stateMaterial {
		title, caption = strings.ToUpper(m.selected), "choose a fabric"
	}
	b.WriteString("\n\n    " + head.Render(title) + "\n    " + sub.Render(caption) + "\n    " + sub.Render("─────────────────────────") + "\n\n")

	for i := 0; i < m.options(); i++ {
		name, desc := m.option(i)
		line := fmt.Sprintf("%-14s %s", name, sub.Render(desc))
		if i == m.cursor {
			b.WriteString("    " + pick.Render("▸ ") + item.Bold(true).Render(line) + "\n")
		} else {
			b.WriteString("      " + item.Render(line) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter select  esc back  q quit") + "\n")
	return b.String()
}

func (m menu) option(i int) (string, string) {
	if m.state == stateMaterial {
		mat := m.materials[i]
		p := mat.Props()
		return mat.Name(), fmt.Sprintf("mass %.1f  elasticity %.1f  damping %.3f", p.Mass, p.Elasticity, p.Damping)
	}
	return m.presets[i], presetInfo[m.presets[i]]
}

// RunInteractive opens the preset menu.
func RunInteractive() error {
	_, err := tea.NewProgram(newMenu(), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

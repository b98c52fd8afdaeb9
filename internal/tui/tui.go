// Package tui is an interactive design tweaker. Every edit re-derives and
// re-synthesizes the vehicle so CG, CP and margin update live.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/airframe/internal/config"
	"github.com/san-kum/airframe/internal/sweep"
	"github.com/san-kum/airframe/internal/vehicle"
	"github.com/san-kum/airframe/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const marginHistory = 60

type tunable struct {
	name string
	step float64
	get  func(vehicle.Design) float64
}

var tunables = []tunable{
	{"fin_area", 0.002, func(d vehicle.Design) float64 { return d.Fins.TotalArea }},
	{"fin_aspect_ratio", 0.1, func(d vehicle.Design) float64 { return d.Fins.AspectRatio }},
	{"fin_taper_ratio", 0.05, func(d vehicle.Design) float64 { return d.Fins.TaperRatio }},
	{"fin_count", 1, func(d vehicle.Design) float64 { return float64(d.Fins.Count) }},
	{"fin_position", 0.01, func(d vehicle.Design) float64 { return d.Fins.Position }},
	{"nose_length", 0.05, func(d vehicle.Design) float64 { return d.Nose.Length }},
	{"upper_length", 0.05, func(d vehicle.Design) float64 { return d.Upper.Length }},
	{"lower_length", 0.05, func(d vehicle.Design) float64 { return d.Lower.Length }},
	{"payload_mass", 0.1, func(d vehicle.Design) float64 { return d.Reqs.PayloadMass }},
}

type state int

const (
	stateMenu state = iota
	stateEdit
)

type model struct {
	state    state
	cursor   int
	presets  []string
	selected string
	noMenu   bool

	base      vehicle.Design
	mach      float64
	minMargin float64
	registry  *sweep.Registry

	params      map[string]float64
	paramCursor int
	editing     bool
	editBuf     string

	result  vehicle.Result
	err     error
	margins []float64

	width  int
	height int
}

func newModel() model {
	return model{
		state:    stateMenu,
		presets:  config.ListPresets(),
		registry: sweep.NewRegistry(),
		width:    80,
		height:   24,
	}
}

func (m *model) load(name string, cfg *config.Config) error {
	d, err := cfg.Design()
	if err != nil {
		return err
	}
	m.selected = name
	m.base = d
	m.mach = cfg.Mach
	m.minMargin = cfg.Mission.MinStaticMargin
	m.params = make(map[string]float64, len(tunables))
	for _, t := range tunables {
		m.params[t.name] = t.get(d)
	}
	m.paramCursor = 0
	m.margins = m.margins[:0]
	m.state = stateEdit
	m.recompute()
	return nil
}

// recompute applies every tunable to a copy of the base design.
func (m *model) recompute() {
	d := m.base
	for _, t := range tunables {
		if err := m.registry.Apply(&d, t.name, m.params[t.name]); err != nil {
			m.result, m.err = vehicle.Result{}, err
			return
		}
	}
	v, err := vehicle.Derive(d)
	if err != nil {
		m.result, m.err = vehicle.Result{}, err
		return
	}
	r, err := vehicle.Synthesize(v, m.mach)
	if err != nil {
		m.result, m.err = vehicle.Result{}, err
		return
	}
	m.result, m.err = r, nil
	m.margins = append(m.margins, r.StaticMargin)
	if len(m.margins) > marginHistory {
		m.margins = m.margins[len(m.margins)-marginHistory:]
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateEdit:
		return m.editKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		name := m.presets[m.cursor]
		if err := m.load(name, config.GetPreset(name)); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := tunables[m.paramCursor].name
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[name] = v
				m.recompute()
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		if m.noMenu {
			return m, tea.Quit
		}
		m.state = stateMenu
		m.err = nil
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.params[name], 'f', -1, 64)
	case "left", "h":
		m.params[name] -= tunables[m.paramCursor].step
		m.recompute()
	case "right", "l":
		m.params[name] += tunables[m.paramCursor].step
		m.recompute()
	case "r":
		for _, t := range tunables {
			m.params[t.name] = t.get(m.base)
		}
		m.recompute()
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateEdit:
		return m.viewEdit()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + cyan.Bold(true).Render("AIRFRAME") + "\n    " + dim.Render("mass and stability synthesis") + "\n    " + dimmer.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", cyan.Bold(true).Render("▸"), white.Bold(true).Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("      %s\n", dim.Render(name)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewEdit() string {
	var b strings.Builder
	b.WriteString("\n    " + cyan.Bold(true).Render(strings.ToUpper(m.selected)) + "\n    " + dim.Render("stations measured from the tail") + "\n\n")
	for i, t := range tunables {
		val := fmt.Sprintf("%10.4f", m.params[t.name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cyan.Bold(true).Render("▸"), white.Bold(true).Render(fmt.Sprintf("%-18s", t.name)), magenta.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", dim.Render(fmt.Sprintf("%-18s", t.name)), dimmer.Render(val)))
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("    " + red.Render("error: "+m.err.Error()) + "\n")
	} else {
		r := m.result
		b.WriteString(fmt.Sprintf("    %s %s   %s %s   %s %s\n",
			dim.Render("mass"), green.Render(fmt.Sprintf("%.3f kg", r.DryTotal.Mass)),
			dim.Render("cg"), green.Render(fmt.Sprintf("%.4f m", r.DryTotal.CG.X)),
			dim.Render("cp"), green.Render(fmt.Sprintf("%.4f m", r.CP))))
		b.WriteString(fmt.Sprintf("    %s %s %s\n", dim.Render("margin"),
			viz.MarginBar(r.StaticMargin, m.minMargin, 24),
			white.Render(fmt.Sprintf("%.2f cal", r.StaticMargin))+" "+viz.Status(r.StaticMargin, m.minMargin)))
		b.WriteString("    " + viz.SideView(r, min(m.width-8, 60)) + "\n")
	}
	b.WriteString("    " + viz.Sparkline(m.margins, 40) + "\n")
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "r", "reset", "esc", "back") + "\n")
	return b.String()
}

func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, cyan.Bold(true).Render(pairs[i])+" "+dimmer.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Run starts the tweaker. A nil cfg opens the preset menu.
func Run(cfg *config.Config) error {
	m := newModel()
	if cfg != nil {
		if err := m.load(cfg.Name, cfg); err != nil {
			return err
		}
		m.noMenu = true
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

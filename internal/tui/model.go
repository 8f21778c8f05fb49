package tui

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/worldsim/internal/sim"
	"github.com/san-kum/worldsim/internal/world"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	border  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

var scenarioInfo = map[string]string{
	"gravity":         "falling circles",
	"spring":          "anchored springs",
	"billiard":        "elastic collisions",
	"rope":            "sagging ropes",
	"galton":          "bean machine",
	"pendulum":        "simple pendulum",
	"double-pendulum": "chaotic dynamics",
}

// Launcher builds a runner for the named scenario.
type Launcher func(scenario string) (*sim.Runner, error)

type screen int

const (
	screenMenu screen = iota
	screenConfig
	screenSim
)

const frameInterval = 33 * time.Millisecond

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Model is the interactive shell around a runner: a scenario menu, a live
// parameter editor and the canvas view.
type Model struct {
	ctx       context.Context
	launch    Launcher
	interval  time.Duration
	scenarios []string

	screen   screen
	cursor   int
	selected string
	runner   *sim.Runner

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	canvas   *Canvas
	snap     world.Snapshot
	metrics  map[string]float64
	state    sim.State
	dt       float64
	col, row int
	dragging bool
	velocity bool
	force    bool
	err      error

	width  int
	height int
}

func New(ctx context.Context, launch Launcher, scenarios []string, interval time.Duration) Model {
	return Model{
		ctx:       ctx,
		launch:    launch,
		interval:  interval,
		scenarios: scenarios,
		canvas:    NewCanvas(70, 20),
		width:     80,
		height:    30,
	}
}

// Open skips the menu and loads scenario directly into the editor.
func (m Model) Open(scenario string) (Model, error) {
	if err := m.load(scenario); err != nil {
		return m, err
	}
	m.screen = screenConfig
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(msg.Width-4, msg.Height-10)
		return m, nil
	case frameMsg:
		if m.screen != screenSim {
			return m, nil
		}
		m.refresh()
		return m, nextFrame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.stop()
		return m, tea.Quit
	}
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenConfig:
		return m.configKey(msg)
	case screenSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.scenarios) == 0 {
			return m, nil
		}
		if err := m.load(m.scenarios[m.cursor]); err != nil {
			m.err = err
			return m, nil
		}
		m.screen = screenConfig
	}
	return m, nil
}

func (m Model) configKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.setParam(m.paramNames[m.paramCursor], v)
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
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.stop()
		m.runner = nil
		m.screen = screenMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		if len(m.paramNames) > 0 {
			m.editing = true
			m.editBuf = strconv.FormatFloat(m.params[m.paramNames[m.paramCursor]], 'g', -1, 64)
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "s":
		m.screen = screenSim
		m.col, m.row = m.canvas.Cols()/2, m.canvas.Rows()/2
		m.refresh()
		return m, tea.Batch(tea.ClearScreen, nextFrame())
	}
	return m, nil
}

func (m Model) simKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.stop()
		m.screen = screenConfig
		m.refreshParams()
		return m, tea.ClearScreen
	case " ", "p":
		m.toggle()
	case "n":
		if m.runner.State() == sim.Idle {
			m.runner.Do(func(e world.Engine) { e.Tick(e.DeltaTime()) })
		}
	case "r":
		m.dragging = false
		m.runner.Do(func(e world.Engine) { e.ResetCanvas() })
	case "t", "enter":
		p := m.canvas.Point(m.col, m.row)
		m.runner.Do(func(e world.Engine) { e.Tap(p) })
	case "d":
		m.dragging = true
		m.dragTo()
	case "e":
		if m.dragging {
			m.dragging = false
			m.runner.Do(func(e world.Engine) { e.DragEnd() })
		}
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "+", "=":
		m.scaleDt(2)
	case "-", "_":
		m.scaleDt(0.5)
	case "v":
		m.velocity = !m.velocity
		m.arrows()
	case "f":
		m.force = !m.force
		m.arrows()
	}
	m.refresh()
	return m, nil
}

func (m *Model) load(scenario string) error {
	runner, err := m.launch(scenario)
	if err != nil {
		return err
	}
	m.stop()
	m.runner = runner
	m.selected = scenario
	m.paramCursor = 0
	m.err = nil
	runner.Do(func(e world.Engine) {
		cfg := e.Config()
		m.velocity, m.force = cfg.ShowsVelocityArrows, cfg.ShowsForceArrows
	})
	m.refreshParams()
	return nil
}

func (m *Model) refreshParams() {
	if m.runner == nil {
		return
	}
	m.runner.Do(func(e world.Engine) { m.params = e.Params() })
	m.paramNames = slices.Sorted(maps.Keys(m.params))
	m.paramCursor = min(m.paramCursor, max(len(m.paramNames)-1, 0))
}

func (m *Model) setParam(name string, v float64) {
	var err error
	m.runner.Do(func(e world.Engine) { err = e.SetParam(name, v) })
	m.err = err
	m.refreshParams()
}

// nudge steps the selected parameter by a tenth of its magnitude.
func (m *Model) nudge(dir float64) {
	if len(m.paramNames) == 0 {
		return
	}
	name := m.paramNames[m.paramCursor]
	v := m.params[name]
	step := math.Abs(v) * 0.1
	if step == 0 {
		step = 0.1
	}
	m.setParam(name, v+dir*step)
}

func (m *Model) refresh() {
	if m.runner == nil {
		return
	}
	m.runner.Do(func(e world.Engine) {
		m.snap = e.Snapshot()
		m.dt = e.DeltaTime()
	})
	m.canvas.fit(m.snap.CanvasSize)
	m.metrics = m.runner.Metrics()
	m.state = m.runner.State()
}

func (m *Model) toggle() {
	if m.runner.State() == sim.Running {
		m.runner.Stop()
		return
	}
	m.err = m.runner.Start(m.ctx, m.interval)
}

func (m *Model) stop() {
	if m.runner != nil {
		m.runner.Stop()
	}
}

func (m *Model) moveCursor(dx, dy int) {
	m.col = min(max(m.col+dx, 0), m.canvas.Cols()-1)
	m.row = min(max(m.row+dy, 0), m.canvas.Rows()-1)
	if m.dragging {
		m.dragTo()
	}
}

func (m *Model) dragTo() {
	p := m.canvas.Point(m.col, m.row)
	m.runner.Do(func(e world.Engine) { e.DragMove(p) })
}

func (m *Model) scaleDt(f float64) {
	var err error
	m.runner.Do(func(e world.Engine) { err = e.SetDeltaTime(e.DeltaTime() * f) })
	m.err = err
}

func (m *Model) arrows() {
	v, f := m.velocity, m.force
	m.runner.Do(func(e world.Engine) { e.SetArrows(v, f) })
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenConfig:
		return m.viewConfig()
	case screenSim:
		return m.viewSim()
	}
	return ""
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("w o r l d s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.scenarios {
		desc := scenarioInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewErr())
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")
	return b.String()
}

func (m Model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(scenarioInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	if len(m.paramNames) == 0 {
		b.WriteString("        " + dimmer.Render("no parameters") + "\n")
	}
	for i, name := range m.paramNames {
		val := fmt.Sprintf("%10.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewErr())
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

func (m Model) viewSim() string {
	var b strings.Builder

	state := green.Render(m.state.String())
	if m.state == sim.Idle {
		state = yellow.Render(m.state.String())
	}
	b.WriteString("  " + cyan.Render(m.snap.Scenario) + "  " + state +
		dim.Render(fmt.Sprintf("  tick %d  objects %d", m.snap.Tick, len(m.snap.Objects))) + "\n")

	m.canvas.Draw(m.snap)
	cursor := '+'
	if m.dragging {
		cursor = 'X'
	}
	m.canvas.Mark(m.col, m.row, cursor)
	b.WriteString(border.Render(m.canvas.String()) + "\n")

	names := slices.Sorted(maps.Keys(m.metrics))
	var parts []string
	for _, name := range names {
		parts = append(parts, dim.Render(name+" ")+white.Render(fmt.Sprintf("%.4g", m.metrics[name])))
	}
	b.WriteString("  " + strings.Join(parts, "   ") + "\n")

	arrows := dimmer.Render("off")
	switch {
	case m.velocity && m.force:
		arrows = magenta.Render("v+f")
	case m.velocity:
		arrows = magenta.Render("v")
	case m.force:
		arrows = magenta.Render("f")
	}
	b.WriteString("  " + dim.Render(fmt.Sprintf("dt %.4g  arrows ", m.dt)))
	b.WriteString(arrows + "\n")
	b.WriteString(m.viewErr())
	b.WriteString(dim.Render("  space run  n step  r reset  t tap  d drag  e end  v/f arrows  +/- dt  esc back") + "\n")
	return b.String()
}

func (m Model) viewErr() string {
	if m.err == nil {
		return ""
	}
	return "      " + red.Render(m.err.Error()) + "\n"
}

// Run drives m until the user quits, stopping any running timer on exit.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.stop()
	}
	return err
}

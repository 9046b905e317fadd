// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-shiptime/internal/geo"
	"github.com/litescript/ls-shiptime/internal/logging"
	"github.com/litescript/ls-shiptime/internal/route"
	"github.com/litescript/ls-shiptime/internal/state"
	"github.com/litescript/ls-shiptime/internal/tz"
	"github.com/litescript/ls-shiptime/internal/version"
)

const (
	// Keyboard steps in degrees
	stepFine   = 1.0
	stepCoarse = tz.DegreesPerHour

	animTickInterval = 100 * time.Millisecond
	frameLogInterval = 500 * time.Millisecond
)

// Msg types for Bubble Tea
type (
	// TickMsg advances the UTC clock.
	TickMsg time.Time

	// AnimTickMsg drives the spinner and alert expiry.
	AnimTickMsg time.Time

	// frameMsg requests the next animation frame for one playback
	// generation. Frames for a superseded generation are dropped.
	frameMsg struct {
		gen uint64
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state    *state.Manager
	player   *route.Player
	route    *route.Model
	log      *logging.Logger
	frameLog *logging.Throttled

	now          func() time.Time
	tickInterval time.Duration
	tzMode       tz.Mode
	resolvers    map[tz.Mode]tz.Resolver

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	// Ship longitude on the 0-360 strip. Tracked here so dragging across
	// the Date Line does not jump to the other edge.
	shipDisplay float64
	cursor      geo.Position

	// Sub-models
	mapStrip MapStripModel
	panel    PanelModel
	snapshot state.Snapshot
}

// Option configures the root model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock sets the UTC time source.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithTickInterval sets how often the UTC clock advances.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, player *route.Player, opts ...Option) Model {
	m := Model{
		state:        stateMgr,
		player:       player,
		route:        player.Route(),
		log:          logging.Discard(),
		now:          time.Now,
		tickInterval: time.Second,
		resolvers:    make(map[tz.Mode]tz.Resolver),
		mapStrip:     NewMapStripModel(),
		panel:        NewPanelModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.frameLog = m.log.Throttle(frameLogInterval)

	r := stateMgr.Resolver()
	m.tzMode = tz.ParseMode(r.Name())
	m.resolvers[m.tzMode] = r

	pos := stateMgr.Position()
	m.shipDisplay = geo.ToDisplay(pos.Lng)
	m.cursor = geo.Position{Lat: pos.Lat, Lng: m.shipDisplay}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	now := m.now
	return tea.Batch(
		func() tea.Msg { return TickMsg(now()) },
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.player.Stop()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header ~4 lines, panel ~16, footer ~2
		mapHeight := min(max(msg.Height-24, minMapHeight), 15)
		m.mapStrip = m.mapStrip.SetSize(msg.Width, mapHeight)
		m.panel = m.panel.SetSize(msg.Width)

	case TickMsg:
		// The clock tick is the only writer of the UTC instant
		m.state.SetUTC(m.now())
		cmds = append(cmds, tickCmd(m.tickInterval))

	case AnimTickMsg:
		m.animTick++
		cmds = append(cmds, animTickCmd())

	case frameMsg:
		cmds = append(cmds, m.nextFrame(msg.gen))
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.statusMsg = ""

	switch msg.String() {
	case "d":
		if m.route.IsAnimating() {
			m.statusMsg = "Stop playback before drawing"
			return nil
		}
		m.route.ToggleDrawing()
		m.cursor = geo.Position{Lat: m.state.Position().Lat, Lng: m.shipDisplay}

	case "enter":
		if !m.route.IsDrawing() {
			return nil
		}
		wp := geo.Waypoint{Lat: m.cursor.Lat, Lng: m.cursor.Lng}
		m.route.AddWaypoint(wp)
		m.log.Debug("waypoint %d at lat=%.2f lng=%.2f", m.route.Len(), wp.Lat, wp.Lng)

	case "c":
		m.player.Clear()
		m.statusMsg = "Route cleared"

	case "p", " ":
		if m.route.IsAnimating() {
			m.player.Stop()
			m.statusMsg = "Playback stopped"
			return nil
		}
		return m.play()

	case "s":
		m.route.SetSpeed(m.route.Speed().Next())
	case "1":
		m.route.SetSpeed(route.SpeedSlow)
	case "2":
		m.route.SetSpeed(route.SpeedMedium)
	case "3":
		m.route.SetSpeed(route.SpeedFast)

	case "t":
		m.toggleTimezone()

	case "x", "esc":
		m.state.DismissAlert()

	case "left", "h":
		m.move(-stepFine, 0)
	case "right", "l":
		m.move(stepFine, 0)
	case "shift+left", "H":
		m.move(-stepCoarse, 0)
	case "shift+right", "L":
		m.move(stepCoarse, 0)
	case "up", "k":
		m.move(0, stepFine)
	case "down", "j":
		m.move(0, -stepFine)
	}
	return nil
}

// move drags the drawing cursor, or the ship when not drawing. The ship
// cannot be dragged during playback.
func (m *Model) move(dLng, dLat float64) {
	if m.route.IsDrawing() {
		m.cursor.Lng = geo.ClampDisplay(m.cursor.Lng + dLng)
		m.cursor.Lat = geo.ClampLatitude(m.cursor.Lat + dLat)
		return
	}
	if m.route.IsAnimating() {
		return
	}

	m.shipDisplay = geo.ClampDisplay(m.shipDisplay + dLng)
	lat := geo.ClampLatitude(m.state.Position().Lat + dLat)
	m.setShip(geo.Position{Lat: lat, Lng: m.shipDisplay})
}

func (m *Model) setShip(pos geo.Position) {
	if c, crossed := m.state.SetShipPosition(pos); crossed {
		m.log.Info("date line crossed heading %s (%s)", c.Direction, c.Direction.DayChange())
	}
}

func (m *Model) play() tea.Cmd {
	f, ok := m.player.Play()
	if !ok {
		m.statusMsg = "Draw at least two waypoints first"
		return nil
	}

	gen := m.player.Generation()
	m.log.Info("playback started: %d waypoints at %s speed", m.route.Len(), m.route.Speed())
	m.applyFrame(f)
	return frameCmd(m.player.FrameInterval(), gen)
}

// nextFrame advances playback generation gen by one frame.
func (m *Model) nextFrame(gen uint64) tea.Cmd {
	if !m.player.Live(gen) {
		return nil
	}
	f, ok := m.player.Tick()
	if !ok {
		return nil
	}
	m.applyFrame(f)
	if f.Done {
		m.statusMsg = "Route complete"
		m.log.Info("playback complete")
		return nil
	}
	return frameCmd(m.player.FrameInterval(), gen)
}

func (m *Model) applyFrame(f route.Frame) {
	m.shipDisplay = geo.ToDisplay(f.Position.Lng)
	m.setShip(f.Position.Position())
	m.frameLog.Debug("frame segment=%d progress=%.2f lng=%.3f", f.Segment, f.Progress, f.Position.Lng)
}

func (m *Model) toggleTimezone() {
	mode := tz.ModePolitical
	if m.tzMode == tz.ModePolitical {
		mode = tz.ModeSimple
	}
	r, ok := m.resolvers[mode]
	if !ok {
		r = tz.NewResolver(mode)
		m.resolvers[mode] = r
	}
	m.tzMode = mode
	m.state.SetResolver(r)
	m.statusMsg = "Timezone model: " + mode.String()
}

// refresh pulls a fresh snapshot into the sub-models.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.panel = m.panel.UpdateData(m.snapshot)
	m.mapStrip = m.mapStrip.UpdateData(MapData{
		Ship:      geo.Position{Lat: m.snapshot.Position.Lat, Lng: m.shipDisplay},
		Waypoints: m.route.Waypoints(),
		Cursor:    m.cursor,
		Drawing:   m.route.IsDrawing(),
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.mapStrip.View())
	b.WriteString("\n\n")
	if alert := m.panel.AlertView(); alert != "" {
		b.WriteString("  " + alert)
	}
	b.WriteString("\n\n")
	b.WriteString(m.panel.View())

	return m.renderFrame(b.String())
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderControls() + "\n"
}

func (m Model) renderLogo() string {
	title := "  LS-SHIPTIME  ⚓"
	runes := []rune(title)

	var b strings.Builder
	b.WriteString("\n")
	for col, r := range runes {
		color := gradientColor(col, len(runes))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  ship's time · international date line · v%s", version.Version)))
	b.WriteString("\n\n")
	return b.String()
}

// gradientColor returns a hex color for a column of the title gradient:
// blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	xRatio := float64(col) / float64(max(width, 1))

	var r, g, b float64
	if xRatio < 0.33 {
		// Blue to Purple
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		// Purple to Magenta
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		// Magenta to Pink
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	return min(max(int(v), 0), 255)
}

func (m Model) renderControls() string {
	n := m.route.Len()
	parts := []string{
		fmt.Sprintf("Route: %d waypoint%s", n, plural(n)),
		fmt.Sprintf("Speed: %s (%gx)", m.route.Speed(), m.route.Speed().Multiplier()),
		"TZ: " + m.tzMode.String(),
	}

	line := "  " + dimStyle.Render(strings.Join(parts, "  |  "))
	if m.route.IsDrawing() {
		line += "  " + accentStyle.Render("● DRAWING")
	}
	if m.route.IsAnimating() {
		line += "  " + accentStyle.Render("▶ PLAYING")
	}
	return line
}

func (m Model) renderFooter() string {
	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var help string
	switch {
	case m.route.IsDrawing():
		help = "arrows: cursor | enter: add waypoint | d: done | c: clear | q: quit"
	case m.route.IsAnimating():
		help = "p/space: stop | s/1/2/3: speed | c: clear | q: quit"
	default:
		help = "arrows: move ship (shift: 15°) | d: draw | p: play | s: speed | t: tz model | q: quit"
	}

	footer := "  " + dimStyle.Render(help)
	if m.route.IsAnimating() {
		spinner := spinnerFrames[m.animTick%len(spinnerFrames)]
		footer = "  " + accentStyle.Render(spinner) + footer
	}

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Snapshot returns the state shown by the last update.
func (m Model) Snapshot() state.Snapshot {
	return m.snapshot
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(animTickInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func frameCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-shiptime/internal/geo"
	"github.com/litescript/ls-shiptime/internal/shiptime"
	"github.com/litescript/ls-shiptime/internal/tz"
)

const (
	// Map glyphs
	glyphMeridian = '│'
	glyphDateLine = '┃'
	glyphWaypoint = '●'
	glyphPath     = '·'
	glyphShip     = '▲'
	glyphCursor   = '✚'

	// Labels are drawn every labelEvery meridians to avoid overlap.
	labelEvery = 2

	minMapWidth  = 24
	minMapHeight = 5
)

// MapData is everything the strip draws. Longitudes are display
// longitudes (0-360, Date Line at 180).
type MapData struct {
	Ship      geo.Position
	Waypoints []geo.Waypoint
	Cursor    geo.Position
	Drawing   bool
}

// MapStripModel renders a Date Line centered longitude strip with
// timezone meridians, the route, and the ship.
type MapStripModel struct {
	width  int
	height int
	data   MapData
}

// NewMapStripModel creates a new map strip.
func NewMapStripModel() MapStripModel {
	return MapStripModel{}
}

// SetSize updates the viewport size.
func (m MapStripModel) SetSize(width, height int) MapStripModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the drawn data.
func (m MapStripModel) UpdateData(data MapData) MapStripModel {
	m.data = data
	return m
}

// project maps a display longitude and a latitude to a canvas cell.
// Row 0 is the label row.
func project(displayLng, lat float64, width, height int) (int, int) {
	x := int(math.Round(geo.ClampDisplay(displayLng) / 360 * float64(width-1)))
	rows := height - 1
	y := 1 + int(math.Round((90-geo.ClampLatitude(lat))/180*float64(rows-1)))
	return x, y
}

// View renders the strip.
func (m MapStripModel) View() string {
	width := max(m.width-4, minMapWidth)
	height := max(m.height, minMapHeight)

	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = colorBandLight
		}
	}

	m.drawMeridians(canvas, colors, width, height)
	m.drawRoute(canvas, colors, width, height)

	if m.data.Drawing {
		x, y := project(m.data.Cursor.Lng, m.data.Cursor.Lat, width, height)
		canvas[y][x] = glyphCursor
		colors[y][x] = colorCursor
	}

	x, y := project(m.data.Ship.Lng, m.data.Ship.Lat, width, height)
	canvas[y][x] = glyphShip
	colors[y][x] = colorShip

	return indent(renderCanvas(canvas, colors), "  ")
}

func (m MapStripModel) drawMeridians(canvas [][]rune, colors [][]lipgloss.Color, width, height int) {
	// The Date Line label wins any overlap with its neighbours.
	idlX, _ := project(180, 0, width, height)
	putLabel(canvas[0], colors[0], idlX, shiptime.MeridianLabel(180), colorDateLine)

	steps := int(360 / tz.DegreesPerHour)
	for i := 0; i <= steps; i++ {
		display := float64(i) * tz.DegreesPerHour
		x, _ := project(display, 0, width, height)

		glyph, color := glyphMeridian, lipgloss.Color(colorGrid)
		if display == 180 {
			glyph, color = glyphDateLine, colorDateLine
		}
		for y := 1; y < height; y++ {
			canvas[y][x] = glyph
			colors[y][x] = color
		}

		if i%labelEvery != 0 || display == 180 {
			continue
		}
		putLabel(canvas[0], colors[0], x, shiptime.MeridianLabel(geo.FromDisplay(display)), colorLabel)
	}
}

// putLabel centers label on column x, clipped to the row and never
// overwriting an earlier label.
func putLabel(row []rune, colors []lipgloss.Color, x int, label string, color lipgloss.Color) {
	runes := []rune(label)
	start := x - len(runes)/2
	if start < 0 {
		start = 0
	}
	if start+len(runes) > len(row) {
		start = len(row) - len(runes)
	}
	if start < 0 {
		return
	}
	for i := range runes {
		if row[start+i] != ' ' {
			return
		}
	}
	for i, r := range runes {
		row[start+i] = r
		colors[start+i] = color
	}
}

func (m MapStripModel) drawRoute(canvas [][]rune, colors [][]lipgloss.Color, width, height int) {
	wps := m.data.Waypoints
	for i := 1; i < len(wps); i++ {
		a, b := wps[i-1], wps[i]
		x0, y0 := project(a.Lng, a.Lat, width, height)
		x1, y1 := project(b.Lng, b.Lat, width, height)
		n := max(abs(x1-x0), abs(y1-y0))
		for s := 1; s < n; s++ {
			t := float64(s) / float64(n)
			wp := geo.LerpWaypoint(a, b, t)
			x, y := project(wp.Lng, wp.Lat, width, height)
			canvas[y][x] = glyphPath
			colors[y][x] = colorRoute
		}
	}
	for _, wp := range wps {
		x, y := project(wp.Lng, wp.Lat, width, height)
		canvas[y][x] = glyphWaypoint
		colors[y][x] = colorWaypoint
	}
}

// renderCanvas styles runs of same-colored cells together.
func renderCanvas(canvas [][]rune, colors [][]lipgloss.Color) string {
	var b strings.Builder
	for y := range canvas {
		start := 0
		for x := 1; x <= len(canvas[y]); x++ {
			if x < len(canvas[y]) && colors[y][x] == colors[y][start] {
				continue
			}
			style := lipgloss.NewStyle().Foreground(colors[y][start])
			b.WriteString(style.Render(string(canvas[y][start:x])))
			start = x
		}
		if y < len(canvas)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

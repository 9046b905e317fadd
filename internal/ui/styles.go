package ui

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	colorMuted     = "60"      // muted purple
	colorAccent    = "#9D4EDD" // active purple
	colorGrid      = "238"     // meridian grid
	colorLabel     = "244"     // meridian labels
	colorDateLine  = "#E84A27" // International Date Line
	colorRoute     = "#7B2CBF" // route path
	colorWaypoint  = "229"     // bright gold
	colorShip      = "46"      // green
	colorCursor    = "205"     // pink
	colorBandLight = "235"     // alternating timezone band
)

// Styles shared by the panel and root model.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true)

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("#B5179E")).
			Padding(0, 2)

	dayChangeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E84A27"))
)

package ui

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-shiptime/internal/shiptime"
	"github.com/litescript/ls-shiptime/internal/state"
)

// crossingLogLines is how many recent crossings the panel lists.
const crossingLogLines = 4

// PanelModel shows position, ship time and UTC for the current snapshot.
type PanelModel struct {
	width    int
	snapshot state.Snapshot
}

// NewPanelModel creates a new panel.
func NewPanelModel() PanelModel {
	return PanelModel{}
}

// SetSize updates the viewport width.
func (m PanelModel) SetSize(width int) PanelModel {
	m.width = width
	return m
}

// UpdateData updates the model with a new snapshot.
func (m PanelModel) UpdateData(snapshot state.Snapshot) PanelModel {
	m.snapshot = snapshot
	return m
}

// View renders the panel.
func (m PanelModel) View() string {
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(headerStyle.Render("SHIP POSITION"))
	b.WriteString("\n")
	b.WriteString(row("Longitude", shiptime.FormatLongitude(snap.Position.Lng)))
	b.WriteString(row("Latitude", shiptime.FormatLatitude(snap.Position.Lat)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("SHIP'S TIME"))
	b.WriteString("\n")
	zone := shiptime.FormatOffset(snap.Offset.Minutes)
	if snap.Offset.Zone != "" && snap.Offset.Zone != zone {
		zone += dimStyle.Render(" (" + snap.Offset.Zone + ")")
	}
	if snap.Offset.Fallback {
		zone += dimStyle.Render(" no zone, nautical")
	}
	b.WriteString(row("Time", titleStyle.Render(shiptime.FormatTime(snap.ShipTime))+"  "+zone))
	b.WriteString(row("Date", shiptime.FormatDate(snap.ShipTime)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("UTC"))
	b.WriteString("\n")
	b.WriteString(row("Time", shiptime.FormatTime(snap.UTC)))
	b.WriteString(row("Date", shiptime.FormatDate(snap.UTC)))
	b.WriteString(row("Model", snap.Resolver))

	if len(snap.Crossings) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("DATE LINE LOG"))
		b.WriteString("\n")
		start := max(len(snap.Crossings)-crossingLogLines, 0)
		for i := len(snap.Crossings) - 1; i >= start; i-- {
			c := snap.Crossings[i]
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				dimStyle.Render(shiptime.FormatTime(c.Timestamp)+" UTC"),
				dayChangeStyle.Render(fmt.Sprintf("%-6s", c.Direction.DayChange())),
				valueStyle.Render(fmt.Sprintf("%s -> %s",
					shiptime.FormatLongitude(c.From), shiptime.FormatLongitude(c.To)))))
		}
	}

	return b.String()
}

// AlertView renders the crossing banner, or "" outside the alert window.
func (m PanelModel) AlertView() string {
	a := m.snapshot.Alert
	if a == nil {
		return ""
	}
	return alertStyle.Render(a.Message) + "  " + dayChangeStyle.Render(a.Direction.DayChange())
}

func row(label, value string) string {
	return "  " + labelStyle.Render(fmt.Sprintf("%-10s", label)) + valueStyle.Render(value) + "\n"
}

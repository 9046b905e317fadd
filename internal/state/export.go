package state

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-shiptime/internal/shiptime"
)

// SnapshotExport is the JSON-serializable representation of ship state.
type SnapshotExport struct {
	UTC           time.Time        `json:"utc"`
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	ShipTime      string           `json:"ship_time"`
	OffsetMinutes int              `json:"offset_minutes"`
	Offset        string           `json:"offset"`
	Zone          string           `json:"zone"`
	Fallback      bool             `json:"fallback,omitempty"`
	Model         string           `json:"model"`
	Crossings     []CrossingExport `json:"crossings,omitempty"`
}

// CrossingExport is a JSON-friendly crossing.
type CrossingExport struct {
	Timestamp time.Time `json:"timestamp"`
	Direction string    `json:"direction"`
	DayChange string    `json:"day_change"`
	From      float64   `json:"from"`
	To        float64   `json:"to"`
}

// Export converts a snapshot to an exportable format.
func (s Snapshot) Export() *SnapshotExport {
	export := &SnapshotExport{
		UTC:           s.UTC,
		Latitude:      s.Position.Lat,
		Longitude:     s.Position.Lng,
		ShipTime:      s.ShipTime.Format(time.RFC3339),
		OffsetMinutes: s.Offset.Minutes,
		Offset:        shiptime.FormatOffset(s.Offset.Minutes),
		Zone:          s.Offset.Zone,
		Fallback:      s.Offset.Fallback,
		Model:         s.Resolver,
	}
	for _, c := range s.Crossings {
		export.Crossings = append(export.Crossings, CrossingExport{
			Timestamp: c.Timestamp,
			Direction: string(c.Direction),
			DayChange: c.Direction.DayChange(),
			From:      c.From,
			To:        c.To,
		})
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummary prints the ship's time panel as plain text.
func WriteSummary(w io.Writer, s Snapshot) {
	fmt.Fprintf(w, "Ship's Time @ %s\n", s.UTC.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 48))

	zone := shiptime.FormatOffset(s.Offset.Minutes)
	if s.Offset.Zone != "" && s.Offset.Zone != zone {
		zone += " " + s.Offset.Zone
	}

	fmt.Fprintf(w, "%-12s %s  %s\n", "Position", shiptime.FormatLatitude(s.Position.Lat), shiptime.FormatLongitude(s.Position.Lng))
	fmt.Fprintf(w, "%-12s %s  %s  (%s)\n", "Ship time", shiptime.FormatTime(s.ShipTime), shiptime.FormatDate(s.ShipTime), zone)
	fmt.Fprintf(w, "%-12s %s  %s\n", "UTC", shiptime.FormatTime(s.UTC), shiptime.FormatDate(s.UTC))
	fmt.Fprintf(w, "%-12s %s\n", "Model", s.Resolver)
}

// WriteCrossing prints one crossing alert line.
func WriteCrossing(w io.Writer, e CrossingEvent) {
	fmt.Fprintf(w, "[%s UTC] %s (%s)\n", e.Timestamp.Format("15:04:05"), e.Message, e.Direction.DayChange())
}

// WriteCrossings prints the last n crossings, newest last.
func WriteCrossings(w io.Writer, events []CrossingEvent, n int) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No Date Line crossings")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	fmt.Fprintf(w, "Date Line crossings (%d)\n", len(events))
	for _, e := range events {
		WriteCrossing(w, e)
	}
}

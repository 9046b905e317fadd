// Package shiptime derives the ship's local clock from UTC and formats
// positions, offsets, dates and times for display.
package shiptime

import (
	"time"

	"github.com/litescript/ls-shiptime/internal/tz"
)

// ShipTime returns the ship's local time for the longitude-only model.
// The result carries a fixed zone, so Hour() and Day() are ship-local and
// day rollover falls out of normal time arithmetic.
func ShipTime(utc time.Time, lng float64) time.Time {
	return ShipTimeAt(utc, tz.SimpleOffset(lng))
}

// ShipTimeAt reinterprets utc in the offset's location. An offset without
// a location is treated as a fixed zone of off.Minutes.
func ShipTimeAt(utc time.Time, off tz.Offset) time.Time {
	loc := off.Location
	if loc == nil {
		loc = time.FixedZone(off.Zone, off.Minutes*60)
	}
	return utc.In(loc)
}

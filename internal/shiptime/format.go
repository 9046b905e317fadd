package shiptime

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-shiptime/internal/geo"
)

// FormatLongitude formats a longitude as D°MM'E or D°MM'W.
// Zero is east. Minutes are rounded on the total so "60" never appears.
func FormatLongitude(lng float64) string {
	n := geo.NormalizeLongitude(lng)
	dir := "E"
	if n < 0 {
		dir = "W"
	}
	return formatDegMin(math.Abs(n), dir)
}

// FormatLatitude formats a latitude as D°MM'N or D°MM'S.
func FormatLatitude(lat float64) string {
	lat = geo.ClampLatitude(lat)
	dir := "N"
	if lat < 0 {
		dir = "S"
	}
	return formatDegMin(math.Abs(lat), dir)
}

func formatDegMin(abs float64, dir string) string {
	totalMinutes := int(math.Round(abs * 60))
	return fmt.Sprintf("%d°%02d'%s", totalMinutes/60, totalMinutes%60, dir)
}

// FormatTime formats t as 24-hour HH:MM in t's own location.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate formats t as "D MMMM YYYY", e.g. "5 March 2026".
func FormatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// FormatOffset formats an offset in minutes: "UTC", "UTC+3", "UTC-7",
// "UTC+5:30", "UTC-3:30".
func FormatOffset(minutes int) string {
	if minutes == 0 {
		return "UTC"
	}

	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}

	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("UTC%s%d", sign, h)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, h, m)
}

// FormatOffsetHours formats a whole-hour offset.
func FormatOffsetHours(hours int) string {
	return FormatOffset(hours * 60)
}

// MeridianLabel labels a timezone meridian on the map strip. The Date Line
// is "IDL"; other meridians show their nominal offset.
func MeridianLabel(lng float64) string {
	n := geo.NormalizeLongitude(lng)
	if math.Abs(n) == 180 {
		return "IDL"
	}
	return FormatOffset(int(math.Round(n / 15 * 60)))
}

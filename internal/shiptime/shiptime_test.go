package shiptime

import (
	"testing"
	"time"

	"github.com/litescript/ls-shiptime/internal/geo"
	"github.com/litescript/ls-shiptime/internal/tz"
)

func TestShipTime(t *testing.T) {
	tests := []struct {
		name      string
		utc       time.Time
		lng       float64
		wantHour  int
		wantDay   int
		wantMonth time.Month
	}{
		{"prime meridian", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), 0, 12, 15, time.January},
		{"east adds hours", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), 90, 18, 15, time.January},
		{"west subtracts hours", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), -90, 6, 15, time.January},
		{"rollover forward", time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC), 45, 2, 16, time.January},
		{"rollover backward", time.Date(2026, 1, 15, 1, 0, 0, 0, time.UTC), -45, 22, 14, time.January},
		{"month rollover", time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC), 180, 8, 1, time.February},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShipTime(tt.utc, tt.lng)
			if got.Hour() != tt.wantHour {
				t.Errorf("Hour = %d, want %d", got.Hour(), tt.wantHour)
			}
			if got.Day() != tt.wantDay {
				t.Errorf("Day = %d, want %d", got.Day(), tt.wantDay)
			}
			if got.Month() != tt.wantMonth {
				t.Errorf("Month = %v, want %v", got.Month(), tt.wantMonth)
			}
			if !got.Equal(tt.utc) {
				t.Error("ship time must be the same instant as UTC")
			}
		})
	}
}

func TestShipTimeAt_FractionalOffset(t *testing.T) {
	utc := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	off := tz.Offset{Minutes: 330, Zone: "UTC+5:30"}

	got := ShipTimeAt(utc, off)
	if got.Hour() != 17 || got.Minute() != 30 {
		t.Errorf("ShipTimeAt = %s, want 17:30", got.Format("15:04"))
	}
}

func TestShipTimeAt_Political(t *testing.T) {
	r := tz.NewPoliticalResolver(tz.RuleLookup{})
	utc := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	mumbai := geo.Position{Lat: 19.07, Lng: 72.87}

	political := ShipTimeAt(utc, r.Resolve(mumbai, utc))
	simple := ShipTime(utc, mumbai.Lng)

	if FormatTime(political) != "17:30" {
		t.Errorf("political time = %s, want 17:30", FormatTime(political))
	}
	if FormatTime(simple) != "17:00" {
		t.Errorf("simple time = %s, want 17:00", FormatTime(simple))
	}
}

func TestFormatLongitude(t *testing.T) {
	tests := []struct {
		lng      float64
		expected string
	}{
		{0, "0°00'E"},
		{45.5, "45°30'E"},
		{-45.5, "45°30'W"},
		{120, "120°00'E"},
		{180, "180°00'E"},
		{-180, "180°00'W"},
		{190, "170°00'W"},
		{45.9999, "46°00'E"}, // minute overflow carries into degrees
		{-0.25, "0°15'W"},
	}

	for _, tt := range tests {
		if got := FormatLongitude(tt.lng); got != tt.expected {
			t.Errorf("FormatLongitude(%v) = %q, want %q", tt.lng, got, tt.expected)
		}
	}
}

func TestFormatLatitude(t *testing.T) {
	tests := []struct {
		lat      float64
		expected string
	}{
		{0, "0°00'N"},
		{51.5, "51°30'N"},
		{-33.75, "33°45'S"},
		{95, "90°00'N"},
	}

	for _, tt := range tests {
		if got := FormatLatitude(tt.lat); got != tt.expected {
			t.Errorf("FormatLatitude(%v) = %q, want %q", tt.lat, got, tt.expected)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		dt       time.Time
		expected string
	}{
		{time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC), "14:30"},
		{time.Date(2026, 1, 15, 9, 5, 0, 0, time.UTC), "09:05"},
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "00:00"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.dt); got != tt.expected {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.dt, got, tt.expected)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		dt       time.Time
		expected string
	}{
		{time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), "15 January 2026"},
		{time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), "5 March 2026"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.dt); got != tt.expected {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.dt, got, tt.expected)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "UTC"},
		{60, "UTC+1"},
		{-420, "UTC-7"},
		{720, "UTC+12"},
		{330, "UTC+5:30"},
		{345, "UTC+5:45"},
		{-210, "UTC-3:30"},
		{-30, "UTC-0:30"},
	}

	for _, tt := range tests {
		if got := FormatOffset(tt.minutes); got != tt.expected {
			t.Errorf("FormatOffset(%d) = %q, want %q", tt.minutes, got, tt.expected)
		}
	}

	if got := FormatOffsetHours(-12); got != "UTC-12" {
		t.Errorf("FormatOffsetHours(-12) = %q, want UTC-12", got)
	}
}

func TestMeridianLabel(t *testing.T) {
	tests := []struct {
		lng      float64
		expected string
	}{
		{0, "UTC"},
		{15, "UTC+1"},
		{180, "IDL"},
		{-180, "IDL"},
		{195, "UTC-11"},
		{360, "UTC"},
	}

	for _, tt := range tests {
		if got := MeridianLabel(tt.lng); got != tt.expected {
			t.Errorf("MeridianLabel(%v) = %q, want %q", tt.lng, got, tt.expected)
		}
	}
}

package tz

import (
	"errors"
	"testing"
	"time"

	"github.com/litescript/ls-shiptime/internal/geo"
)

func TestSimpleOffsetHours(t *testing.T) {
	tests := []struct {
		name     string
		lng      float64
		expected int
	}{
		{"prime meridian", 0, 0},
		{"one zone east", 15, 1},
		{"one zone west", -15, -1},
		{"date line east", 180, 12},
		{"date line west", -180, -12},
		{"7 rounds down", 7, 0},
		{"8 rounds up", 8, 1},
		{"22 rounds down", 22, 1},
		{"23 rounds up", 23, 2},
		{"half rounds up", 7.5, 1},
		{"negative half rounds up", -7.5, 0},
		{"unnormalized", 375, 1},
		{"wrapped west", 190, -11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimpleOffsetHours(tt.lng); got != tt.expected {
				t.Errorf("SimpleOffsetHours(%v) = %d, want %d", tt.lng, got, tt.expected)
			}
		})
	}
}

func TestSimpleOffsetHours_MonotonicAndBounded(t *testing.T) {
	prev := SimpleOffsetHours(-180)
	for lng := -180.0; lng <= 180.0; lng += 0.25 {
		got := SimpleOffsetHours(lng)
		if got < -MaxOffsetHours || got > MaxOffsetHours {
			t.Fatalf("SimpleOffsetHours(%v) = %d, out of range", lng, got)
		}
		if got < prev {
			t.Fatalf("SimpleOffsetHours decreased at %v: %d after %d", lng, got, prev)
		}
		prev = got
	}
}

func TestSyntheticZoneName(t *testing.T) {
	tests := []struct {
		hours    int
		expected string
	}{
		{0, "UTC"},
		{3, "UTC+3"},
		{-7, "UTC-7"},
		{12, "UTC+12"},
	}

	for _, tt := range tests {
		if got := SyntheticZoneName(tt.hours); got != tt.expected {
			t.Errorf("SyntheticZoneName(%d) = %q, want %q", tt.hours, got, tt.expected)
		}
	}
}

func TestSimpleResolver(t *testing.T) {
	off := SimpleResolver{}.Resolve(geo.Position{Lat: 40, Lng: 45}, time.Now())
	if off.Minutes != 180 {
		t.Errorf("Minutes = %d, want 180", off.Minutes)
	}
	if off.Zone != "UTC+3" {
		t.Errorf("Zone = %q, want UTC+3", off.Zone)
	}
	if off.Fallback {
		t.Error("simple model should not be marked as fallback")
	}
	if _, secs := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).In(off.Location).Zone(); secs != 3*3600 {
		t.Errorf("Location offset = %ds, want %d", secs, 3*3600)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"simple", ModeSimple},
		{"political", ModePolitical},
		{"iana", ModePolitical},
		{"Political", ModePolitical},
		{" ZONE ", ModePolitical},
		{"Simple", ModeSimple},
		{"", ModeSimple},
		{"bogus", ModeSimple},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseMode(tc.input); got != tc.expected {
				t.Errorf("ParseMode(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeSimple.String() != "simple" || ModePolitical.String() != "political" {
		t.Errorf("unexpected mode names: %q %q", ModeSimple, ModePolitical)
	}
	if Mode(42).String() != "unknown" {
		t.Errorf("Mode(42).String() = %q, want unknown", Mode(42).String())
	}
}

func TestNewResolver(t *testing.T) {
	if _, ok := NewResolver(ModeSimple).(SimpleResolver); !ok {
		t.Error("ModeSimple should build a SimpleResolver")
	}
	if _, ok := NewResolver(ModePolitical).(*PoliticalResolver); !ok {
		t.Error("ModePolitical should build a PoliticalResolver")
	}
}

func TestRuleLookup(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		expected string
	}{
		{"Mumbai", 19.07, 72.87, "Asia/Kolkata"},
		{"Kathmandu", 27.7, 85.3, "Asia/Kathmandu"},
		{"Adelaide", -34.9, 138.6, "Australia/Adelaide"},
		{"St. John's", 47.56, -52.71, "America/St_Johns"},
		{"New York", 40.7, -74.0, "America/New_York"},
		{"London", 51.5, -0.12, "Europe/London"},
		{"Tokyo", 35.68, 139.69, "Asia/Tokyo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RuleLookup{}.Zone(tt.lat, tt.lng)
			if err != nil {
				t.Fatalf("Zone(%v, %v) error: %v", tt.lat, tt.lng, err)
			}
			if got != tt.expected {
				t.Errorf("Zone(%v, %v) = %q, want %q", tt.lat, tt.lng, got, tt.expected)
			}
		})
	}
}

func TestRuleLookup_OpenOcean(t *testing.T) {
	for _, p := range []geo.Position{{Lat: 0, Lng: -140}, {Lat: -50, Lng: 90}, {Lat: 95, Lng: 0}} {
		if _, err := (RuleLookup{}).Zone(p.Lat, p.Lng); !errors.Is(err, ErrNoZone) {
			t.Errorf("Zone(%v, %v) error = %v, want ErrNoZone", p.Lat, p.Lng, err)
		}
	}
}

func TestPoliticalResolver_FractionalZones(t *testing.T) {
	r := NewPoliticalResolver(RuleLookup{})
	july := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	jan := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pos      geo.Position
		at       time.Time
		expected int
	}{
		{"India", geo.Position{Lat: 19.07, Lng: 72.87}, jan, 330},
		{"Nepal", geo.Position{Lat: 27.7, Lng: 85.3}, jan, 345},
		{"Adelaide winter", geo.Position{Lat: -34.9, Lng: 138.6}, july, 570},
		{"Adelaide summer", geo.Position{Lat: -34.9, Lng: 138.6}, jan, 630},
		{"Newfoundland winter", geo.Position{Lat: 47.56, Lng: -52.71}, jan, -210},
		{"New York winter", geo.Position{Lat: 40.7, Lng: -74}, jan, -300},
		{"New York summer", geo.Position{Lat: 40.7, Lng: -74}, july, -240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := r.Resolve(tt.pos, tt.at)
			if off.Fallback {
				t.Fatalf("unexpected fallback for %+v", tt.pos)
			}
			if off.Minutes != tt.expected {
				t.Errorf("Minutes = %d, want %d (zone %s)", off.Minutes, tt.expected, off.Zone)
			}
		})
	}
}

func TestPoliticalResolver_FallsBackInOpenOcean(t *testing.T) {
	r := NewPoliticalResolver(RuleLookup{})
	off := r.Resolve(geo.Position{Lat: 0, Lng: -140}, time.Now())

	if !off.Fallback {
		t.Error("expected fallback in open ocean")
	}
	if off.Minutes != -9*60 {
		t.Errorf("Minutes = %d, want %d", off.Minutes, -9*60)
	}
	if off.Zone != "UTC-9" {
		t.Errorf("Zone = %q, want UTC-9", off.Zone)
	}
}

func TestPoliticalResolver_NormalizesLongitude(t *testing.T) {
	r := NewPoliticalResolver(RuleLookup{})
	// 72.87 + 360 is still Mumbai
	off := r.Resolve(geo.Position{Lat: 19.07, Lng: 432.87}, time.Now())
	if off.Zone != "Asia/Kolkata" {
		t.Errorf("Zone = %q, want Asia/Kolkata", off.Zone)
	}
}

type countingLookup struct {
	zone     string
	err      error
	calls    int
	lat, lng float64
}

func (c *countingLookup) Zone(lat, lng float64) (string, error) {
	c.calls++
	c.lat, c.lng = lat, lng
	return c.zone, c.err
}

func TestPoliticalResolver_CachesCells(t *testing.T) {
	lookup := &countingLookup{zone: "Asia/Tokyo"}
	r := NewPoliticalResolver(lookup)
	now := time.Now()

	r.Resolve(geo.Position{Lat: 35.01, Lng: 139.01}, now)
	r.Resolve(geo.Position{Lat: 35.02, Lng: 139.02}, now)
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1 for the same cell", lookup.calls)
	}

	r.Resolve(geo.Position{Lat: 36.01, Lng: 139.01}, now)
	if lookup.calls != 2 {
		t.Errorf("lookup calls = %d, want 2 after a new cell", lookup.calls)
	}
}

func TestPoliticalResolver_LooksUpCellCentre(t *testing.T) {
	lookup := &countingLookup{zone: "Asia/Tokyo"}
	r := NewPoliticalResolver(lookup)

	r.Resolve(geo.Position{Lat: 35.01, Lng: 139.01}, time.Now())
	if lookup.lat != 35.125 || lookup.lng != 139.125 {
		t.Errorf("lookup at (%v, %v), want cell centre (35.125, 139.125)", lookup.lat, lookup.lng)
	}

	r = NewPoliticalResolver(lookup)
	r.Resolve(geo.Position{Lat: 90, Lng: 180}, time.Now())
	if lookup.lat != 90 || lookup.lng != 180 {
		t.Errorf("lookup at (%v, %v), want centre clamped to (90, 180)", lookup.lat, lookup.lng)
	}
}

func TestPoliticalResolver_IndependentOfHistory(t *testing.T) {
	jan := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	// 26.3 is a Nepal/India edge that does not sit on the cell grid
	target := geo.Position{Lat: 26.26, Lng: 85}
	neighbour := geo.Position{Lat: 26.4, Lng: 85}

	fresh := NewPoliticalResolver(RuleLookup{}).Resolve(target, jan)

	warm := NewPoliticalResolver(RuleLookup{})
	warm.Resolve(neighbour, jan)
	got := warm.Resolve(target, jan)

	if got.Zone != fresh.Zone || got.Minutes != fresh.Minutes {
		t.Errorf("after a neighbour lookup got %s/%d, fresh resolver gave %s/%d",
			got.Zone, got.Minutes, fresh.Zone, fresh.Minutes)
	}
}

func TestPoliticalResolver_CachesFailures(t *testing.T) {
	lookup := &countingLookup{err: ErrNoZone}
	r := NewPoliticalResolver(lookup, WithCellCache(16, time.Minute))

	for i := 0; i < 3; i++ {
		if off := r.Resolve(geo.Position{Lat: 10, Lng: 30}, time.Now()); !off.Fallback {
			t.Fatal("expected fallback")
		}
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}
}

func TestPoliticalResolver_UnknownZoneFallsBack(t *testing.T) {
	r := NewPoliticalResolver(&countingLookup{zone: "Mars/Olympus_Mons"})
	off := r.Resolve(geo.Position{Lat: 0, Lng: 30}, time.Now())
	if !off.Fallback {
		t.Error("expected fallback for an unloadable zone")
	}
	if off.Minutes != 120 {
		t.Errorf("Minutes = %d, want 120", off.Minutes)
	}
}

// Package tz resolves ship positions to UTC offsets.
//
// Two strategies are provided: a simple longitude-only model (15° per hour,
// whole hours, clamped to ±12) and a political model that looks up a real
// IANA zone and falls back to the simple model when no zone is found.
package tz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-shiptime/internal/geo"
)

const (
	// DegreesPerHour is the width of one simple-model timezone.
	DegreesPerHour = 15.0

	// MaxOffsetHours bounds the simple model in both directions.
	MaxOffsetHours = 12
)

// Offset is a resolved UTC offset for a position.
type Offset struct {
	Minutes  int            // Offset from UTC in minutes
	Zone     string         // IANA zone name, or synthetic "UTC±N" label
	Location *time.Location // Location to render wall-clock time in
	Fallback bool           // True when the political lookup failed
}

// Hours returns the whole-hour part of the offset (truncated toward zero).
func (o Offset) Hours() int {
	return o.Minutes / 60
}

// Resolver maps a position and instant to an offset.
type Resolver interface {
	// Name returns the strategy name for display/logging.
	Name() string

	// Resolve returns the offset in effect at position pos at instant at.
	Resolve(pos geo.Position, at time.Time) Offset
}

// SimpleOffsetHours returns clamp(round(normalize(lng)/15), -12, 12).
// Halves round up, so 7.5° is +1 and -7.5° is 0.
func SimpleOffsetHours(lng float64) int {
	q := geo.NormalizeLongitude(lng) / DegreesPerHour
	h := int(math.Floor(q + 0.5))
	if h > MaxOffsetHours {
		return MaxOffsetHours
	}
	if h < -MaxOffsetHours {
		return -MaxOffsetHours
	}
	return h
}

// SimpleOffset builds a fixed-zone offset for the longitude-only model.
func SimpleOffset(lng float64) Offset {
	h := SimpleOffsetHours(lng)
	label := SyntheticZoneName(h)
	return Offset{
		Minutes:  h * 60,
		Zone:     label,
		Location: time.FixedZone(label, h*3600),
	}
}

// SyntheticZoneName labels a whole-hour offset, e.g. "UTC", "UTC+3", "UTC-7".
func SyntheticZoneName(hours int) string {
	switch {
	case hours == 0:
		return "UTC"
	case hours > 0:
		return fmt.Sprintf("UTC+%d", hours)
	default:
		return fmt.Sprintf("UTC%d", hours)
	}
}

// SimpleResolver is the longitude-only strategy.
type SimpleResolver struct{}

// Name implements Resolver.
func (SimpleResolver) Name() string { return ModeSimple.String() }

// Resolve implements Resolver. Latitude and instant are ignored.
func (SimpleResolver) Resolve(pos geo.Position, _ time.Time) Offset {
	return SimpleOffset(pos.Lng)
}

// Mode selects a resolver strategy.
type Mode int

const (
	ModeSimple    Mode = iota // Longitude / 15, whole hours
	ModePolitical             // IANA zone lookup with simple fallback
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModePolitical:
		return "political"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string, ignoring case and surrounding space.
// Unknown values select the simple model.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "political", "zone", "iana":
		return ModePolitical
	default:
		return ModeSimple
	}
}

// NewResolver returns the resolver for a mode.
func NewResolver(mode Mode) Resolver {
	if mode == ModePolitical {
		return NewPoliticalResolver(RuleLookup{})
	}
	return SimpleResolver{}
}

// Package geo provides longitude normalization and position math for the ship map.
package geo

import "math"

// Position is a ship location in decimal degrees (east and north positive).
type Position struct {
	Lat float64 // Latitude in degrees (-90 to +90)
	Lng float64 // Longitude in degrees, normalized to [-180, 180] before use
}

// Waypoint is a single route point. Longitude may be in display range (0-360).
type Waypoint struct {
	Lat float64 `msgpack:"lat" mapstructure:"lat"`
	Lng float64 `msgpack:"lng" mapstructure:"lng"`
}

// Position converts a waypoint to a position with a normalized longitude.
func (w Waypoint) Position() Position {
	return Position{Lat: w.Lat, Lng: NormalizeLongitude(w.Lng)}
}

// Normalized returns p with its longitude reduced to [-180, 180].
func (p Position) Normalized() Position {
	p.Lng = NormalizeLongitude(p.Lng)
	return p
}

// NormalizeLongitude reduces any longitude to [-180, 180].
// Both -180 and +180 are kept as given; -0 becomes +0.
// Non-finite input returns 0.
func NormalizeLongitude(lng float64) float64 {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0
	}

	n := math.Mod(lng, 360)
	if n > 180 {
		n -= 360
	} else if n < -180 {
		n += 360
	}

	if n == 0 {
		return 0
	}
	return n
}

// ToDisplay maps a normalized longitude onto the 0-360 map range,
// which puts the Date Line at the center of the strip.
func ToDisplay(lng float64) float64 {
	n := NormalizeLongitude(lng)
	if n < 0 {
		return n + 360
	}
	return n
}

// FromDisplay clamps a display longitude to the visible 0-360 range and
// converts it back to [-180, 180].
func FromDisplay(display float64) float64 {
	display = ClampDisplay(display)
	if display > 180 {
		return display - 360
	}
	return display
}

// ClampDisplay keeps a display longitude inside the visible 0-360 range.
func ClampDisplay(display float64) float64 {
	return math.Max(0, math.Min(360, display))
}

// ClampLatitude keeps a latitude inside [-90, 90].
func ClampLatitude(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// Lerp is linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpWaypoint interpolates latitude and longitude independently.
// Longitude is interpolated as given, not along the shortest arc.
func LerpWaypoint(a, b Waypoint, t float64) Waypoint {
	return Waypoint{
		Lat: Lerp(a.Lat, b.Lat, t),
		Lng: Lerp(a.Lng, b.Lng, t),
	}
}

// Package dateline detects International Date Line crossings between two
// longitude samples.
package dateline

import "math"

// Direction is the heading at which the Date Line was crossed.
type Direction string

const (
	East Direction = "east"
	West Direction = "west"
)

// DayChange is the calendar step for this direction, for display.
func (d Direction) DayChange() string {
	if d == East {
		return "-1 DAY"
	}
	return "+1 DAY"
}

// Crossing describes one Date Line crossing event.
type Crossing struct {
	Direction Direction `json:"direction"`
	Message   string    `json:"message"`
}

const (
	eastMessage = "Crossed the Date Line heading East - subtract one day"
	westMessage = "Crossed the Date Line heading West - add one day"
)

// Detect reports whether moving from prev to curr crossed the Date Line.
//
// The raw delta is used as given: a jump of more than 180° means the ship
// wrapped around ±180. Negative jumps (e.g. 170 → -170) are eastward,
// positive jumps are westward. A delta of exactly ±180 is not a crossing,
// and neither is a non-finite delta. Detect keeps no state; callers track
// the previous sample.
func Detect(prev, curr float64) (Crossing, bool) {
	delta := curr - prev
	if math.IsNaN(delta) || math.IsInf(delta, 0) || math.Abs(delta) <= 180 {
		return Crossing{}, false
	}

	if delta < 0 {
		return Crossing{Direction: East, Message: eastMessage}, true
	}
	return Crossing{Direction: West, Message: westMessage}, true
}

// Package route holds a ship's planned route and animates the ship along it.
package route

import (
	"fmt"
	"sync"

	"github.com/litescript/ls-shiptime/internal/geo"
)

// Speed is the animation speed setting.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedMedium
	SpeedFast
)

// Multiplier scales segment traversal: duration = base / multiplier.
func (s Speed) Multiplier() float64 {
	switch s {
	case SpeedSlow:
		return 0.5
	case SpeedFast:
		return 2
	default:
		return 1
	}
}

// String returns the speed name.
func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedMedium:
		return "medium"
	case SpeedFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Next cycles slow → medium → fast → slow.
func (s Speed) Next() Speed {
	return (s + 1) % 3
}

// ParseSpeed parses a speed name.
func ParseSpeed(s string) (Speed, error) {
	switch s {
	case "slow":
		return SpeedSlow, nil
	case "medium", "":
		return SpeedMedium, nil
	case "fast":
		return SpeedFast, nil
	default:
		return SpeedMedium, fmt.Errorf("unknown speed %q (want slow, medium or fast)", s)
	}
}

// Model is the single authoritative route store. All reads and writes go
// through one mutex, so the waypoint count seen by StartAnimation is always
// the count written by the last AddWaypoint.
type Model struct {
	mu sync.RWMutex

	waypoints []geo.Waypoint
	drawing   bool
	animating bool
	speed     Speed
}

// NewModel creates an empty route at medium speed.
func NewModel() *Model {
	return &Model{speed: SpeedMedium}
}

// ToggleDrawing flips drawing mode. Callers decide whether drawing is
// allowed while animating (see IsAnimating).
func (m *Model) ToggleDrawing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawing = !m.drawing
}

// AddWaypoint appends a waypoint. No dedup or validation.
func (m *Model) AddWaypoint(wp geo.Waypoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waypoints = append(m.waypoints, wp)
}

// SetWaypoints replaces the whole waypoint sequence.
func (m *Model) SetWaypoints(wps []geo.Waypoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waypoints = append([]geo.Waypoint(nil), wps...)
}

// ClearRoute empties the route and leaves drawing and animation modes.
func (m *Model) ClearRoute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waypoints = nil
	m.animating = false
	m.drawing = false
}

// StartAnimation enters animation mode and leaves drawing mode if the route
// has at least two waypoints. Otherwise it does nothing and returns false.
func (m *Model) StartAnimation() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.waypoints) < 2 {
		return false
	}
	m.animating = true
	m.drawing = false
	return true
}

// StopAnimation leaves animation mode.
func (m *Model) StopAnimation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.animating = false
}

// SetSpeed sets the animation speed. A running animation picks it up on
// its next tick.
func (m *Model) SetSpeed(s Speed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = s
}

// Speed returns the current speed.
func (m *Model) Speed() Speed {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.speed
}

// Waypoints returns a copy of the waypoint sequence.
func (m *Model) Waypoints() []geo.Waypoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]geo.Waypoint, len(m.waypoints))
	copy(out, m.waypoints)
	return out
}

// Len returns the number of waypoints.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.waypoints)
}

// HasRoute reports whether there are enough waypoints to animate.
func (m *Model) HasRoute() bool {
	return m.Len() >= 2
}

// IsAnimating reports whether animation mode is on.
func (m *Model) IsAnimating() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.animating
}

// IsDrawing reports whether drawing mode is on.
func (m *Model) IsDrawing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drawing
}

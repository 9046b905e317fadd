// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/brunoga/deep"

	"github.com/litescript/ls-shiptime/internal/dateline"
	"github.com/litescript/ls-shiptime/internal/geo"
	"github.com/litescript/ls-shiptime/internal/shiptime"
	"github.com/litescript/ls-shiptime/internal/tz"
)

// CrossingEvent is a logged Date Line crossing.
type CrossingEvent struct {
	dateline.Crossing
	Timestamp time.Time `json:"timestamp"` // UTC instant at the crossing
	From      float64   `json:"from"`      // Normalized longitude before
	To        float64   `json:"to"`        // Normalized longitude after
}

// Manager owns the current UTC instant, the ship position, the transient
// crossing alert, and the crossing log.
type Manager struct {
	mu sync.RWMutex

	// Current state
	utc      time.Time
	position geo.Position
	prevLng  float64

	// Alert window
	alert         *dateline.Crossing
	alertUntil    time.Time
	alertDuration time.Duration

	// Crossing log (ring buffer)
	events       []CrossingEvent
	maxEvents    int
	eventWriteAt int

	resolver tz.Resolver
	now      func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	AlertDuration time.Duration
	MaxCrossings  int
	Resolver      tz.Resolver
	Position      geo.Position     // Initial ship position
	Now           func() time.Time // Wall clock for alert expiry
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		AlertDuration: 3 * time.Second,
		MaxCrossings:  50,
		Resolver:      tz.SimpleResolver{},
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxCrossings
	if maxEvents <= 0 {
		maxEvents = 50
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = tz.SimpleResolver{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	pos := cfg.Position.Normalized()

	return &Manager{
		utc:           now().UTC(),
		position:      pos,
		prevLng:       pos.Lng,
		alertDuration: cfg.AlertDuration,
		maxEvents:     maxEvents,
		events:        make([]CrossingEvent, 0, maxEvents),
		resolver:      resolver,
		now:           now,
	}
}

// SetUTC records the current UTC instant. The clock source is the only
// caller.
func (m *Manager) SetUTC(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.utc = t.UTC()
}

// UTC returns the current UTC instant.
func (m *Manager) UTC() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.utc
}

// SetShipPosition moves the ship. The longitude is normalized, compared
// against the previously tracked longitude for a Date Line crossing, and
// then becomes the new previous sample. A crossing opens the alert window
// and is logged.
func (m *Manager) SetShipPosition(pos geo.Position) (dateline.Crossing, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos = pos.Normalized()
	pos.Lat = geo.ClampLatitude(pos.Lat)

	prev := m.prevLng
	crossing, crossed := dateline.Detect(prev, pos.Lng)

	m.position = pos
	m.prevLng = pos.Lng

	if crossed {
		c := crossing
		m.alert = &c
		m.alertUntil = m.now().Add(m.alertDuration)
		m.addEvent(CrossingEvent{
			Crossing:  crossing,
			Timestamp: m.utc,
			From:      prev,
			To:        pos.Lng,
		})
	}
	return crossing, crossed
}

// Position returns the current (normalized) ship position.
func (m *Manager) Position() geo.Position {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

// DismissAlert closes the alert window early.
func (m *Manager) DismissAlert() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alert = nil
}

// SetResolver swaps the timezone strategy.
func (m *Manager) SetResolver(r tz.Resolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r != nil {
		m.resolver = r
	}
}

// Resolver returns the active timezone strategy.
func (m *Manager) Resolver() tz.Resolver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolver
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e CrossingEvent) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	UTC       time.Time
	Position  geo.Position
	Offset    tz.Offset
	ShipTime  time.Time
	Resolver  string
	Alert     *dateline.Crossing // Non-nil inside the alert window
	Crossings []CrossingEvent
}

// Snapshot returns a consistent snapshot of current state with the ship's
// offset and local time derived from the current UTC instant.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	off := m.resolver.Resolve(m.position, m.utc)

	var alert *dateline.Crossing
	if m.alert != nil && m.now().Before(m.alertUntil) {
		c := deep.MustCopy(*m.alert)
		alert = &c
	}

	return Snapshot{
		UTC:       m.utc,
		Position:  m.position,
		Offset:    off,
		ShipTime:  shiptime.ShipTimeAt(m.utc, off),
		Resolver:  m.resolver.Name(),
		Alert:     alert,
		Crossings: m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []CrossingEvent {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]CrossingEvent, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]CrossingEvent, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentCrossings returns the last n crossings.
func (m *Manager) RecentCrossings(n int) []CrossingEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

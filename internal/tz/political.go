package tz

import (
	"errors"
	"fmt"
	"math"
	"time"
	_ "time/tzdata" // zone rules must not depend on the host's zoneinfo

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/litescript/ls-shiptime/internal/geo"
)

const (
	// CellSizeDeg is the resolution of the political model. Every position
	// in a cell resolves to the zone at the cell's centre.
	CellSizeDeg = 0.25

	// DefaultCellCacheSize bounds the number of cached lookup cells.
	DefaultCellCacheSize = 4096

	// DefaultCellCacheTTL is how long a cached lookup stays valid.
	DefaultCellCacheTTL = time.Hour

	locationCacheSize = 128
)

// ErrNoZone is returned by a Lookup when no zone covers a position.
var ErrNoZone = errors.New("no timezone for position")

// Lookup maps coordinates to an IANA zone identifier.
type Lookup interface {
	Zone(lat, lng float64) (string, error)
}

// PoliticalResolver resolves real-world zones and reads their offset at the
// supplied instant, so daylight-saving rules follow the ship's clock.
type PoliticalResolver struct {
	lookup    Lookup
	cells     *expirable.LRU[string, string]
	locations *lru.Cache[string, *time.Location]
}

// PoliticalOption configures a PoliticalResolver.
type PoliticalOption func(*PoliticalResolver)

// WithCellCache replaces the lookup cache size and TTL.
func WithCellCache(size int, ttl time.Duration) PoliticalOption {
	return func(r *PoliticalResolver) {
		r.cells = expirable.NewLRU[string, string](size, nil, ttl)
	}
}

// NewPoliticalResolver creates a resolver backed by lookup.
func NewPoliticalResolver(lookup Lookup, opts ...PoliticalOption) *PoliticalResolver {
	r := &PoliticalResolver{
		lookup: lookup,
		cells:  expirable.NewLRU[string, string](DefaultCellCacheSize, nil, DefaultCellCacheTTL),
	}
	// Only fails for a non-positive size.
	r.locations, _ = lru.New[string, *time.Location](locationCacheSize)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements Resolver.
func (r *PoliticalResolver) Name() string { return ModePolitical.String() }

// Resolve implements Resolver. Lookup or load failures fall back to the
// simple model with a synthetic zone label.
func (r *PoliticalResolver) Resolve(pos geo.Position, at time.Time) Offset {
	pos = pos.Normalized()

	zone, loc, err := r.resolveLocation(pos)
	if err != nil {
		off := SimpleOffset(pos.Lng)
		off.Fallback = true
		return off
	}

	_, secs := at.In(loc).Zone()
	return Offset{
		Minutes:  secs / 60,
		Zone:     zone,
		Location: loc,
	}
}

func (r *PoliticalResolver) resolveLocation(pos geo.Position) (string, *time.Location, error) {
	c := cellOf(pos)
	key := c.key()

	zone, ok := r.cells.Get(key)
	if !ok {
		var err error
		zone, err = r.lookup.Zone(c.centre())
		if err != nil {
			zone = ""
		}
		r.cells.Add(key, zone)
	}
	if zone == "" {
		return "", nil, ErrNoZone
	}

	if loc, ok := r.locations.Get(zone); ok {
		return zone, loc, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", nil, fmt.Errorf("load zone %s: %w", zone, err)
	}
	r.locations.Add(zone, loc)
	return zone, loc, nil
}

// cell is the south-west corner of a CellSizeDeg grid cell.
type cell struct {
	lat, lng float64
}

func cellOf(pos geo.Position) cell {
	return cell{
		lat: math.Floor(pos.Lat/CellSizeDeg) * CellSizeDeg,
		lng: math.Floor(pos.Lng/CellSizeDeg) * CellSizeDeg,
	}
}

func (c cell) key() string {
	return fmt.Sprintf("%.2f,%.2f", c.lat, c.lng)
}

// centre returns the lookup point for c, kept inside the valid coordinate
// range for cells on the poles and the Date Line.
func (c cell) centre() (lat, lng float64) {
	half := CellSizeDeg / 2
	return math.Min(c.lat+half, 90), math.Min(c.lng+half, 180)
}

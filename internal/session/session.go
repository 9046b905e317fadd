// Package session persists the route, speed, ship position and timezone
// model between runs as zstd-compressed msgpack.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/litescript/ls-shiptime/internal/geo"
	"github.com/litescript/ls-shiptime/internal/route"
)

// formatVersion is bumped when Session changes incompatibly.
const formatVersion = 1

// ErrVersion is returned when a stored session was written by an
// incompatible version.
var ErrVersion = errors.New("session: unsupported format version")

// Session is the persisted subset of application state.
type Session struct {
	Version   int            `msgpack:"version"`
	SavedAt   time.Time      `msgpack:"saved_at"`
	Waypoints []geo.Waypoint `msgpack:"waypoints"`
	Speed     string         `msgpack:"speed"`
	Ship      geo.Position   `msgpack:"ship"`
	TZMode    string         `msgpack:"tz_mode"`
}

// Capture builds a Session from the live route model and ship position.
func Capture(m *route.Model, ship geo.Position, tzMode string) Session {
	return Session{
		Version:   formatVersion,
		SavedAt:   time.Now().UTC(),
		Waypoints: m.Waypoints(),
		Speed:     m.Speed().String(),
		Ship:      ship,
		TZMode:    tzMode,
	}
}

// Apply restores the route and speed into m. The ship position is returned
// to the caller, which owns it.
func (s Session) Apply(m *route.Model) (geo.Position, error) {
	speed, err := route.ParseSpeed(s.Speed)
	if err != nil {
		return geo.Position{}, fmt.Errorf("restore speed: %w", err)
	}
	m.SetSpeed(speed)
	m.SetWaypoints(s.Waypoints)
	return s.Ship, nil
}

// TimezoneMode returns the saved timezone model, or fallback when the
// session has none.
func (s Session) TimezoneMode(fallback string) string {
	if mode := strings.TrimSpace(s.TZMode); mode != "" {
		return mode
	}
	return fallback
}

// Save writes s to path, creating parent directories as needed. The file
// is written to a temporary sibling and renamed into place.
func Save(path string, s Session) error {
	if s.Version == 0 {
		s.Version = formatVersion
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if err := encode(f, s); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close session: %w", err)
	}
	return os.Rename(tmp, path)
}

func encode(w io.Writer, s Session) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(s); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zstd writer: %w", err)
	}
	return nil
}

// Load reads a session from path. A missing file returns ok=false and no
// error.
func Load(path string) (Session, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, false, nil
	} else if err != nil {
		return Session{}, false, fmt.Errorf("open session: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return Session{}, false, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	var s Session
	if err := msgpack.NewDecoder(zr).Decode(&s); err != nil {
		return Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	if s.Version != formatVersion {
		return Session{}, false, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}
	return s, true, nil
}

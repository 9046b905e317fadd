package route

import (
	"time"

	"github.com/litescript/ls-shiptime/internal/geo"
)

const (
	// BaseSegmentDuration is the time to traverse one segment at medium speed.
	BaseSegmentDuration = 5000 * time.Millisecond

	// DefaultFrameInterval is the animation tick cadence (~60fps).
	DefaultFrameInterval = 16 * time.Millisecond
)

// SegmentDuration returns the traversal time for one segment at speed s.
func SegmentDuration(s Speed) time.Duration {
	return time.Duration(float64(BaseSegmentDuration) / s.Multiplier())
}

// Frame is one animation sample.
type Frame struct {
	Position geo.Waypoint // Interpolated position (longitude as in the waypoints)
	Segment  int          // Index of the segment being traversed
	Progress float64      // Progress within the segment, 0-1
	Done     bool         // True on the single frame that completes the route
}

// Animator interpolates a position along route segments. It holds no timer;
// each Advance recomputes progress from elapsed wall time since the segment
// started, so late or missed ticks do not accumulate drift.
type Animator struct {
	waypoints    []geo.Waypoint
	segment      int
	segmentStart time.Time
	active       bool
	last         Frame
}

// Start begins a new run at waypoint 0. It returns false and stays idle if
// fewer than two waypoints are given.
func (a *Animator) Start(waypoints []geo.Waypoint, now time.Time) (Frame, bool) {
	a.Reset()
	if len(waypoints) < 2 {
		return Frame{}, false
	}

	a.waypoints = append([]geo.Waypoint(nil), waypoints...)
	a.segmentStart = now
	a.active = true
	a.last = Frame{Position: a.waypoints[0]}
	return a.last, true
}

// Reset discards any run in progress.
func (a *Animator) Reset() {
	*a = Animator{}
}

// Active reports whether a run is in progress.
func (a *Animator) Active() bool {
	return a.active
}

// Last returns the most recent frame.
func (a *Animator) Last() Frame {
	return a.last
}

// Advance computes the frame at now. The segment duration is derived from
// speed on every call, so speed changes apply immediately. When the last
// segment completes, the frame snaps to the final waypoint with Done set
// and the animator goes idle; later calls return false.
func (a *Animator) Advance(now time.Time, speed Speed) (Frame, bool) {
	if !a.active {
		return a.last, false
	}

	// Guard against a waypoint slice that no longer has this segment.
	if a.segment < 0 || a.segment+1 >= len(a.waypoints) {
		return a.finish(), true
	}

	elapsed := now.Sub(a.segmentStart)
	progress := float64(elapsed) / float64(SegmentDuration(speed))

	if progress >= 1 {
		a.segment++
		a.segmentStart = now
		if a.segment >= len(a.waypoints)-1 {
			return a.finish(), true
		}
		progress = 0
	}

	if progress < 0 {
		progress = 0
	}

	start := a.waypoints[a.segment]
	end := a.waypoints[a.segment+1]
	a.last = Frame{
		Position: geo.LerpWaypoint(start, end, progress),
		Segment:  a.segment,
		Progress: progress,
	}
	return a.last, true
}

func (a *Animator) finish() Frame {
	a.active = false
	seg := len(a.waypoints) - 2
	if seg < 0 {
		seg = 0
	}
	var pos geo.Waypoint
	if n := len(a.waypoints); n > 0 {
		pos = a.waypoints[n-1]
	}
	a.last = Frame{Position: pos, Segment: seg, Progress: 1, Done: true}
	return a.last
}

package route

import (
	"context"
	"sync"
	"time"
)

// Clock provides time for animations. Tests inject a fake clock to control
// animation timing deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Player schedules an Animator against a Model. Each Play, Stop or Clear
// bumps a generation counter; a tick loop only advances while its
// generation is current, so starting a new run cancels any older loop.
type Player struct {
	mu sync.Mutex

	route    *Model
	clock    Clock
	interval time.Duration
	anim     Animator
	gen      uint64
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithClock sets the time source.
func WithClock(c Clock) PlayerOption {
	return func(p *Player) {
		p.clock = c
	}
}

// WithFrameInterval sets the tick cadence used by Run.
func WithFrameInterval(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPlayer creates a player for route m.
func NewPlayer(m *Model, opts ...PlayerOption) *Player {
	p := &Player{
		route:    m,
		clock:    realClock{},
		interval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Route returns the model the player drives.
func (p *Player) Route() *Model {
	return p.route
}

// FrameInterval returns the tick cadence.
func (p *Player) FrameInterval() time.Duration {
	return p.interval
}

// Generation identifies the current run. It changes on every Play, Stop
// and Clear.
func (p *Player) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Play starts the route from waypoint 0 and returns the first frame. Any
// earlier run is superseded. With fewer than two waypoints nothing changes
// and Play returns false.
func (p *Player) Play() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.route.StartAnimation() {
		return Frame{}, false
	}

	p.gen++
	frame, ok := p.anim.Start(p.route.Waypoints(), p.clock.Now())
	if !ok {
		p.route.StopAnimation()
		return Frame{}, false
	}
	return frame, true
}

// Stop ends the current run, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.anim.Reset()
	p.route.StopAnimation()
}

// Clear ends the current run and resets the route.
func (p *Player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.anim.Reset()
	p.route.ClearRoute()
}

// Live reports whether gen is still the current, running generation.
func (p *Player) Live(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen == p.gen && p.anim.Active()
}

// Tick advances the current run by one frame. It returns false when
// nothing is running.
func (p *Player) Tick() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tickLocked()
}

func (p *Player) tickGen(gen uint64) (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return Frame{}, false
	}
	return p.tickLocked()
}

func (p *Player) tickLocked() (Frame, bool) {
	if !p.anim.Active() {
		return Frame{}, false
	}
	// The model may have been stopped or cleared directly.
	if !p.route.IsAnimating() {
		p.anim.Reset()
		return Frame{}, false
	}

	frame, ok := p.anim.Advance(p.clock.Now(), p.route.Speed())
	if frame.Done {
		p.route.StopAnimation()
	}
	return frame, ok
}

// Run ticks the current run every FrameInterval, passing each frame to
// onFrame, until the route completes, the run is stopped or superseded, or
// ctx is done. Call Play first. Cancelling ctx also stops the run.
func (p *Player) Run(ctx context.Context, onFrame func(Frame)) error {
	gen := p.Generation()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			if gen == p.gen {
				p.gen++
				p.anim.Reset()
				p.route.StopAnimation()
			}
			p.mu.Unlock()
			return ctx.Err()

		case <-ticker.C:
			frame, ok := p.tickGen(gen)
			if !ok {
				return nil
			}
			if onFrame != nil {
				onFrame(frame)
			}
			if frame.Done {
				return nil
			}
		}
	}
}

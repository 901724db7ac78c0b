// Package loop implements the frame loop: per iteration it measures delta time,
// updates the simulation, requests presentation, drains platform events and
// releases per-frame scratch memory.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spritebox/internal/core"
)

// State is the loop lifecycle state.
type State int

const (
	StateRunning State = iota
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Platform is the window or terminal the loop runs in.
type Platform interface {
	// RequestRedraw signals that the buffer should be presented. Platforms may
	// present synchronously or later, but must call Loop.Render before blitting.
	RequestRedraw()

	// PollEvents returns pending events without blocking.
	PollEvents() []core.Event
}

// Simulation is advanced once per frame.
type Simulation interface {
	Update(dt float64, keys *core.KeyState)
}

// Drawable rasterizes itself into the buffer.
type Drawable interface {
	Draw(dst *core.Buffer)
}

// Stats summarizes a loop run.
type Stats struct {
	Frames  uint64
	Elapsed time.Duration // Sum of frame deltas
}

// FPS returns the average frame rate, or 0 before the first full second of data.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDrawables sets what Render draws, in order.
func WithDrawables(d ...Drawable) Option {
	return func(l *Loop) { l.drawables = d }
}

// Loop owns the pixel buffer, key state and frame arena, and drives the simulation.
// It is not safe for concurrent use; one goroutine runs it.
type Loop struct {
	cfg       core.RuntimeConfig
	buf       *core.Buffer
	keys      core.KeyState
	sim       Simulation
	drawables []Drawable
	platform  Platform
	clock     Clock
	arena     *Arena
	logger    *log.Logger

	state State
	last  time.Time
	stats Stats
}

// New creates a running loop. The platform may be attached later with Attach.
func New(cfg core.RuntimeConfig, sim Simulation, platform Platform, opts ...Option) *Loop {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = core.DefaultWidth, core.DefaultHeight
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	l := &Loop{
		cfg:      cfg,
		buf:      core.NewBuffer(cfg.Width, cfg.Height),
		sim:      sim,
		platform: platform,
		clock:    systemClock{},
		arena:    NewArena(cfg.Width * cfg.Height * 4),
		logger:   log.New(io.Discard),
		state:    StateRunning,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Attach sets the platform when it can only be built after the loop.
func (l *Loop) Attach(p Platform) {
	l.platform = p
}

// Step runs one frame iteration. It does nothing once the loop is stopped.
// The frame arena is reset on return, even if a collaborator panics.
func (l *Loop) Step() {
	if l.state != StateRunning {
		return
	}
	defer l.arena.Reset()

	// (a) Delta time, never negative. The first frame has dt = 0.
	now := l.clock.Now()
	var dt time.Duration
	if !l.last.IsZero() {
		dt = max(now.Sub(l.last), 0)
	}
	l.last = now

	// (b) Simulation
	if l.sim != nil {
		l.sim.Update(dt.Seconds(), &l.keys)
	}

	// (c) Presentation request, reflecting the state after (b)
	if l.platform != nil {
		l.platform.RequestRedraw()
	}

	// (d) Pending events
	if l.platform != nil {
		for _, ev := range l.platform.PollEvents() {
			if core.Dispatch(ev, &l.keys) {
				l.Stop()
			}
		}
	}

	l.stats.Frames++
	l.stats.Elapsed += dt
}

// Run steps the loop at the configured tick rate until it stops or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(l.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Debug("frame loop started", "tick_rate", l.cfg.TickRate, "size", l.cfg.Width*l.cfg.Height)
	for l.state == StateRunning {
		if err := ctx.Err(); err != nil {
			l.Stop()
			return err
		}
		l.Step()
		if l.state != StateRunning {
			break
		}
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Render clears the buffer and draws every drawable in order.
func (l *Loop) Render() *core.Buffer {
	l.buf.Clear()
	for _, d := range l.drawables {
		d.Draw(l.buf)
	}
	return l.buf
}

// Stop moves the loop to Stopped. There is no way back to Running.
func (l *Loop) Stop() {
	if l.state == StateStopped {
		return
	}
	l.state = StateStopped
	l.logger.Debug("frame loop stopped", "frames", l.stats.Frames, "fps", l.stats.FPS())
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Running reports whether the loop is still running.
func (l *Loop) Running() bool {
	return l.state == StateRunning
}

// Buffer returns the pixel buffer.
func (l *Loop) Buffer() *core.Buffer {
	return l.buf
}

// Keys returns the key state. Only Dispatch should mutate it.
func (l *Loop) Keys() *core.KeyState {
	return &l.keys
}

// Arena returns the frame scratch arena.
func (l *Loop) Arena() *Arena {
	return l.arena
}

// Config returns the runtime configuration.
func (l *Loop) Config() core.RuntimeConfig {
	return l.cfg
}

// Stats returns frame statistics so far.
func (l *Loop) Stats() Stats {
	return l.stats
}

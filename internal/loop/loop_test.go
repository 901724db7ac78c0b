package loop

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/spritebox/internal/core"
)

// fakeClock advances by a fixed step on every Now call after the first.
type fakeClock struct {
	now  time.Time
	step time.Duration
	n    int
}

func (c *fakeClock) Now() time.Time {
	if c.n > 0 {
		c.now = c.now.Add(c.step)
	}
	c.n++
	return c.now
}

// scriptedClock returns the given times in order.
type scriptedClock struct {
	times []time.Time
	i     int
}

func (c *scriptedClock) Now() time.Time {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

// fakePlatform records calls and serves queued events once.
type fakePlatform struct {
	calls   []string
	pending [][]core.Event
	onDraw  func()
}

func (p *fakePlatform) RequestRedraw() {
	p.calls = append(p.calls, "redraw")
	if p.onDraw != nil {
		p.onDraw()
	}
}

func (p *fakePlatform) PollEvents() []core.Event {
	p.calls = append(p.calls, "poll")
	if len(p.pending) == 0 {
		return nil
	}
	evs := p.pending[0]
	p.pending = p.pending[1:]
	return evs
}

// recordingSim records every dt and the keys it saw.
type recordingSim struct {
	dts      []float64
	right    []bool
	platform *fakePlatform
}

func (s *recordingSim) Update(dt float64, keys *core.KeyState) {
	s.dts = append(s.dts, dt)
	s.right = append(s.right, keys.Held(core.KeyRight))
	if s.platform != nil {
		s.platform.calls = append(s.platform.calls, "update")
	}
}

type rectDrawable struct{ r core.Rect }

func (d rectDrawable) Draw(dst *core.Buffer) { core.DrawRect(dst, d.r) }

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Width, cfg.Height = 32, 18
	return cfg
}

func TestStepOrder(t *testing.T) {
	p := &fakePlatform{}
	sim := &recordingSim{platform: p}
	l := New(testConfig(), sim, p, WithClock(&fakeClock{step: 16 * time.Millisecond}))

	l.Step()
	l.Step()

	want := []string{"update", "redraw", "poll", "update", "redraw", "poll"}
	if len(p.calls) != len(want) {
		t.Fatalf("calls = %v, expected %v", p.calls, want)
	}
	for i := range want {
		if p.calls[i] != want[i] {
			t.Errorf("call %d = %q, expected %q", i, p.calls[i], want[i])
		}
	}
}

func TestStepDeltaTime(t *testing.T) {
	base := time.Unix(1000, 0)
	clock := &scriptedClock{times: []time.Time{
		base,
		base.Add(20 * time.Millisecond),
		base.Add(10 * time.Millisecond), // Clock went backwards
		base.Add(60 * time.Millisecond),
	}}
	sim := &recordingSim{}
	l := New(testConfig(), sim, &fakePlatform{}, WithClock(clock))

	for i := 0; i < 4; i++ {
		l.Step()
	}

	want := []float64{0, 0.02, 0, 0.05}
	for i, dt := range sim.dts {
		if dt < 0 {
			t.Errorf("dt[%d] = %v is negative", i, dt)
		}
		if diff := dt - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("dt[%d] = %v, expected %v", i, dt, want[i])
		}
	}

	stats := l.Stats()
	if stats.Frames != 4 {
		t.Errorf("Frames = %d, expected 4", stats.Frames)
	}
	if stats.Elapsed != 70*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 70ms", stats.Elapsed)
	}
}

func TestEventsApplyNextFrame(t *testing.T) {
	p := &fakePlatform{pending: [][]core.Event{
		{core.KeyDownEvent(core.KeyRight)},
		nil,
		{core.KeyUpEvent(core.KeyRight)},
	}}
	sim := &recordingSim{}
	l := New(testConfig(), sim, p, WithClock(&fakeClock{step: time.Millisecond}))

	for i := 0; i < 4; i++ {
		l.Step()
	}

	// Events polled in frame N are seen by the update of frame N+1.
	want := []bool{false, true, true, false}
	for i := range want {
		if sim.right[i] != want[i] {
			t.Errorf("frame %d saw Right=%v, expected %v", i, sim.right[i], want[i])
		}
	}
}

func TestQuitStopsLoop(t *testing.T) {
	p := &fakePlatform{pending: [][]core.Event{
		{core.KeyDownEvent(core.KeyLeft), core.QuitEvent()},
	}}
	sim := &recordingSim{}
	l := New(testConfig(), sim, p, WithClock(&fakeClock{step: time.Millisecond}))

	if l.State() != StateRunning {
		t.Fatalf("new loop state = %v, expected Running", l.State())
	}

	l.Step()
	if l.State() != StateStopped || l.Running() {
		t.Fatalf("state after Quit = %v, expected Stopped", l.State())
	}

	// Stopped never transitions back; Step is a no-op.
	l.Step()
	l.Step()
	if len(sim.dts) != 1 {
		t.Errorf("simulation updated %d times, expected 1", len(sim.dts))
	}
	if l.State() != StateStopped {
		t.Errorf("state = %v, expected Stopped", l.State())
	}
}

func TestRenderClearsThenDraws(t *testing.T) {
	cfg := testConfig()
	l := New(cfg, nil, nil, WithDrawables(
		rectDrawable{core.NewRect(0, 0, 4, 4)},
		rectDrawable{core.NewRect(10, 10, 2, 2)},
	))

	// Stale pixels from a previous frame.
	l.Buffer().Set(31, 17, core.ColorForeground)

	buf := l.Render()
	if n := buf.Count(core.ColorForeground); n != 16+4 {
		t.Errorf("Render set %d pixels, expected 20", n)
	}
	if buf.At(31, 17) != core.ColorBackground {
		t.Error("Render should clear stale pixels")
	}
}

func TestRenderReflectsUpdatedState(t *testing.T) {
	// The drawable reads what the simulation wrote in the same frame.
	type movingRect struct{ x float64 }
	state := &movingRect{}

	p := &fakePlatform{}
	var drawnAt float64
	l := New(testConfig(), simFunc(func(dt float64, _ *core.KeyState) { state.x += 5 }), p,
		WithClock(&fakeClock{step: time.Millisecond}),
		WithDrawables(drawFunc(func(dst *core.Buffer) {
			drawnAt = state.x
			core.DrawRect(dst, core.NewRect(state.x, 0, 1, 1))
		})),
	)
	p.onDraw = func() { l.Render() }

	l.Step()
	if drawnAt != 5 {
		t.Errorf("frame drew state x=%v, expected 5", drawnAt)
	}
	if l.Buffer().At(5, 0) != core.ColorForeground {
		t.Error("pixel at x=5 should be set")
	}
}

type simFunc func(dt float64, keys *core.KeyState)

func (f simFunc) Update(dt float64, keys *core.KeyState) { f(dt, keys) }

type drawFunc func(dst *core.Buffer)

func (f drawFunc) Draw(dst *core.Buffer) { f(dst) }

func TestArenaReleasedEveryFrame(t *testing.T) {
	p := &fakePlatform{}
	var l *Loop
	p.onDraw = func() {
		s := l.Arena().Alloc(128)
		if len(s) != 128 {
			t.Errorf("Alloc(128) returned %d bytes", len(s))
		}
	}
	l = New(testConfig(), nil, p, WithClock(&fakeClock{step: time.Millisecond}))

	for i := 0; i < 3; i++ {
		l.Step()
		if used := l.Arena().InUse(); used != 0 {
			t.Errorf("frame %d left %d arena bytes in use", i, used)
		}
	}
	if l.Arena().Peak() != 128 {
		t.Errorf("Peak() = %d, expected 128", l.Arena().Peak())
	}
}

func TestArenaReleasedOnPanic(t *testing.T) {
	p := &fakePlatform{}
	var l *Loop
	p.onDraw = func() {
		l.Arena().Alloc(64)
		panic("presenter failed")
	}
	l = New(testConfig(), nil, p)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		l.Step()
	}()

	if used := l.Arena().InUse(); used != 0 {
		t.Errorf("arena holds %d bytes after a failed frame", used)
	}
}

func TestArenaGrowth(t *testing.T) {
	a := NewArena(8)

	first := a.Alloc(6)
	first[0] = 1
	second := a.Alloc(6) // Forces a new slab
	if len(second) != 6 || second[0] != 0 {
		t.Errorf("Alloc after growth = %v, expected 6 zero bytes", second)
	}
	if first[0] != 1 {
		t.Error("growth must not disturb earlier slices")
	}
	if a.Alloc(0) != nil {
		t.Error("Alloc(0) should return nil")
	}

	a.Reset()
	if a.InUse() != 0 {
		t.Errorf("InUse() = %d after Reset", a.InUse())
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	p := &fakePlatform{pending: [][]core.Event{nil, nil, {core.QuitEvent()}}}
	cfg := testConfig()
	cfg.TickRate = 1000
	l := New(cfg, &recordingSim{}, p)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, expected nil", err)
	}
	if l.Stats().Frames != 3 {
		t.Errorf("Frames = %d, expected 3", l.Stats().Frames)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 1000
	l := New(cfg, &recordingSim{}, &fakePlatform{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx); err != context.Canceled {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if l.State() != StateStopped {
		t.Errorf("state = %v, expected Stopped", l.State())
	}
}

func TestNewDefaults(t *testing.T) {
	l := New(core.RuntimeConfig{}, nil, nil)
	if l.Buffer().Width() != core.DefaultWidth || l.Buffer().Height() != core.DefaultHeight {
		t.Errorf("buffer = %dx%d, expected default size", l.Buffer().Width(), l.Buffer().Height())
	}
	if l.Config().TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", l.Config().TickRate)
	}
	l.Step() // nil simulation and platform must not panic
}

func TestStatsFPS(t *testing.T) {
	s := Stats{Frames: 120, Elapsed: 2 * time.Second}
	if s.FPS() != 60 {
		t.Errorf("FPS() = %v, expected 60", s.FPS())
	}
	if (Stats{}).FPS() != 0 {
		t.Error("FPS() of empty stats should be 0")
	}
}

package tui

import (
	"time"

	"github.com/vovakirdan/spritebox/internal/core"
)

// pump is the loop.Platform of the terminal backend. Bubble Tea delivers key
// messages between ticks; the pump queues them as events until the next Step
// polls. Terminals report presses and repeats but no releases, so a key counts
// as released once hold has passed without another press. hold has to outlast
// the terminal's auto-repeat delay; once repeats arrive the window shrinks to
// repeatHold so letting go stops the walk promptly.
type pump struct {
	hold   time.Duration
	queue  []core.Event
	down   [core.KeyDown + 1]time.Time // last press per key, zero when released
	repeat [core.KeyDown + 1]bool      // auto-repeat seen since the press
	redraw bool
}

// repeatHold is the release window once a key is auto-repeating.
const repeatHold = 150 * time.Millisecond

func newPump(hold time.Duration) *pump {
	if hold <= 0 {
		hold = core.DefaultKeyHold
	}
	return &pump{hold: hold}
}

// RequestRedraw marks the frame dirty; View renders on the next call.
func (p *pump) RequestRedraw() {
	p.redraw = true
}

// PollEvents drains the queue without blocking.
func (p *pump) PollEvents() []core.Event {
	events := p.queue
	p.queue = nil
	return events
}

// press records a press or auto-repeat of key at now.
func (p *pump) press(key core.Key, now time.Time) {
	if key <= core.KeyNone || int(key) >= len(p.down) {
		return
	}
	if p.down[key].IsZero() {
		p.queue = append(p.queue, core.KeyDownEvent(key))
		p.repeat[key] = false
	} else {
		p.repeat[key] = true
	}
	p.down[key] = now
}

// quit queues a Quit event.
func (p *pump) quit() {
	p.queue = append(p.queue, core.QuitEvent())
}

// expire queues KeyUp for every key whose hold window has passed.
func (p *pump) expire(now time.Time) {
	for _, key := range core.Keys {
		last := p.down[key]
		window := p.hold
		if p.repeat[key] {
			window = min(p.hold, repeatHold)
		}
		if last.IsZero() || now.Sub(last) < window {
			continue
		}
		p.down[key] = time.Time{}
		p.repeat[key] = false
		p.queue = append(p.queue, core.KeyUpEvent(key))
	}
}

// takeRedraw reports and clears the redraw flag.
func (p *pump) takeRedraw() bool {
	r := p.redraw
	p.redraw = false
	return r
}

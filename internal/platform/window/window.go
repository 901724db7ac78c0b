//go:build sdl

package window

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/loop"
	"github.com/vovakirdan/spritebox/internal/sim"
)

// SDL calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

// Options configures a window run.
type Options struct {
	Runtime core.RuntimeConfig
	Scale   int // Initial window size in multiples of the buffer
	Title   string
	Player  *sim.Player
	Blocks  []core.Rect
	Logger  *log.Logger
}

// Platform is the SDL presenter and event source of a loop.
type Platform struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	loop     *loop.Loop
	palette  core.Palette
	width    int
	height   int
	logger   *log.Logger
}

// New opens a window sized scale times the buffer. The renderer keeps the
// buffer's aspect ratio and stretches with nearest-neighbor sampling.
func New(cfg core.RuntimeConfig, title string, scale int, logger *log.Logger) (*Platform, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if scale <= 0 {
		scale = 1
	}
	w, h := int32(cfg.Width), int32(cfg.Height)

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("window: cannot init SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		w*int32(scale), h*int32(scale), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("window: cannot create window: %w", err)
	}

	p := &Platform{
		window:  window,
		palette: cfg.Palette,
		width:   cfg.Width,
		height:  cfg.Height,
		logger:  logger,
	}

	p.renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("window: cannot create renderer: %w", err)
	}

	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0") // nearest neighbor
	if err := p.renderer.SetLogicalSize(w, h); err != nil {
		p.Close()
		return nil, fmt.Errorf("window: cannot set logical size: %w", err)
	}

	p.texture, err = p.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("window: cannot create texture: %w", err)
	}

	return p, nil
}

// Bind attaches the platform to a loop; redraws render that loop's scene.
func (p *Platform) Bind(l *loop.Loop) {
	p.loop = l
	l.Attach(p)
}

// RequestRedraw renders the scene, expands it into the frame arena and presents it.
func (p *Platform) RequestRedraw() {
	if p.loop == nil {
		return
	}
	buf := p.loop.Render()
	pix := p.loop.Arena().Alloc(buf.Len() * BytesPerPixel)
	Expand(pix, buf, p.palette)

	if err := p.texture.Update(nil, unsafe.Pointer(&pix[0]), buf.Width()*BytesPerPixel); err != nil {
		p.logger.Error("texture update failed", "error", err)
		return
	}
	p.renderer.SetDrawColor(0, 0, 0, 255)
	p.renderer.Clear()
	p.renderer.Copy(p.texture, nil, nil)
	p.renderer.Present()
}

// PollEvents drains SDL's queue without blocking.
func (p *Platform) PollEvents() []core.Event {
	var events []core.Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, core.QuitEvent())

		case *sdl.KeyboardEvent:
			if t.Repeat != 0 {
				continue
			}
			pressed := t.Type == sdl.KEYDOWN
			if t.Keysym.Sym == sdl.K_ESCAPE {
				if pressed {
					events = append(events, core.QuitEvent())
				}
				continue
			}
			key := mapKey(t.Keysym.Sym)
			if key == core.KeyNone {
				continue
			}
			if pressed {
				events = append(events, core.KeyDownEvent(key))
			} else {
				events = append(events, core.KeyUpEvent(key))
			}
		}
	}
	return events
}

// mapKey translates arrows and WASD.
func mapKey(sym sdl.Keycode) core.Key {
	switch sym {
	case sdl.K_LEFT, sdl.K_a:
		return core.KeyLeft
	case sdl.K_RIGHT, sdl.K_d:
		return core.KeyRight
	case sdl.K_UP, sdl.K_w:
		return core.KeyUp
	case sdl.K_DOWN, sdl.K_s:
		return core.KeyDown
	}
	return core.KeyNone
}

// Close destroys SDL resources in reverse order.
func (p *Platform) Close() {
	if p.texture != nil {
		p.texture.Destroy()
		p.texture = nil
	}
	if p.renderer != nil {
		p.renderer.Destroy()
		p.renderer = nil
	}
	if p.window != nil {
		p.window.Destroy()
		p.window = nil
	}
	sdl.Quit()
}

// Run plays in a window until it is closed or ctx is done.
// The player is closed on return.
func Run(ctx context.Context, opts Options) (loop.Stats, error) {
	defer opts.Player.Close()

	title := opts.Title
	if title == "" {
		title = "spritebox"
	}
	p, err := New(opts.Runtime, title, opts.Scale, opts.Logger)
	if err != nil {
		return loop.Stats{}, err
	}
	defer p.Close()

	l := loop.New(opts.Runtime, opts.Player, nil,
		loop.WithLogger(p.logger),
		loop.WithDrawables(sim.Drawables(opts.Blocks, opts.Player)...),
	)
	p.Bind(l)

	err = l.Run(ctx)
	return l.Stats(), err
}

package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/loop"
	"github.com/vovakirdan/spritebox/internal/sim"
	"github.com/vovakirdan/spritebox/internal/storage"
)

// Default terminal size used until the first WindowSizeMsg arrives.
const (
	defaultCols = 80
	defaultRows = 24
)

// Options configures a play model.
type Options struct {
	Runtime  core.RuntimeConfig
	Player   *sim.Player
	Blocks   []core.Rect
	Store    *storage.Store // Optional; nil disables sessions and snapshots
	Backend  string
	User     string
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // Optional; SSH sessions pass their own
	Clock    loop.Clock         // Optional; defaults to wall time
}

// viewCache holds the last rendered frame between redraw requests.
type viewCache struct {
	frame      string
	cols, rows int
}

// Model is the Bubble Tea model that runs the frame loop in a terminal.
// Bubble Tea owns the event pump: key messages are queued on the pump and each
// TickMsg steps the loop, which polls them.
type Model struct {
	loop      *loop.Loop
	player    *sim.Player
	pump      *pump
	presenter *Presenter
	cache     *viewCache
	record    *sessionRecord
	clock     loop.Clock
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	status    string
	width     int
	height    int
	quitting  bool
}

// NewModel creates a play model. It starts a storage session when a store is given.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = wallClock{}
	}

	p := newPump(opts.Runtime.KeyHold)
	l := loop.New(opts.Runtime, opts.Player, p,
		loop.WithClock(clock),
		loop.WithLogger(logger),
		loop.WithDrawables(sim.Drawables(opts.Blocks, opts.Player)...),
	)

	h := help.New()
	h.ShowAll = false

	return Model{
		loop:      l,
		player:    opts.Player,
		pump:      p,
		presenter: NewPresenter(opts.Runtime.Palette, opts.Renderer),
		cache:     &viewCache{},
		record:    startRecord(opts.Store, opts.Backend, opts.User, logger),
		clock:     clock,
		keys:      DefaultKeyMap(),
		help:      h,
		logger:    logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.loop.Config().TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.pump.RequestRedraw()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pump.quit()
		return m, nil

	case key.Matches(msg, m.keys.Snapshot):
		m.status = m.snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if k, ok := m.keys.Direction(msg); ok {
		m.pump.press(k, m.clock.Now())
	}
	return m, nil
}

// handleTick releases expired keys and steps the loop.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.pump.expire(m.clock.Now())
	m.loop.Step()
	m.record.update(m.loop.Stats(), m.player.Position())

	if !m.loop.Running() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.loop.Config().TickRate)
}

// snapshot stores the current frame and returns a status line.
func (m Model) snapshot() string {
	if !m.record.active() {
		return "snapshots need a session database"
	}
	buf := m.loop.Render()
	id, err := m.record.store.SaveSnapshot(m.record.id, m.loop.Stats().Frames,
		buf.Width(), buf.Height(), buf.Pixels())
	if err != nil {
		m.logger.Error("snapshot failed", "error", err)
		return "snapshot failed"
	}
	m.logger.Info("snapshot saved", "id", id, "session", m.record.id)
	return fmt.Sprintf("snapshot %d saved", id)
}

// View renders the current frame with a status line and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cols, rows := m.width, m.height
	if cols <= 0 || rows <= 0 {
		cols, rows = defaultCols, defaultRows
	}
	helpView := m.help.View(m.keys)
	rows = max(rows-1-lipgloss.Height(helpView), 1) // status line + help

	if m.pump.takeRedraw() || m.cache.cols != cols || m.cache.rows != rows {
		frame := m.presenter.Render(m.loop.Render(), cols, rows)
		m.cache.frame = lipgloss.PlaceHorizontal(cols, lipgloss.Center, frame)
		m.cache.cols, m.cache.rows = cols, rows
	}

	var b strings.Builder
	b.WriteString(m.cache.frame)
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pos := m.player.Position()
	status := fmt.Sprintf("x %.1f  y %.1f  frame %d", pos.X, pos.Y, m.player.Frame())
	if m.status != "" {
		status += "  " + m.status
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(helpView))

	return b.String()
}

// Stats returns frame statistics of the model's loop.
func (m Model) Stats() loop.Stats {
	return m.loop.Stats()
}

// Loop returns the model's frame loop.
func (m Model) Loop() *loop.Loop {
	return m.loop
}

// Close ends the storage session and releases the player texture.
func (m Model) Close() {
	m.record.finish()
	m.player.Close()
}

// Run plays in the local terminal until the user quits or ctx is done.
// The player is closed on return.
func Run(ctx context.Context, opts Options) (loop.Stats, error) {
	if opts.Backend == "" {
		opts.Backend = "tui"
	}
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return model.Stats(), err
}

// wallClock reads the system time.
type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

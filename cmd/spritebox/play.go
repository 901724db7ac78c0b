package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/registry"
	"github.com/vovakirdan/spritebox/internal/sim"
	"github.com/vovakirdan/spritebox/internal/storage"

	// Import backends to register them
	_ "github.com/vovakirdan/spritebox/internal/platform/tui"
	_ "github.com/vovakirdan/spritebox/internal/platform/window"
)

var (
	flagBackend string
	flagSprite  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Walk the sprite",
	Long: `Start the frame loop with the player sprite.

Controls:
  Arrows/WASD  - Walk
  Ctrl+S       - Store a snapshot of the buffer (terminal only)
  Q/Esc        - Quit

The sprite sheet holds the walk frames side by side. A pixel is drawn when its
alpha is above the configured threshold. Without --sprite a built-in sheet is used.

Examples:
  spritebox play
  spritebox play --sprite ./hero.png
  spritebox play --backend sdl --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Presenter (see 'spritebox backends')")
	playCmd.Flags().StringVar(&flagSprite, "sprite", "", "Sprite sheet image (overrides config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	backend, err := registry.Lookup(flagBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", flagBackend)
		fmt.Fprintln(os.Stderr, "Run 'spritebox backends' to see available backends.")
		os.Exit(1)
	}

	s := mustSettings(backend.OwnsTerminal)
	defer s.Close()

	if flagSprite != "" {
		s.cfg.Player.Sprite = flagSprite
	}
	rt := s.cfg.Runtime()

	// Load failures are fatal before the loop starts
	player, err := sim.LoadPlayer(rt.Player)
	if err != nil {
		if errors.Is(err, core.ErrLoadFailure) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error loading sprite: %v\n", err)
		}
		os.Exit(1)
	}

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		s.logger.Warn("could not open session database", "error", err)
		// Continue without storage
		store = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	stats, runErr := backend.Run(ctx, registry.Request{
		Runtime:     rt,
		Player:      player,
		Blocks:      s.cfg.Blocks(),
		Store:       store,
		WindowScale: s.cfg.Display.WindowScale,
		Logger:      s.logger,
	})
	stop()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running %s backend: %v\n", backend.Name, runErr)
		os.Exit(1)
	}
	s.logger.Info("play finished", "backend", backend.Name,
		"frames", stats.Frames, "fps", fmt.Sprintf("%.1f", stats.FPS()))
}

package tui

import (
	"context"

	"github.com/vovakirdan/spritebox/internal/loop"
	"github.com/vovakirdan/spritebox/internal/registry"
)

func init() {
	registry.Register(registry.Backend{
		Name:         "tui",
		Title:        "Terminal, two pixels per half-block cell",
		OwnsTerminal: true,
		Run:          runBackend,
	})
}

func runBackend(ctx context.Context, req registry.Request) (loop.Stats, error) {
	return Run(ctx, Options{
		Runtime: req.Runtime,
		Player:  req.Player,
		Blocks:  req.Blocks,
		Store:   req.Store,
		Backend: "tui",
		Logger:  req.Logger,
	})
}

//go:build sdl

package window

import (
	"context"

	"github.com/vovakirdan/spritebox/internal/loop"
	"github.com/vovakirdan/spritebox/internal/registry"
	"github.com/vovakirdan/spritebox/internal/storage"
)

func init() {
	registry.Register(registry.Backend{
		Name:  "sdl",
		Title: "SDL2 window, nearest-neighbor scaled",
		Run:   runBackend,
	})
}

// runBackend plays in a window and records the session.
// The window has no snapshot key, so only start and end are stored.
func runBackend(ctx context.Context, req registry.Request) (loop.Stats, error) {
	var sess storage.Session
	if req.Store != nil {
		var err error
		if sess, err = req.Store.StartSession("sdl", ""); err != nil && req.Logger != nil {
			req.Logger.Warn("could not start session record", "error", err)
		}
	}

	player := req.Player
	stats, err := Run(ctx, Options{
		Runtime: req.Runtime,
		Scale:   req.WindowScale,
		Player:  player,
		Blocks:  req.Blocks,
		Logger:  req.Logger,
	})

	if sess.ID != "" {
		pos := player.Position()
		if endErr := req.Store.EndSession(sess.ID, stats.Frames, stats.Elapsed, pos.X, pos.Y); endErr != nil && req.Logger != nil {
			req.Logger.Warn("could not end session record", "error", endErr)
		}
	}
	return stats, err
}

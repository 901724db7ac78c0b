package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/loop"
	"github.com/vovakirdan/spritebox/internal/storage"
)

// sessionRecord tracks the storage session of one play model.
// A nil store makes every method a no-op.
type sessionRecord struct {
	store  *storage.Store
	id     string
	logger *log.Logger

	frames  uint64
	elapsed time.Duration
	pos     core.Vec2
	done    bool
}

// startRecord opens a storage session. Storage errors are logged and play
// continues without persistence.
func startRecord(store *storage.Store, backend, user string, logger *log.Logger) *sessionRecord {
	r := &sessionRecord{logger: logger}
	if store == nil {
		return r
	}
	sess, err := store.StartSession(backend, user)
	if err != nil {
		logger.Warn("could not start session record", "error", err)
		return r
	}
	r.store = store
	r.id = sess.ID
	logger.Debug("session started", "id", sess.ID, "backend", backend)
	return r
}

func (r *sessionRecord) active() bool {
	return r.store != nil && r.id != ""
}

// update remembers the latest statistics for finish.
func (r *sessionRecord) update(stats loop.Stats, pos core.Vec2) {
	r.frames = stats.Frames
	r.elapsed = stats.Elapsed
	r.pos = pos
}

// finish stores the final statistics once.
func (r *sessionRecord) finish() {
	if r.done || !r.active() {
		return
	}
	r.done = true
	if err := r.store.EndSession(r.id, r.frames, r.elapsed, r.pos.X, r.pos.Y); err != nil {
		r.logger.Warn("could not end session record", "error", err)
		return
	}
	r.logger.Debug("session ended", "id", r.id, "frames", r.frames)
}

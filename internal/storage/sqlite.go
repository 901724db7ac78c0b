// Package storage provides SQLite-based persistence for play sessions and
// pixel buffer snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Session is one run of the frame loop.
type Session struct {
	ID        string
	Backend   string // "tui", "sdl" or "ssh"
	User      string // SSH user, empty for local play
	StartedAt time.Time
	EndedAt   time.Time // Zero while the session is open
	Frames    uint64
	Elapsed   time.Duration
	FinalX    float64
	FinalY    float64
}

// FPS returns the average frame rate of a finished session.
func (s Session) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Snapshot is a stored copy of a pixel buffer.
type Snapshot struct {
	ID        int64
	SessionID string
	Frame     uint64
	Width     int
	Height    int
	Pixels    []byte // Row-major color indices
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are Unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			backend TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			final_x REAL NOT NULL DEFAULT 0,
			final_y REAL NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			pixels BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_session ON snapshots(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records the start of a session and returns it with a fresh ID.
func (s *Store) StartSession(backend, user string) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Backend:   backend,
		User:      user,
		StartedAt: s.now(),
	}

	_, err := s.db.Exec(
		"INSERT INTO sessions (id, backend, user, started_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.Backend, sess.User, sess.StartedAt.UnixMilli(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot start session: %w", err)
	}
	return sess, nil
}

// EndSession stores the final statistics of a session.
func (s *Store) EndSession(id string, frames uint64, elapsed time.Duration, finalX, finalY float64) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET ended_at = ?, frames = ?, elapsed_ms = ?, final_x = ?, final_y = ?
		 WHERE id = ?`,
		s.now().UnixMilli(), int64(frames), elapsed.Milliseconds(), finalX, finalY, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: session %s: %w", id, ErrNotFound)
	}
	return nil
}

// RecentSessions retrieves the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, backend, user, started_at, ended_at, frames, elapsed_ms, final_x, final_y
		 FROM sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess               Session
			started, ended, ms int64
			frames             int64
		)
		if err := rows.Scan(&sess.ID, &sess.Backend, &sess.User, &started, &ended,
			&frames, &ms, &sess.FinalX, &sess.FinalY); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = time.UnixMilli(started)
		if ended != 0 {
			sess.EndedAt = time.UnixMilli(ended)
		}
		sess.Frames = uint64(frames)
		sess.Elapsed = time.Duration(ms) * time.Millisecond
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SaveSnapshot stores a copy of a buffer's pixels.
// Returns the ID of the inserted record.
func (s *Store) SaveSnapshot(sessionID string, frame uint64, width, height int, pixels []byte) (int64, error) {
	if len(pixels) != width*height {
		return 0, fmt.Errorf("storage: snapshot has %d pixels, expected %dx%d", len(pixels), width, height)
	}

	result, err := s.db.Exec(
		`INSERT INTO snapshots (session_id, frame, width, height, pixels, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, int64(frame), width, height, pixels, s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Snapshot retrieves a stored snapshot by ID.
func (s *Store) Snapshot(id int64) (Snapshot, error) {
	var (
		snap    Snapshot
		frame   int64
		created int64
	)
	err := s.db.QueryRow(
		`SELECT id, session_id, frame, width, height, pixels, created_at
		 FROM snapshots WHERE id = ?`,
		id,
	).Scan(&snap.ID, &snap.SessionID, &frame, &snap.Width, &snap.Height, &snap.Pixels, &created)

	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("storage: snapshot %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	snap.Frame = uint64(frame)
	snap.CreatedAt = time.UnixMilli(created)
	return snap, nil
}

// SnapshotCount returns how many snapshots a session has.
func (s *Store) SnapshotCount(sessionID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM snapshots WHERE session_id = ?",
		sessionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count snapshots: %w", err)
	}
	return n, nil
}

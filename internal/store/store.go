// Package store persists measurement history in a SQLite database under the
// netpulse data directory.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/netpulse-dev/netpulse/internal/history"
)

// ErrLocked means another netpulse process holds the store open for writing.
var ErrLocked = errors.New("store is locked by another netpulse process")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	session_id    TEXT NOT NULL REFERENCES sessions(id),
	taken_at      INTEGER NOT NULL,
	download_mbps REAL NOT NULL,
	upload_mbps   REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_session ON samples(session_id, taken_at);
`

// Store wraps the sample database. Writers additionally hold a file lock so
// only one process appends at a time.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

// Open opens (creating if needed) the store in dir for writing. It fails with
// ErrLocked when another process holds the write lock.
func Open(dir string) (*Store, error) {
	lock := flock.New(filepath.Join(dir, "netpulse.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	s, err := open(dir)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	s.lock = lock
	return s, nil
}

// OpenReadOnly opens the store without taking the write lock, for commands
// that only read history.
func OpenReadOnly(dir string) (*Store, error) {
	return open(dir)
}

func open(dir string) (*Store, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, "netpulse.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database and the write lock if held.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.lock != nil {
		if uerr := s.lock.Unlock(); err == nil {
			err = uerr
		}
	}
	return err
}

// BeginSession records the start of a monitoring session.
func (s *Store) BeginSession(id string, startedAt time.Time) error {
	_, err := s.db.Exec(`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		id, startedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// AppendSample persists one accepted sample.
func (s *Store) AppendSample(sessionID string, smp history.Sample) error {
	_, err := s.db.Exec(
		`INSERT INTO samples (session_id, taken_at, download_mbps, upload_mbps) VALUES (?, ?, ?, ?)`,
		sessionID, smp.Timestamp.UnixMilli(), smp.DownloadMbps, smp.UploadMbps)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// SessionSummary is one row of `netpulse history`.
type SessionSummary struct {
	ID          string
	StartedAt   time.Time
	Samples     int
	AvgDownload float64
	AvgUpload   float64
}

// Sessions returns the most recent sessions, newest first.
func (s *Store) Sessions(limit int) ([]SessionSummary, error) {
	rows, err := s.db.Query(`
		SELECT se.id, se.started_at,
		       COUNT(sa.taken_at),
		       COALESCE(AVG(sa.download_mbps), 0),
		       COALESCE(AVG(sa.upload_mbps), 0)
		FROM sessions se
		LEFT JOIN samples sa ON sa.session_id = se.id
		GROUP BY se.id
		ORDER BY se.started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var startedAt int64
		if err := rows.Scan(&sum.ID, &startedAt, &sum.Samples, &sum.AvgDownload, &sum.AvgUpload); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.StartedAt = time.UnixMilli(startedAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// LatestSessionID returns the ID of the most recently started session, or an
// empty string when the store is empty.
func (s *Store) LatestSessionID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM sessions ORDER BY started_at DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest session: %w", err)
	}
	return id, nil
}

// ResolveSession expands a session ID prefix (as printed by the history
// command) to the full ID. Ambiguous or unknown prefixes are errors.
func (s *Store) ResolveSession(prefix string) (string, error) {
	rows, err := s.db.Query(`SELECT id FROM sessions WHERE id LIKE ? || '%' LIMIT 2`, prefix)
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("no session matches %q", prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("session prefix %q is ambiguous", prefix)
	}
}

// SessionSamples returns a session's samples oldest-first.
func (s *Store) SessionSamples(sessionID string) ([]history.Sample, error) {
	rows, err := s.db.Query(
		`SELECT taken_at, download_mbps, upload_mbps FROM samples WHERE session_id = ? ORDER BY taken_at ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []history.Sample
	for rows.Next() {
		var takenAt int64
		var smp history.Sample
		if err := rows.Scan(&takenAt, &smp.DownloadMbps, &smp.UploadMbps); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		smp.Timestamp = time.UnixMilli(takenAt)
		out = append(out, smp)
	}
	return out, rows.Err()
}

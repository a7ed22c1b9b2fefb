// Package stores provides SQLite-backed persistence for UI preferences.
package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/dubcal/internal/data/db"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// DocPrefs holds the remembered view state for one document.
type DocPrefs struct {
	Path       string
	Zoom       float64
	ScrollMs   int
	SelectedID string
}

// RecentDoc is one entry of the recent-documents list.
type RecentDoc struct {
	Path     string
	OpenedAt time.Time
}

// PrefsStore persists per-document view preferences and recent documents.
type PrefsStore struct {
	db *db.DB
}

// NewPrefsStore creates a SQLite-backed preferences store.
func NewPrefsStore(database *db.DB) *PrefsStore {
	return &PrefsStore{db: database}
}

// GetDocPrefs returns the saved preferences for a document path.
// Returns ErrNotFound when the document has not been opened before.
func (s *PrefsStore) GetDocPrefs(ctx context.Context, path string) (DocPrefs, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT path, zoom, scroll_ms, selected_id FROM doc_prefs WHERE path = ?`, path)

	var p DocPrefs
	if err := row.Scan(&p.Path, &p.Zoom, &p.ScrollMs, &p.SelectedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DocPrefs{}, ErrNotFound
		}
		return DocPrefs{}, fmt.Errorf("get doc prefs %q: %w", path, err)
	}
	return p, nil
}

// SaveDocPrefs upserts the preferences for a document path.
func (s *PrefsStore) SaveDocPrefs(ctx context.Context, p DocPrefs) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO doc_prefs (path, zoom, scroll_ms, selected_id, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   zoom = excluded.zoom,
		   scroll_ms = excluded.scroll_ms,
		   selected_id = excluded.selected_id,
		   updated_at = excluded.updated_at`,
		p.Path, p.Zoom, p.ScrollMs, p.SelectedID, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("save doc prefs %q: %w", p.Path, err)
	}
	return nil
}

// TouchRecent records that a document was opened now.
func (s *PrefsStore) TouchRecent(ctx context.Context, path string) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO recent_documents (path, opened_at) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at`,
		path, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("touch recent %q: %w", path, err)
	}
	return nil
}

// ListRecent returns up to limit recently opened documents, newest first.
func (s *PrefsStore) ListRecent(ctx context.Context, limit int) ([]RecentDoc, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT path, opened_at FROM recent_documents ORDER BY opened_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []RecentDoc
	for rows.Next() {
		var r RecentDoc
		var ns int64
		if err := rows.Scan(&r.Path, &ns); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		r.OpenedAt = time.Unix(0, ns)
		out = append(out, r)
	}
	return out, rows.Err()
}

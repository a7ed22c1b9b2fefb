// Package jsonfile persists calibration documents as JSON files.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/colonyops/dubcal/internal/core/document"
	"github.com/colonyops/dubcal/internal/core/validate"
)

// DocumentStore implements editor.DocumentStore using one JSON file per
// document. Saves are all-or-nothing: the file is replaced atomically via a
// temp file and rename, or not at all.
type DocumentStore struct {
	path string
	mu   sync.Mutex
}

// NewDocumentStore creates a store bound to the given file path.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Path returns the backing file path.
func (s *DocumentStore) Path() string { return s.path }

// Load reads and parses the document, refusing documents that are not
// well-formed enough to edit (duplicate ids, invalid bounds). A broken
// document must be repaired externally before a session binds edits to it.
func (s *DocumentStore) Load(_ context.Context) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return document.Document{}, fmt.Errorf("read document: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return document.Document{}, err
	}
	if err := validate.Document(doc); err != nil {
		return document.Document{}, fmt.Errorf("invalid document %s: %w", s.path, err)
	}
	return doc, nil
}

// Save bumps the revision, re-detects overlaps, refreshes the fingerprint,
// and writes the document atomically. Returns the document as persisted.
func (s *DocumentStore) Save(_ context.Context, doc document.Document) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.BumpRev(time.Now())
	doc.DetectOverlaps()
	doc.UpdateFingerprint()

	data, err := doc.Marshal()
	if err != nil {
		return document.Document{}, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return document.Document{}, fmt.Errorf("create document dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return document.Document{}, fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return document.Document{}, fmt.Errorf("replace document: %w", err)
	}

	return doc, nil
}

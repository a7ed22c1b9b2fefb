package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dubcal/internal/core/document"
	"github.com/colonyops/dubcal/internal/core/segment"
)

func TestDocumentStore_Save_then_Load_round_trips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ep01.json")
	store := NewDocumentStore(path)

	doc := document.New()
	doc.Segments = []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1000, Text: "hola", Speaker: "0", Emotion: "neutral", Type: "speech"},
	}

	saved, err := store.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.History.Rev)
	assert.NotEmpty(t, saved.Fingerprint.Value)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestDocumentStore_Save_creates_parent_dirs_and_leaves_no_temp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ep01.json")
	store := NewDocumentStore(path)

	_, err := store.Save(context.Background(), document.New())
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDocumentStore_Save_marks_overlaps(t *testing.T) {
	store := NewDocumentStore(filepath.Join(t.TempDir(), "ep01.json"))

	doc := document.New()
	doc.Segments = []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1500},
		{ID: "seg_b", StartMs: 1000, EndMs: 2000},
	}

	saved, err := store.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, saved.Segments[0].Flags.Overlap)
	assert.True(t, saved.Segments[1].Flags.Overlap)
}

func TestDocumentStore_Load_refuses_ill_formed_document(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"segments": [
			{"id": "seg_a", "start_ms": 0, "end_ms": 1000},
			{"id": "seg_a", "start_ms": 1000, "end_ms": 1050}
		]
	}`), 0o644))
	store := NewDocumentStore(path)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document")
	assert.Contains(t, err.Error(), `duplicate id "seg_a"`)
}

func TestDocumentStore_Load_missing_file(t *testing.T) {
	store := NewDocumentStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read document")
}

package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const validDoc = `{
	"schema": "asr.model.v2",
	"media": {"duration_ms": 5000},
	"segments": [
		{"id": "seg_a", "start_ms": 0, "end_ms": 1000, "text": "hola"}
	],
	"history": {"rev": 3}
}`

func TestDiscover_matches_pattern_recursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "s01", "ep01.json"), validDoc)
	writeFile(t, filepath.Join(root, "s01", "ep02.json"), validDoc)
	writeFile(t, filepath.Join(root, "notes.txt"), "not a document")

	entries, err := Discover([]string{root}, "**/*.json")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, filepath.Join(root, "s01", "ep01.json"), entries[0].Path)
	assert.Equal(t, 3, entries[0].Rev)
	assert.Equal(t, 1, entries[0].Segments)
	assert.Equal(t, 5000, entries[0].DurationMs)
}

func TestDiscover_skips_unparseable_files(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.json"), validDoc)
	writeFile(t, filepath.Join(root, "bad.json"), "{ not json")

	entries, err := Discover([]string{root}, "**/*.json")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(root, "good.json"), entries[0].Path)
}

func TestDiscover_merges_multiple_roots_sorted(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(a, "one.json"), validDoc)
	writeFile(t, filepath.Join(b, "two.json"), validDoc)

	entries, err := Discover([]string{b, a}, "**/*.json")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Path < entries[1].Path)
}

func TestDescribe_reports_segment_end_past_media_duration(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "long.json")
	writeFile(t, path, `{
		"media": {"duration_ms": 1000},
		"segments": [{"id": "seg_a", "start_ms": 0, "end_ms": 9000}]
	}`)

	entry, err := Describe(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, entry.DurationMs)
}

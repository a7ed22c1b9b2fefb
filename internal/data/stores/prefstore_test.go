package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dubcal/internal/core/config"
	"github.com/colonyops/dubcal/internal/data/db"
)

func newTestStore(t *testing.T) *PrefsStore {
	t.Helper()
	cfg := config.Config{DataDir: t.TempDir()}
	database, err := db.Open(cfg.DatabasePath())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewPrefsStore(database)
}

func TestPrefsStore_GetDocPrefs_not_found(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocPrefs(context.Background(), "/docs/ep01.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrefsStore_SaveDocPrefs_upserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := DocPrefs{Path: "/docs/ep01.json", Zoom: 40, ScrollMs: 1200, SelectedID: "seg_a"}
	require.NoError(t, store.SaveDocPrefs(ctx, p))

	got, err := store.GetDocPrefs(ctx, p.Path)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	p.Zoom = 120
	p.SelectedID = ""
	require.NoError(t, store.SaveDocPrefs(ctx, p))

	got, err = store.GetDocPrefs(ctx, p.Path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Zoom)
	assert.Equal(t, "", got.SelectedID)
}

func TestPrefsStore_recent_documents_newest_first(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.TouchRecent(ctx, "/docs/ep01.json"))
	require.NoError(t, store.TouchRecent(ctx, "/docs/ep02.json"))
	require.NoError(t, store.TouchRecent(ctx, "/docs/ep01.json"))

	recent, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "/docs/ep01.json", recent[0].Path)
	assert.Equal(t, "/docs/ep02.json", recent[1].Path)

	limited, err := store.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dubcal/internal/core/segment"
)

func testSegments() []segment.Segment {
	return []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1000, Text: "a"},
		{ID: "seg_b", StartMs: 1000, EndMs: 2000, Text: "b"},
	}
}

func TestStore_Load_clears_dirty(t *testing.T) {
	st := New()
	st.ReplaceAll(testSegments())
	require.True(t, st.Dirty())

	st.Load(testSegments())
	assert.False(t, st.Dirty())
	assert.Equal(t, 2, st.Len())
}

func TestStore_ReplaceAll_marks_dirty(t *testing.T) {
	st := New()
	st.Load(testSegments())

	st.ReplaceAll(testSegments()[:1])
	assert.True(t, st.Dirty())
	assert.Equal(t, 1, st.Len())
}

func TestStore_Patch_merges_fields(t *testing.T) {
	st := New()
	st.Load(testSegments())

	text := "updated"
	start := 500
	st.Patch("seg_a", Partial{Text: &text, StartMs: &start})

	s, ok := st.Get("seg_a")
	require.True(t, ok)
	assert.Equal(t, "updated", s.Text)
	assert.Equal(t, 500, s.StartMs)
	assert.Equal(t, 1000, s.EndMs)
	assert.True(t, st.Dirty())
}

func TestStore_Patch_unknown_id_is_silent_noop(t *testing.T) {
	st := New()
	st.Load(testSegments())

	text := "updated"
	st.Patch("missing", Partial{Text: &text})

	assert.False(t, st.Dirty())
	assert.Equal(t, 2, st.Len())
}

func TestStore_All_returns_detached_copies(t *testing.T) {
	st := New()
	st.Load(testSegments())

	snapshot := st.All()
	snapshot[0].Text = "mutated"

	s, _ := st.Get("seg_a")
	assert.Equal(t, "a", s.Text)
}

func TestStore_IndexOf_and_Get(t *testing.T) {
	st := New()
	st.Load(testSegments())

	assert.Equal(t, 1, st.IndexOf("seg_b"))
	assert.Equal(t, -1, st.IndexOf("missing"))

	_, ok := st.Get("missing")
	assert.False(t, ok)
}

func TestStore_MarkClean(t *testing.T) {
	st := New()
	st.ReplaceAll(testSegments())

	st.MarkClean()
	assert.False(t, st.Dirty())
}

package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dubcal/internal/core/segment"
)

func TestParse_fills_missing_defaults(t *testing.T) {
	data := []byte(`{
		"media": {"duration_ms": 60000},
		"segments": [
			{"start_ms": 0, "end_ms": 1000, "text": "hola"},
			{"id": "seg_custom", "start_ms": 1000, "end_ms": 2000, "text": "que tal", "speaker": "2", "emotion": "happy", "type": "singing"}
		]
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, Schema, doc.Schema)
	assert.Equal(t, 60000, doc.Media.DurationMs)

	first := doc.Segments[0]
	assert.Regexp(t, `^seg_[0-9a-f]{8}$`, first.ID)
	assert.Equal(t, segment.DefaultSpeaker, first.Speaker)
	assert.Equal(t, segment.DefaultEmotion, first.Emotion)
	assert.Equal(t, segment.TypeSpeech, first.Type)

	second := doc.Segments[1]
	assert.Equal(t, "seg_custom", second.ID)
	assert.Equal(t, "2", second.Speaker)
	assert.Equal(t, "happy", second.Emotion)
	assert.Equal(t, segment.TypeSinging, second.Type)
}

func TestParse_rejects_malformed_json(t *testing.T) {
	_, err := Parse([]byte(`{"segments": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse document")
}

func TestDocument_fingerprint_is_stable_and_content_sensitive(t *testing.T) {
	doc := New()
	doc.Segments = []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1000, Text: "hola", Speaker: "0", Emotion: "neutral"},
	}

	first := doc.ComputeFingerprint()
	assert.Equal(t, first, doc.ComputeFingerprint())

	doc.Segments[0].Text = "adios"
	assert.NotEqual(t, first, doc.ComputeFingerprint())

	// Flags do not participate in the fingerprint.
	doc.Segments[0].Text = "hola"
	doc.Segments[0].Flags.Overlap = true
	assert.Equal(t, first, doc.ComputeFingerprint())
}

func TestDocument_UpdateFingerprint_sets_metadata(t *testing.T) {
	doc := New()
	doc.UpdateFingerprint()

	assert.Equal(t, "sha256", doc.Fingerprint.Algo)
	assert.Equal(t, "segments", doc.Fingerprint.Scope)
	assert.Len(t, doc.Fingerprint.Value, 64)
}

func TestDocument_DetectOverlaps_flags_both_neighbors(t *testing.T) {
	doc := New()
	doc.Segments = []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1500},
		{ID: "seg_b", StartMs: 1000, EndMs: 2000},
		{ID: "seg_c", StartMs: 2000, EndMs: 3000},
	}

	doc.DetectOverlaps()
	assert.True(t, doc.Segments[0].Flags.Overlap)
	assert.True(t, doc.Segments[1].Flags.Overlap)
	assert.False(t, doc.Segments[2].Flags.Overlap)

	// Flags are recomputed from scratch, so a resolved overlap clears.
	doc.Segments[0].EndMs = 1000
	doc.DetectOverlaps()
	assert.False(t, doc.Segments[0].Flags.Overlap)
	assert.False(t, doc.Segments[1].Flags.Overlap)
}

func TestDocument_DetectOverlaps_handles_out_of_order_sequence(t *testing.T) {
	doc := New()
	doc.Segments = []segment.Segment{
		{ID: "seg_b", StartMs: 2000, EndMs: 3000},
		{ID: "seg_a", StartMs: 0, EndMs: 2500},
	}

	doc.DetectOverlaps()
	assert.True(t, doc.Segments[0].Flags.Overlap)
	assert.True(t, doc.Segments[1].Flags.Overlap)
}

func TestDocument_BumpRev(t *testing.T) {
	doc := New()
	require.Equal(t, 1, doc.History.Rev)

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	doc.BumpRev(now)

	assert.Equal(t, 2, doc.History.Rev)
	assert.Equal(t, "2026-03-14T09:26:53Z", doc.History.UpdatedAt)
}

func TestDocument_EndMs_prefers_larger_of_media_and_segments(t *testing.T) {
	doc := New()
	doc.Media.DurationMs = 10000
	doc.Segments = []segment.Segment{{ID: "seg_a", StartMs: 0, EndMs: 1000}}
	assert.Equal(t, 10000, doc.EndMs())

	doc.Segments[0].EndMs = 12000
	assert.Equal(t, 12000, doc.EndMs())
}

func TestDocument_Marshal_round_trips(t *testing.T) {
	doc := New()
	doc.Media = Media{Path: "ep01.mkv", DurationMs: 60000}
	doc.Segments = []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1000, Text: "hola", TextEn: "hello", Speaker: "1", Emotion: "neutral", Type: "speech"},
	}
	doc.UpdateFingerprint()

	data, err := doc.Marshal()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/editor/store"
	"github.com/colonyops/dubcal/internal/playback"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *playback.Clock) {
	t.Helper()
	st := store.New()
	st.Load([]segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1000},
		{ID: "seg_b", StartMs: 1000, EndMs: 2000},
	})
	clock := playback.NewClock()
	return NewCoordinator(st, clock), clock
}

func TestCoordinator_PlayingID_empty_while_stopped(t *testing.T) {
	coord, clock := newTestCoordinator(t)

	clock.SetCurrentMs(500)
	assert.Equal(t, "", coord.PlayingID())

	clock.SetPlaying(true)
	assert.Equal(t, "seg_a", coord.PlayingID())

	// The instant playback stops the playing identity vanishes, regardless
	// of the clock position.
	clock.SetPlaying(false)
	assert.Equal(t, "", coord.PlayingID())
}

func TestCoordinator_PlayingID_boundary_belongs_to_next_segment(t *testing.T) {
	coord, clock := newTestCoordinator(t)
	clock.SetPlaying(true)

	clock.SetCurrentMs(1000)
	assert.Equal(t, "seg_b", coord.PlayingID())

	clock.SetCurrentMs(999)
	assert.Equal(t, "seg_a", coord.PlayingID())

	clock.SetCurrentMs(2000)
	assert.Equal(t, "", coord.PlayingID())
}

func TestCoordinator_HighlightFor_playing_wins_over_selected(t *testing.T) {
	coord, clock := newTestCoordinator(t)

	coord.Select("seg_a")
	assert.Equal(t, HighlightSelected, coord.HighlightFor("seg_a"))
	assert.Equal(t, HighlightNone, coord.HighlightFor("seg_b"))

	clock.SetPlaying(true)
	clock.SetCurrentMs(500)
	assert.Equal(t, HighlightPlaying, coord.HighlightFor("seg_a"))
}

func TestCoordinator_Select_persists_across_playback(t *testing.T) {
	coord, clock := newTestCoordinator(t)

	coord.Select("seg_a")
	clock.SetPlaying(true)
	clock.SetCurrentMs(1500)

	assert.Equal(t, "seg_a", coord.SelectedID())
	assert.Equal(t, "seg_b", coord.PlayingID())

	coord.Select("")
	assert.Equal(t, "", coord.SelectedID())
}

func TestCoordinator_ListScrollTarget_fires_once_per_change(t *testing.T) {
	coord, clock := newTestCoordinator(t)

	_, ok := coord.ListScrollTarget()
	assert.False(t, ok)

	coord.Select("seg_a")
	id, ok := coord.ListScrollTarget()
	require.True(t, ok)
	assert.Equal(t, "seg_a", id)

	// Same target again does not re-fire.
	_, ok = coord.ListScrollTarget()
	assert.False(t, ok)

	// While playing, the playing segment takes over as the target.
	clock.SetPlaying(true)
	clock.SetCurrentMs(1500)
	id, ok = coord.ListScrollTarget()
	require.True(t, ok)
	assert.Equal(t, "seg_b", id)
}

func TestCoordinator_SegmentAt(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	s, ok := coord.SegmentAt(500)
	require.True(t, ok)
	assert.Equal(t, "seg_a", s.ID)

	_, ok = coord.SegmentAt(5000)
	assert.False(t, ok)
}

package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/editor/edit"
)

// fakeSurface records operation dispatches.
type fakeSurface struct {
	dragged   []int
	committed []struct{ orig, final int }
	selected  []string
	seeked    []int
}

func (f *fakeSurface) DragEdge(_ string, _ edit.Edge, newMs int) int {
	f.dragged = append(f.dragged, newMs)
	return newMs
}

func (f *fakeSurface) CommitEdgeDrag(_ string, _ edit.Edge, originalMs, finalMs int) edit.Result {
	f.committed = append(f.committed, struct{ orig, final int }{originalMs, finalMs})
	return edit.Result{Applied: true}
}

func (f *fakeSurface) Select(id string) { f.selected = append(f.selected, id) }
func (f *fakeSurface) Seek(ms int)      { f.seeked = append(f.seeked, ms) }

// testSegs has edges at 100px and 200px under zoom 100 with no scroll.
func testSegs() []segment.Segment {
	return []segment.Segment{
		{ID: "seg_a", StartMs: 1000, EndMs: 2000},
		{ID: "seg_b", StartMs: 2500, EndMs: 3000},
	}
}

func newTestController(surface Surface) *Controller {
	c := NewController(surface)
	c.SetZoom(100)
	return c
}

func TestController_HitEdge_within_slop(t *testing.T) {
	c := newTestController(&fakeSurface{})
	segs := testSegs()

	id, e, ok := c.HitEdge(segs, 104)
	require.True(t, ok)
	assert.Equal(t, "seg_a", id)
	assert.Equal(t, edit.EdgeStart, e)

	id, e, ok = c.HitEdge(segs, 195)
	require.True(t, ok)
	assert.Equal(t, "seg_a", id)
	assert.Equal(t, edit.EdgeEnd, e)

	_, _, ok = c.HitEdge(segs, 150)
	assert.False(t, ok)
}

func TestController_HitEdge_first_segment_wins(t *testing.T) {
	c := newTestController(&fakeSurface{})
	// Two segments sharing a boundary at 2000ms (200px).
	segs := []segment.Segment{
		{ID: "seg_a", StartMs: 1000, EndMs: 2000},
		{ID: "seg_b", StartMs: 2000, EndMs: 3000},
	}

	id, e, ok := c.HitEdge(segs, 200)
	require.True(t, ok)
	assert.Equal(t, "seg_a", id)
	assert.Equal(t, edit.EdgeEnd, e)
}

func TestController_HitEdge_nearer_edge_wins_start_on_tie(t *testing.T) {
	c := newTestController(&fakeSurface{})
	// 100ms long segment: edges 10px apart, both within slop of the middle.
	segs := []segment.Segment{{ID: "seg_a", StartMs: 1000, EndMs: 1100}}

	_, e, ok := c.HitEdge(segs, 105)
	require.True(t, ok)
	assert.Equal(t, edit.EdgeStart, e)

	_, e, ok = c.HitEdge(segs, 104)
	require.True(t, ok)
	assert.Equal(t, edit.EdgeStart, e)

	_, e, ok = c.HitEdge(segs, 106)
	require.True(t, ok)
	assert.Equal(t, edit.EdgeEnd, e)
}

func TestController_drag_lifecycle(t *testing.T) {
	surface := &fakeSurface{}
	c := newTestController(surface)
	segs := testSegs()

	c.PointerDown(segs, 200)
	drag := c.Dragging()
	require.NotNil(t, drag)
	assert.Equal(t, "seg_a", drag.SegmentID)
	assert.Equal(t, edit.EdgeEnd, drag.Edge)
	assert.Equal(t, 2000, drag.OriginalMs)
	// Grabbing an edge neither selects nor seeks.
	assert.Empty(t, surface.selected)
	assert.Empty(t, surface.seeked)

	c.PointerMove(220)
	c.PointerMove(240)
	assert.Equal(t, []int{2200, 2400}, surface.dragged)

	c.PointerUp(260)
	assert.Nil(t, c.Dragging())
	require.Len(t, surface.committed, 1)
	assert.Equal(t, 2000, surface.committed[0].orig)
	assert.Equal(t, 2600, surface.committed[0].final)
}

func TestController_PointerMove_idle_is_noop(t *testing.T) {
	surface := &fakeSurface{}
	c := newTestController(surface)

	c.PointerMove(150)
	c.PointerUp(150)
	assert.Empty(t, surface.dragged)
	assert.Empty(t, surface.committed)
}

func TestController_PointerDown_selects_and_seeks(t *testing.T) {
	surface := &fakeSurface{}
	c := newTestController(surface)
	segs := testSegs()

	c.PointerDown(segs, 150)
	assert.Equal(t, []string{"seg_a"}, surface.selected)
	assert.Equal(t, []int{1500}, surface.seeked)

	// Clicks over free space seek without selecting.
	c.PointerDown(segs, 230)
	assert.Equal(t, []string{"seg_a"}, surface.selected)
	assert.Equal(t, []int{1500, 2300}, surface.seeked)
}

func TestController_Wheel_pans_and_zooms(t *testing.T) {
	c := newTestController(&fakeSurface{})
	c.SetScrollOffset(1000)

	c.Wheel(0, 3, false)
	assert.Equal(t, 1030, c.Projection().ScrollOffsetMs())

	// The dominant axis wins.
	c.Wheel(-5, 1, false)
	assert.Equal(t, 980, c.Projection().ScrollOffsetMs())

	zoom := c.Projection().Zoom()
	c.Wheel(0, 1, true)
	assert.Equal(t, zoom+5, c.Projection().Zoom())
	c.Wheel(0, -1, true)
	assert.Equal(t, zoom, c.Projection().Zoom())
}

func TestController_SetZoom_clamps(t *testing.T) {
	c := newTestController(&fakeSurface{})

	c.SetZoom(500)
	assert.Equal(t, MaxZoom, c.Projection().Zoom())
	c.SetZoom(1)
	assert.Equal(t, MinZoom, c.Projection().Zoom())
}

func TestController_AutoScroll_chases_playhead_while_playing(t *testing.T) {
	c := newTestController(&fakeSurface{})
	c.SetZoom(40)

	// Playhead at 80px of a 100px viewport, past the 75% threshold.
	c.AutoScroll(nil, 2000, true, "", 100)
	// Target puts the playhead at 25% of the viewport: 625ms before it.
	assert.Equal(t, 1375, c.Projection().ScrollOffsetMs())

	// Within the comfortable band nothing moves.
	c.AutoScroll(nil, 2000, true, "", 100)
	assert.Equal(t, 1375, c.Projection().ScrollOffsetMs())
}

func TestController_AutoScroll_recenters_on_selection_change(t *testing.T) {
	c := newTestController(&fakeSurface{})
	c.SetZoom(40)
	segs := []segment.Segment{{ID: "seg_far", StartMs: 10000, EndMs: 11000}}

	c.AutoScroll(segs, 0, false, "seg_far", 100)
	first := c.Projection().ScrollOffsetMs()
	assert.NotEqual(t, 0, first)

	// A redraw with the same selection does not scroll again.
	c.SetScrollOffset(0)
	c.AutoScroll(segs, 0, false, "seg_far", 100)
	assert.Equal(t, 0, c.Projection().ScrollOffsetMs())
}

func TestController_ContextMenu_over_segment_and_free_space(t *testing.T) {
	c := newTestController(&fakeSurface{})
	segs := testSegs()

	menu := c.ContextMenu(segs, 150)
	assert.Equal(t, "seg_a", menu.TargetID)
	assert.Equal(t, 1500, menu.AtMs)
	assert.Contains(t, menu.Actions, MenuSplit)
	assert.Contains(t, menu.Actions, MenuMergeNext)
	assert.Contains(t, menu.Actions, MenuDelete)
	assert.NotContains(t, menu.Actions, MenuInsertAt)

	menu = c.ContextMenu(segs, 230)
	assert.Equal(t, "", menu.TargetID)
	assert.Contains(t, menu.Actions, MenuInsertAt)
	assert.Contains(t, menu.Actions, MenuUndo)
	assert.Contains(t, menu.Actions, MenuRedo)
	assert.NotContains(t, menu.Actions, MenuSplit)
}

package timeline

import (
	"math"

	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/editor/edit"
)

// EdgeHitSlopPx is the projected distance within which a pointer-down
// grabs a segment boundary.
const EdgeHitSlopPx = 6.0

// Auto-scroll tuning: while playing, the playhead is pulled back to 25% of
// the viewport once it passes 75% or falls under 5%.
const (
	autoScrollHighFrac   = 0.75
	autoScrollLowFrac    = 0.05
	autoScrollTargetFrac = 0.25
)

// Wheel tuning: plain scroll moves the offset by the dominant delta x10,
// modified scroll steps the zoom by 5 per tick.
const (
	wheelScrollFactor = 10
	wheelZoomStep     = 5.0
)

// Surface is the operation API the timeline invokes. Any front-end surface
// goes through these operations and never mutates state directly.
type Surface interface {
	DragEdge(id string, e edit.Edge, newMs int) int
	CommitEdgeDrag(id string, e edit.Edge, originalMs, finalMs int) edit.Result
	Select(id string)
	Seek(ms int)
}

// Drag is the active edge-drag gesture.
type Drag struct {
	SegmentID  string
	Edge       edit.Edge
	OriginalMs int
}

// Controller is the timeline interaction state machine: Idle ⇄ EdgeDragging.
// It owns the projection state for its view.
type Controller struct {
	proj    Projection
	surface Surface
	drag    *Drag

	// Last-seen selection, so recentering fires on genuine selection
	// changes rather than on every redraw.
	lastSelectedID string
}

// NewController creates an idle controller at the default projection.
func NewController(surface Surface) *Controller {
	return &Controller{proj: NewProjection(), surface: surface}
}

// Projection returns the current projection.
func (c *Controller) Projection() Projection { return c.proj }

// SetZoom clamps and applies a zoom level.
func (c *Controller) SetZoom(pxPerSec float64) {
	c.proj = c.proj.WithZoom(pxPerSec)
}

// SetScrollOffset clamps and applies a scroll offset.
func (c *Controller) SetScrollOffset(ms int) {
	c.proj = c.proj.WithScrollOffset(ms)
}

// Dragging returns the active drag, or nil when idle.
func (c *Controller) Dragging() *Drag { return c.drag }

// HitEdge finds the first segment in sequence order with a boundary within
// EdgeHitSlopPx of x. Ties among overlapping segments resolve to the first
// segment; within one segment the nearer edge wins, start on an exact tie.
func (c *Controller) HitEdge(segs []segment.Segment, x float64) (string, edit.Edge, bool) {
	for _, s := range segs {
		dStart := math.Abs(c.proj.MsToPixel(s.StartMs) - x)
		dEnd := math.Abs(c.proj.MsToPixel(s.EndMs) - x)
		switch {
		case dStart <= EdgeHitSlopPx && dStart <= dEnd:
			return s.ID, edit.EdgeStart, true
		case dEnd <= EdgeHitSlopPx:
			return s.ID, edit.EdgeEnd, true
		}
	}
	return "", edit.EdgeStart, false
}

// HitSegment finds the first segment in sequence order containing ms
// (inclusive of both boundaries, for click targeting).
func HitSegment(segs []segment.Segment, ms int) (segment.Segment, bool) {
	for _, s := range segs {
		if ms >= s.StartMs && ms <= s.EndMs {
			return s, true
		}
	}
	return segment.Segment{}, false
}

// PointerDown transitions Idle→EdgeDragging when a boundary is grabbed;
// otherwise it selects the clicked segment (if any) and always requests a
// seek to the clicked time.
func (c *Controller) PointerDown(segs []segment.Segment, x float64) {
	if c.drag != nil {
		return
	}

	if id, e, ok := c.HitEdge(segs, x); ok {
		originalMs := 0
		for _, s := range segs {
			if s.ID == id {
				if e == edit.EdgeStart {
					originalMs = s.StartMs
				} else {
					originalMs = s.EndMs
				}
				break
			}
		}
		c.drag = &Drag{SegmentID: id, Edge: e, OriginalMs: originalMs}
		return
	}

	ms := c.proj.PixelToMs(x)
	if s, ok := HitSegment(segs, ms); ok {
		c.surface.Select(s.ID)
	}
	c.surface.Seek(ms)
}

// PointerMove recomputes the dragged edge from the pointer position and
// writes it directly to the store, clamped against the same segment's other
// edge only. No-op while idle.
func (c *Controller) PointerMove(x float64) {
	if c.drag == nil {
		return
	}
	c.surface.DragEdge(c.drag.SegmentID, c.drag.Edge, c.proj.PixelToMs(x))
}

// PointerUp commits the gesture's net effect as one undoable command and
// returns to Idle. A drag released outside a valid target commits the last
// valid value; there is no rollback gesture.
func (c *Controller) PointerUp(x float64) {
	if c.drag == nil {
		return
	}
	d := c.drag
	c.drag = nil
	c.surface.CommitEdgeDrag(d.SegmentID, d.Edge, d.OriginalMs, c.proj.PixelToMs(x))
}

// Wheel handles scroll input. Plain scroll pans by the dominant delta x10;
// modified scroll steps the zoom.
func (c *Controller) Wheel(deltaX, deltaY float64, modified bool) {
	if modified {
		if deltaY > 0 {
			c.SetZoom(c.proj.Zoom() + wheelZoomStep)
		} else if deltaY < 0 {
			c.SetZoom(c.proj.Zoom() - wheelZoomStep)
		}
		return
	}

	delta := deltaY
	if math.Abs(deltaX) > math.Abs(deltaY) {
		delta = deltaX
	}
	c.SetScrollOffset(c.proj.ScrollOffsetMs() + int(delta)*wheelScrollFactor)
}

// AutoScroll keeps the relevant content visible. While playing, it chases
// the playhead; while stopped, it recenters on a genuine selection change
// whose midpoint left the visible range.
func (c *Controller) AutoScroll(segs []segment.Segment, playheadMs int, playing bool, selectedID string, widthPx float64) {
	if widthPx <= 0 {
		return
	}

	if playing {
		px := c.proj.MsToPixel(playheadMs)
		if px > widthPx*autoScrollHighFrac || px < widthPx*autoScrollLowFrac {
			target := playheadMs - int(widthPx*autoScrollTargetFrac/c.proj.Zoom()*1000.0)
			c.SetScrollOffset(target)
		}
		return
	}

	if selectedID == c.lastSelectedID {
		return
	}
	c.lastSelectedID = selectedID
	if selectedID == "" {
		return
	}

	for _, s := range segs {
		if s.ID != selectedID {
			continue
		}
		mid := (s.StartMs + s.EndMs) / 2
		from, to := c.proj.VisibleRangeMs(widthPx)
		if mid < from || mid >= to {
			c.SetScrollOffset(mid - int(widthPx*0.5/c.proj.Zoom()*1000.0))
		}
		return
	}
}

// MenuAction identifies a context menu entry.
type MenuAction int

// Context menu entries.
const (
	MenuSplit MenuAction = iota
	MenuMergeNext
	MenuDelete
	MenuInsertAt
	MenuUndo
	MenuRedo
)

// Menu describes a context menu opened at a timeline position.
type Menu struct {
	Actions  []MenuAction
	TargetID string // segment under the pointer, empty over free space
	AtMs     int    // time under the pointer
}

// ContextMenu builds the menu for a right-click at x: segment actions when a
// segment is hit, insert-at-position over empty space, undo/redo always.
func (c *Controller) ContextMenu(segs []segment.Segment, x float64) Menu {
	ms := c.proj.PixelToMs(x)
	if s, ok := HitSegment(segs, ms); ok {
		return Menu{
			Actions:  []MenuAction{MenuSplit, MenuMergeNext, MenuDelete, MenuUndo, MenuRedo},
			TargetID: s.ID,
			AtMs:     ms,
		}
	}
	return Menu{
		Actions: []MenuAction{MenuInsertAt, MenuUndo, MenuRedo},
		AtMs:    ms,
	}
}

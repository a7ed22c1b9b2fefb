package editor

import (
	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/editor/store"
	"github.com/colonyops/dubcal/internal/playback"
)

// Coordinator derives per-view highlight and scroll targets from the segment
// store and the playback clock. Two identities exist, derived rather than
// independently stored: the selected segment (explicit, persists across
// playback) and the currently-playing segment (the segment whose time range
// contains the clock position, live only while playing).
type Coordinator struct {
	store *store.Store
	clock *playback.Clock

	selectedID string

	// Last scroll target handed to the list view, so a target fires once
	// per change rather than on every redraw.
	lastListTarget string
}

// NewCoordinator wires a coordinator to one session's store and clock.
func NewCoordinator(st *store.Store, clock *playback.Clock) *Coordinator {
	return &Coordinator{store: st, clock: clock}
}

// Select sets the selected segment id; empty clears the selection.
func (c *Coordinator) Select(id string) {
	c.selectedID = id
}

// SelectedID returns the explicitly selected segment id, or empty.
func (c *Coordinator) SelectedID() string {
	return c.selectedID
}

// PlayingID returns the id of the segment whose [start, end) contains the
// clock position. It is recomputed on every read while playing and is empty
// the instant playback stops, regardless of the clock position.
func (c *Coordinator) PlayingID() string {
	if !c.clock.IsPlaying() {
		return ""
	}
	ms := c.clock.CurrentMs()
	for _, s := range c.store.All() {
		if s.Contains(ms) {
			return s.ID
		}
	}
	return ""
}

// Highlight describes how a view should style a segment row.
type Highlight int

// Highlight kinds; selected and playing drive distinct styling.
const (
	HighlightNone Highlight = iota
	HighlightSelected
	HighlightPlaying
)

// HighlightFor returns the highlight for a segment id. The playing highlight
// wins when a segment is both selected and playing.
func (c *Coordinator) HighlightFor(id string) Highlight {
	if id == c.PlayingID() {
		return HighlightPlaying
	}
	if id == c.selectedID {
		return HighlightSelected
	}
	return HighlightNone
}

// ListScrollTarget returns the segment id the list view should scroll to,
// once per genuine change: the playing segment while playback runs, the
// selection otherwise.
func (c *Coordinator) ListScrollTarget() (string, bool) {
	target := c.selectedID
	if c.clock.IsPlaying() {
		if playing := c.PlayingID(); playing != "" {
			target = playing
		}
	}
	if target == "" || target == c.lastListTarget {
		return "", false
	}
	c.lastListTarget = target
	return target, true
}

// SegmentAt returns the segment containing ms in sequence order, if any.
func (c *Coordinator) SegmentAt(ms int) (segment.Segment, bool) {
	for _, s := range c.store.All() {
		if s.Contains(ms) {
			return s, true
		}
	}
	return segment.Segment{}, false
}

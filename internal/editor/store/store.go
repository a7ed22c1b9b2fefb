// Package store holds the canonical segment sequence for an editing session.
//
// The store is the single authoritative source every view reads. Writes are
// restricted to the editing operations: structural commands call ReplaceAll,
// field commands and intermediate drag frames call Patch. Unknown ids are
// silently ignored; that is specified behavior, not an oversight.
package store

import "github.com/colonyops/dubcal/internal/core/segment"

// Partial is a set of optional field updates merged into one segment.
// Nil fields are left untouched.
type Partial struct {
	StartMs *int
	EndMs   *int
	Text    *string
	TextEn  *string
	Speaker *string
	Emotion *string
	Type    *string
	Gender  *string
}

// Store owns the ordered segment sequence and the dirty flag for one
// session. It is torn down and rebuilt wholesale on document switch.
type Store struct {
	segments []segment.Segment
	dirty    bool
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces the sequence with the initially loaded document content.
// The dirty flag is cleared; Load is not an edit.
func (s *Store) Load(segs []segment.Segment) {
	s.segments = segment.CloneAll(segs)
	s.dirty = false
}

// ReplaceAll swaps in a whole new sequence and marks the store dirty.
// Every structural command's apply and inverse goes through here.
func (s *Store) ReplaceAll(segs []segment.Segment) {
	s.segments = segment.CloneAll(segs)
	s.dirty = true
}

// Patch merges the given fields into the segment with the given id and marks
// the store dirty. No-op if the id is absent.
func (s *Store) Patch(id string, p Partial) {
	i := s.IndexOf(id)
	if i < 0 {
		return
	}

	seg := &s.segments[i]
	if p.StartMs != nil {
		seg.StartMs = *p.StartMs
	}
	if p.EndMs != nil {
		seg.EndMs = *p.EndMs
	}
	if p.Text != nil {
		seg.Text = *p.Text
	}
	if p.TextEn != nil {
		seg.TextEn = *p.TextEn
	}
	if p.Speaker != nil {
		seg.Speaker = *p.Speaker
	}
	if p.Emotion != nil {
		seg.Emotion = *p.Emotion
	}
	if p.Type != nil {
		seg.Type = *p.Type
	}
	if p.Gender != nil {
		seg.Gender = *p.Gender
	}
	s.dirty = true
}

// All returns a deep copy of the sequence. Callers never see live backing
// memory, so snapshots captured by commands cannot alias later edits.
func (s *Store) All() []segment.Segment {
	return segment.CloneAll(s.segments)
}

// Get returns a copy of the segment with the given id.
func (s *Store) Get(id string) (segment.Segment, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return segment.Segment{}, false
	}
	return s.segments[i].Clone(), true
}

// IndexOf returns the position of the segment with the given id, or -1.
func (s *Store) IndexOf(id string) int {
	for i := range s.segments {
		if s.segments[i].ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of segments.
func (s *Store) Len() int {
	return len(s.segments)
}

// Dirty reports whether the sequence has been mutated since load or the
// last successful save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag. Called only when the save collaborator
// confirms success.
func (s *Store) MarkClean() {
	s.dirty = false
}

// Package editor assembles one editing session: the segment store, the
// undo/redo engine, the edit operations, the playback clock, and the view
// coordinator. The Service is the only mutation surface; menus, shortcuts,
// and pointer gestures all dispatch into it and never touch state directly.
//
// A Service is built per document and torn down wholesale on session switch;
// undo history never crosses documents.
package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/dubcal/internal/core/document"
	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/editor/edit"
	"github.com/colonyops/dubcal/internal/editor/history"
	"github.com/colonyops/dubcal/internal/editor/store"
	"github.com/colonyops/dubcal/internal/playback"
)

// DocumentStore persists a document atomically, returning the updated
// document (new revision) or an explicit failure. All-or-nothing; there is
// no partial persistence.
type DocumentStore interface {
	Save(ctx context.Context, doc document.Document) (document.Document, error)
}

// Service is the command surface for one editing session.
type Service struct {
	store  *store.Store
	engine *history.Engine
	ops    *edit.Ops
	clock  *playback.Clock
	coord  *Coordinator

	docStore DocumentStore
	doc      document.Document // metadata shell; segments live in the store
	log      zerolog.Logger
}

// NewService builds a session around a loaded document.
func NewService(doc document.Document, docStore DocumentStore, clock *playback.Clock, log zerolog.Logger) *Service {
	st := store.New()
	st.Load(doc.Segments)
	engine := history.NewEngine()

	return &Service{
		store:    st,
		engine:   engine,
		ops:      edit.New(st, engine),
		clock:    clock,
		coord:    NewCoordinator(st, clock),
		docStore: docStore,
		doc:      doc,
		log:      log,
	}
}

// Store exposes the session's segment store for read access by views.
func (s *Service) Store() *store.Store { return s.store }

// Clock exposes the shared playback clock.
func (s *Service) Clock() *playback.Clock { return s.clock }

// Coordinator exposes the derived highlight/scroll state.
func (s *Service) Coordinator() *Coordinator { return s.coord }

// Document returns the metadata shell with the current segment sequence
// merged in.
func (s *Service) Document() document.Document {
	doc := s.doc
	doc.Segments = s.store.All()
	return doc
}

// Rev returns the last persisted revision.
func (s *Service) Rev() int { return s.doc.History.Rev }

// Dirty reports unsaved edits, for the navigation guard.
func (s *Service) Dirty() bool { return s.store.Dirty() }

// Split cuts a segment at the given time. Rejected preconditions are silent
// no-ops.
func (s *Service) Split(id string, atMs int) edit.Result {
	res := s.ops.Split(id, atMs)
	s.log.Debug().Str("id", id).Int("at_ms", atMs).Bool("applied", res.Applied).Msg("split")
	return res
}

// MergeWithNext merges a segment into its successor.
func (s *Service) MergeWithNext(id string) edit.Result {
	res := s.ops.MergeWithNext(id)
	s.log.Debug().Str("id", id).Bool("applied", res.Applied).Msg("merge")
	return res
}

// Insert places a new segment at the given index.
func (s *Service) Insert(index int, seg segment.Segment) edit.Result {
	return s.ops.Insert(index, seg)
}

// InsertBlankAt inserts a blank segment after the segment containing atMs,
// or at the end. Its start is the predecessor's end (or atMs over free
// space) and it gets the minimum duration.
func (s *Service) InsertBlankAt(atMs int) edit.Result {
	segs := s.store.All()
	index := len(segs)
	startMs := atMs
	for i, sg := range segs {
		if sg.Contains(atMs) {
			index = i + 1
			startMs = sg.EndMs
			break
		}
	}
	blank := segment.New(startMs, startMs+segment.MinGapMs)
	return s.ops.Insert(index, blank)
}

// Delete removes a segment by id. If it was selected, the selection clears.
func (s *Service) Delete(id string) edit.Result {
	res := s.ops.Delete(id)
	if res.Applied && s.coord.SelectedID() == id {
		s.coord.Select("")
	}
	return res
}

// PatchField sets one string field on one segment.
func (s *Service) PatchField(id string, field edit.Field, oldVal, newVal string) edit.Result {
	return s.ops.PatchField(id, field, oldVal, newVal)
}

// DragEdge writes one intermediate drag frame directly to the store.
func (s *Service) DragEdge(id string, e edit.Edge, newMs int) int {
	return s.ops.DragEdge(id, e, newMs)
}

// CommitEdgeDrag coalesces a finished drag gesture into one undoable step.
func (s *Service) CommitEdgeDrag(id string, e edit.Edge, originalMs, finalMs int) edit.Result {
	return s.ops.CommitEdgeDrag(id, e, originalMs, finalMs)
}

// Undo reverts the most recent command.
func (s *Service) Undo() bool { return s.engine.Undo() }

// Redo re-applies the most recently undone command.
func (s *Service) Redo() bool { return s.engine.Redo() }

// CanUndo reports whether undo is available.
func (s *Service) CanUndo() bool { return s.engine.CanUndo() }

// CanRedo reports whether redo is available.
func (s *Service) CanRedo() bool { return s.engine.CanRedo() }

// UndoDescription names the command Undo would revert, empty when none.
func (s *Service) UndoDescription() string { return s.engine.UndoDescription() }

// RedoDescription names the command Redo would re-apply, empty when none.
func (s *Service) RedoDescription() string { return s.engine.RedoDescription() }

// Select sets the selected segment; empty id clears the selection.
func (s *Service) Select(id string) {
	s.coord.Select(id)
}

// Seek writes the clicked time to the shared clock; the sync bridge decides
// whether the player must physically seek.
func (s *Service) Seek(ms int) {
	s.clock.SetCurrentMs(ms)
}

// Save persists the full current sequence through the document store. On
// success the dirty flag clears and the new revision is adopted. On failure
// the error is surfaced; local edits and undo history are never rolled back.
func (s *Service) Save(ctx context.Context) error {
	doc := s.Document()
	saved, err := s.docStore.Save(ctx, doc)
	if err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return fmt.Errorf("save document: %w", err)
	}

	s.doc = saved
	// Adopt the collaborator's result wholesale; it may have refreshed the
	// externally-owned overlap flags. This clears the dirty flag.
	s.store.Load(saved.Segments)
	s.log.Info().Int("rev", saved.History.Rev).Time("at", time.Now()).Msg("document saved")
	return nil
}

// Package edit implements the structural and field editing operations.
//
// Every operation is a guarded command pushed through the history engine.
// Invalid preconditions degrade to a rejected no-op, never a panic or error;
// the store stays valid and renderable at all times. Structural operations
// capture full before/after sequence snapshots rather than positional diffs,
// which is O(n) per command and acceptable at transcript scale.
package edit

import (
	"fmt"

	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/editor/history"
	"github.com/colonyops/dubcal/internal/editor/store"
)

// Edge identifies which boundary of a segment an operation targets.
type Edge int

// Segment edges.
const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Field identifies a patchable string field.
type Field string

// Patchable fields.
const (
	FieldText    Field = "text"
	FieldTextEn  Field = "text_en"
	FieldSpeaker Field = "speaker"
	FieldEmotion Field = "emotion"
	FieldType    Field = "type"
	FieldGender  Field = "gender"
)

// FieldValue reads the named field from a segment.
func FieldValue(s segment.Segment, f Field) string {
	switch f {
	case FieldText:
		return s.Text
	case FieldTextEn:
		return s.TextEn
	case FieldSpeaker:
		return s.Speaker
	case FieldEmotion:
		return s.Emotion
	case FieldType:
		return s.Type
	case FieldGender:
		return s.Gender
	}
	return ""
}

func fieldPartial(f Field, v string) (store.Partial, bool) {
	switch f {
	case FieldText:
		return store.Partial{Text: &v}, true
	case FieldTextEn:
		return store.Partial{TextEn: &v}, true
	case FieldSpeaker:
		return store.Partial{Speaker: &v}, true
	case FieldEmotion:
		return store.Partial{Emotion: &v}, true
	case FieldType:
		return store.Partial{Type: &v}, true
	case FieldGender:
		return store.Partial{Gender: &v}, true
	}
	return store.Partial{}, false
}

// Result reports whether an operation's precondition held and it was applied.
type Result struct {
	Applied bool
}

var (
	applied  = Result{Applied: true}
	rejected = Result{}
)

// Ops binds the editing operations to one session's store and engine.
type Ops struct {
	store  *store.Store
	engine *history.Engine
}

// New creates the operation set for a session.
func New(st *store.Store, engine *history.Engine) *Ops {
	return &Ops{store: st, engine: engine}
}

// Split cuts the segment with the given id at atMs. The left half keeps the
// id and the text up to the proportional character index; the right half
// gets a fresh id and the remainder. All other fields, including the
// translated text, are copied verbatim to both halves; the translation is
// duplicated, not split, and is expected to be re-run downstream.
func (o *Ops) Split(id string, atMs int) Result {
	seg, ok := o.store.Get(id)
	if !ok {
		return rejected
	}
	// Both halves must satisfy the minimum gap.
	if atMs-seg.StartMs < segment.MinGapMs || seg.EndMs-atMs < segment.MinGapMs {
		return rejected
	}

	runes := []rune(seg.Text)
	ratio := float64(atMs-seg.StartMs) / float64(seg.EndMs-seg.StartMs)
	cut := int(float64(len(runes))*ratio + 0.5)
	if cut < 1 {
		cut = 1
	}
	if cut > len(runes) {
		cut = len(runes)
	}

	left := seg.Clone()
	left.EndMs = atMs
	left.Text = string(runes[:cut])

	right := seg.Clone()
	right.ID = segment.NewID()
	right.StartMs = atMs
	right.Text = string(runes[cut:])

	before := o.store.All()
	after := segment.CloneAll(before)
	i := o.store.IndexOf(id)
	after[i] = left
	after = append(after[:i+1], append([]segment.Segment{right}, after[i+1:]...)...)

	o.pushSnapshot(fmt.Sprintf("split %s at %dms", id, atMs), before, after)
	return applied
}

// MergeWithNext merges the segment with the given id into its successor in
// sequence order. The result keeps the first segment's fields, takes the
// second's end time, and concatenates the texts with no separator. The
// second segment's translated text is discarded.
func (o *Ops) MergeWithNext(id string) Result {
	i := o.store.IndexOf(id)
	if i < 0 || i >= o.store.Len()-1 {
		return rejected
	}

	before := o.store.All()
	merged := before[i].Clone()
	merged.EndMs = before[i+1].EndMs
	merged.Text = before[i].Text + before[i+1].Text

	after := segment.CloneAll(before)
	after[i] = merged
	after = append(after[:i+1], after[i+2:]...)

	o.pushSnapshot(fmt.Sprintf("merge %s with next", id), before, after)
	return applied
}

// Insert places a new segment at the given position. The caller chooses the
// bounds; no adjacency validation happens here. Bounds that violate the
// minimum gap are rejected.
func (o *Ops) Insert(index int, seg segment.Segment) Result {
	if seg.EndMs-seg.StartMs < segment.MinGapMs {
		return rejected
	}
	if index < 0 {
		index = 0
	}
	if index > o.store.Len() {
		index = o.store.Len()
	}

	before := o.store.All()
	after := segment.CloneAll(before)
	after = append(after[:index], append([]segment.Segment{seg.Clone()}, after[index:]...)...)

	o.pushSnapshot(fmt.Sprintf("insert segment at %d", index), before, after)
	return applied
}

// Delete removes the segment with the given id. No-op if absent.
func (o *Ops) Delete(id string) Result {
	i := o.store.IndexOf(id)
	if i < 0 {
		return rejected
	}

	before := o.store.All()
	after := segment.CloneAll(before)
	after = append(after[:i], after[i+1:]...)

	o.pushSnapshot(fmt.Sprintf("delete %s", id), before, after)
	return applied
}

// PatchField sets one string field on one segment. Apply writes the new
// value, inverse restores the old one, both through the store's patch path.
func (o *Ops) PatchField(id string, field Field, oldVal, newVal string) Result {
	if _, ok := o.store.Get(id); !ok {
		return rejected
	}
	newPartial, ok := fieldPartial(field, newVal)
	if !ok {
		return rejected
	}
	oldPartial, _ := fieldPartial(field, oldVal)

	st := o.store
	o.engine.Execute(history.FuncCommand{
		Desc:     fmt.Sprintf("set %s on %s", field, id),
		ApplyFn:  func() { st.Patch(id, newPartial) },
		InvertFn: func() { st.Patch(id, oldPartial) },
	})
	return applied
}

// DragEdge writes one intermediate drag frame directly to the store, bypassing
// the history engine. The value is clamped only against the same segment's
// other edge, never against neighbors. Returns the clamped value actually
// written, or -1 if the id is unknown.
func (o *Ops) DragEdge(id string, edge Edge, newMs int) int {
	seg, ok := o.store.Get(id)
	if !ok {
		return -1
	}

	ms := ClampEdge(seg, edge, newMs)
	if edge == EdgeStart {
		o.store.Patch(id, store.Partial{StartMs: &ms})
	} else {
		o.store.Patch(id, store.Partial{EndMs: &ms})
	}
	return ms
}

// CommitEdgeDrag wraps a completed drag gesture's net effect as a single
// undoable command. Per-frame updates have already been written via DragEdge;
// only the original-to-final transition enters the history. A gesture that
// ends where it started pushes nothing.
func (o *Ops) CommitEdgeDrag(id string, edge Edge, originalMs, finalMs int) Result {
	seg, ok := o.store.Get(id)
	if !ok {
		return rejected
	}
	finalMs = ClampEdge(seg, edge, finalMs)
	if finalMs == originalMs {
		return rejected
	}

	st := o.store
	orig, fin := originalMs, finalMs
	var applyP, invertP store.Partial
	if edge == EdgeStart {
		applyP = store.Partial{StartMs: &fin}
		invertP = store.Partial{StartMs: &orig}
	} else {
		applyP = store.Partial{EndMs: &fin}
		invertP = store.Partial{EndMs: &orig}
	}

	o.engine.Execute(history.FuncCommand{
		Desc:     fmt.Sprintf("adjust %s edge of %s", edgeName(edge), id),
		ApplyFn:  func() { st.Patch(id, applyP) },
		InvertFn: func() { st.Patch(id, invertP) },
	})
	return applied
}

// ClampEdge clamps a candidate edge time against the segment's own other
// edge so the minimum gap always holds. Times never go below zero.
func ClampEdge(seg segment.Segment, edge Edge, ms int) int {
	if edge == EdgeStart {
		if ms > seg.EndMs-segment.MinGapMs {
			ms = seg.EndMs - segment.MinGapMs
		}
		if ms < 0 {
			ms = 0
		}
		return ms
	}
	if ms < seg.StartMs+segment.MinGapMs {
		ms = seg.StartMs + segment.MinGapMs
	}
	return ms
}

func edgeName(e Edge) string {
	if e == EdgeStart {
		return "start"
	}
	return "end"
}

// pushSnapshot records a structural command whose apply and inverse replace
// the whole sequence with immutable snapshots.
func (o *Ops) pushSnapshot(desc string, before, after []segment.Segment) {
	st := o.store
	o.engine.Execute(history.FuncCommand{
		Desc:     desc,
		ApplyFn:  func() { st.ReplaceAll(after) },
		InvertFn: func() { st.ReplaceAll(before) },
	})
}

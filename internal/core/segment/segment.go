// Package segment defines the transcript segment domain types.
package segment

import (
	"strings"

	"github.com/google/uuid"
)

// MinGapMs is the minimum allowed duration of a segment in milliseconds.
// Every write to a segment's bounds must keep end_ms - start_ms >= MinGapMs.
const MinGapMs = 100

// Segment types.
const (
	TypeSpeech  = "speech"
	TypeSinging = "singing"
)

// DefaultEmotion is assigned to manually inserted segments.
const DefaultEmotion = "neutral"

// DefaultSpeaker is the speaker label assigned when none is known.
const DefaultSpeaker = "0"

// NewID generates a fresh segment ID: "seg_" + 8 hex chars.
// IDs are unique document-wide and never reordered after a split.
func NewID() string {
	return "seg_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Flags are informational markers set by upstream tooling or the save
// collaborator. The editor reads them for display but never recomputes them
// during editing.
type Flags struct {
	Overlap     bool `json:"overlap"`
	NeedsReview bool `json:"needs_review"`
}

// TTSPolicy carries downstream synthesis constraints. Opaque to the editor.
type TTSPolicy struct {
	MaxRate       float64 `json:"max_rate,omitempty"`
	AllowExtendMs int     `json:"allow_extend_ms,omitempty"`
}

// Segment is a time-bounded transcript unit.
//
// Invariants: ID is unique document-wide; StartMs < EndMs with at least
// MinGapMs between them. Non-decreasing StartMs across the sequence is a
// convention only and is not enforced; edge edits never check neighbors.
type Segment struct {
	ID        string     `json:"id"`
	StartMs   int        `json:"start_ms"`
	EndMs     int        `json:"end_ms"`
	Text      string     `json:"text"`
	TextEn    string     `json:"text_en"`
	Speaker   string     `json:"speaker"`
	Emotion   string     `json:"emotion"`
	Type      string     `json:"type"`
	Gender    string     `json:"gender,omitempty"`
	TTSPolicy *TTSPolicy `json:"tts_policy,omitempty"`
	Flags     Flags      `json:"flags"`
}

// New returns a blank segment with the given bounds and the defaults used
// for manually inserted segments.
func New(startMs, endMs int) Segment {
	if endMs < startMs+MinGapMs {
		endMs = startMs + MinGapMs
	}
	return Segment{
		ID:      NewID(),
		StartMs: startMs,
		EndMs:   endMs,
		Speaker: DefaultSpeaker,
		Emotion: DefaultEmotion,
		Type:    TypeSpeech,
	}
}

// DurationMs returns the segment length in milliseconds.
func (s Segment) DurationMs() int {
	return s.EndMs - s.StartMs
}

// Contains reports whether ms falls within [StartMs, EndMs).
func (s Segment) Contains(ms int) bool {
	return ms >= s.StartMs && ms < s.EndMs
}

// Clone returns a deep copy. Commands capture clones, never live references,
// so that two commands can never alias the same segment value.
func (s Segment) Clone() Segment {
	out := s
	if s.TTSPolicy != nil {
		p := *s.TTSPolicy
		out.TTSPolicy = &p
	}
	return out
}

// CloneAll deep-copies a segment sequence.
func CloneAll(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = s.Clone()
	}
	return out
}

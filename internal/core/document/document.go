// Package document defines the calibration working-file model (asr.model.v2).
//
// A document is the unit of a calibration session: media metadata, the
// ordered segment sequence, revision history, and a content fingerprint.
// It is loaded once per session and written back whole on save.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/colonyops/dubcal/internal/core/segment"
)

// Schema is the document schema identifier.
const Schema = "asr.model.v2"

// Media holds media metadata for the recording the transcript aligns to.
type Media struct {
	Path       string `json:"path,omitempty"`
	DurationMs int    `json:"duration_ms"`
}

// History tracks revision metadata. Rev increments on every successful save.
type History struct {
	Rev       int    `json:"rev"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Fingerprint is a content hash over the segment sequence.
type Fingerprint struct {
	Algo  string `json:"algo"`
	Value string `json:"value"`
	Scope string `json:"scope"`
}

// Document is the calibration working file.
type Document struct {
	Schema      string            `json:"schema"`
	Media       Media             `json:"media"`
	Segments    []segment.Segment `json:"segments"`
	History     History           `json:"history"`
	Fingerprint Fingerprint       `json:"fingerprint"`
}

// New returns an empty document with schema and history initialized.
func New() Document {
	now := time.Now().UTC().Format(time.RFC3339)
	return Document{
		Schema:      Schema,
		History:     History{Rev: 1, CreatedAt: now, UpdatedAt: now},
		Fingerprint: Fingerprint{Algo: "sha256", Scope: "segments"},
	}
}

// Parse decodes a document from JSON, tolerating missing optional fields.
func Parse(data []byte) (Document, error) {
	doc := New()
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	doc.Schema = Schema
	for i := range doc.Segments {
		if doc.Segments[i].ID == "" {
			doc.Segments[i].ID = segment.NewID()
		}
		if doc.Segments[i].Speaker == "" {
			doc.Segments[i].Speaker = segment.DefaultSpeaker
		}
		if doc.Segments[i].Emotion == "" {
			doc.Segments[i].Emotion = segment.DefaultEmotion
		}
		if doc.Segments[i].Type == "" {
			doc.Segments[i].Type = segment.TypeSpeech
		}
	}
	return doc, nil
}

// Marshal encodes the document as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// ComputeFingerprint hashes the core calibration fields of every segment.
// Timing, text, translation, speaker, and emotion participate; flags and
// TTS policy do not.
func (d Document) ComputeFingerprint() string {
	var b strings.Builder
	for i, s := range d.Segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s|%d|%d|%s|%s|%s|%s", s.ID, s.StartMs, s.EndMs, s.Text, s.TextEn, s.Speaker, s.Emotion)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// UpdateFingerprint recomputes and stores the fingerprint value.
func (d *Document) UpdateFingerprint() {
	d.Fingerprint.Algo = "sha256"
	d.Fingerprint.Scope = "segments"
	d.Fingerprint.Value = d.ComputeFingerprint()
}

// BumpRev increments the revision and refreshes the updated timestamp.
func (d *Document) BumpRev(now time.Time) {
	d.History.Rev++
	d.History.UpdatedAt = now.UTC().Format(time.RFC3339)
}

// DetectOverlaps clears and re-marks the overlap flag on segments whose time
// ranges intersect when ordered by start time. The editing core never calls
// this; it runs in the save path only.
func (d *Document) DetectOverlaps() {
	for i := range d.Segments {
		d.Segments[i].Flags.Overlap = false
	}

	idx := make([]int, len(d.Segments))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return d.Segments[idx[a]].StartMs < d.Segments[idx[b]].StartMs
	})

	for i := 1; i < len(idx); i++ {
		prev, cur := idx[i-1], idx[i]
		if d.Segments[cur].StartMs < d.Segments[prev].EndMs {
			d.Segments[prev].Flags.Overlap = true
			d.Segments[cur].Flags.Overlap = true
		}
	}
}

// EndMs returns the end of the last segment in sequence order, or the media
// duration when that is larger.
func (d Document) EndMs() int {
	end := d.Media.DurationMs
	for _, s := range d.Segments {
		if s.EndMs > end {
			end = s.EndMs
		}
	}
	return end
}

// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/dubcal/internal/core/document"
	"github.com/colonyops/dubcal/internal/core/segment"
)

// SegmentID validates a segment id is non-empty after trimming whitespace.
func SegmentID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// SegmentIDField returns a criterio validator for segment ids.
func SegmentIDField(field, id string) error {
	return criterio.Run(field, id, SegmentID)
}

// Bounds validates a segment keeps start < end with the minimum gap.
func Bounds(s segment.Segment) error {
	if s.EndMs-s.StartMs < segment.MinGapMs {
		return fmt.Errorf("segment %s: end_ms - start_ms = %d, need >= %d", s.ID, s.EndMs-s.StartMs, segment.MinGapMs)
	}
	return nil
}

// Document validates a loaded document is well-formed enough to edit:
// unique ids and valid per-segment bounds. Global time ordering is a
// convention, not a requirement, and is deliberately not checked.
func Document(doc document.Document) error {
	var errs []error

	seen := make(map[string]bool, len(doc.Segments))
	for i, s := range doc.Segments {
		if err := SegmentIDField(fmt.Sprintf("segments[%d].id", i), s.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("segments[%d]: duplicate id %q", i, s.ID))
		}
		seen[s.ID] = true

		if err := Bounds(s); err != nil {
			errs = append(errs, fmt.Errorf("segments[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

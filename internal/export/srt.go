// Package export renders the segment sequence into subtitle formats.
package export

import (
	"fmt"
	"strings"

	"github.com/colonyops/dubcal/internal/core/segment"
)

// RenderSRT renders segments as SubRip text in sequence order. When
// translated is true, the translated text is used and segments without a
// translation fall back to the source text.
func RenderSRT(segs []segment.Segment, translated bool) string {
	var b strings.Builder
	for i, s := range segs {
		text := s.Text
		if translated && s.TextEn != "" {
			text = s.TextEn
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, srtTimestamp(s.StartMs), srtTimestamp(s.EndMs), text)
	}
	return b.String()
}

// srtTimestamp formats milliseconds as HH:MM:SS,mmm.
func srtTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	m := ms % 3600000 / 60000
	s := ms % 60000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

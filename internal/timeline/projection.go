// Package timeline implements the time↔pixel projection and the
// direct-manipulation interaction layer of the timeline view.
package timeline

import "math"

// Zoom bounds in pixels per second.
const (
	MinZoom = 10.0
	MaxZoom = 200.0
)

// DefaultZoom is the initial zoom for a fresh session.
const DefaultZoom = 40.0

// Projection is the pure time(ms)↔pixel mapping, parameterized by zoom and
// scroll offset. It is a value; setters return clamped copies and have no
// side effects beyond the next redraw.
type Projection struct {
	zoom     float64 // pixels per second
	scrollMs int     // leftmost visible time
}

// NewProjection returns a projection at the default zoom, scrolled to zero.
func NewProjection() Projection {
	return Projection{zoom: DefaultZoom}
}

// Zoom returns the zoom in pixels per second.
func (p Projection) Zoom() float64 { return p.zoom }

// ScrollOffsetMs returns the leftmost visible time.
func (p Projection) ScrollOffsetMs() int { return p.scrollMs }

// WithZoom returns a copy with the zoom clamped to [MinZoom, MaxZoom].
func (p Projection) WithZoom(pxPerSec float64) Projection {
	if pxPerSec < MinZoom {
		pxPerSec = MinZoom
	}
	if pxPerSec > MaxZoom {
		pxPerSec = MaxZoom
	}
	p.zoom = pxPerSec
	return p
}

// WithScrollOffset returns a copy with the scroll offset clamped to >= 0.
func (p Projection) WithScrollOffset(ms int) Projection {
	if ms < 0 {
		ms = 0
	}
	p.scrollMs = ms
	return p
}

// MsToPixel projects a time onto the horizontal pixel axis.
func (p Projection) MsToPixel(ms int) float64 {
	return float64(ms-p.scrollMs) / 1000.0 * p.zoom
}

// PixelToMs inverts the projection for a pixel x coordinate.
func (p Projection) PixelToMs(x float64) int {
	return int(math.Round(x/p.zoom*1000.0)) + p.scrollMs
}

// VisibleRangeMs returns the [from, to) time range covered by a viewport of
// the given pixel width.
func (p Projection) VisibleRangeMs(widthPx float64) (int, int) {
	return p.scrollMs, p.PixelToMs(widthPx)
}

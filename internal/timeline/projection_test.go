package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjection_WithZoom_clamps_to_bounds(t *testing.T) {
	p := NewProjection()

	assert.Equal(t, MaxZoom, p.WithZoom(500).Zoom())
	assert.Equal(t, MinZoom, p.WithZoom(0).Zoom())
	assert.Equal(t, MinZoom, p.WithZoom(-10).Zoom())
	assert.Equal(t, 55.0, p.WithZoom(55).Zoom())
}

func TestProjection_WithScrollOffset_clamps_to_zero(t *testing.T) {
	p := NewProjection()

	assert.Equal(t, 0, p.WithScrollOffset(-100).ScrollOffsetMs())
	assert.Equal(t, 250, p.WithScrollOffset(250).ScrollOffsetMs())
}

func TestProjection_MsToPixel(t *testing.T) {
	p := NewProjection().WithZoom(40).WithScrollOffset(2000)

	assert.Equal(t, 0.0, p.MsToPixel(2000))
	assert.Equal(t, 40.0, p.MsToPixel(3000))
	assert.Equal(t, -40.0, p.MsToPixel(1000))
}

func TestProjection_PixelToMs_inverts_projection(t *testing.T) {
	p := NewProjection().WithZoom(40).WithScrollOffset(2000)

	assert.Equal(t, 2000, p.PixelToMs(0))
	assert.Equal(t, 3000, p.PixelToMs(40))
	// Fractional pixels round to the nearest millisecond.
	assert.Equal(t, 2013, p.PixelToMs(0.5))
}

func TestProjection_VisibleRangeMs(t *testing.T) {
	p := NewProjection().WithZoom(100).WithScrollOffset(1000)

	from, to := p.VisibleRangeMs(200)
	assert.Equal(t, 1000, from)
	assert.Equal(t, 3000, to)
}

func TestProjection_setters_return_copies(t *testing.T) {
	p := NewProjection()
	_ = p.WithZoom(100)
	_ = p.WithScrollOffset(500)

	assert.Equal(t, DefaultZoom, p.Zoom())
	assert.Equal(t, 0, p.ScrollOffsetMs())
}

package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/dubcal/internal/core/segment"
)

func TestRenderSRT_numbers_and_timestamps(t *testing.T) {
	segs := []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1500, Text: "hola"},
		{ID: "seg_b", StartMs: 3661042, EndMs: 3663000, Text: "adios"},
	}

	got := RenderSRT(segs, false)
	want := "1\n00:00:00,000 --> 00:00:01,500\nhola\n\n" +
		"2\n01:01:01,042 --> 01:01:03,000\nadios\n\n"
	assert.Equal(t, want, got)
}

func TestRenderSRT_translated_falls_back_to_source(t *testing.T) {
	segs := []segment.Segment{
		{ID: "seg_a", StartMs: 0, EndMs: 1000, Text: "hola", TextEn: "hello"},
		{ID: "seg_b", StartMs: 1000, EndMs: 2000, Text: "adios"},
	}

	got := RenderSRT(segs, true)
	assert.Contains(t, got, "hello")
	assert.NotContains(t, got, "hola")
	assert.Contains(t, got, "adios")
}

func TestRenderSRT_empty_sequence(t *testing.T) {
	assert.Equal(t, "", RenderSRT(nil, false))
}

package playback

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlayer records commands issued by the sync bridge.
type fakePlayer struct {
	NullPlayer
	seeks   []float64
	plays   int
	pauses  int
	seekErr error
}

func (f *fakePlayer) Play(context.Context) error  { f.plays++; return nil }
func (f *fakePlayer) Pause(context.Context) error { f.pauses++; return nil }

func (f *fakePlayer) SeekSec(_ context.Context, sec float64) error {
	if f.seekErr != nil {
		return f.seekErr
	}
	f.seeks = append(f.seeks, sec)
	return nil
}

func newTestSync(player Player) (*Sync, *Clock) {
	clock := NewClock()
	return NewSync(clock, player, zerolog.Nop()), clock
}

func TestSync_small_divergence_is_absorbed(t *testing.T) {
	player := &fakePlayer{}
	s, clock := newTestSync(player)

	s.HandleEvent(Event{Kind: EventPosition, PositionSec: 1.0})
	clock.SetCurrentMs(1200)

	assert.Empty(t, player.seeks)
	assert.False(t, s.SeekInFlight())
}

func TestSync_large_divergence_commands_seek(t *testing.T) {
	player := &fakePlayer{}
	s, clock := newTestSync(player)

	s.HandleEvent(Event{Kind: EventPosition, PositionSec: 1.0})
	clock.SetCurrentMs(2000)

	require.Equal(t, []float64{2.0}, player.seeks)
	assert.True(t, s.SeekInFlight())
}

func TestSync_stale_positions_suppressed_during_seek(t *testing.T) {
	player := &fakePlayer{}
	s, clock := newTestSync(player)

	clock.SetCurrentMs(5000)
	require.True(t, s.SeekInFlight())

	// Reports still in flight from before the seek must not drag the clock
	// back to the old position.
	s.HandleEvent(Event{Kind: EventPosition, PositionSec: 0.1})
	assert.Equal(t, 5000, clock.CurrentMs())

	s.HandleEvent(Event{Kind: EventSeekCompleted, PositionSec: 4.98})
	assert.False(t, s.SeekInFlight())
	assert.Equal(t, 4980, clock.CurrentMs())

	// Reports flow normally again.
	s.HandleEvent(Event{Kind: EventPosition, PositionSec: 5.1})
	assert.Equal(t, 5100, clock.CurrentMs())
}

func TestSync_seek_error_drops_guard(t *testing.T) {
	player := &fakePlayer{seekErr: errors.New("ipc closed")}
	s, clock := newTestSync(player)

	clock.SetCurrentMs(5000)

	assert.False(t, s.SeekInFlight())
	s.HandleEvent(Event{Kind: EventPosition, PositionSec: 0.5})
	assert.Equal(t, 500, clock.CurrentMs())
}

func TestSync_play_pause_mirror_state(t *testing.T) {
	s, clock := newTestSync(&fakePlayer{})

	s.HandleEvent(Event{Kind: EventPlay})
	assert.True(t, clock.IsPlaying())

	s.HandleEvent(Event{Kind: EventPosition, PositionSec: 2.5})
	s.HandleEvent(Event{Kind: EventPause})
	assert.False(t, clock.IsPlaying())
	assert.Equal(t, 2500, clock.CurrentMs())
}

func TestSync_duration_rejects_nan_and_inf(t *testing.T) {
	s, clock := newTestSync(&fakePlayer{})

	s.HandleEvent(Event{Kind: EventDuration, DurationSec: math.NaN()})
	assert.Equal(t, 0, clock.DurationMs())

	s.HandleEvent(Event{Kind: EventDuration, DurationSec: math.Inf(1)})
	assert.Equal(t, 0, clock.DurationMs())

	s.HandleEvent(Event{Kind: EventDuration, DurationSec: 63.25})
	assert.Equal(t, 63250, clock.DurationMs())
}

func TestSync_TogglePlayback(t *testing.T) {
	player := &fakePlayer{}
	s, clock := newTestSync(player)

	require.NoError(t, s.TogglePlayback(context.Background()))
	assert.Equal(t, 1, player.plays)

	clock.SetPlaying(true)
	require.NoError(t, s.TogglePlayback(context.Background()))
	assert.Equal(t, 1, player.pauses)
}

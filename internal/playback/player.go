package playback

import "context"

// EventKind discriminates player notifications.
type EventKind int

// Player notification kinds.
const (
	// EventPosition carries a periodic decode-position report.
	EventPosition EventKind = iota
	// EventPlay signals playback started or resumed.
	EventPlay
	// EventPause signals playback paused.
	EventPause
	// EventSeekCompleted signals a commanded seek has physically finished.
	EventSeekCompleted
	// EventDuration carries the media duration once known.
	EventDuration
)

// Event is a notification from the media player.
type Event struct {
	Kind        EventKind
	PositionSec float64
	DurationSec float64
}

// Player abstracts the external media element. Implementations deliver
// notifications on Events; commands are issued through the methods. The
// player owns the true decode position.
type Player interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SeekSec(ctx context.Context, sec float64) error
	Events() <-chan Event
	Close() error
}

// NullPlayer is an inert player for sessions running without media. Commands
// succeed without effect and no events are ever delivered.
type NullPlayer struct{}

func (NullPlayer) Play(context.Context) error             { return nil }
func (NullPlayer) Pause(context.Context) error            { return nil }
func (NullPlayer) SeekSec(context.Context, float64) error { return nil }
func (NullPlayer) Events() <-chan Event                   { return nil }
func (NullPlayer) Close() error                           { return nil }

// Package playback owns the shared playback clock and its bidirectional
// bridge to the external media player.
//
// The player process is the sole owner of the true decode position; the
// clock is a best-effort reconciled mirror that every view may read. Writes
// to duration and play state come only from the sync bridge; the current
// time may additionally be written by any view requesting a seek.
package playback

// Clock is the single shared playback clock for a session.
type Clock struct {
	currentMs  int
	durationMs int
	playing    bool

	observers []func(ms int)
}

// NewClock creates a stopped clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// CurrentMs returns the mirrored playback position in milliseconds.
func (c *Clock) CurrentMs() int { return c.currentMs }

// DurationMs returns the media duration in milliseconds, 0 if unknown.
func (c *Clock) DurationMs() int { return c.durationMs }

// IsPlaying reports the mirrored play state.
func (c *Clock) IsPlaying() bool { return c.playing }

// SetCurrentMs writes the playback position and notifies observers. The sync
// bridge observes every write to decide whether the player must be commanded
// to seek.
func (c *Clock) SetCurrentMs(ms int) {
	if ms < 0 {
		ms = 0
	}
	c.currentMs = ms
	for _, fn := range c.observers {
		fn(ms)
	}
}

// SetDuration writes the media duration. Only the sync bridge calls this.
func (c *Clock) SetDuration(ms int) {
	if ms < 0 {
		ms = 0
	}
	c.durationMs = ms
}

// SetPlaying writes the play state. Only the sync bridge calls this.
func (c *Clock) SetPlaying(playing bool) {
	c.playing = playing
}

// OnCurrentChange registers an observer invoked on every position write.
func (c *Clock) OnCurrentChange(fn func(ms int)) {
	c.observers = append(c.observers, fn)
}

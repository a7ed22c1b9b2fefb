package playback

import (
	"context"
	"math"

	"github.com/rs/zerolog"
)

// SeekThresholdMs is the clock-vs-player divergence beyond which the sync
// bridge commands a physical seek. Divergence at or below the threshold is
// absorbed; without the threshold the two clocks fight and jitter.
const SeekThresholdMs = 300

// Sync reconciles the shared clock with the external player.
//
// Player-to-clock: notifications received via HandleEvent update the clock.
// Clock-to-player: every clock position write is observed; when it diverges
// from the last reported player position by more than SeekThresholdMs, a
// seek is commanded and a guard flag suppresses the stale intermediate
// position reports the player fires while the seek is in flight. The guard
// clears only on the seek-completed notification.
type Sync struct {
	clock  *Clock
	player Player
	log    zerolog.Logger

	externalSeek bool // guard: a commanded seek is in flight
	playerMs     int  // last position reported by the player
}

// NewSync wires the clock to the player and starts observing clock writes.
func NewSync(clock *Clock, player Player, log zerolog.Logger) *Sync {
	s := &Sync{clock: clock, player: player, log: log}
	clock.OnCurrentChange(s.onClockWrite)
	return s
}

// onClockWrite runs on every clock position write, including the ones this
// bridge makes itself. Self-writes land within the threshold and are absorbed.
func (s *Sync) onClockWrite(ms int) {
	diff := ms - s.playerMs
	if diff < 0 {
		diff = -diff
	}
	if diff <= SeekThresholdMs {
		return
	}

	s.externalSeek = true
	if err := s.player.SeekSec(context.Background(), float64(ms)/1000.0); err != nil {
		// Self-healing: drop the guard so position reports flow again.
		s.externalSeek = false
		s.log.Warn().Err(err).Int("ms", ms).Msg("player seek failed")
	}
}

// HandleEvent applies one player notification to the clock. Called from the
// single-threaded update loop; at most one state transition per event.
func (s *Sync) HandleEvent(ev Event) {
	switch ev.Kind {
	case EventPosition:
		s.playerMs = int(math.Round(ev.PositionSec * 1000))
		// Stale reports fired mid external-seek are suppressed.
		if !s.externalSeek {
			s.clock.SetCurrentMs(s.playerMs)
		}

	case EventPlay:
		s.clock.SetPlaying(true)

	case EventPause:
		s.clock.SetPlaying(false)
		// Snapshot the position at the pause boundary.
		if !s.externalSeek {
			s.clock.SetCurrentMs(s.playerMs)
		}

	case EventSeekCompleted:
		s.externalSeek = false
		s.playerMs = int(math.Round(ev.PositionSec * 1000))
		s.clock.SetCurrentMs(s.playerMs)

	case EventDuration:
		if !math.IsNaN(ev.DurationSec) && !math.IsInf(ev.DurationSec, 0) {
			s.clock.SetDuration(int(math.Round(ev.DurationSec * 1000)))
		}
	}
}

// SeekInFlight reports whether the external-seek guard is currently set.
func (s *Sync) SeekInFlight() bool {
	return s.externalSeek
}

// TogglePlayback plays or pauses depending on the mirrored state.
func (s *Sync) TogglePlayback(ctx context.Context) error {
	if s.clock.IsPlaying() {
		return s.player.Pause(ctx)
	}
	return s.player.Play(ctx)
}

// Package mpv drives an external mpv process over its JSON IPC socket,
// implementing the playback.Player interface.
//
// The protocol is newline-delimited JSON over a unix socket: commands are
// {"command": [...]} objects, notifications arrive as {"event": ...} objects.
// Property observers translate mpv's time-pos/duration/pause changes into
// player events; the playback-restart event marks a completed seek.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/dubcal/internal/playback"
	"github.com/colonyops/dubcal/pkg/executil"
)

const (
	dialRetryInterval = 50 * time.Millisecond
	dialTimeout       = 5 * time.Second

	propTimePos  = 1
	propDuration = 2
	propPause    = 3
)

type request struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

type response struct {
	Event string          `json:"event,omitempty"`
	ID    int             `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Client is a running mpv process bridged over IPC.
type Client struct {
	cmd    *exec.Cmd
	conn   net.Conn
	events chan playback.Event
	log    zerolog.Logger

	mu      sync.Mutex // serializes command writes
	lastPos float64    // last observed time-pos, used for seek-completed
}

// Launch starts mpv on the given media file, paused, with an IPC server at
// socketPath, and begins translating notifications into player events.
func Launch(ctx context.Context, exe executil.Executor, binPath, mediaPath, socketPath string, log zerolog.Logger) (*Client, error) {
	cmd := exe.Command(ctx, binPath,
		"--input-ipc-server="+socketPath,
		"--no-terminal",
		"--no-video",
		"--pause",
		"--keep-open=yes",
		mediaPath,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	conn, err := dialWithRetry(socketPath)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("connect mpv ipc: %w", err)
	}

	c := &Client{
		cmd:    cmd,
		conn:   conn,
		events: make(chan playback.Event, 64),
		log:    log,
	}

	for _, obs := range []struct {
		id   int
		name string
	}{
		{propTimePos, "time-pos"},
		{propDuration, "duration"},
		{propPause, "pause"},
	} {
		if err := c.send("observe_property", obs.id, obs.name); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("observe %s: %w", obs.name, err)
		}
	}

	go c.readLoop()
	return c, nil
}

func dialWithRetry(socketPath string) (net.Conn, error) {
	deadline := time.Now().Add(dialTimeout)
	for {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(dialRetryInterval)
	}
}

// Events returns the notification channel. Closed when the connection drops.
func (c *Client) Events() <-chan playback.Event {
	return c.events
}

// Play resumes playback.
func (c *Client) Play(_ context.Context) error {
	return c.send("set_property", "pause", false)
}

// Pause pauses playback.
func (c *Client) Pause(_ context.Context) error {
	return c.send("set_property", "pause", true)
}

// SeekSec commands an absolute seek.
func (c *Client) SeekSec(_ context.Context, sec float64) error {
	return c.send("seek", sec, "absolute")
}

// Close tears down the IPC connection and the mpv process.
func (c *Client) Close() error {
	_ = c.send("quit")
	err := c.conn.Close()
	if c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_ = c.cmd.Wait()
	}
	return err
}

func (c *Client) send(args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(request{Command: args})
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("mpv ipc write: %w", err)
	}
	return nil
}

// readLoop decodes notifications until the connection closes.
func (c *Client) readLoop() {
	defer close(c.events)

	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			c.log.Debug().Err(err).Str("line", scanner.Text()).Msg("mpv ipc: bad line")
			continue
		}
		c.dispatch(resp)
	}
	if err := scanner.Err(); err != nil {
		c.log.Debug().Err(err).Msg("mpv ipc: connection closed")
	}
}

func (c *Client) dispatch(resp response) {
	switch resp.Event {
	case "property-change":
		c.propertyChange(resp)
	case "playback-restart":
		// mpv signals playback-restart once a seek has physically landed.
		// The precise position follows in the next time-pos report; the
		// last observed value is close enough to clear the seek guard.
		c.emit(playback.Event{Kind: playback.EventSeekCompleted, PositionSec: c.lastPos})
	}
}

func (c *Client) propertyChange(resp response) {
	switch resp.ID {
	case propTimePos:
		var pos *float64
		if json.Unmarshal(resp.Data, &pos) == nil && pos != nil {
			c.lastPos = *pos
			c.emit(playback.Event{Kind: playback.EventPosition, PositionSec: *pos})
		}
	case propDuration:
		var dur *float64
		if json.Unmarshal(resp.Data, &dur) == nil && dur != nil {
			c.emit(playback.Event{Kind: playback.EventDuration, DurationSec: *dur})
		}
	case propPause:
		var paused bool
		if json.Unmarshal(resp.Data, &paused) == nil {
			kind := playback.EventPlay
			if paused {
				kind = playback.EventPause
			}
			c.emit(playback.Event{Kind: kind, PositionSec: c.lastPos})
		}
	}
}

// emit drops events rather than blocking; the update loop drains quickly and
// a dropped position report is superseded by the next one.
func (c *Client) emit(ev playback.Event) {
	select {
	case c.events <- ev:
	default:
	}
}

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dubcal/internal/data/stores"
	"github.com/colonyops/dubcal/internal/editor"
	"github.com/colonyops/dubcal/internal/playback"
	"github.com/colonyops/dubcal/internal/playback/mpv"
	"github.com/colonyops/dubcal/internal/store/jsonfile"
	"github.com/colonyops/dubcal/internal/tui"
	tuinotify "github.com/colonyops/dubcal/internal/tui/notify"
	"github.com/colonyops/dubcal/pkg/executil"
)

type EditCmd struct {
	flags *Flags

	// flags
	mediaPath string
	noPlayer  bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Flags returns the edit command's flags, for registration on the root
// command when edit runs as the default action.
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "media",
			Usage:       "media file to play (overrides the document's media path)",
			Destination: &cmd.mediaPath,
		},
		&cli.BoolFlag{
			Name:        "no-player",
			Usage:       "edit without launching the media player",
			Destination: &cmd.noPlayer,
		},
	}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open a calibration document in the editor",
		UsageText: "dubcal edit <document> [--media file] [--no-player]",
		Flags:     cmd.Flags(),
		Action:    cmd.Run,
	})
	return app
}

// Run opens the editor on the document given as the first argument.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	docPath := c.Args().First()
	if docPath == "" {
		return fmt.Errorf("usage: dubcal edit <document>")
	}
	docPath, err := filepath.Abs(docPath)
	if err != nil {
		return fmt.Errorf("resolve document path: %w", err)
	}

	cfg := cmd.flags.Config
	docStore := jsonfile.NewDocumentStore(docPath)
	doc, err := docStore.Load(ctx)
	if err != nil {
		return err
	}

	clock := playback.NewClock()
	clock.SetDuration(doc.Media.DurationMs)

	svcLog := log.With().Str("component", "editor").Logger()
	service := editor.NewService(doc, docStore, clock, svcLog)

	// Player wiring is best-effort: the editor works without one, it just
	// has no live playhead.
	var (
		player playback.Player
		events <-chan playback.Event
	)
	media := cmd.mediaPath
	if media == "" {
		media = doc.Media.Path
	}
	if !cmd.noPlayer && media != "" {
		player, events, err = launchPlayer(ctx, cfg.Player.Command, media, cfg.Player.SocketDir)
		if err != nil {
			log.Warn().Err(err).Str("media", media).Msg("player unavailable, editing without playback")
		}
	}
	if player != nil {
		defer func() { _ = player.Close() }()
	}

	sync := playback.NewSync(clock, orNullPlayer(player), log.With().Str("component", "sync").Logger())

	prefs := stores.NewPrefsStore(cmd.flags.DB)
	if err := prefs.TouchRecent(ctx, docPath); err != nil {
		log.Warn().Err(err).Msg("record recent document")
	}

	bus := tuinotify.NewBus()
	model := tui.New(tui.Options{
		Config:  cfg,
		Service: service,
		Sync:    sync,
		Events:  events,
		Prefs:   prefs,
		DocPath: docPath,
		Bus:     bus,
		Log:     log.With().Str("component", "tui").Logger(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// launchPlayer verifies the player binary exists and starts it over IPC.
func launchPlayer(ctx context.Context, binary, media, socketDir string) (playback.Player, <-chan playback.Event, error) {
	exe := &executil.RealExecutor{}
	binPath, err := exe.LookPath(binary)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create socket dir: %w", err)
	}
	socketPath := filepath.Join(socketDir, "dubcal-"+uuid.NewString()[:8]+".sock")

	client, err := mpv.Launch(ctx, exe, binPath, media, socketPath, log.With().Str("component", "mpv").Logger())
	if err != nil {
		return nil, nil, err
	}
	return client, client.Events(), nil
}

// orNullPlayer substitutes an inert player when none was launched, so the
// sync bridge always has something to command.
func orNullPlayer(p playback.Player) playback.Player {
	if p != nil {
		return p
	}
	return playback.NullPlayer{}
}

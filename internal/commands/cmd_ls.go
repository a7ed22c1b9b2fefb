package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dubcal/internal/data/stores"
	"github.com/colonyops/dubcal/internal/library"
	"github.com/colonyops/dubcal/pkg/iojson"
)

// recentLimit caps the --recent listing.
const recentLimit = 15

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	recent     bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List calibration documents under the configured roots",
		UsageText: "dubcal ls [--json] [--recent]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "recent",
				Usage:       "list recently opened documents instead of scanning the library",
				Destination: &cmd.recent,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if cmd.recent {
		prefs := stores.NewPrefsStore(cmd.flags.DB)
		recents, err := prefs.ListRecent(ctx, recentLimit)
		if err != nil {
			return fmt.Errorf("list recent documents: %w", err)
		}
		if len(recents) == 0 {
			if !cmd.jsonOutput {
				fmt.Fprintln(os.Stderr, "No recent documents")
			}
			return nil
		}
		return renderRecents(out, recents, cmd.jsonOutput)
	}

	cfg := cmd.flags.Config
	if len(cfg.Library.Roots) == 0 {
		fmt.Fprintln(os.Stderr, "No library roots configured")
		return nil
	}

	entries, err := library.Discover(cfg.Library.Roots, cfg.Library.Pattern)
	if err != nil {
		return fmt.Errorf("scan library: %w", err)
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintln(os.Stderr, "No documents found")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, entryInfo{
				Path:       e.Path,
				Rev:        e.Rev,
				Segments:   e.Segments,
				DurationMs: e.DurationMs,
			}); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tREV\tSEGMENTS\tDURATION")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", e.Path, e.Rev, e.Segments, formatDuration(e.DurationMs))
	}
	return w.Flush()
}

// renderRecents writes the recent-documents list, newest first.
func renderRecents(out io.Writer, recents []stores.RecentDoc, jsonOutput bool) error {
	if jsonOutput {
		for _, r := range recents {
			if err := iojson.WriteLine(out, recentInfo{
				Path:     r.Path,
				OpenedAt: r.OpenedAt.UTC().Format(time.RFC3339),
			}); err != nil {
				return fmt.Errorf("encode recent: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tOPENED")
	for _, r := range recents {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.Path, r.OpenedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// entryInfo is the JSON output format for dubcal ls --json.
type entryInfo struct {
	Path       string `json:"path"`
	Rev        int    `json:"rev"`
	Segments   int    `json:"segments"`
	DurationMs int    `json:"duration_ms"`
}

// recentInfo is the JSON output format for dubcal ls --recent --json.
type recentInfo struct {
	Path     string `json:"path"`
	OpenedAt string `json:"opened_at"`
}

func formatDuration(ms int) string {
	return fmt.Sprintf("%02d:%02d", ms/60000, ms%60000/1000)
}

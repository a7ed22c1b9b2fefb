package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dubcal/internal/export"
	"github.com/colonyops/dubcal/internal/store/jsonfile"
)

type ExportCmd struct {
	flags *Flags

	// flags
	translated bool
	outPath    string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export a document's segments as SubRip subtitles",
		UsageText: "dubcal export <document> [--translated] [-o out.srt]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "translated",
				Usage:       "use translated text, falling back to source text",
				Destination: &cmd.translated,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (stdout if not set)",
				Destination: &cmd.outPath,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	docPath := c.Args().First()
	if docPath == "" {
		return fmt.Errorf("usage: dubcal export <document>")
	}

	doc, err := jsonfile.NewDocumentStore(docPath).Load(ctx)
	if err != nil {
		return err
	}

	srt := export.RenderSRT(doc.Segments, cmd.translated)

	if cmd.outPath == "" {
		_, err := fmt.Fprint(c.Root().Writer, srt)
		return err
	}
	if err := os.WriteFile(cmd.outPath, []byte(srt), 0o644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	return nil
}

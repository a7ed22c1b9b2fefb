package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dubcal/internal/core/document"
	"github.com/colonyops/dubcal/internal/core/validate"
	"github.com/colonyops/dubcal/pkg/iojson"
)

type InspectCmd struct {
	flags  *Flags
	reader iojson.FileReader[document.Document]
}

// NewInspectCmd creates a new inspect command
func NewInspectCmd(flags *Flags) *InspectCmd {
	return &InspectCmd{flags: flags}
}

// Register adds the inspect command to the application
func (cmd *InspectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "inspect",
		Usage:     "Validate a document and print a summary",
		UsageText: "dubcal inspect -f doc.json\n   cat doc.json | dubcal inspect",
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})
	return app
}

// inspectReport is the JSON output of dubcal inspect.
type inspectReport struct {
	Schema      string `json:"schema"`
	Rev         int    `json:"rev"`
	Segments    int    `json:"segments"`
	DurationMs  int    `json:"duration_ms"`
	Overlaps    int    `json:"overlaps"`
	Fingerprint string `json:"fingerprint"`
	Valid       bool   `json:"valid"`
	Problems    string `json:"problems,omitempty"`
}

func (cmd *InspectCmd) run(ctx context.Context, c *cli.Command) error {
	doc, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	doc.DetectOverlaps()
	overlaps := 0
	for _, s := range doc.Segments {
		if s.Flags.Overlap {
			overlaps++
		}
	}

	report := inspectReport{
		Schema:      doc.Schema,
		Rev:         doc.History.Rev,
		Segments:    len(doc.Segments),
		DurationMs:  doc.EndMs(),
		Overlaps:    overlaps,
		Fingerprint: doc.ComputeFingerprint(),
		Valid:       true,
	}
	if err := validate.Document(doc); err != nil {
		report.Valid = false
		report.Problems = err.Error()
	}

	if err := iojson.Write(report); err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("document is invalid")
	}
	return nil
}

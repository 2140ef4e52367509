package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/scene"
	"github.com/go-fit/fit/pkg/geometry"
)

// measureOpts holds the command-line flags for the measure command.
type measureOpts struct {
	jsonOut bool
}

// newMeasureCmd creates the measure command. It partitions the scene's
// items into lines under the configured width and reports the aggregate
// size along with the per-line breakdown.
func newMeasureCmd() *cobra.Command {
	var opts measureOpts

	cmd := &cobra.Command{
		Use:   "measure <scene>",
		Short: "Measure a scene and report its line partition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the measurement as JSON")

	return cmd
}

func runMeasure(ctx context.Context, path string, opts *measureOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	logger.Debugf("measuring %d items", len(doc.Items))

	report := buildLayoutReport(doc, path, geometry.Offset{}, false)

	if opts.jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printKeyValue("scene", path)
	printKeyValue("size", fmt.Sprintf("%g x %g", report.Size.Width, report.Size.Height))
	printStats(len(doc.Items), len(report.Lines))
	bounded := doc.Flow.Width > 0
	for _, line := range report.Lines {
		detail := fmt.Sprintf("line %d: %d items, length %g, height %g",
			line.Index, len(line.Items), line.Length, line.Height)
		if bounded {
			detail += fmt.Sprintf(", fill %.0f%%", line.Fill*100)
		}
		printDetail("%s", detail)
	}

	return nil
}

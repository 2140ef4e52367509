package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/scene"
	"github.com/go-fit/fit/pkg/geometry"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	jsonOut bool
	at      string // container origin as "x,y"
}

// newPlaceCmd creates the place command. It measures the scene, realizes
// the layout within its measured bounds, and reports every item's absolute
// frame.
func newPlaceCmd() *cobra.Command {
	opts := placeOpts{at: "0,0"}

	cmd := &cobra.Command{
		Use:   "place <scene>",
		Short: "Place a scene and report item frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the placement as JSON")
	cmd.Flags().StringVar(&opts.at, "at", opts.at, "container origin as x,y")

	return cmd
}

func runPlace(ctx context.Context, path string, opts *placeOpts) error {
	logger := loggerFromContext(ctx)

	origin, err := parseOrigin(opts.at)
	if err != nil {
		return err
	}

	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	logger.Debugf("placing %d items at (%g, %g)", len(doc.Items), origin.X, origin.Y)

	report := buildLayoutReport(doc, path, origin, true)

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
	for _, item := range report.Items {
		printDetail("item %d at (%g, %g) size %gx%g",
			item.Index, item.X, item.Y, item.Width, item.Height)
	}

	return nil
}

// parseOrigin parses an "x,y" pair.
func parseOrigin(s string) (geometry.Offset, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geometry.Offset{}, fmt.Errorf("invalid origin %q (want x,y)", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Offset{}, fmt.Errorf("invalid origin %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Offset{}, fmt.Errorf("invalid origin %q: %w", s, err)
	}
	return geometry.Offset{X: x, Y: y}, nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/scene"
	"github.com/go-fit/fit/pkg/rendering"
)

const (
	formatPNG = "png"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	outDir  string  // output directory (next to each scene if empty)
	format  string  // output format: "png" or "svg"
	scale   float64 // device pixels per layout unit
	padding float64 // margin around the arrangement, in layout units
	labels  bool    // draw item indices
	guides  bool    // draw line guides
}

// newRenderCmd creates the render command for generating scene previews.
// Arguments are scene paths or doublestar glob patterns.
//
// Default settings:
//   - format: png
//   - scale: 2 device pixels per layout unit
//   - padding: 8 layout units
//   - labels: true (draw item indices)
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		format:  formatPNG,
		scale:   2,
		padding: 8,
		labels:  true,
	}

	cmd := &cobra.Command{
		Use:   "render <scene>...",
		Short: "Render scenes to PNG or SVG previews",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "output directory (default: next to each scene)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png or svg")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "device pixels per layout unit")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "margin around the arrangement, in layout units")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw item indices")
	cmd.Flags().BoolVar(&opts.guides, "guides", opts.guides, "draw line guides")

	return cmd
}

// validateFormat checks that the format is either "png" or "svg".
func validateFormat(f string) error {
	if f != formatPNG && f != formatSVG {
		return fmt.Errorf("invalid format: %s (must be 'png' or 'svg')", f)
	}
	return nil
}

func runRender(ctx context.Context, patterns []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	paths, err := scene.Glob(patterns)
	if err != nil {
		return err
	}

	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", opts.outDir, err)
		}
	}

	for _, path := range paths {
		out, err := renderScene(path, opts)
		if err != nil {
			return err
		}
		printFile(out)
	}

	p.done(fmt.Sprintf("Rendered %d scene(s)", len(paths)))
	if len(paths) == 1 {
		printNextStep("Inspect live", "fit serve "+paths[0])
	}

	return nil
}

// renderScene renders one scene and returns the output path.
func renderScene(path string, opts *renderOpts) (string, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return "", err
	}

	r := rendering.Renderer{
		Scale:      opts.scale,
		Padding:    opts.padding,
		ShowLabels: opts.labels,
		ShowGuides: opts.guides,
	}

	out := outputPath(path, opts)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	layout := doc.Layout()
	items := doc.Elements()
	proposal := doc.Proposal()

	switch opts.format {
	case formatSVG:
		err = r.WriteSVG(f, layout, items, proposal)
	default:
		err = r.WritePNG(f, layout, items, proposal)
	}
	if err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}

// outputPath returns the preview path for a scene: the scene name with the
// render extension, next to the scene or under the output directory.
func outputPath(scenePath string, opts *renderOpts) string {
	base := filepath.Base(scenePath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + opts.format

	dir := opts.outDir
	if dir == "" {
		dir = filepath.Dir(scenePath)
	}
	return filepath.Join(dir, base)
}

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/scene"
)

// fmtOpts holds the command-line flags for the fmt command.
type fmtOpts struct {
	check bool
}

// newFmtCmd creates the fmt command. It rewrites scene files into their
// canonical form: normalized setting order with defaults dropped, so
// semantically identical scenes end up byte-identical.
func newFmtCmd() *cobra.Command {
	var opts fmtOpts

	cmd := &cobra.Command{
		Use:   "fmt <scene>...",
		Short: "Rewrite scene files in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "report non-canonical scenes without rewriting (exit 1 if any)")

	return cmd
}

func runFmt(ctx context.Context, patterns []string, opts *fmtOpts) error {
	logger := loggerFromContext(ctx)

	paths, err := scene.Glob(patterns)
	if err != nil {
		return err
	}

	var dirty, rewritten int
	for _, path := range paths {
		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read scene: %w", err)
		}

		doc, err := scene.Load(path)
		if err != nil {
			return err
		}
		formatted, err := scene.Format(doc, path)
		if err != nil {
			return err
		}

		if bytes.Equal(original, formatted) {
			logger.Debugf("%s already canonical", path)
			continue
		}

		if opts.check {
			dirty++
			printWarning("%s is not canonical", path)
			continue
		}

		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			return fmt.Errorf("failed to rewrite scene: %w", err)
		}
		rewritten++
		printFile(path)
	}

	if opts.check {
		if dirty > 0 {
			return fmt.Errorf("%d scene(s) need formatting", dirty)
		}
		printInfo("All %d scene(s) canonical", len(paths))
		return nil
	}

	if rewritten == 0 {
		printInfo("All %d scene(s) already canonical", len(paths))
	} else {
		printSuccess("Formatted %d scene(s)", rewritten)
	}
	return nil
}

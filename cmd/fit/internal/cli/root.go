package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/cache"
	fiterrors "github.com/go-fit/fit/pkg/errors"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the fit CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (measure,
// place, render, fmt, serve, watch), configures logging based on the
// --verbose flag, and executes the command tree under ctx. Long-running
// commands (serve, watch) stop when ctx is cancelled.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	var cacheDir string

	root := &cobra.Command{
		Use:          "fit",
		Short:        "fit packs items into width-bounded lines and renders the result",
		Long:         `fit is a flow layout tool: it packs fixed-size items into width-bounded lines, reports the measured arrangement, and renders PNG or SVG previews. Scenes are described in YAML or the compact .fit DSL.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
			fiterrors.SetHandler(&fiterrors.LogHandler{Verbose: verbose})
			if cacheDir != "" {
				cache.SetCacheDir(cacheDir)
			}
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("fit %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "override the cache directory (default ~/.fit)")

	root.AddCommand(newMeasureCmd())
	root.AddCommand(newPlaceCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newWatchCmd())

	return root.ExecuteContext(ctx)
}

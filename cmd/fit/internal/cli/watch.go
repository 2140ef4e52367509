package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/cache"
	"github.com/go-fit/fit/cmd/fit/internal/scene"
	fiterrors "github.com/go-fit/fit/pkg/errors"
	"github.com/go-fit/fit/pkg/rendering"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	format   string
	debounce time.Duration
}

// newWatchCmd creates the watch command. It renders every matched scene
// into the preview cache, then re-renders a scene whenever its file
// changes, until interrupted.
func newWatchCmd() *cobra.Command {
	opts := watchOpts{format: formatPNG, debounce: 200 * time.Millisecond}

	cmd := &cobra.Command{
		Use:   "watch <scene>...",
		Short: "Re-render scene previews on change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runWatch(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png or svg")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "settle window before re-rendering")

	return cmd
}

func runWatch(ctx context.Context, patterns []string, opts *watchOpts) error {
	logger := loggerFromContext(ctx)

	paths, err := scene.Glob(patterns)
	if err != nil {
		return err
	}

	watched := make(map[string]bool, len(paths))
	absPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		absPaths = append(absPaths, abs)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories rather than files: editors replace files on save,
	// and a watch on the old inode would go stale.
	dirs := make(map[string]bool)
	for _, abs := range absPaths {
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	previews, err := cache.PreviewDir()
	if err != nil {
		return err
	}

	for _, abs := range absPaths {
		renderPreview(abs, opts, logger)
	}
	printInfo("Watching %d scene(s); previews in %s", len(paths), previews)

	// Debounce burst writes: editors fire several events per save.
	timer := time.NewTimer(opts.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debugf("%s %s", event.Op, event.Name)
				pending[abs] = true
				timer.Reset(opts.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch error: %v", err)

		case <-timer.C:
			for path := range pending {
				delete(pending, path)
				renderPreview(path, opts, logger)
			}
		}
	}
}

// renderPreview renders one scene into the preview cache. Failures are
// reported and swallowed so a half-saved scene does not stop the watch.
func renderPreview(path string, opts *watchOpts, logger *log.Logger) {
	defer fiterrors.Recover("watch.render")

	doc, err := scene.Load(path)
	if err != nil {
		printWarning("%v", err)
		return
	}

	out, err := cache.PreviewPath(path, opts.format)
	if err != nil {
		printWarning("%v", err)
		return
	}

	f, err := os.Create(out)
	if err != nil {
		printWarning("failed to create %s: %v", out, err)
		return
	}
	defer f.Close()

	r := rendering.Renderer{Scale: 2, Padding: 8, ShowLabels: true}
	layout := doc.Layout()
	items := doc.Elements()
	if opts.format == formatSVG {
		err = r.WriteSVG(f, layout, items, doc.Proposal())
	} else {
		err = r.WritePNG(f, layout, items, doc.Proposal())
	}
	if err != nil {
		printWarning("%v", err)
		return
	}

	logger.Debugf("rendered %s", path)
	printFile(out)
}

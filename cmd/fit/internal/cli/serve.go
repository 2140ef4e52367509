package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-fit/fit/cmd/fit/internal/scene"
	fiterrors "github.com/go-fit/fit/pkg/errors"
	"github.com/go-fit/fit/pkg/geometry"
	"github.com/go-fit/fit/pkg/rendering"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string
}

// newServeCmd creates the serve command: a live layout inspector over HTTP.
// The scene file is re-read on every request, so edits show up on reload.
//
// Endpoints:
//   - /layout: measurement and placement report as JSON
//   - /scene: the scene in canonical form
//   - /preview.png: rendered preview (query: scale, guides=1)
//   - /preview.svg: rendered preview (query: scale, guides=1)
//   - /health: liveness check
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: "localhost:7878"}

	cmd := &cobra.Command{
		Use:   "serve <scene>",
		Short: "Serve a live layout inspector over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

func runServe(ctx context.Context, path string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	// Surface scene problems before binding the port.
	if _, err := scene.Load(path); err != nil {
		return err
	}

	// Bind listener first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("inspector listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/layout", handleLayout(path))
	mux.HandleFunc("/scene", handleScene(path))
	mux.HandleFunc("/preview.png", handlePreview(path, formatPNG))
	mux.HandleFunc("/preview.svg", handlePreview(path, formatSVG))
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("inspector shutdown: %v", err)
		}
	}()

	fmt.Println(StyleTitle.Render("fit preview"))
	printKeyValue("scene", path)
	printKeyValue("layout", fmt.Sprintf("http://%s/layout", opts.addr))
	printKeyValue("preview", fmt.Sprintf("http://%s/preview.png", opts.addr))
	printNewline()
	printNextStep("Stop", "ctrl-c")
	logger.Debugf("listening on %s", listener.Addr())

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// handleLayout returns the scene's measurement and placements as JSON.
func handleLayout(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		doc, err := scene.Load(path)
		if err != nil {
			httpError(w, err)
			return
		}

		report := buildLayoutReport(doc, path, geometry.Offset{}, true)

		// Encode to buffer first so we can catch errors.
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// handleScene returns the scene in canonical form.
func handleScene(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		doc, err := scene.Load(path)
		if err != nil {
			httpError(w, err)
			return
		}

		data, err := scene.Format(doc, path)
		if err != nil {
			httpError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(data)
	}
}

// handlePreview renders the scene on demand. Query parameters: scale sets
// device pixels per layout unit, guides=1 draws line guides.
func handlePreview(path, format string) http.HandlerFunc {
	contentType := "image/png"
	if format == formatSVG {
		contentType = "image/svg+xml"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		doc, err := scene.Load(path)
		if err != nil {
			httpError(w, err)
			return
		}

		renderer := rendering.Renderer{Scale: 2, Padding: 8, ShowLabels: true}
		if v := parseFloatQuery(r, "scale"); v > 0 {
			renderer.Scale = v
		}
		if r.URL.Query().Get("guides") == "1" {
			renderer.ShowGuides = true
		}

		w.Header().Set("Content-Type", contentType)
		layout := doc.Layout()
		items := doc.Elements()
		if format == formatSVG {
			err = renderer.WriteSVG(w, layout, items, doc.Proposal())
		} else {
			err = renderer.WritePNG(w, layout, items, doc.Proposal())
		}
		if err != nil {
			// Headers are gone; best effort is to drop the connection.
			return
		}
	}
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// httpError maps scene errors to 400 and everything else to 500.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if fiterrors.KindOf(err) == fiterrors.KindScene {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

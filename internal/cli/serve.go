package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/regionviz/pkg/cfg"
	"github.com/matzehuels/regionviz/pkg/region"
	"github.com/matzehuels/regionviz/pkg/render"
	"github.com/matzehuels/regionviz/pkg/render/regiongraph"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address
}

// newServeCmd creates the serve command, a small local web viewer for the
// region graph. The page re-renders on reload, so the style toggles in the
// query string take effect without restarting the server.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the region graph over HTTP for browsing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8321", "listen address")

	return cmd
}

// runServe loads the document once and serves it until the context is
// cancelled (Ctrl+C).
func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	fn, info, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %q: %d blocks, %d regions", fn.Name(), fn.BlockCount(), len(info.Regions()))

	srv := &http.Server{
		Addr:    opts.addr,
		Handler: newServeHandler(fn, info),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Serving %s", StyleLink.Render("http://"+opts.addr))
	printInfo("%s", StyleDim.Render("Press Ctrl+C to stop"))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServeHandler builds the router: an HTML index with style toggles and
// the rendered SVG itself.
func newServeHandler(fn *cfg.Function, info *region.Info) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, indexPage, fn.Name(), req.URL.RawQuery)
	})

	r.Get("/graph.svg", func(w http.ResponseWriter, req *http.Request) {
		opts := regiongraph.Options{
			OnlySimpleRegions: req.URL.Query().Get("only-simple") == "1",
			RegionOnly:        req.URL.Query().Get("region-only") == "1",
		}
		dot := regiongraph.ToDOT(fn, info, opts)

		svg, err := render.SVG(req.Context(), dot)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
	})

	return r
}

// indexPage is the viewer shell. The first verb is the function name, the
// second forwards the index query string to the SVG endpoint.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<title>Region graph for '%[1]s'</title>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  nav a { margin-right: 1rem; }
  img { max-width: 100%%; border: 1px solid #ddd; margin-top: 1rem; }
</style>
</head>
<body>
<h1>Region graph for '%[1]s'</h1>
<nav>
  <a href="/">full</a>
  <a href="/?only-simple=1">simple regions only</a>
  <a href="/?region-only=1">region skeleton</a>
</nav>
<img src="/graph.svg?%[2]s" alt="region graph">
</body>
</html>
`

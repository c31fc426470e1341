package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
	"github.com/aws-ros-dev/colcon-package-information/pkg/render"
)

// serveCommand creates the serve command: a small HTTP server exposing
// the rendered dependency graph of the workspace. Every request
// re-runs discovery, so the served graph follows manifest edits within
// the cache TTL.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags workspaceFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dependency graph over HTTP",
		Long: `Serve the dependency graph of the workspace over HTTP.

Endpoints:
  /graph.svg   the graph rendered as SVG (query: ?cluster=1)
  /graph.dot   the graph in DOT syntax (query: ?cluster=1)
  /matrix      the ASCII adjacency matrix as plain text
  /healthz     liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "localhost:8750", "listen address")

	return cmd
}

// router builds the HTTP routes served by the serve command.
func (c *CLI) router(flags *workspaceFlags) http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Get("/graph.dot", func(w http.ResponseWriter, req *http.Request) {
		c.serveGraph(w, req, flags, formatDOT)
	})
	r.Get("/graph.svg", func(w http.ResponseWriter, req *http.Request) {
		c.serveGraph(w, req, flags, formatSVG)
	})
	r.Get("/matrix", func(w http.ResponseWriter, req *http.Request) {
		c.serveMatrix(w, req, flags)
	})
	return r
}

func (c *CLI) runServe(ctx context.Context, addr string, flags *workspaceFlags) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.router(flags),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Serving dependency graph on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger tags every request with an ID and logs method, path
// and duration.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, req)
		c.Logger.Debugf("%s %s request_id=%s duration=%s",
			req.Method, req.URL.Path, id, time.Since(start).Round(time.Millisecond))
	})
}

func (c *CLI) serveGraph(w http.ResponseWriter, req *http.Request, flags *workspaceFlags, format string) {
	set, err := c.loadNodeSetQuiet(req.Context(), flags)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	direct := pkggraph.CollectDirect(set)
	indirect := pkggraph.CollectIndirect(set, direct)
	dot := pkggraph.RenderDot(set, direct, indirect, pkggraph.DotOptions{
		Cluster: req.URL.Query().Get("cluster") == "1",
	})

	if format == formatDOT {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		fmt.Fprint(w, dot)
		return
	}

	svg, err := render.SVG(req.Context(), dot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (c *CLI) serveMatrix(w http.ResponseWriter, req *http.Request, flags *workspaceFlags) {
	set, err := c.loadNodeSetQuiet(req.Context(), flags)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	direct := pkggraph.CollectDirect(set)
	indirect := pkggraph.CollectIndirect(set, direct)
	matrix := pkggraph.BuildMatrix(set, direct, indirect)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, matrix.Render(pkggraph.MatrixOptions{Legend: true, Density: true}))
}

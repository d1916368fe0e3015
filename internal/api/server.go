// Package api serves the tile grid over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness and build info
//	GET  /v1/textsize/{columns}    label size for a column count
//	POST /v1/layout                measure and lay out a tile document
//	POST /v1/render/{format}       lay out and render (svg, png, json, txt)
//	GET  /v1/settings              current settings snapshot
//	PUT  /v1/settings/{key}        write a grid setting
//
// Layout and render requests carry a tile document ("tiles" and an optional
// "frame") plus any [pipeline.Options] fields at the top level. Settings not
// given in the request come from the server's settings store.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/quicktiles/pkg/observability"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server handles API requests. It is safe for concurrent use.
type Server struct {
	runner  *pipeline.Runner
	store   settings.Store
	theme   settings.Theme
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the settings store consulted for unset request settings.
// theme is the fallback for a store without a theme of its own.
func WithStore(s settings.Store, theme settings.Theme) Option {
	return func(srv *Server) {
		srv.store = s
		srv.theme = theme
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// WithTimeout bounds each request's processing time.
func WithTimeout(d time.Duration) Option {
	return func(srv *Server) { srv.timeout = d }
}

// New creates a server that runs requests through runner. Without a store,
// settings default to an empty in-memory store.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		theme:   settings.DefaultTheme(),
		logger:  log.New(io.Discard),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = settings.NewMemoryStore(nil)
	}
	s.theme = s.theme.WithDefaults()
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/textsize/{columns}", s.handleTextSize)
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings/{key}", s.handlePutSetting)
	})
	return r
}

// observe reports each request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package server serves the shell's fragments and renders its pages on the
// server, so the site works with htmx boosting and without JavaScript.
//
// Each page request runs a pageswap.Router against an in-memory document:
// the route table, the not-found redirect and the active-link marking are
// the same as in the browser.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jackielii/pageswap"
	"github.com/jackielii/pageswap/web"
)

type Server struct {
	routes    *pageswap.RouteTable
	fragments fs.FS
	fetcher   pageswap.Fetcher
	title     func(string) string
	log       *zap.Logger
	registry  *prometheus.Registry
	metrics   *metrics
	onError   func(http.ResponseWriter, *http.Request, error)
	mux       chi.Router
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithFragments serves fragments from fsys instead of the embedded set.
func WithFragments(fsys fs.FS) Option {
	return func(s *Server) {
		s.fragments = fsys
	}
}

// WithRegistry registers the server's metrics on reg and serves it at
// /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

func WithTitleFormat(format func(string) string) Option {
	return func(s *Server) {
		s.title = format
	}
}

func WithErrorHandler(onError func(http.ResponseWriter, *http.Request, error)) Option {
	return func(s *Server) {
		s.onError = onError
	}
}

func New(routes *pageswap.RouteTable, opts ...Option) *Server {
	s := &Server{
		routes:    routes,
		fragments: web.FS,
		title:     pageswap.SiteTitle("Polleria Montiel"),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.onError == nil {
		s.onError = func(w http.ResponseWriter, r *http.Request, err error) {
			s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
	s.fetcher = pageswap.FSFetcher{FS: s.fragments}
	s.metrics = newMetrics(s.registry)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, s.logRequests, middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/src/pages/*", s.serveFragment(http.FileServer(http.FS(s.fragments))))
	r.Get("/*", s.servePage)
	s.mux = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
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
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

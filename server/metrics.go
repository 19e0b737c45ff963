package server

import (
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	fragments *prometheus.CounterVec
	renders   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pageswap",
			Name:      "fragment_requests_total",
			Help:      "Fragment file requests by fragment and status code.",
		}, []string{"fragment", "code"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pageswap",
			Name:      "page_renders_total",
			Help:      "Server-side page renders by route and kind (full or partial).",
		}, []string{"route", "kind"}),
	}
	reg.MustRegister(m.fragments, m.renders)
	return m
}

// serveFragment counts fragment requests. Names missing from the fragment
// set are counted as "unknown" to bound label cardinality.
func (s *Server) serveFragment(files http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(ww, r)
		} else {
			files.ServeHTTP(ww, r)
		}
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		label := path.Base(name)
		if fi, err := fs.Stat(s.fragments, name); err != nil || fi.IsDir() {
			label = "unknown"
		}
		s.metrics.fragments.WithLabelValues(label, strconv.Itoa(ww.Status())).Inc()
	}
}

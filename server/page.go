package server

import (
	"fmt"
	"net/http"

	"github.com/angelofallars/htmx-go"
	"go.uber.org/zap"

	"github.com/jackielii/pageswap"
	"github.com/jackielii/pageswap/memdom"
)

// servePage renders r's path through a Router over an in-memory document.
// htmx main-slot swaps get a partial and an HX-Push-Url with the final
// path, which differs from the requested one after a not-found redirect.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	doc := memdom.New(memdom.WithInstantTransitions())
	hist := memdom.NewHistory(r.URL.Path)
	rt := pageswap.New(s.routes, s.fetcher, doc, hist,
		pageswap.WithLogger(s.log),
		pageswap.WithTitleFormat(s.title),
		pageswap.WithTransitionTimeout(0),
	)
	defer rt.Close()
	if err := rt.Initialize(r.Context()); err != nil {
		s.onError(w, r, fmt.Errorf("render %s: %w", r.URL.Path, err))
		return
	}

	final := hist.Path()
	route := s.routes.Resolve(final)
	headerTitle, _ := doc.TextByID("page-title")
	v := view{
		Title:       doc.Title(),
		HeaderTitle: headerTitle,
		Header:      doc.HTML(pageswap.SlotHeader),
		Nav:         doc.HTML(pageswap.SlotNav),
		Main:        doc.HTML(pageswap.SlotMain),
	}

	kind, comp := "full", shellPage(v)
	partial := isMainSwap(r)
	if partial {
		kind, comp = "partial", mainPartial(v)
	}

	buf := newPageBuffer()
	defer buf.release()
	if err := comp.Render(r.Context(), buf); err != nil {
		s.onError(w, r, fmt.Errorf("render %s: %w", r.URL.Path, err))
		return
	}

	status := 0
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if htmx.IsHTMX(r) {
		resp := htmx.NewResponse().PushURL(final)
		if !partial {
			// a full page for an htmx request replaces the whole body
			resp = resp.Retarget("body")
		}
		if err := resp.Write(w); err != nil {
			s.onError(w, r, err)
			return
		}
	} else if s.routes.IsNotFound(route) {
		status = http.StatusNotFound
	}
	if err := buf.flush(w, status); err != nil {
		s.log.Debug("write page", zap.Error(err))
	}
	s.metrics.renders.WithLabelValues(route.Path, kind).Inc()
}

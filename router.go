package pageswap

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Router swaps page fragments into the main slot of a Document and runs
// the page module lifecycle. All state lives on the router; construct one
// per page load.
//
// Navigations are serialized: a new navigation cancels the one in flight,
// and a navigation whose generation is no longer current stops before its
// next write. A navigation started while a page module hook runs is
// rendered once the current render finishes.
type Router struct {
	routes  *RouteTable
	fetcher Fetcher
	doc     Document
	history History
	modules *Registry
	log     *zap.Logger

	transitionTimeout time.Duration
	browserTitle      func(string) string
	headerFragment    string
	navFragment       string

	cache fragmentCache
	gen   atomic.Uint64

	// navMu guards the fields below up to renderMu. History pushes and
	// generation bumps happen under it.
	navMu       sync.Mutex
	initialized bool
	closed      bool
	hooking     bool
	baseCtx     context.Context
	baseCancel  context.CancelFunc
	inflight    uint64
	cancel      context.CancelFunc
	pending     *navigation
	stops       []func()

	// renderMu serializes resolutions. The fields below are written with
	// both locks held and may be read under either.
	renderMu   sync.Mutex
	links      []Link
	active     Module
	activeName string
}

// navigation is one resolution of path under generation gen.
type navigation struct {
	ctx  context.Context
	gen  uint64
	path string
	done func()
}

// New creates a router. The document slots must already exist.
func New(routes *RouteTable, fetcher Fetcher, doc Document, history History, opts ...Option) *Router {
	r := &Router{
		routes:            routes,
		fetcher:           fetcher,
		doc:               doc,
		history:           history,
		modules:           NewRegistry(),
		log:               zap.NewNop(),
		transitionTimeout: DefaultTransitionTimeout,
		browserTitle:      SiteTitle("Polleria Montiel"),
		headerFragment:    DefaultHeaderFragment,
		navFragment:       DefaultNavFragment,
		baseCtx:           context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize loads the header and navigation, registers the click and
// pop-state listeners and renders the current path. Event-driven
// navigations run under ctx until Close.
func (r *Router) Initialize(ctx context.Context) error {
	r.navMu.Lock()
	if r.initialized {
		r.navMu.Unlock()
		return ErrAlreadyInitialized
	}
	if r.closed {
		r.navMu.Unlock()
		return ErrClosed
	}
	r.initialized = true
	r.baseCtx, r.baseCancel = context.WithCancel(ctx)
	r.navMu.Unlock()

	r.doc.SetHidden(SlotLoader, false)

	var (
		g                 errgroup.Group
		header, nav       string
		headerErr, navErr error
	)
	g.Go(func() error {
		header, headerErr = r.fragment(ctx, r.headerFragment)
		return nil
	})
	g.Go(func() error {
		nav, navErr = r.fragment(ctx, r.navFragment)
		return nil
	})
	_ = g.Wait()
	r.fillSlot(SlotHeader, r.headerFragment, header, headerErr)
	r.fillSlot(SlotNav, r.navFragment, nav, navErr)

	links := r.doc.Links(SlotNav)
	paths := make([]string, 0, len(links))
	for _, l := range links {
		paths = append(paths, linkPath(l.Href))
	}
	if missing := r.routes.Unknown(paths); len(missing) > 0 {
		r.log.Warn("navigation links without a route", zap.Strings("paths", missing))
	}
	r.renderMu.Lock()
	r.navMu.Lock()
	r.links = links
	r.navMu.Unlock()
	r.renderMu.Unlock()

	stopClick := r.doc.OnLinkClick(r.handleLinkClick)
	stopPop := r.history.OnPopState(r.handlePopState)
	r.navMu.Lock()
	r.stops = append(r.stops, stopClick, stopPop)
	r.navMu.Unlock()

	err := r.resolve(ctx, r.history.Path(), false)
	r.doc.SetHidden(SlotLoader, true)
	if errors.Is(err, ErrNavigationSuperseded) {
		return nil
	}
	return err
}

// Navigate pushes path onto the history and renders it. Navigating to the
// current path does nothing.
func (r *Router) Navigate(ctx context.Context, path string) error {
	return r.resolve(ctx, path, true)
}

// PopState renders the current history entry after a back or forward
// navigation.
func (r *Router) PopState(ctx context.Context) error {
	return r.resolve(ctx, r.history.Path(), false)
}

// Close stops the listeners, abandons any navigation in flight and runs
// the active page module's cleanup.
func (r *Router) Close() error {
	r.navMu.Lock()
	if r.closed {
		r.navMu.Unlock()
		return nil
	}
	r.closed = true
	r.gen.Inc()
	if r.cancel != nil {
		r.cancel()
	}
	if r.baseCancel != nil {
		r.baseCancel()
	}
	stops := r.stops
	r.stops = nil
	// a hook is running under renderMu; that render unloads the module
	hooking := r.hooking
	r.navMu.Unlock()

	for _, stop := range stops {
		stop()
	}
	if hooking {
		return nil
	}

	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	r.unloadModule(r.log)
	return nil
}

// ActiveModule returns the name of the initialized page module, if any.
func (r *Router) ActiveModule() string {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	return r.activeName
}

// Links returns the navigation links snapshot taken by Initialize.
func (r *Router) Links() []Link {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	return append([]Link(nil), r.links...)
}

func (r *Router) handleLinkClick(href string) {
	r.navMu.Lock()
	ctx := r.baseCtx
	r.navMu.Unlock()
	if err := r.Navigate(ctx, href); err != nil && !errors.Is(err, ErrNavigationSuperseded) {
		r.log.Warn("link navigation failed", zap.String("href", href), zap.Error(err))
	}
}

func (r *Router) handlePopState(path string) {
	r.navMu.Lock()
	ctx := r.baseCtx
	r.navMu.Unlock()
	if err := r.resolve(ctx, path, false); err != nil && !errors.Is(err, ErrNavigationSuperseded) {
		r.log.Warn("history navigation failed", zap.String("path", path), zap.Error(err))
	}
}

// begin starts a navigation to path under a new generation and cancels
// the one in flight. With push set, path is pushed onto the history in the
// same critical section; pushing the current path starts nothing and
// returns a nil navigation. While a hook runs the navigation is queued
// and scheduled reports true.
func (r *Router) begin(parent context.Context, path string, push bool) (nav *navigation, scheduled bool, err error) {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	if r.closed {
		return nil, false, ErrClosed
	}
	if push {
		if r.history.Path() == path {
			return nil, false, nil
		}
		r.history.Push(path)
	}
	gen := r.gen.Inc()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.inflight, r.cancel = gen, cancel
	nav = &navigation{ctx: ctx, gen: gen, path: path, done: func() {
		cancel()
		r.navMu.Lock()
		if r.inflight == gen {
			r.cancel = nil
		}
		r.navMu.Unlock()
	}}
	if r.hooking {
		r.pending = nav
		return nav, true, nil
	}
	return nav, false, nil
}

// stale reports why a navigation of generation gen must stop, if it must.
func (r *Router) stale(ctx context.Context, gen uint64) error {
	if r.gen.Load() != gen {
		return ErrNavigationSuperseded
	}
	return ctx.Err()
}

func (r *Router) resolve(parent context.Context, path string, push bool) error {
	nav, scheduled, err := r.begin(parent, path, push)
	if err != nil || nav == nil || scheduled {
		return err
	}
	r.renderMu.Lock()
	defer r.renderMu.Unlock()
	return r.run(nav)
}

// run renders nav, then any navigation queued by a page module hook while
// it rendered. renderMu must be held.
func (r *Router) run(nav *navigation) error {
	for {
		err := r.render(nav.ctx, nav.gen, nav.path, false)
		nav.done()

		r.navMu.Lock()
		next, closed := r.pending, r.closed
		r.pending = nil
		r.navMu.Unlock()
		if next == nil {
			if closed {
				r.unloadModule(r.log)
			}
			return err
		}
		nav = next
	}
}

// pushIfCurrent pushes path unless generation gen was superseded.
func (r *Router) pushIfCurrent(gen uint64, path string) bool {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	if r.gen.Load() != gen {
		return false
	}
	r.history.Push(path)
	return true
}

// render performs one resolution. renderMu must be held. A main fragment
// failure redirects to the not-found route once; redirected marks that
// second pass. Unless superseded, render leaves the main slot faded in and
// the loader hidden however it returns.
func (r *Router) render(ctx context.Context, gen uint64, path string, redirected bool) (err error) {
	route := r.routes.Resolve(path)
	log := r.log.With(zap.String("path", path), zap.String("route", route.Name))
	if serr := r.stale(ctx, gen); serr != nil {
		return serr
	}

	r.doc.SetHidden(SlotLoader, false)
	r.doc.SetClass(SlotMain, fadeOutClass, true)
	defer func() {
		if errors.Is(err, ErrNavigationSuperseded) {
			return
		}
		r.doc.SetClass(SlotMain, fadeOutClass, false)
		r.doc.SetHidden(SlotLoader, true)
	}()
	if werr := waitTransition(ctx, r.doc.TransitionEnd(SlotMain), r.transitionTimeout); werr != nil {
		return r.staleOr(ctx, gen, werr)
	}

	markup, ferr := r.fragment(ctx, route.Fragment)
	if serr := r.stale(ctx, gen); serr != nil {
		return serr
	}
	if ferr != nil {
		log.Warn("main fragment failed", zap.String("fragment", route.Fragment), zap.Error(ferr))
		if !redirected && !r.routes.IsNotFound(route) {
			nf := r.routes.NotFound()
			if !r.pushIfCurrent(gen, nf.Path) {
				return ErrNavigationSuperseded
			}
			return r.render(ctx, gen, nf.Path, true)
		}
		markup = slotErrorMarkup
	}
	r.doc.SetHTML(SlotMain, markup)
	r.doc.SetTitle(r.browserTitle(route.Name))
	r.doc.SetText(SlotHeader, pageTitleID, r.routes.HeaderTitle(route))

	// hooks may start a navigation of their own
	r.unloadModule(log)
	if r.gen.Load() != gen {
		return ErrNavigationSuperseded
	}
	if route.Module != "" {
		r.loadModule(route.Module, log)
		if r.gen.Load() != gen {
			return ErrNavigationSuperseded
		}
	}

	for _, l := range r.links {
		r.doc.SetLinkClass(SlotNav, l, activeLinkClass, linkPath(l.Href) == path)
	}
	log.Debug("rendered")
	return nil
}

func (r *Router) staleOr(ctx context.Context, gen uint64, err error) error {
	if serr := r.stale(ctx, gen); serr != nil {
		return serr
	}
	return err
}

func (r *Router) fragment(ctx context.Context, fragment string) (string, error) {
	if markup, ok := r.cache.get(fragment); ok {
		return markup, nil
	}
	markup, err := r.fetcher.Fetch(ctx, fragment)
	if err != nil {
		return "", err
	}
	r.cache.put(fragment, markup)
	return markup, nil
}

func (r *Router) fillSlot(slot Slot, fragment, markup string, err error) {
	if err != nil {
		r.log.Warn("fragment failed", zap.Stringer("slot", slot), zap.String("fragment", fragment), zap.Error(err))
		markup = slotErrorMarkup
	}
	r.doc.SetHTML(slot, markup)
}

func (r *Router) unloadModule(log *zap.Logger) {
	if r.active == nil {
		return
	}
	m, name := r.active, r.activeName
	r.setActive(nil, "")
	r.runHook(log, name, "cleanup", m.Cleanup)
}

func (r *Router) loadModule(name string, log *zap.Logger) {
	m, err := r.modules.Load(name)
	if errors.Is(err, ErrModuleNotFound) {
		log.Debug("no page module", zap.String("module", name))
		return
	}
	if err != nil {
		log.Warn("page module failed to load", zap.Error(err))
		return
	}
	r.setActive(m, name)
	r.runHook(log, name, "init", m.Init)
}

func (r *Router) setActive(m Module, name string) {
	r.navMu.Lock()
	r.active, r.activeName = m, name
	r.navMu.Unlock()
}

// runHook calls a lifecycle hook with navigations queued instead of
// rendered, since the caller holds renderMu.
func (r *Router) runHook(log *zap.Logger, module, hook string, fn func()) {
	r.navMu.Lock()
	r.hooking = true
	r.navMu.Unlock()
	defer func() {
		r.navMu.Lock()
		r.hooking = false
		r.navMu.Unlock()
	}()
	callHook(log, module, hook, fn)
}

// callHook runs a lifecycle hook, logging instead of propagating a panic.
func callHook(log *zap.Logger, module, hook string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("page module hook panicked", zap.String("module", module), zap.String("hook", hook), zap.Any("panic", p))
		}
	}()
	fn()
}

var rootURL = &url.URL{Path: "/"}

// linkPath is the path an href navigates to from the site root.
func linkPath(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return rootURL.ResolveReference(u).Path
}

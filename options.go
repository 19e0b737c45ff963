package pageswap

import (
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTransitionTimeout = 300 * time.Millisecond
	DefaultHeaderFragment    = "./src/pages/header.html"
	DefaultNavFragment       = "./src/pages/navbar.html"

	fadeOutClass    = "fade-out"
	activeLinkClass = "active-link"
	pageTitleID     = "page-title"
	slotErrorMarkup = "<p>Error al cargar esta sección.</p>"
)

// Option configures a Router.
type Option func(*Router)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithModules sets the registry page modules are loaded from.
func WithModules(reg *Registry) Option {
	return func(r *Router) {
		if reg != nil {
			r.modules = reg
		}
	}
}

// WithTransitionTimeout bounds how long the router waits for the fade-out
// transition to end before swapping content.
func WithTransitionTimeout(d time.Duration) Option {
	return func(r *Router) {
		r.transitionTimeout = d
	}
}

// WithTitleFormat sets how a route name becomes the browser tab title.
func WithTitleFormat(format func(routeName string) string) Option {
	return func(r *Router) {
		if format != nil {
			r.browserTitle = format
		}
	}
}

// WithChrome sets the header and navigation fragments loaded by Initialize.
func WithChrome(headerFragment, navFragment string) Option {
	return func(r *Router) {
		r.headerFragment = headerFragment
		r.navFragment = navFragment
	}
}

// SiteTitle returns the title format "<site> ~ <route>".
func SiteTitle(site string) func(string) string {
	return func(routeName string) string {
		return site + " ~ " + routeName
	}
}

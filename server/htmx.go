package server

import (
	"net/http"

	"github.com/angelofallars/htmx-go"
)

// mainTarget is the id of the main slot in the rendered shell. Boosted
// navigations target it.
const mainTarget = "main"

// isMainSwap reports whether r is an htmx request that only wants the main
// slot swapped.
func isMainSwap(r *http.Request) bool {
	if !htmx.IsHTMX(r) {
		return false
	}
	target, ok := htmx.GetTarget(r)
	return ok && target == mainTarget
}

package pageswap

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// NotFoundPath is the path the router redirects to when a page fragment
// cannot be loaded.
const NotFoundPath = "/404"

// Route describes one navigable page.
type Route struct {
	Path     string
	Name     string
	Fragment string
	// Module is the registry name of the page module. Empty means the
	// route has no page behavior.
	Module string
}

// RouteTable is a fixed mapping from paths to routes, with a designated
// not-found entry. It is never mutated after construction.
type RouteTable struct {
	routes   map[string]Route
	order    []string
	notFound Route
}

// NewRouteTable builds a table from the not-found entry and the navigable
// routes. Every route needs a path and a fragment, and paths must be unique.
func NewRouteTable(notFound Route, routes ...Route) (*RouteTable, error) {
	if notFound.Path == "" {
		return nil, errors.New("not-found route has no path")
	}
	t := &RouteTable{routes: make(map[string]Route, len(routes)+1), notFound: notFound}
	for _, r := range append(slices.Clip(routes), notFound) {
		if r.Path == "" {
			return nil, fmt.Errorf("route %q has no path", r.Name)
		}
		if r.Fragment == "" {
			return nil, fmt.Errorf("route %s has no fragment", r.Path)
		}
		if _, ok := t.routes[r.Path]; ok {
			return nil, fmt.Errorf("duplicate route %s", r.Path)
		}
		t.routes[r.Path] = r
		t.order = append(t.order, r.Path)
	}
	return t, nil
}

// Lookup returns the route registered for exactly path.
func (t *RouteTable) Lookup(path string) (Route, bool) {
	r, ok := t.routes[path]
	return r, ok
}

// Resolve returns the route for path, falling back to the not-found entry.
func (t *RouteTable) Resolve(path string) Route {
	if r, ok := t.routes[path]; ok {
		return r
	}
	return t.notFound
}

func (t *RouteTable) NotFound() Route { return t.notFound }

func (t *RouteTable) IsNotFound(r Route) bool { return r.Path == t.notFound.Path }

// HeaderTitle is the in-page title for r. The not-found page renders an
// empty header title; the browser tab still shows its name.
func (t *RouteTable) HeaderTitle(r Route) string {
	if t.IsNotFound(r) {
		return ""
	}
	return r.Name
}

// Routes returns the routes in registration order, not-found last.
func (t *RouteTable) Routes() []Route {
	out := make([]Route, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, t.routes[p])
	}
	return out
}

// Unknown reports the paths that have no entry of their own in the table.
func (t *RouteTable) Unknown(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, ok := t.routes[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// DefaultRoutes is the route table of the management site.
func DefaultRoutes() *RouteTable {
	page := func(path, name, file, module string) Route {
		return Route{Path: path, Name: name, Fragment: "./src/pages/" + file + ".html", Module: module}
	}
	t, err := NewRouteTable(
		Route{Path: NotFoundPath, Name: "Página no encontrada", Fragment: "./src/pages/404.html"},
		page("/", "Inicio", "inicio", "inicio"),
		page("/inventario", "Inventario", "inventario", "inventario"),
		page("/venta", "Venta", "venta", "venta"),
		page("/pedidos", "Pedidos", "pedidos", "pedidos"),
		page("/items-tablajero", "Items", "items-tablajero", "items-tablajero"),
		page("/historial", "Historial", "historial", "historial"),
		page("/clientes", "Clientes", "clientes", "clientes"),
		page("/trabajadores", "Trabajadores", "trabajadores", "trabajadores"),
		page("/caja", "Caja", "caja", "caja"),
	)
	if err != nil {
		panic(err)
	}
	return t
}

// PrintRoutes renders the table one route per line.
func PrintRoutes(t *RouteTable) string {
	var sb strings.Builder
	for _, r := range t.Routes() {
		module := r.Module
		if module == "" {
			module = "-"
		}
		fmt.Fprintf(&sb, "%-18s %-22s %-36s %s\n", r.Path, r.Name, r.Fragment, module)
	}
	return sb.String()
}

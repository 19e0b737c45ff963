package pageswap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRouteTable(t *testing.T) {
	nf := Route{Path: "/404", Name: "nf", Fragment: "404.html"}
	tests := []struct {
		name     string
		notFound Route
		routes   []Route
		wantErr  string
	}{
		{
			name:     "valid",
			notFound: nf,
			routes:   []Route{{Path: "/", Name: "home", Fragment: "home.html"}},
		},
		{
			name:     "not found without path",
			notFound: Route{Name: "nf", Fragment: "404.html"},
			wantErr:  "not-found route has no path",
		},
		{
			name:     "route without path",
			notFound: nf,
			routes:   []Route{{Name: "home", Fragment: "home.html"}},
			wantErr:  `route "home" has no path`,
		},
		{
			name:     "route without fragment",
			notFound: nf,
			routes:   []Route{{Path: "/", Name: "home"}},
			wantErr:  "route / has no fragment",
		},
		{
			name:     "duplicate path",
			notFound: nf,
			routes: []Route{
				{Path: "/a", Name: "a", Fragment: "a.html"},
				{Path: "/a", Name: "b", Fragment: "b.html"},
			},
			wantErr: "duplicate route /a",
		},
		{
			name:     "route shadows not found",
			notFound: nf,
			routes:   []Route{{Path: "/404", Name: "x", Fragment: "x.html"}},
			wantErr:  "duplicate route /404",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRouteTable(tt.notFound, tt.routes...)
			var got string
			if err != nil {
				got = err.Error()
			}
			if diff := cmp.Diff(got, tt.wantErr); diff != "" {
				t.Errorf("NewRouteTable() error mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	table := DefaultRoutes()
	tests := []struct {
		path        string
		wantPath    string
		wantHeader  string
		wantModule  string
		wantMissing bool
	}{
		{path: "/", wantPath: "/", wantHeader: "Inicio", wantModule: "inicio"},
		{path: "/inventario", wantPath: "/inventario", wantHeader: "Inventario", wantModule: "inventario"},
		{path: "/items-tablajero", wantPath: "/items-tablajero", wantHeader: "Items", wantModule: "items-tablajero"},
		{path: "/404", wantPath: "/404", wantHeader: ""},
		{path: "/nope", wantPath: "/404", wantHeader: "", wantMissing: true},
		{path: "", wantPath: "/404", wantHeader: "", wantMissing: true},
		{path: "/caja/", wantPath: "/404", wantHeader: "", wantMissing: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := table.Resolve(tt.path)
			if r.Path != tt.wantPath {
				t.Errorf("Resolve(%q).Path = %q, want %q", tt.path, r.Path, tt.wantPath)
			}
			if got := table.HeaderTitle(r); got != tt.wantHeader {
				t.Errorf("HeaderTitle = %q, want %q", got, tt.wantHeader)
			}
			if r.Module != tt.wantModule {
				t.Errorf("Module = %q, want %q", r.Module, tt.wantModule)
			}
			if _, ok := table.Lookup(tt.path); ok == tt.wantMissing {
				t.Errorf("Lookup(%q) found = %v", tt.path, ok)
			}
		})
	}
}

func TestDefaultRoutes(t *testing.T) {
	table := DefaultRoutes()
	routes := table.Routes()
	if len(routes) != 10 {
		t.Fatalf("got %d routes, want 10", len(routes))
	}
	if last := routes[len(routes)-1]; !table.IsNotFound(last) {
		t.Errorf("last route = %s, want the not-found route", last.Path)
	}
	if table.NotFound().Module != "" {
		t.Errorf("not-found route has module %q", table.NotFound().Module)
	}
	for _, r := range routes {
		if !strings.HasPrefix(r.Fragment, "./src/pages/") {
			t.Errorf("route %s fragment %q is outside ./src/pages/", r.Path, r.Fragment)
		}
	}
}

func TestUnknown(t *testing.T) {
	got := DefaultRoutes().Unknown([]string{"/", "/caja", "/reportes", "/404", "/x"})
	if diff := cmp.Diff(got, []string{"/reportes", "/x"}); diff != "" {
		t.Errorf("Unknown() mismatch (-got +want):\n%s", diff)
	}
}

func TestPrintRoutes(t *testing.T) {
	out := PrintRoutes(DefaultRoutes())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "/ ") || !strings.HasSuffix(lines[0], "inicio") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[9], "-") {
		t.Errorf("not-found line should show no module: %q", lines[9])
	}
}

func Test_linkPath(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/clientes", "/clientes"},
		{"clientes", "/clientes"},
		{"http://localhost:5173/caja", "/caja"},
		{"/venta?x=1#top", "/venta"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := linkPath(tt.href); got != tt.want {
			t.Errorf("linkPath(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

package pageswap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /app/src/pages/inicio.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>inicio</p>"))
	})
	mux.HandleFunc("GET /app/src/pages/caido.html", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f, err := NewHTTPFetcher(srv.URL+"/app", srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	got, err := f.Fetch(ctx, "./src/pages/inicio.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>inicio</p>", got)

	tests := []struct {
		fragment string
		status   int
	}{
		{"./src/pages/nada.html", http.StatusNotFound},
		{"./src/pages/caido.html", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		_, err := f.Fetch(ctx, tt.fragment)
		var le *FragmentLoadError
		if assert.ErrorAs(t, err, &le, tt.fragment) {
			assert.Equal(t, tt.status, le.StatusCode)
			assert.Contains(t, le.URL, "/app/src/pages/")
		}
	}
}

func TestHTTPFetcherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	f, err := NewHTTPFetcher(base, nil)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "/x.html")
	var le *FragmentLoadError
	require.ErrorAs(t, err, &le)
	assert.Zero(t, le.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestNewHTTPFetcherRejectsRelativeBase(t *testing.T) {
	_, err := NewHTTPFetcher("/relative", nil)
	assert.Error(t, err)
}

func TestFSFetcher(t *testing.T) {
	f := FSFetcher{FS: fstest.MapFS{
		"src/pages/caja.html": {Data: []byte("<p>caja</p>")},
	}}
	ctx := context.Background()
	for _, p := range []string{"./src/pages/caja.html", "/src/pages/caja.html", "src/pages/caja.html"} {
		got, err := f.Fetch(ctx, p)
		require.NoError(t, err, p)
		assert.Equal(t, "<p>caja</p>", got)
	}

	_, err := f.Fetch(ctx, "./src/pages/venta.html")
	var le *FragmentLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, http.StatusNotFound, le.StatusCode)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = f.Fetch(cancelled, "./src/pages/caja.html")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFragmentCacheStore(t *testing.T) {
	var c fragmentCache
	_, ok := c.get("a")
	assert.False(t, ok)
	c.put("a", "<p>a</p>")
	got, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "<p>a</p>", got)
}

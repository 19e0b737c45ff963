package pageswap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
)

// Fetcher retrieves the markup of a fragment by its path.
type Fetcher interface {
	Fetch(ctx context.Context, fragment string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, fragment string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, fragment string) (string, error) {
	return f(ctx, fragment)
}

// HTTPFetcher fetches fragments with GET requests. Relative fragment paths
// are resolved against BaseURL.
type HTTPFetcher struct {
	client *http.Client
	base   *url.URL
}

// NewHTTPFetcher returns a fetcher rooted at baseURL. If client is nil,
// http.DefaultClient is used.
func NewHTTPFetcher(baseURL string, client *http.Client) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client, base: base}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, fragment string) (string, error) {
	ref, err := url.Parse(fragment)
	if err != nil {
		return "", &FragmentLoadError{URL: fragment, Err: err}
	}
	u := f.base.ResolveReference(ref).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", &FragmentLoadError{URL: u, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FragmentLoadError{URL: u, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FragmentLoadError{URL: u, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FragmentLoadError{URL: u, Err: err}
	}
	return string(body), nil
}

// FSFetcher reads fragments from a file system. A leading "./" or "/" on
// the fragment path is ignored.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, fragment string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FragmentLoadError{URL: fragment, Err: err}
	}
	name := strings.TrimPrefix(path.Clean("/"+fragment), "/")
	b, err := fs.ReadFile(f.FS, name)
	if err != nil {
		le := &FragmentLoadError{URL: fragment, Err: err}
		if errors.Is(err, fs.ErrNotExist) {
			le.StatusCode = http.StatusNotFound
		}
		return "", le
	}
	return string(b), nil
}

// fragmentCache holds fetched fragment markup for the lifetime of a router.
// Entries are never evicted.
type fragmentCache struct {
	mu sync.RWMutex
	m  map[string]string
}

func (c *fragmentCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *fragmentCache) put(key, markup string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string]string)
	}
	c.m[key] = markup
}

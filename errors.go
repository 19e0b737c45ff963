package pageswap

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized is returned by a second call to Router.Initialize.
	ErrAlreadyInitialized = errors.New("pageswap: router already initialized")
	// ErrNavigationSuperseded is returned by a navigation that was overtaken
	// by a newer one before it finished.
	ErrNavigationSuperseded = errors.New("pageswap: navigation superseded")
	// ErrModuleNotFound is wrapped by ModuleLoadError for unregistered names.
	ErrModuleNotFound = errors.New("module not registered")
	// ErrClosed is returned by navigations on a closed router.
	ErrClosed = errors.New("pageswap: router closed")
)

// FragmentLoadError reports an HTTP or transport failure while fetching a
// fragment. StatusCode is zero when no response was received.
type FragmentLoadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FragmentLoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("load fragment %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("load fragment %s: %v", e.URL, e.Err)
}

func (e *FragmentLoadError) Unwrap() error { return e.Err }

// ModuleLoadError reports a page module that could not be loaded.
type ModuleLoadError struct {
	Name string
	Err  error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("load page module %q: %v", e.Name, e.Err)
}

func (e *ModuleLoadError) Unwrap() error { return e.Err }

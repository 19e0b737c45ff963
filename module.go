package pageswap

import (
	"fmt"
	"sort"
	"sync"
)

// Module is the behavior attached to a page. Init runs when the page
// becomes active and Cleanup when it is left.
type Module interface {
	Init()
	Cleanup()
}

// Hooks adapts optional lifecycle funcs into a Module.
type Hooks struct {
	OnInit    func()
	OnCleanup func()
}

func (h Hooks) Init() {
	if h.OnInit != nil {
		h.OnInit()
	}
}

func (h Hooks) Cleanup() {
	if h.OnCleanup != nil {
		h.OnCleanup()
	}
}

// ModuleLoader produces a page module each time its route is activated.
type ModuleLoader func() (Module, error)

// Registry maps module names to their loaders. It is filled at startup.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]ModuleLoader
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]ModuleLoader)}
}

// Register adds a loader under name, replacing any previous one.
func (r *Registry) Register(name string, loader ModuleLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[name] = loader
}

// RegisterModule registers a module instance that is reused on every
// activation.
func (r *Registry) RegisterModule(name string, m Module) {
	r.Register(name, func() (Module, error) { return m, nil })
}

// Names lists the registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.loaders))
	for n := range r.loaders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load runs the loader for name. Unknown names, loader errors and loader
// panics are all reported as *ModuleLoadError.
func (r *Registry) Load(name string) (m Module, err error) {
	r.mu.RLock()
	loader, ok := r.loaders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &ModuleLoadError{Name: name, Err: ErrModuleNotFound}
	}
	defer func() {
		if p := recover(); p != nil {
			m, err = nil, &ModuleLoadError{Name: name, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	m, err = loader()
	if err != nil {
		return nil, &ModuleLoadError{Name: name, Err: err}
	}
	if m == nil {
		return nil, &ModuleLoadError{Name: name, Err: fmt.Errorf("loader returned no module")}
	}
	return m, nil
}

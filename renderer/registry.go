package renderer

import (
	"fmt"
	"sync"
)

// Factory constructs a ready-to-use Renderer, returning an error if the
// backend can't be initialized (e.g. no GPU adapter available).
type Factory func() (Renderer, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
)

// RegisterBackend registers a renderer backend factory under name, for
// a host to select by configuration rather than by import. Backend
// packages call this from their own init(), the same pattern
// gogpu-gogpu's gpu/registry.go uses for its rust/native GPU backends
// — here adapted to select among renderer.Renderer implementations
// instead of gpu.Backend ones.
func RegisterBackend(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// AvailableBackends returns the names of all registered backends.
func AvailableBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// CreateBackend constructs the named backend, or returns an error if
// no backend was registered under that name.
func CreateBackend(name string) (Renderer, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("renderer: no backend registered as %q", name)
	}
	return factory()
}

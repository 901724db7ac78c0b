// Package registry provides a global registry of presentation backends.
// Backends register themselves in init() functions, so build tags decide which
// ones a binary offers without the CLI hardcoding them.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/loop"
	"github.com/vovakirdan/spritebox/internal/sim"
	"github.com/vovakirdan/spritebox/internal/storage"
)

// Request carries everything a backend needs for one local run.
type Request struct {
	Runtime     core.RuntimeConfig
	Player      *sim.Player // Owned by the backend from here on
	Blocks      []core.Rect
	Store       *storage.Store // Optional
	WindowScale int
	Logger      *log.Logger
}

// RunFunc plays until the user quits or ctx is done.
// It must close the player before returning.
type RunFunc func(ctx context.Context, req Request) (loop.Stats, error)

// Backend describes a registered presenter.
type Backend struct {
	// Name is the --backend value (e.g., "tui", "sdl").
	Name string

	// Title is a human-readable description.
	Title string

	// OwnsTerminal is true when the backend draws on the terminal, so logs
	// must not be written there.
	OwnsTerminal bool

	Run RunFunc
}

var (
	backends = make(map[string]Backend)
	mu       sync.RWMutex
)

// Register adds a backend to the registry.
// Typically called from a backend package's init() function.
// Panics if a backend with the same name is already registered.
func Register(b Backend) {
	mu.Lock()
	defer mu.Unlock()

	if b.Name == "" || b.Run == nil {
		panic("registry: backend needs a name and a run function")
	}
	if _, exists := backends[b.Name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", b.Name))
	}
	backends[b.Name] = b
}

// List returns all registered backends, sorted by name.
func List() []Backend {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Backend, 0, len(backends))
	for _, b := range backends {
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Lookup returns the backend with the given name.
// Returns an error if the name is not registered.
func Lookup(name string) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := backends[name]
	if !ok {
		return Backend{}, fmt.Errorf("registry: unknown backend %q", name)
	}
	return b, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[name]
	return ok
}

// unregister removes a backend; used by tests.
func unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(backends, name)
}

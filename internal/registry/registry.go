// Package registry owns the committed feature-set graphs: an
// insertion-ordered map from feature-set name to graph, alive for the
// process lifetime. There is no delete and no eviction.
package registry

import (
	"sync"

	"github.com/nexusnova/atlas/internal/models"
)

// Registry maps feature-set names to their committed graphs. Safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	graphs map[string]*models.Graph
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{graphs: map[string]*models.Graph{}}
}

// Get returns the committed graph for name, or false when the name is
// unknown. Absence is not an error here; callers decide.
func (r *Registry) Get(name string) (*models.Graph, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.graphs[name]
	return g, ok
}

// Has reports whether a feature set with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.graphs[name]
	return ok
}

// Set stores g under name, creating the entry on first write and keeping
// the original insertion position on overwrite.
func (r *Registry) Set(name string, g *models.Graph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.graphs[name]; !ok {
		r.order = append(r.order, name)
	}
	r.graphs[name] = g
}

// Names returns the feature-set names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

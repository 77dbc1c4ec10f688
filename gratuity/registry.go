package gratuity

import (
	"fmt"
	"sort"
	"sync"
)

// =============================================================================
// SCHEME REGISTRY
// =============================================================================

// Registry maps rule ids to schemes. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemes map[Rule]Scheme
}

// NewRegistry returns a registry holding the given schemes.
func NewRegistry(schemes ...Scheme) *Registry {
	r := &Registry{schemes: make(map[Rule]Scheme, len(schemes))}
	for _, s := range schemes {
		r.schemes[s.ID] = s
	}
	return r
}

// NewBuiltinRegistry returns a registry holding currentRule and oldRule.
func NewBuiltinRegistry() *Registry {
	return NewRegistry(CurrentRuleScheme(), OldRuleScheme())
}

// Default is the registry used by ComputeGratuity.
var Default = NewBuiltinRegistry()

// Register adds or replaces a scheme after validating it.
func (r *Registry) Register(s Scheme) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemes[s.ID] = s
	return nil
}

// Unregister removes a scheme. Removing an unknown id is a no-op.
func (r *Registry) Unregister(id Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.schemes, id)
}

// Lookup finds a scheme by rule id.
func (r *Registry) Lookup(id Rule) (Scheme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemes[id]
	return s, ok
}

// MustLookup finds a scheme or panics.
// Use in tests or when you're certain the scheme exists.
func (r *Registry) MustLookup(id Rule) Scheme {
	s, ok := r.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("gratuity scheme not registered: %s", id))
	}
	return s
}

// Schemes returns all registered schemes ordered by id.
func (r *Registry) Schemes() []Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Scheme, 0, len(r.schemes))
	for _, s := range r.schemes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

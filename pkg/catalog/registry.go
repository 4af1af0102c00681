package catalog

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps catalog type ids to definitions. Type ids are unique
// within a registry.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// Default is the process-wide registry.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. It fails with DuplicateTypeError if the type
// id is already taken.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("cannot register nil catalog definition")
	}
	typ := def.TypeID()
	if typ == "" {
		return fmt.Errorf("catalog definition has neither Type nor Name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[typ]; ok {
		return &DuplicateTypeError{Type: typ}
	}
	r.defs[typ] = def
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// registrations done in init functions.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition of a type id.
func (r *Registry) Lookup(typ string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[typ]
	if !ok {
		return nil, &UnknownTypeError{Type: typ}
	}
	return def, nil
}

// Types returns sorted ids of all registered types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.defs))
}

// Register adds a definition to the Default registry.
func Register(def *Definition) error {
	return Default.Register(def)
}

// MustRegister adds a definition to the Default registry and panics on
// error.
func MustRegister(def *Definition) {
	Default.MustRegister(def)
}

// Package rules keeps named modules of derivation rules. Catalog
// definitions import modules by name, so a module written once serves any
// number of catalog types.
package rules

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gnames/instcat/pkg/catalog"
)

// Registry maps module names to rule sets.
type Registry struct {
	mx      sync.RWMutex
	modules map[string]*catalog.RuleSet
}

// Default contains the modules that come with instcat.
var Default = NewRegistry()

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*catalog.RuleSet)}
}

// Register adds a rule set under its name.
func (r *Registry) Register(rs *catalog.RuleSet) error {
	if rs == nil || rs.Name() == "" {
		return fmt.Errorf("rule module must have a name")
	}
	r.mx.Lock()
	defer r.mx.Unlock()
	if _, ok := r.modules[rs.Name()]; ok {
		return fmt.Errorf("rule module '%s' is already registered", rs.Name())
	}
	r.modules[rs.Name()] = rs
	return nil
}

// Lookup returns a module by name.
func (r *Registry) Lookup(name string) (*catalog.RuleSet, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	rs, ok := r.modules[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return rs, nil
}

// Names returns sorted module names.
func (r *Registry) Names() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return slices.Sorted(maps.Keys(r.modules))
}

// Clone returns an independent registry with the same modules.
func (r *Registry) Clone() *Registry {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return &Registry{modules: maps.Clone(r.modules)}
}

// NotFoundError is returned for unknown module names.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule module '%s' not found", e.Name)
}

package catalog

import (
	"errors"
	"slices"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
)

// resolver computes column values for one resolution pass. Results are
// memoized for the duration of the pass, so a column used by several
// derived columns is computed once per chunk.
type resolver struct {
	cat   *Catalog
	memo  map[string]column.Column
	stack []string
}

func (c *Catalog) newResolver() *resolver {
	return &resolver{
		cat:  c,
		memo: make(map[string]column.Column),
	}
}

// Column implements Env.
func (r *resolver) Column(name string) (column.Column, error) {
	if col, ok := r.memo[name]; ok {
		return col, nil
	}

	rule, ok := r.cat.def.rule(name)
	if !ok {
		return r.raw(name)
	}

	if slices.Contains(r.stack, name) {
		path := append(slices.Clone(r.stack), name)
		return column.Column{}, &CycleError{Type: r.cat.Type(), Path: path}
	}

	r.stack = append(r.stack, name)
	col, err := rule(r)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		var defErr DefinitionError
		var missErr *MissingColumnError
		var ruleErr *RuleError
		if errors.As(err, &defErr) || errors.As(err, &missErr) ||
			errors.As(err, &ruleErr) {
			return column.Column{}, err
		}
		return column.Column{}, &RuleError{Type: r.cat.Type(), Column: name, Err: err}
	}
	r.memo[name] = col
	return col, nil
}

// Obs implements Env.
func (r *resolver) Obs() *source.ObsMetadata {
	return r.cat.obs
}

func (r *resolver) raw(name string) (column.Column, error) {
	if r.cat.active == nil {
		return column.Column{}, &MissingColumnError{Type: r.cat.Type(), Column: name}
	}
	col, ok := r.cat.active.column(name)
	if !ok {
		return column.Column{}, &MissingColumnError{Type: r.cat.Type(), Column: name}
	}
	r.memo[name] = col
	return col, nil
}

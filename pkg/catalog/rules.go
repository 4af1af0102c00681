package catalog

import (
	"fmt"
	"slices"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
)

// Env gives a derivation rule access to the other columns of the chunk
// that is currently processed.
type Env interface {
	// Column returns the values of a raw or derived column.
	Column(name string) (column.Column, error)

	// Obs returns observation metadata of the catalog instance, or nil.
	Obs() *source.ObsMetadata
}

// Rule computes the values of one derived column for the current chunk.
// The result must have one value per row of the chunk.
type Rule func(env Env) (column.Column, error)

// RuleSet is a named collection of derivation rules. A catalog definition
// owns one RuleSet and can import others as modules.
type RuleSet struct {
	name  string
	rules map[string]Rule
	order []string
}

// NewRuleSet creates an empty rule set.
func NewRuleSet(name string) *RuleSet {
	return &RuleSet{name: name, rules: make(map[string]Rule)}
}

// Name returns the name of the rule set.
func (rs *RuleSet) Name() string {
	return rs.name
}

// Add registers a rule for a column. A column can have only one rule in a
// set.
func (rs *RuleSet) Add(col string, r Rule) error {
	if col == "" {
		return fmt.Errorf("rule set %s: empty column name", rs.name)
	}
	if r == nil {
		return fmt.Errorf("rule set %s: nil rule for %q", rs.name, col)
	}
	if _, ok := rs.rules[col]; ok {
		return fmt.Errorf("rule set %s: duplicate rule for %q", rs.name, col)
	}
	rs.rules[col] = r
	rs.order = append(rs.order, col)
	return nil
}

// MustAdd is like Add but panics on error. It returns the rule set to allow
// chained declarations.
func (rs *RuleSet) MustAdd(col string, r Rule) *RuleSet {
	if err := rs.Add(col, r); err != nil {
		panic(err)
	}
	return rs
}

// Rule returns the rule for a column.
func (rs *RuleSet) Rule(col string) (Rule, bool) {
	if rs == nil {
		return nil, false
	}
	r, ok := rs.rules[col]
	return r, ok
}

// Names returns column names in the order of registration.
func (rs *RuleSet) Names() []string {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.order)
}

package catalog

import (
	"fmt"
	"strings"

	"github.com/gnames/instcat/pkg/ent/column"
)

// DefinitionError marks errors caused by an invalid catalog definition.
// They are detected when a definition is registered or an instance is
// constructed, and they are never retried.
type DefinitionError interface {
	error
	definitionError()
}

// DuplicateTypeError is returned when a catalog type id is registered
// twice.
type DuplicateTypeError struct {
	Type string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("catalog type %q is duplicated", e.Type)
}

func (*DuplicateTypeError) definitionError() {}

// UnknownTypeError is returned by a lookup of an unregistered type id.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unrecognized catalog type %q", e.Type)
}

// UnresolvedColumnsError is returned when output or not-null column names
// are neither derivation rules nor raw columns of the data source.
type UnresolvedColumnsError struct {
	Type    string
	Columns []string
	// Missing lists raw columns needed by rules that the data source
	// lacks as well.
	Missing []string
}

func (e *UnresolvedColumnsError) Error() string {
	msg := fmt.Sprintf("catalog %s: cannot resolve columns (%s)",
		e.Type, strings.Join(e.Columns, ", "))
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf("; required columns missing from database: (%s)",
			strings.Join(e.Missing, ", "))
	}
	return msg
}

func (*UnresolvedColumnsError) definitionError() {}

// CycleError is returned when derivation rules depend on each other in a
// loop.
type CycleError struct {
	Type string
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("catalog %s: circular column dependency %s",
		e.Type, strings.Join(e.Path, " -> "))
}

func (*CycleError) definitionError() {}

// MissingColumnsError is returned at construction when raw columns needed
// by the catalog are absent from the data source.
type MissingColumnsError struct {
	Type    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("catalog %s: required columns missing from database: (%s)",
		e.Type, strings.Join(e.Columns, ", "))
}

// MissingColumnError is returned when the active chunk lacks a raw column.
// During a write it means the data source broke its contract.
type MissingColumnError struct {
	Type   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("catalog %s: chunk has no column %q", e.Type, e.Column)
}

// KindMismatchError is returned when a chunk yields values of a kind that
// contradicts the line template derived from the first chunk.
type KindMismatchError struct {
	Type   string
	Column string
	Want   column.Kind
	Got    column.Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("catalog %s: column %q changed kind from %s to %s",
		e.Type, e.Column, e.Want, e.Got)
}

// StateError is returned when an operation is not allowed in the current
// state of a catalog instance.
type StateError struct {
	Type  string
	State State
	Op    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("catalog %s: cannot %s, catalog is %s",
		e.Type, e.Op, e.State)
}

// RuleError wraps an error returned by a derivation rule.
type RuleError struct {
	Type   string
	Column string
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("catalog %s: rule for %q: %v", e.Type, e.Column, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

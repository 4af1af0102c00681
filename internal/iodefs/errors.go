package iodefs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/pkg/errcode"
)

func ReadError(path string, err error) error {
	msg := "Cannot read catalog definitions <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DefinitionsReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			fn.Name(), path, err),
	}
}

// ParseError creates an error for definitions that cannot be used.
func ParseError(path string, err error) error {
	msg := `Cannot load catalog definitions

<em>Definitions file:</em> %s

<em>Possible causes:</em>
  - Invalid YAML format
  - Unknown field
  - Missing catalog name or bad column list

<em>How to fix:</em>
  1. Validate YAML syntax
  2. Compare with the example in <em>~/.config/instcat/catalogs.yaml</em>`

	vars := []any{path}
	return &gn.Error{
		Code: errcode.DefinitionsParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to parse definitions: %w", err),
	}
}

func RegisterError(name string, err error) error {
	msg := "Cannot register <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DefinitionsRegisterError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot register %s: %w",
			fn.Name(), name, err),
	}
}

func ModuleNotFoundError(typ string, err error) error {
	msg := "Catalog <em>%s</em> imports an unknown rule module"
	vars := []any{typ}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RuleModuleNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: catalog %s: %w",
			fn.Name(), typ, err),
	}
}

package iowriter

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/errcode"
)

// CatalogError reports a catalog that cannot be created for the data
// source, either because its type is unknown or because its columns
// cannot be resolved.
func CatalogError(typ string, err error) error {
	code := errcode.CatalogRequirementsError
	msg := `Cannot create catalog <em>%s</em>

<em>Reason:</em> %s

<em>How to fix:</em>
  1. Run <em>instcat columns %s</em> against a working source
  2. Add missing columns to <em>source.column_map</em> in config.yaml`

	var unknown *catalog.UnknownTypeError
	if errors.As(err, &unknown) {
		code = errcode.CatalogTypeError
		msg = `Unknown catalog type <em>%s</em>

<em>Reason:</em> %s

<em>How to fix:</em>
  Add the catalog to catalogs.yaml or check the spelling of <em>%s</em>`
	}

	vars := []any{typ, err.Error(), typ}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create catalog %s: %w",
			fn.Name(), typ, err),
	}
}

// WriteError reports a failure while writing catalog lines. Lines written
// before the failure stay in the file.
func WriteError(typ, path string, err error) error {
	msg := "Cannot write catalog <em>%s</em> to <em>%s</em>"
	vars := []any{typ, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s to %s: %w",
			fn.Name(), typ, path, err),
	}
}

// FileError reports a failure to flush or sync the output file.
func FileError(path string, err error) error {
	msg := "Cannot write file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn.Name(), path, err),
	}
}

package iosource

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/instcat/pkg/errcode"
)

func DriverError(driver string) error {
	msg := "Unknown data source driver <em>%s</em>"
	vars := []any{driver}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceDriverError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown driver '%s'",
			fn.Name(), driver),
	}
}

// ConnectionError is returned when a database cannot be reached.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with user-friendly message.
func NewConnectionError(driver, target string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Data Source Connection Failed</title>

<warning>Could not connect to %s data source.</warning>

<em>Possible causes:</em>
  • The database server is not running
  • The database file does not exist
  • Source configuration is incorrect

<em>How to fix:</em>
  1. Check your configuration file:
     <em>~/.config/instcat/config.yaml</em>

  2. Review connection settings:
     Driver: %s
     Target: %s
`,
		[]any{driver, driver, target},
	)

	return ConnectionError{
		error: fmt.Errorf("failed to connect to %s (%s): %w",
			target, driver, cause),
		MessageBase: userBase,
	}
}

func ColumnsError(table string, err error) error {
	msg := "Cannot read columns of <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceColumnsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read columns of %s: %w",
			fn.Name(), table, err),
	}
}

func QueryError(table string, err error) error {
	msg := "Query of <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: query of %s: %w",
			fn.Name(), table, err),
	}
}

func ScanError(table string, err error) error {
	msg := "Cannot read rows of <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceScanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot scan rows of %s: %w",
			fn.Name(), table, err),
	}
}

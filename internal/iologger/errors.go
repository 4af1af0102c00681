package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/pkg/errcode"
)

// OpenLogError is returned when instcat.log cannot be opened in the
// instcat home directory.
func OpenLogError(path string, appendMode bool, err error) error {
	mode := "truncate"
	if appendMode {
		mode = "append"
	}
	msg := "Cannot open instcat log <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open log (%s mode): %w",
			fn.Name(), mode, err),
	}
}

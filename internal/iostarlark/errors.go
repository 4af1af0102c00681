package iostarlark

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/pkg/errcode"
)

func LoadError(module string, err error) error {
	msg := "Cannot load rule module <em>%s</em>"
	vars := []any{module}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StarlarkLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load module %s: %w",
			fn.Name(), module, err),
	}
}

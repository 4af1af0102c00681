package iometrics

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/pkg/errcode"
)

// PushError reports a failed Pushgateway push. Written catalogs are not
// affected.
func PushError(url string, err error) error {
	msg := "Cannot push metrics to <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MetricsPushError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot push to %s: %w",
			fn.Name(), url, err),
	}
}

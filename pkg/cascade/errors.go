package cascade

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
	"github.com/gnames/gnloc/pkg/location"
)

// FetchError creates an error for a failed option-set fetch.
func FetchError(l location.Level, f location.Filter, err error) error {
	msg := `Cannot load <em>%s</em> options

<em>Possible causes:</em>
  - Record storage is not reachable
  - Filter is not supported by the backend

<em>How to fix:</em>
  1. Check the record storage is running
  2. Select the parent location again to retry`

	vars := []any{l.String()}

	return &gn.Error{
		Code: errcode.CascadeFetchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot fetch %s options [%s]: %w",
			l, f.Expr(l), err),
	}
}

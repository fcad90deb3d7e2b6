package iopocket

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
)

// AuthError is returned when the record storage rejects credentials.
func AuthError(url, collection string, err error) error {
	msg := `Cannot authenticate at <em>%s</em>

<em>How to fix:</em>
  1. Check <em>pocketbase.email</em> and <em>pocketbase.password</em>
  2. Check the auth collection <em>%s</em> exists`

	return &gn.Error{
		Code: errcode.StoreAuthError,
		Msg:  msg,
		Vars: []any{url, collection},
		Err:  fmt.Errorf("auth with password: %w", err),
	}
}

// RequestError is returned when the record storage cannot be reached.
func RequestError(collection string, err error) error {
	msg := "Cannot reach record storage for <em>%s</em>"

	return &gn.Error{
		Code: errcode.StoreRequestError,
		Msg:  msg,
		Vars: []any{collection},
		Err:  fmt.Errorf("request to %s: %w", collection, err),
	}
}

// QueryError is returned when a list or a lookup is rejected.
func QueryError(collection, filter string, status int, err error) error {
	msg := "Query of <em>%s</em> failed (status %d)"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: []any{collection, status},
		Err: fmt.Errorf("query %s with filter %q, status %d: %w",
			collection, filter, status, err),
	}
}

// CreateError is returned when a record cannot be created.
func CreateError(collection, name string, err error) error {
	msg := "Cannot create <em>%s</em> record <em>%s</em>"

	return &gn.Error{
		Code: errcode.StoreCreateError,
		Msg:  msg,
		Vars: []any{collection, name},
		Err:  fmt.Errorf("create %s record %q: %w", collection, name, err),
	}
}

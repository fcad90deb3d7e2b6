package iopg

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
)

// NoTablesError is returned when the database has no location tables.
func NoTablesError(database string) error {
	msg := `Database <em>%s</em> has no location tables

<em>How to fix:</em>
  Run <em>gnloc create</em> first`

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{database},
		Err:  fmt.Errorf("database %s has no location tables", database),
	}
}

// QueryError is returned when a select on a location table fails.
func QueryError(table string, err error) error {
	msg := "Query of <em>%s</em> failed"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("query %s: %w", table, err),
	}
}

// CreateError is returned when a record cannot be inserted.
func CreateError(table, name string, err error) error {
	msg := "Cannot add <em>%s</em> to <em>%s</em>"

	return &gn.Error{
		Code: errcode.StoreCreateError,
		Msg:  msg,
		Vars: []any{name, table},
		Err:  fmt.Errorf("insert %s into %s: %w", name, table, err),
	}
}

package iofs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
)

// CreateDirError is returned when a directory cannot be created.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("create directory %s: %w", dir, err),
	}
}

// CopyFileError is returned when the config template cannot be written.
func CopyFileError(file string, err error) error {
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot copy config file to %s",
		Vars: []any{file},
		Err:  fmt.Errorf("write %s: %w", file, err),
	}
}

// ReadFileError is returned when a file cannot be read.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}

package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"create dir", CreateDirError("/x", cause), errcode.CreateDirError},
		{"copy file", CopyFileError("/x/config.yaml", cause), errcode.CopyFileError},
		{"read file", ReadFileError("/x/config.yaml", cause), errcode.ReadFileError},
	}
	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		assert.Len(t, gnErr.Vars, 1, v.msg)
	}
}

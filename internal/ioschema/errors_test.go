package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestNameIndexError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := NameIndexError("cities", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SchemaIndexError, gnErr.Code)
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, "cities", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"gorm", GORMConnectionError(originalErr),
			errcode.SchemaGORMConnectionError},
		{"create", CreateSchemaError(originalErr), errcode.SchemaCreateError},
		{"migrate", MigrateSchemaError(originalErr), errcode.SchemaMigrateError},
		{"index", NameIndexError("regions", originalErr),
			errcode.SchemaIndexError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr := tt.err.(*gn.Error)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
		})
	}
}

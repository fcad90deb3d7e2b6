package db_test

import (
	"testing"

	"github.com/gnames/gnloc/internal/iodb"
	"github.com/gnames/gnloc/pkg/db"
)

// TestOperatorContract fails to compile if iodb stops implementing
// db.Operator.
func TestOperatorContract(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
}

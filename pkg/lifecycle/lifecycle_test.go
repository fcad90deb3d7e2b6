package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnloc/internal/iocrawl"
	"github.com/gnames/gnloc/internal/iodb"
	"github.com/gnames/gnloc/internal/ioschema"
	"github.com/gnames/gnloc/internal/iotesting"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

func TestContracts(t *testing.T) {
	var sm lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	var cr lifecycle.Crawler = iocrawl.New(config.New(), iotesting.NewMemStore(), nil)
	assert.NotNil(t, sm)
	assert.NotNil(t, cr)
}

func TestCounterTotal(t *testing.T) {
	c := lifecycle.Counter{Found: 3, Created: 4}
	assert.Equal(t, 7, c.Total())
}

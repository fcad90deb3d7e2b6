package schema_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnloc/pkg/location"
	"github.com/gnames/gnloc/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gschema "gorm.io/gorm/schema"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "countries", schema.Country{}.TableName())
	assert.Equal(t, "regions", schema.Region{}.TableName())
	assert.Equal(t, "divisions", schema.Division{}.TableName())
	assert.Equal(t, "cities", schema.City{}.TableName())

	for _, l := range location.Levels {
		assert.Contains(t, schema.NameIndexTables(), l.Collection())
	}
}

func TestModelsParse(t *testing.T) {
	cache := &sync.Map{}
	for _, m := range schema.AllModels() {
		s, err := gschema.Parse(m, cache, gschema.NamingStrategy{})
		require.NoError(t, err)
		assert.NotNil(t, s.LookUpField("id"), s.Table)
		assert.NotNil(t, s.LookUpField("name"), s.Table)
	}

	s, err := gschema.Parse(&schema.City{}, cache, gschema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "cities", s.Table)
	for _, col := range []string{
		"country_id", "region_id", "division_id", "wiki_data_id", "cell_token",
	} {
		assert.NotNil(t, s.LookUpField(col), col)
	}
}

func TestRecordID(t *testing.T) {
	assert := assert.New(t)
	id1 := schema.RecordID(location.LevelCity, "Q62")
	id2 := schema.RecordID(location.LevelCity, "q62")
	id3 := schema.RecordID(location.LevelRegion, "Q62")
	assert.Equal(id1, id2)
	assert.NotEqual(id1, id3)
	assert.Len(id1, 36)

	assert.Equal(schema.CountryID("USA"), schema.CountryID(" usa "))
	assert.NotEqual(schema.CountryID("USA"), schema.CountryID("Canada"))
}

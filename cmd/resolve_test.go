package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/gnames/gnloc/internal/iotesting"
	"github.com/gnames/gnloc/pkg/cascade"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testStore(t *testing.T) *iotesting.MemStore {
	t.Helper()
	ctx := context.Background()
	m := iotesting.NewMemStore()
	usa, err := m.CreateCountry(ctx, location.Country{Name: "USA", Code: "US"})
	require.NoError(t, err)
	_, err = m.CreateCountry(ctx, location.Country{Name: "Canada", Code: "CA"})
	require.NoError(t, err)
	ca, err := m.CreateRegion(ctx, location.Region{
		Name: "California", CountryID: usa.ID, WikiDataID: "Q99",
	})
	require.NoError(t, err)
	_, err = m.CreateRegion(ctx, location.Region{
		Name: "Texas", CountryID: usa.ID, WikiDataID: "Q1439",
	})
	require.NoError(t, err)
	for _, v := range []struct{ name, wd string }{
		{"Fresno", "Q43301"}, {"San Francisco", "Q62"},
	} {
		_, err = m.CreateCity(ctx, location.City{
			Name: v.name, CountryID: usa.ID, RegionID: ca.ID, WikiDataID: v.wd,
		})
		require.NoError(t, err)
	}
	return m
}

func resolveState(t *testing.T, query string) (cascade.State, cascade.External) {
	t.Helper()
	ext, err := cascade.ParseExternal(query)
	require.NoError(t, err)
	r := cascade.NewResolver(testStore(t).Sources(), cascade.OptExternal(ext))
	return r.Start(context.Background()), ext
}

func TestGetResolveCmd(t *testing.T) {
	cmd := getResolveCmd()
	assert.Equal(t, "resolve [QUERY]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("yaml"))
	assert.NotNil(t, cmd.Flags().Lookup("options"))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
}

func TestResolveView(t *testing.T) {
	assert := assert.New(t)
	st, ext := resolveState(t,
		"https://example.org/?country=USA&region=California&city=Fresno&service=plumbing")

	view := newResolveView(st, ext, true)
	assert.Equal("plumbing", view.Service)
	require.Len(t, view.Levels, 4)

	country := view.Levels[0]
	assert.Equal("country", country.Level)
	require.NotNil(t, country.Selected)
	assert.Equal("USA", country.Selected.Name)
	assert.Equal(2, country.Options)
	assert.Equal([]string{"Canada", "USA"}, country.OptionNames)

	region := view.Levels[1]
	require.NotNil(t, region.Selected)
	assert.Equal("California", region.Selected.Name)

	division := view.Levels[2]
	assert.Nil(division.Selected)
	assert.Equal(0, division.Options)

	city := view.Levels[3]
	require.NotNil(t, city.Selected)
	assert.Equal("Fresno", city.Selected.Name)
	assert.Equal("Fresno", city.Requested)
	assert.Equal(2, city.Options)
}

func TestResolveViewUnknownName(t *testing.T) {
	st, ext := resolveState(t, "country=USA&region=Ontario")
	view := newResolveView(st, ext, false)
	assert.NotNil(t, view.Levels[0].Selected)
	assert.Nil(t, view.Levels[1].Selected)
	assert.Equal(t, "Ontario", view.Levels[1].Requested)
	assert.Equal(t, 2, view.Levels[1].Options)
	assert.Empty(t, view.Levels[1].OptionNames)
}

func TestRenderResolve(t *testing.T) {
	st, ext := resolveState(t, "country=USA&region=Texas&category=home")
	view := newResolveView(st, ext, false)

	buf := new(bytes.Buffer)
	renderResolveTable(buf, view)
	out := buf.String()
	assert.Contains(t, out, "Texas")
	assert.Contains(t, out, "home")
	assert.NotContains(t, out, "HOME")

	buf.Reset()
	require.NoError(t, renderResolveYAML(buf, view))
	var got resolveView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "home", got.Category)
	require.Len(t, got.Levels, 4)
	require.NotNil(t, got.Levels[1].Selected)
	assert.Equal(t, "Texas", got.Levels[1].Selected.Name)
}

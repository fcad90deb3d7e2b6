package iogeo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeo struct {
	hits atomic.Int32
	key  atomic.Value
}

func (f *fakeGeo) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/countries/US/regions", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.key.Store(r.Header.Get("X-RapidAPI-Key"))
		offset := r.URL.Query().Get("offset")
		limit := r.URL.Query().Get("limit")
		fmt.Fprintf(w, `{"data":[
			{"countryCode":"US","fipsCode":"06","isoCode":"CA","name":"California","wikiDataId":"Q99"}
		],"metadata":{"currentOffset":%s,"totalCount":51,"limit":%q}}`, offset, limit)
	})
	mux.HandleFunc("/countries/US/regions/CA", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		fmt.Fprint(w, `{"data":{"name":"California","capital":"Sacramento",
			"countryCode":"US","isoCode":"CA","numCities":1500,"wikiDataId":"Q99"}}`)
	})
	mux.HandleFunc("/countries/US/regions/CA/cities", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		fmt.Fprint(w, `{"data":[
			{"id":1,"wikiDataId":"Q62","type":"CITY","name":"San Francisco",
			"countryCode":"US","regionCode":"CA","latitude":37.77,"longitude":-122.41,
			"population":873965}
		],"metadata":{"currentOffset":0,"totalCount":1}}`)
	})
	mux.HandleFunc("/cities/Q62", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		fmt.Fprint(w, `{"data":{"id":1,"wikiDataId":"Q62","name":"San Francisco",
			"countryCode":"US","regionCode":"CA","elevationMeters":16,
			"latitude":37.77,"longitude":-122.41,"population":873965,
			"timezone":"America__Los_Angeles"}}`)
	})
	mux.HandleFunc("/places/Q62/locatedIn", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		fmt.Fprint(w, `{"data":{"id":7,"wikiDataId":"Q13188841","type":"ADM2",
			"name":"San Francisco County","countryCode":"US","regionCode":"CA"}}`)
	})
	mux.HandleFunc("/places/Q1/locatedIn", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/cities/broken", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/cities/garbage", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		fmt.Fprint(w, `{"data":`)
	})
	return mux
}

func testConfig(t *testing.T, url string, cache bool) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptGeoDBURL(url),
		config.OptGeoDBAPIKey("secret"),
		config.OptGeoDBDelayMs(0),
		config.OptGeoDBCacheResponses(&cache),
	})
	return cfg
}

func TestClientLists(t *testing.T) {
	assert := assert.New(t)
	fake := &fakeGeo{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c, err := New(testConfig(t, srv.URL, false))
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	regions, err := c.Regions(ctx, "US", 10, 5)
	require.NoError(t, err)
	assert.Equal(51, regions.TotalCount)
	require.Len(t, regions.Data, 1)
	assert.Equal("CA", regions.Data[0].Code())
	assert.Equal("Q99", regions.Data[0].WikiDataID)
	assert.Equal("secret", fake.key.Load())

	cities, err := c.Cities(ctx, "US", "CA", 0, 10)
	require.NoError(t, err)
	assert.Equal(1, cities.TotalCount)
	require.Len(t, cities.Data, 1)
	assert.Equal("San Francisco", cities.Data[0].Name)
	assert.Equal(873965, cities.Data[0].Population)
}

func TestClientDetails(t *testing.T) {
	assert := assert.New(t)
	fake := &fakeGeo{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c, err := New(testConfig(t, srv.URL, false))
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	region, err := c.Region(ctx, "US", "CA")
	require.NoError(t, err)
	assert.Equal("Sacramento", region.Capital)

	city, err := c.City(ctx, "Q62")
	require.NoError(t, err)
	assert.Equal(16, city.ElevationMeters)
	assert.Equal("America__Los_Angeles", city.Timezone)

	place, err := c.LocatedIn(ctx, "Q62")
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal("Q13188841", place.WikiDataID)
	assert.Equal("ADM2", place.Type)

	place, err = c.LocatedIn(ctx, "Q1")
	assert.NoError(err)
	assert.Nil(place)
}

func TestClientErrors(t *testing.T) {
	assert := assert.New(t)
	fake := &fakeGeo{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c, err := New(testConfig(t, srv.URL, false))
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	_, err = c.City(ctx, "broken")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.GeoResponseError, gnErr.Code)

	_, err = c.City(ctx, "garbage")
	require.Error(t, err)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.GeoResponseError, gnErr.Code)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.Regions(cctx, "US", 0, 10)
	require.Error(t, err)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.GeoRequestError, gnErr.Code)
}

func TestClientCache(t *testing.T) {
	assert := assert.New(t)
	fake := &fakeGeo{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	cfg := testConfig(t, srv.URL, true)
	c, err := New(cfg)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.City(ctx, "Q62")
	require.NoError(t, err)
	_, err = c.LocatedIn(ctx, "Q62")
	require.NoError(t, err)
	assert.Equal(int32(2), fake.hits.Load())

	city, err := c.City(ctx, "Q62")
	require.NoError(t, err)
	assert.Equal("San Francisco", city.Name)
	assert.Equal(int32(2), fake.hits.Load(), "details come from cache")

	// lists are never cached
	_, err = c.Regions(ctx, "US", 0, 10)
	require.NoError(t, err)
	_, err = c.Regions(ctx, "US", 0, 10)
	require.NoError(t, err)
	assert.Equal(int32(4), fake.hits.Load())

	// errors are not cached
	_, err = c.City(ctx, "broken")
	assert.Error(err)
	_, err = c.City(ctx, "broken")
	assert.Error(err)
	assert.Equal(int32(6), fake.hits.Load())
	require.NoError(t, c.Close())

	_, err = os.Stat(config.GeoCacheFilePath(cfg.HomeDir))
	assert.NoError(err)

	// the cache survives a restart
	c, err = New(cfg)
	require.NoError(t, err)
	defer c.Close()
	place, err := c.LocatedIn(ctx, "Q62")
	require.NoError(t, err)
	assert.Equal("San Francisco County", place.Name)
	assert.Equal(int32(6), fake.hits.Load())
}

func TestClientDelay(t *testing.T) {
	fake := &fakeGeo{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	cfg := testConfig(t, srv.URL, false)
	cfg.Update([]config.Option{config.OptGeoDBDelayMs(40)})
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	start := time.Now()
	for range 3 {
		_, err = c.Regions(ctx, "US", 0, 10)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "/cities/Q62", cacheKey("/cities/Q62", nil))
	assert.Equal(t, "/x?a=1&b=c+d",
		cacheKey("/x", map[string]string{"b": "c d", "a": "1"}))
}

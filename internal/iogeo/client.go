// Package iogeo implements geodb.API over the HTTP interface of a
// GeoDB Cities compatible service.
//
// Calls are throttled by a token-bucket limiter so that two requests are
// never closer than the configured delay. Detail lookups (region, city,
// located-in) can be cached in a SQLite file, lists are always fetched.
package iogeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/geodb"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Client is a geodb.API implementation.
type Client struct {
	http  *resty.Client
	cache *responseCache
}

// envelope is the common shape of geo API responses.
type envelope[T any] struct {
	Data     T              `json:"data"`
	Metadata geodb.Metadata `json:"metadata"`
}

// New creates a geo API client. When response caching is enabled the
// cache file is created in the cache directory.
func New(cfg *config.Config) (*Client, error) {
	g := cfg.GeoDB

	httpClient := resty.New()
	httpClient.SetBaseURL(g.URL)
	httpClient.SetTimeout(g.Timeout())
	httpClient.SetHeader("Accept", "application/json")
	httpClient.SetHeader("User-Agent", "gnloc")
	if g.APIKey != "" {
		httpClient.SetHeader("X-RapidAPI-Key", g.APIKey)
		httpClient.SetHeader("X-RapidAPI-Host", g.APIHost)
	}

	httpClient.
		SetRetryCount(3).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, _ error) bool {
			return r != nil && r.StatusCode() == http.StatusTooManyRequests
		})

	limit := rate.Inf
	if d := g.Delay(); d > 0 {
		limit = rate.Every(d)
	}
	limiter := rate.NewLimiter(limit, 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	res := &Client{http: httpClient}

	if g.CacheResponses != nil && *g.CacheResponses {
		cache, err := openCache(config.GeoCacheFilePath(cfg.HomeDir))
		if err != nil {
			return nil, err
		}
		res.cache = cache
	}
	return res, nil
}

// Close releases the response cache.
func (c *Client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.close()
}

// Regions returns a page of regions of a country.
func (c *Client) Regions(
	ctx context.Context,
	countryCode string,
	offset, limit int,
) (geodb.Page[geodb.RegionRef], error) {
	path := fmt.Sprintf("/countries/%s/regions", url.PathEscape(countryCode))
	return getPage[geodb.RegionRef](ctx, c, path, offset, limit)
}

// Region returns details of a region.
func (c *Client) Region(
	ctx context.Context,
	countryCode, regionCode string,
) (geodb.Region, error) {
	path := fmt.Sprintf("/countries/%s/regions/%s",
		url.PathEscape(countryCode), url.PathEscape(regionCode))

	var env envelope[geodb.Region]
	if _, err := c.get(ctx, path, nil, true, &env); err != nil {
		return geodb.Region{}, err
	}
	return env.Data, nil
}

// Cities returns a page of cities of a region.
func (c *Client) Cities(
	ctx context.Context,
	countryCode, regionCode string,
	offset, limit int,
) (geodb.Page[geodb.CityRef], error) {
	path := fmt.Sprintf("/countries/%s/regions/%s/cities",
		url.PathEscape(countryCode), url.PathEscape(regionCode))
	return getPage[geodb.CityRef](ctx, c, path, offset, limit)
}

// City returns details of a city. The id can be the numeric API id or
// the wikiDataId of the city.
func (c *Client) City(ctx context.Context, cityID string) (geodb.City, error) {
	path := "/cities/" + url.PathEscape(cityID)

	var env envelope[geodb.City]
	if _, err := c.get(ctx, path, nil, true, &env); err != nil {
		return geodb.City{}, err
	}
	return env.Data, nil
}

// LocatedIn returns the place that contains the given one, or nil.
func (c *Client) LocatedIn(ctx context.Context, placeID string) (*geodb.Place, error) {
	path := fmt.Sprintf("/places/%s/locatedIn", url.PathEscape(placeID))

	var env envelope[*geodb.Place]
	status, err := c.get(ctx, path, nil, true, &env)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func getPage[T any](
	ctx context.Context,
	c *Client,
	path string,
	offset, limit int,
) (geodb.Page[T], error) {
	q := map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}

	var env envelope[[]T]
	if _, err := c.get(ctx, path, q, false, &env); err != nil {
		return geodb.Page[T]{}, err
	}
	return geodb.Page[T]{
		Data:       env.Data,
		TotalCount: env.Metadata.TotalCount,
	}, nil
}

// get performs a GET request and decodes the body into out. It returns
// the HTTP status, 0 when the body came from the cache or the request
// did not complete.
func (c *Client) get(
	ctx context.Context,
	path string,
	query map[string]string,
	cached bool,
	out any,
) (int, error) {
	useCache := cached && c.cache != nil
	key := cacheKey(path, query)

	if useCache {
		body, ok, err := c.cache.get(ctx, key)
		if err != nil {
			slog.Warn("Cannot read geo response cache", "key", key, "error", err)
		}
		if ok && json.Unmarshal(body, out) == nil {
			slog.Debug("Geo response from cache", "key", key)
			return 0, nil
		}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return 0, RequestError(path, err)
	}

	status := res.StatusCode()
	if res.IsError() {
		return status, ResponseError(path, status, errors.New(res.Status()))
	}

	body := res.Body()
	if err = json.Unmarshal(body, out); err != nil {
		return status, ResponseError(path, status, err)
	}

	if useCache {
		if err = c.cache.put(ctx, key, body); err != nil {
			slog.Warn("Cannot write geo response cache", "key", key, "error", err)
		}
	}
	return status, nil
}

func cacheKey(path string, query map[string]string) string {
	if len(query) == 0 {
		return path
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = url.QueryEscape(k) + "=" + url.QueryEscape(query[k])
	}
	return path + "?" + strings.Join(parts, "&")
}

// Package iopocket implements location.Backend on top of the REST API
// of a PocketBase record storage.
//
// Collections are countries, regions, divisions and cities. Relation
// fields are named country, region and division, so option sets can be
// filtered by ancestor names, for example country.name="USA".
package iopocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/go-resty/resty/v2"
)

type pocket struct {
	http    *resty.Client
	cfg     config.PocketBaseConfig
	sources location.Sources
}

type listResult[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

type authResult struct {
	Token string `json:"token"`
}

// New creates a PocketBase backend. If an email is configured, it
// authenticates against the auth collection and uses the token for all
// further requests.
func New(ctx context.Context, cfg *config.Config) (location.Backend, error) {
	pb := cfg.PocketBase

	httpClient := resty.New()
	httpClient.SetBaseURL(pb.URL)
	httpClient.SetTimeout(30 * time.Second)
	httpClient.SetHeader("Accept", "application/json")

	res := &pocket{http: httpClient, cfg: pb}
	res.sources = location.Sources{
		Country:  &source{level: location.LevelCountry, p: res},
		Region:   &source{level: location.LevelRegion, p: res},
		Division: &source{level: location.LevelDivision, p: res},
		City:     &source{level: location.LevelCity, p: res},
	}

	if pb.Email != "" {
		if err := res.auth(ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (p *pocket) auth(ctx context.Context) error {
	path := fmt.Sprintf("/api/collections/%s/auth-with-password",
		url.PathEscape(p.cfg.AuthCollection))

	var ar authResult
	res, err := p.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"identity": p.cfg.Email,
			"password": p.cfg.Password,
		}).
		SetResult(&ar).
		Post(path)
	if err != nil {
		return AuthError(p.cfg.URL, p.cfg.AuthCollection, err)
	}
	if res.IsError() || ar.Token == "" {
		err = fmt.Errorf("status %d: %s", res.StatusCode(), res.String())
		return AuthError(p.cfg.URL, p.cfg.AuthCollection, err)
	}

	p.http.SetHeader("Authorization", ar.Token)
	slog.Debug("Authenticated at record storage", "url", p.cfg.URL)
	return nil
}

// Sources returns option sources of the four levels.
func (p *pocket) Sources() location.Sources {
	return p.sources
}

// Close is a no-op, the HTTP client has nothing to release.
func (p *pocket) Close() error {
	return nil
}

func (p *pocket) Country(ctx context.Context, id string) (*location.Country, error) {
	collection := location.LevelCountry.Collection()
	path := fmt.Sprintf("/api/collections/%s/records/%s",
		collection, url.PathEscape(id))

	var res location.Country
	resp, err := p.http.R().
		SetContext(ctx).
		SetResult(&res).
		Get(path)
	if err != nil {
		return nil, RequestError(collection, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, QueryError(collection, "id="+id, resp.StatusCode(),
			errors.New(resp.String()))
	}
	return &res, nil
}

func (p *pocket) Countries(ctx context.Context) ([]location.Country, error) {
	return list[location.Country](ctx, p, location.LevelCountry, "", 0)
}

func (p *pocket) CreateCountry(
	ctx context.Context,
	c location.Country,
) (location.Country, error) {
	return create(ctx, p, location.LevelCountry, c.Name, c)
}

func (p *pocket) RegionByWikiDataID(
	ctx context.Context,
	wikiDataID string,
) (*location.Region, error) {
	return first[location.Region](ctx, p, location.LevelRegion, wikiDataID)
}

func (p *pocket) CreateRegion(
	ctx context.Context,
	r location.Region,
) (location.Region, error) {
	return create(ctx, p, location.LevelRegion, r.Name, r)
}

func (p *pocket) DivisionByWikiDataID(
	ctx context.Context,
	wikiDataID string,
) (*location.Division, error) {
	return first[location.Division](ctx, p, location.LevelDivision, wikiDataID)
}

func (p *pocket) CreateDivision(
	ctx context.Context,
	d location.Division,
) (location.Division, error) {
	return create(ctx, p, location.LevelDivision, d.Name, d)
}

func (p *pocket) CityByWikiDataID(
	ctx context.Context,
	wikiDataID string,
) (*location.City, error) {
	return first[location.City](ctx, p, location.LevelCity, wikiDataID)
}

func (p *pocket) CreateCity(
	ctx context.Context,
	c location.City,
) (location.City, error) {
	return create(ctx, p, location.LevelCity, c.Name, c)
}

// list reads all pages of a collection sorted by name. A positive maxItems
// stops reading after that many items.
func list[T any](
	ctx context.Context,
	p *pocket,
	l location.Level,
	filter string,
	maxItems int,
) ([]T, error) {
	collection := l.Collection()
	path := fmt.Sprintf("/api/collections/%s/records", collection)

	perPage := p.cfg.PerPage
	if maxItems > 0 && maxItems < perPage {
		perPage = maxItems
	}

	var res []T
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, RequestError(collection, err)
		}

		q := map[string]string{
			"page":    strconv.Itoa(page),
			"perPage": strconv.Itoa(perPage),
			"sort":    "name",
		}
		if filter != "" {
			q["filter"] = filter
		}

		var lr listResult[T]
		resp, err := p.http.R().
			SetContext(ctx).
			SetQueryParams(q).
			SetResult(&lr).
			Get(path)
		if err != nil {
			return nil, RequestError(collection, err)
		}
		if resp.IsError() {
			return nil, QueryError(collection, filter, resp.StatusCode(),
				errors.New(resp.String()))
		}

		res = append(res, lr.Items...)
		if maxItems > 0 && len(res) >= maxItems {
			return res[:maxItems], nil
		}
		if len(lr.Items) == 0 || page >= lr.TotalPages {
			return res, nil
		}
	}
}

// first finds a record by its wikiDataId.
func first[T any](
	ctx context.Context,
	p *pocket,
	l location.Level,
	wikiDataID string,
) (*T, error) {
	items, err := list[T](ctx, p, l, location.WikiDataExpr(wikiDataID), 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func create[T any](
	ctx context.Context,
	p *pocket,
	l location.Level,
	name string,
	rec T,
) (T, error) {
	collection := l.Collection()
	path := fmt.Sprintf("/api/collections/%s/records", collection)

	var res T
	body, err := payload(rec)
	if err != nil {
		return res, CreateError(collection, name, err)
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&res).
		Post(path)
	if err != nil {
		return res, CreateError(collection, name, err)
	}
	if resp.IsError() {
		err = fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
		return res, CreateError(collection, name, err)
	}
	return res, nil
}

// payload converts a record to a request body without empty id and
// empty relation fields, so the storage generates ids and keeps optional
// relations unset.
func payload(rec any) (map[string]any, error) {
	bs, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var res map[string]any
	if err = json.Unmarshal(bs, &res); err != nil {
		return nil, err
	}
	for _, k := range []string{"id", "country", "region", "division"} {
		if v, ok := res[k]; ok && v == "" {
			delete(res, k)
		}
	}
	return res, nil
}

// source is the option source of one level.
type source struct {
	level location.Level
	p     *pocket
}

func (s *source) Level() location.Level {
	return s.level
}

func (s *source) Options(
	ctx context.Context,
	f location.Filter,
) ([]location.Node, error) {
	filter := f.Expr(s.level)
	switch s.level {
	case location.LevelCountry:
		return nodes(list[location.Country](ctx, s.p, s.level, filter, 0))
	case location.LevelRegion:
		return nodes(list[location.Region](ctx, s.p, s.level, filter, 0))
	case location.LevelDivision:
		return nodes(list[location.Division](ctx, s.p, s.level, filter, 0))
	default:
		return nodes(list[location.City](ctx, s.p, s.level, filter, 0))
	}
}

type noder interface {
	Node() location.Node
}

func nodes[T noder](items []T, err error) ([]location.Node, error) {
	if err != nil {
		return nil, err
	}
	res := make([]location.Node, len(items))
	for i, v := range items {
		res[i] = v.Node()
	}
	return res, nil
}

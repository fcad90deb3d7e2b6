// Package iopg implements location.Backend on the PostgreSQL tables
// created by the schema manager.
//
// Ids of crawled records are derived from their wikiDataId, ids of
// countries from their names, so inserting the same record twice is a
// no-op.
package iopg

import (
	"context"
	"errors"
	"strings"

	"github.com/gnames/gnloc/internal/iodb"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/db"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/gnames/gnloc/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type store struct {
	op      db.Operator
	pool    *pgxpool.Pool
	sources location.Sources
}

// New connects to PostgreSQL and returns the backend. The location
// tables must exist.
func New(ctx context.Context, cfg *config.Config) (location.Backend, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	exists, err := op.TableExists(ctx, location.LevelCity.Collection())
	if err != nil {
		_ = op.Close()
		return nil, err
	}
	if !exists {
		_ = op.Close()
		return nil, NoTablesError(cfg.Database.Database)
	}
	return NewWithOperator(op), nil
}

// NewWithOperator creates the backend over an already connected operator.
func NewWithOperator(op db.Operator) location.Backend {
	res := &store{op: op, pool: op.Pool()}
	res.sources = location.Sources{
		Country:  &source{level: location.LevelCountry, s: res},
		Region:   &source{level: location.LevelRegion, s: res},
		Division: &source{level: location.LevelDivision, s: res},
		City:     &source{level: location.LevelCity, s: res},
	}
	return res
}

func (s *store) Sources() location.Sources {
	return s.sources
}

func (s *store) Close() error {
	return s.op.Close()
}

func (s *store) Country(ctx context.Context, id string) (*location.Country, error) {
	q := `SELECT id::text, name, code FROM countries WHERE id::text = $1`
	var res location.Country
	err := s.pool.QueryRow(ctx, q, id).Scan(&res.ID, &res.Name, &res.Code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("countries", err)
	}
	return &res, nil
}

func (s *store) Countries(ctx context.Context) ([]location.Country, error) {
	q := `SELECT id::text, name, code FROM countries ORDER BY name`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, QueryError("countries", err)
	}
	res, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (location.Country, error) {
		var c location.Country
		err := row.Scan(&c.ID, &c.Name, &c.Code)
		return c, err
	})
	if err != nil {
		return nil, QueryError("countries", err)
	}
	return res, nil
}

func (s *store) CreateCountry(
	ctx context.Context,
	c location.Country,
) (location.Country, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.ID = schema.CountryID(c.Name)

	q := `INSERT INTO countries (id, name, code, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code`
	if _, err := s.pool.Exec(ctx, q, c.ID, c.Name, c.Code); err != nil {
		return location.Country{}, CreateError("countries", c.Name, err)
	}
	return c, nil
}

func (s *store) RegionByWikiDataID(
	ctx context.Context,
	wikiDataID string,
) (*location.Region, error) {
	q := `SELECT id::text, name, country_id::text, code, wiki_data_id
FROM regions WHERE wiki_data_id = $1`
	var res location.Region
	err := s.pool.QueryRow(ctx, q, wikiDataID).
		Scan(&res.ID, &res.Name, &res.CountryID, &res.Code, &res.WikiDataID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("regions", err)
	}
	return &res, nil
}

func (s *store) CreateRegion(
	ctx context.Context,
	r location.Region,
) (location.Region, error) {
	r.ID = schema.RecordID(location.LevelRegion, r.WikiDataID)
	q := `INSERT INTO regions (id, country_id, name, code, wiki_data_id, created_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (id) DO NOTHING`
	_, err := s.pool.Exec(ctx, q, r.ID, r.CountryID, r.Name, r.Code, r.WikiDataID)
	if err != nil {
		return location.Region{}, CreateError("regions", r.Name, err)
	}
	return r, nil
}

func (s *store) DivisionByWikiDataID(
	ctx context.Context,
	wikiDataID string,
) (*location.Division, error) {
	q := `SELECT id::text, name, country_id::text, region_id::text, wiki_data_id
FROM divisions WHERE wiki_data_id = $1`
	var res location.Division
	err := s.pool.QueryRow(ctx, q, wikiDataID).
		Scan(&res.ID, &res.Name, &res.CountryID, &res.RegionID, &res.WikiDataID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("divisions", err)
	}
	return &res, nil
}

func (s *store) CreateDivision(
	ctx context.Context,
	d location.Division,
) (location.Division, error) {
	d.ID = schema.RecordID(location.LevelDivision, d.WikiDataID)
	q := `INSERT INTO divisions (id, country_id, region_id, name, wiki_data_id, created_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (id) DO NOTHING`
	_, err := s.pool.Exec(ctx, q, d.ID, d.CountryID, d.RegionID, d.Name, d.WikiDataID)
	if err != nil {
		return location.Division{}, CreateError("divisions", d.Name, err)
	}
	return d, nil
}

func (s *store) CityByWikiDataID(
	ctx context.Context,
	wikiDataID string,
) (*location.City, error) {
	q := `SELECT id::text, name, country_id::text, region_id::text,
  COALESCE(division_id::text, ''), wiki_data_id, country_code, region_code,
  latitude, longitude, population, elevation_meters, timezone, cell_token
FROM cities WHERE wiki_data_id = $1`
	var c location.City
	err := s.pool.QueryRow(ctx, q, wikiDataID).Scan(
		&c.ID, &c.Name, &c.CountryID, &c.RegionID, &c.DivisionID,
		&c.WikiDataID, &c.CountryCode, &c.RegionCode,
		&c.Latitude, &c.Longitude, &c.Population, &c.ElevationMeters,
		&c.Timezone, &c.CellToken,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("cities", err)
	}
	return &c, nil
}

func (s *store) CreateCity(
	ctx context.Context,
	c location.City,
) (location.City, error) {
	c.ID = schema.RecordID(location.LevelCity, c.WikiDataID)
	var divisionID *string
	if c.DivisionID != "" {
		divisionID = &c.DivisionID
	}

	q := `INSERT INTO cities (id, country_id, region_id, division_id, name,
  wiki_data_id, country_code, region_code, latitude, longitude,
  population, elevation_meters, timezone, cell_token, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
ON CONFLICT (id) DO NOTHING`
	_, err := s.pool.Exec(ctx, q,
		c.ID, c.CountryID, c.RegionID, divisionID, c.Name,
		c.WikiDataID, c.CountryCode, c.RegionCode, c.Latitude, c.Longitude,
		c.Population, c.ElevationMeters, c.Timezone, c.CellToken,
	)
	if err != nil {
		return location.City{}, CreateError("cities", c.Name, err)
	}
	return c, nil
}

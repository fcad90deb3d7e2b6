package iopg

import (
	"context"

	"github.com/gnames/gnloc/pkg/location"
	"github.com/jackc/pgx/v5"
)

// source is the option source of one level. Children are matched by
// the names of their ancestors, the same way the PocketBase backend
// filters them.
type source struct {
	level location.Level
	s     *store
}

func (src *source) Level() location.Level {
	return src.level
}

func (src *source) Options(
	ctx context.Context,
	f location.Filter,
) ([]location.Node, error) {
	q, args := optionsQuery(src.level, f)
	rows, err := src.s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, QueryError(src.level.Collection(), err)
	}
	res, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (location.Node, error) {
		var n location.Node
		err := row.Scan(&n.ID, &n.Name, &n.ParentID, &n.DivisionID)
		return n, err
	})
	if err != nil {
		return nil, QueryError(src.level.Collection(), err)
	}
	return res, nil
}

// optionsQuery returns SQL and arguments that select nodes of a level
// as (id, name, parent id, division id).
func optionsQuery(l location.Level, f location.Filter) (string, []any) {
	switch l {
	case location.LevelCountry:
		return `SELECT id::text, name, '', '' FROM countries ORDER BY name`, nil
	case location.LevelRegion:
		return `SELECT r.id::text, r.name, r.country_id::text, ''
FROM regions r
  JOIN countries c ON c.id = r.country_id
WHERE c.name = $1
ORDER BY r.name`, []any{f.Country}
	case location.LevelDivision:
		return `SELECT d.id::text, d.name, d.region_id::text, ''
FROM divisions d
  JOIN countries c ON c.id = d.country_id
  JOIN regions r ON r.id = d.region_id
WHERE c.name = $1 AND r.name = $2
ORDER BY d.name`, []any{f.Country, f.Region}
	default:
		q := `SELECT ci.id::text, ci.name, ci.region_id::text,
  COALESCE(ci.division_id::text, '')
FROM cities ci
  JOIN countries c ON c.id = ci.country_id
  JOIN regions r ON r.id = ci.region_id`
		if f.Division == "" {
			return q + `
WHERE c.name = $1 AND r.name = $2
ORDER BY ci.name`, []any{f.Country, f.Region}
		}
		return q + `
  JOIN divisions d ON d.id = ci.division_id
WHERE c.name = $1 AND r.name = $2 AND d.name = $3
ORDER BY ci.name`, []any{f.Country, f.Region, f.Division}
	}
}

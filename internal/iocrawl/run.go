package iocrawl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gnloc/pkg/geodb"
	"github.com/gnames/gnloc/pkg/lifecycle"
	"github.com/gnames/gnloc/pkg/location"
)

// run keeps the state of a single crawl.
type run struct {
	ctx     context.Context
	store   location.Store
	api     geodb.API
	limit   int
	country location.Country
	report  *lifecycle.Report
	log     *slog.Logger
}

// regions enumerates all regions of the country. A failed page ends the
// enumeration and keeps what was collected so far. A cancelled run
// returns nothing.
func (r *run) regions() []geodb.RegionRef {
	var res []geodb.RegionRef
	for {
		if r.ctx.Err() != nil {
			return nil
		}
		page, err := r.api.Regions(r.ctx, r.country.Code, len(res), r.limit)
		if r.ctx.Err() != nil {
			return nil
		}
		if err != nil {
			r.pageFailed("region page", r.country.Name, len(res), err)
			return res
		}

		res = append(res, page.Data...)
		if len(page.Data) == 0 || len(res) >= page.TotalCount {
			return res
		}
	}
}

// cityRefs enumerates cities of a region. Besides the total count, a page
// shorter than the limit ends the enumeration.
func (r *run) cityRefs(ref geodb.RegionRef) []geodb.CityRef {
	var res []geodb.CityRef
	for {
		if r.ctx.Err() != nil {
			return nil
		}
		page, err := r.api.Cities(r.ctx, r.country.Code, ref.Code(), len(res), r.limit)
		if r.ctx.Err() != nil {
			return nil
		}
		if err != nil {
			r.pageFailed("city page", ref.Name, len(res), err)
			return res
		}

		res = append(res, page.Data...)
		if len(page.Data) < r.limit || len(res) >= page.TotalCount {
			return res
		}
	}
}

// region finds the local region of ref or creates it.
func (r *run) region(ref geodb.RegionRef) (location.Region, bool) {
	if ref.WikiDataID == "" {
		r.skip(location.LevelRegion, ref.Name, "", errMissingWikiData)
		return location.Region{}, false
	}

	existing, err := r.store.RegionByWikiDataID(r.ctx, ref.WikiDataID)
	if err != nil {
		r.skip(location.LevelRegion, ref.Name, ref.WikiDataID, err)
		return location.Region{}, false
	}
	if existing != nil {
		r.report.Regions.Found++
		return *existing, true
	}

	detail, err := r.api.Region(r.ctx, r.country.Code, ref.Code())
	if err != nil {
		r.skip(location.LevelRegion, ref.Name, ref.WikiDataID, err)
		return location.Region{}, false
	}

	rec := location.Region{
		Name:       detail.Name,
		CountryID:  r.country.ID,
		Code:       ref.Code(),
		WikiDataID: ref.WikiDataID,
	}
	if rec.Name == "" {
		rec.Name = ref.Name
	}

	if r.ctx.Err() != nil {
		return location.Region{}, false
	}
	created, err := r.store.CreateRegion(r.ctx, rec)
	if err != nil {
		r.skip(location.LevelRegion, rec.Name, rec.WikiDataID, err)
		return location.Region{}, false
	}
	r.report.Regions.Created++
	r.log.Debug("Created region", "name", created.Name, "id", created.ID)
	return created, created.ID != ""
}

// cities imports all cities of a region.
func (r *run) cities(ref geodb.RegionRef, region location.Region) {
	refs := r.cityRefs(ref)
	r.log.Debug("Enumerated cities", "region", region.Name, "count", len(refs))
	for _, v := range refs {
		if r.ctx.Err() != nil {
			return
		}
		r.city(v, region)
	}
}

// city creates a city unless it is already known locally.
func (r *run) city(ref geodb.CityRef, region location.Region) {
	if ref.WikiDataID == "" {
		r.skip(location.LevelCity, ref.Name, "", errMissingWikiData)
		return
	}

	existing, err := r.store.CityByWikiDataID(r.ctx, ref.WikiDataID)
	if err != nil {
		r.skip(location.LevelCity, ref.Name, ref.WikiDataID, err)
		return
	}
	if existing != nil {
		r.report.Cities.Found++
		return
	}

	detail, err := r.api.City(r.ctx, ref.WikiDataID)
	if err != nil {
		r.skip(location.LevelCity, ref.Name, ref.WikiDataID, err)
		return
	}

	rec := location.City{
		Name:            detail.Name,
		CountryID:       r.country.ID,
		RegionID:        region.ID,
		DivisionID:      r.division(ref, region),
		WikiDataID:      ref.WikiDataID,
		CountryCode:     r.country.Code,
		RegionCode:      region.Code,
		Latitude:        detail.Latitude,
		Longitude:       detail.Longitude,
		Population:      detail.Population,
		ElevationMeters: detail.ElevationMeters,
		Timezone:        detail.Timezone,
		CellToken:       location.CellToken(detail.Latitude, detail.Longitude),
	}
	if rec.Name == "" {
		rec.Name = ref.Name
	}

	if r.ctx.Err() != nil {
		return
	}
	created, err := r.store.CreateCity(r.ctx, rec)
	if err != nil {
		r.skip(location.LevelCity, rec.Name, rec.WikiDataID, err)
		return
	}
	r.report.Cities.Created++
	r.log.Debug("Created city", "name", created.Name, "id", created.ID)
}

// division returns the local id of the division that contains a city,
// creating the division when needed. It returns an empty id when the
// city has no division or the division cannot be resolved.
func (r *run) division(ref geodb.CityRef, region location.Region) string {
	place, err := r.api.LocatedIn(r.ctx, ref.WikiDataID)
	if err != nil {
		r.skip(location.LevelDivision, "parent of "+ref.Name, ref.WikiDataID, err)
		return ""
	}
	if place == nil || place.WikiDataID == "" ||
		place.WikiDataID == region.WikiDataID {
		return ""
	}

	existing, err := r.store.DivisionByWikiDataID(r.ctx, place.WikiDataID)
	if err != nil {
		r.skip(location.LevelDivision, place.Name, place.WikiDataID, err)
		return ""
	}
	if existing != nil {
		r.report.Divisions.Found++
		return existing.ID
	}

	if r.ctx.Err() != nil {
		return ""
	}
	created, err := r.store.CreateDivision(r.ctx, location.Division{
		Name:       place.Name,
		CountryID:  r.country.ID,
		RegionID:   region.ID,
		WikiDataID: place.WikiDataID,
	})
	if err != nil {
		r.skip(location.LevelDivision, place.Name, place.WikiDataID, err)
		return ""
	}
	r.report.Divisions.Created++
	r.log.Debug("Created division", "name", created.Name, "id", created.ID)
	return created.ID
}

// skip records a record that could not be imported. Failures caused by
// cancellation are not recorded.
func (r *run) skip(l location.Level, name, wikiDataID string, err error) {
	if r.ctx.Err() != nil {
		return
	}
	skipErr := EntitySkipError(l, name, wikiDataID, err)
	r.report.Skipped = append(r.report.Skipped, lifecycle.Skip{
		Level:      l.String(),
		Name:       name,
		WikiDataID: wikiDataID,
		Reason:     err.Error(),
		Err:        skipErr,
	})
	r.log.Warn("Skipped record",
		"level", l.String(),
		"name", name,
		"wiki_data_id", wikiDataID,
		"error", err,
	)
}

func (r *run) pageFailed(what, parent string, offset int, err error) {
	r.report.Skipped = append(r.report.Skipped, lifecycle.Skip{
		Level:  what,
		Name:   fmt.Sprintf("%s, offset %d", parent, offset),
		Reason: err.Error(),
		Err:    err,
	})
	r.log.Warn("Enumeration stopped early",
		"what", what,
		"parent", parent,
		"offset", offset,
		"error", err,
	)
}

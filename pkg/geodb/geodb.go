// Package geodb describes the external geo-data API used to backfill
// regions, divisions and cities. The API is paginated with offset/limit
// and reports the total number of records in every page.
package geodb

import "context"

// API is the external geo-data service.
type API interface {
	// Regions returns a page of regions of a country. The country is
	// addressed by its ISO-3166 code.
	Regions(
		ctx context.Context,
		countryCode string,
		offset, limit int,
	) (Page[RegionRef], error)

	// Region returns details of a region.
	Region(ctx context.Context, countryCode, regionCode string) (Region, error)

	// Cities returns a page of cities of a region.
	Cities(
		ctx context.Context,
		countryCode, regionCode string,
		offset, limit int,
	) (Page[CityRef], error)

	// City returns details of a city by its API id.
	City(ctx context.Context, cityID string) (City, error)

	// LocatedIn returns the administrative division that contains a
	// place. It returns nil when the place has no such parent.
	LocatedIn(ctx context.Context, placeID string) (*Place, error)
}

// Page is one page of a paginated response.
type Page[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
}

// Metadata is the pagination block of API responses.
type Metadata struct {
	CurrentOffset int `json:"currentOffset"`
	TotalCount    int `json:"totalCount"`
}

// RegionRef is a region as it appears in a list.
type RegionRef struct {
	CountryCode string `json:"countryCode"`
	FipsCode    string `json:"fipsCode"`
	IsoCode     string `json:"isoCode"`
	Name        string `json:"name"`
	WikiDataID  string `json:"wikiDataId"`
}

// Code returns the code used to address the region in API paths.
func (r RegionRef) Code() string {
	if r.IsoCode != "" {
		return r.IsoCode
	}
	return r.FipsCode
}

// Region contains region details.
type Region struct {
	Name        string `json:"name"`
	Capital     string `json:"capital"`
	CountryCode string `json:"countryCode"`
	FipsCode    string `json:"fipsCode"`
	IsoCode     string `json:"isoCode"`
	NumCities   int    `json:"numCities"`
	WikiDataID  string `json:"wikiDataId"`
}

// CityRef is a city as it appears in a list.
type CityRef struct {
	ID          int     `json:"id"`
	WikiDataID  string  `json:"wikiDataId"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode"`
	RegionCode  string  `json:"regionCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Population  int     `json:"population"`
}

// City contains city details.
type City struct {
	ID              int     `json:"id"`
	WikiDataID      string  `json:"wikiDataId"`
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	CountryCode     string  `json:"countryCode"`
	RegionCode      string  `json:"regionCode"`
	ElevationMeters int     `json:"elevationMeters"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Population      int     `json:"population"`
	Timezone        string  `json:"timezone"`
}

// Place is a parent place returned by the located-in lookup.
type Place struct {
	ID          int    `json:"id"`
	WikiDataID  string `json:"wikiDataId"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	RegionCode  string `json:"regionCode"`
}

package location

import "context"

// Source loads the option set of one level filtered by ancestor names.
type Source interface {
	// Level reports which level the source serves.
	Level() Level

	// Options returns nodes of the level that match the filter, sorted
	// by name.
	Options(ctx context.Context, f Filter) ([]Node, error)
}

// Sources bundles one source per level. Callers pick the field they
// need instead of dispatching on a string key.
type Sources struct {
	Country  Source
	Region   Source
	Division Source
	City     Source
}

// For returns the source of the given level.
func (s Sources) For(l Level) Source {
	switch l {
	case LevelCountry:
		return s.Country
	case LevelRegion:
		return s.Region
	case LevelDivision:
		return s.Division
	default:
		return s.City
	}
}

// Map returns a copy of the bundle where every source is replaced by
// fn(source). It is used to wrap sources with decorators such as caches.
func (s Sources) Map(fn func(Source) Source) Sources {
	return Sources{
		Country:  fn(s.Country),
		Region:   fn(s.Region),
		Division: fn(s.Division),
		City:     fn(s.City),
	}
}

// Store is the local record storage as seen by the geo crawler.
// Lookup methods return (nil, nil) when a record does not exist.
// Create methods write nothing and return the context error once ctx
// is done.
type Store interface {
	// Country returns a country by its local id.
	Country(ctx context.Context, id string) (*Country, error)

	// Countries returns all countries sorted by name.
	Countries(ctx context.Context) ([]Country, error)

	// CreateCountry persists a new country.
	CreateCountry(ctx context.Context, c Country) (Country, error)

	// RegionByWikiDataID finds a region by its external stable id.
	RegionByWikiDataID(ctx context.Context, wikiDataID string) (*Region, error)

	// CreateRegion persists a new region.
	CreateRegion(ctx context.Context, r Region) (Region, error)

	// DivisionByWikiDataID finds a division by its external stable id.
	DivisionByWikiDataID(ctx context.Context, wikiDataID string) (*Division, error)

	// CreateDivision persists a new division.
	CreateDivision(ctx context.Context, d Division) (Division, error)

	// CityByWikiDataID finds a city by its external stable id.
	CityByWikiDataID(ctx context.Context, wikiDataID string) (*City, error)

	// CreateCity persists a new city.
	CreateCity(ctx context.Context, c City) (City, error)
}

// Backend is a record store that serves both the option sources and
// the crawler.
type Backend interface {
	Store

	// Sources returns the per-level option sources backed by the store.
	Sources() Sources

	// Close releases resources held by the backend.
	Close() error
}

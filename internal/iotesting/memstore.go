package iotesting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gnames/gnloc/pkg/location"
)

// ErrCreateFailed is returned by MemStore for records listed in
// FailCreate.
var ErrCreateFailed = errors.New("create failed")

// Write is a record created in MemStore.
type Write struct {
	Level      location.Level
	ID         string
	Name       string
	CountryID  string
	WikiDataID string
}

// MemStore is an in-memory location.Backend for tests. Creates fail
// with the context error once the context is done.
type MemStore struct {
	mu        sync.Mutex
	countries []location.Country
	regions   []location.Region
	divisions []location.Division
	cities    []location.City
	writes    []Write
	nextID    int

	// FailCreate lists wikiDataIds whose creation fails.
	FailCreate map[string]bool
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{FailCreate: make(map[string]bool)}
}

func (m *MemStore) id(l location.Level) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", l, m.nextID)
}

// Writes returns all records created so far.
func (m *MemStore) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Write(nil), m.writes...)
}

// Regions returns a snapshot of regions.
func (m *MemStore) Regions() []location.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]location.Region(nil), m.regions...)
}

// Divisions returns a snapshot of divisions.
func (m *MemStore) Divisions() []location.Division {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]location.Division(nil), m.divisions...)
}

// Cities returns a snapshot of cities.
func (m *MemStore) Cities() []location.City {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]location.City(nil), m.cities...)
}

func (m *MemStore) Country(_ context.Context, id string) (*location.Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.countries {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, nil
}

func (m *MemStore) Countries(_ context.Context) ([]location.Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := append([]location.Country(nil), m.countries...)
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (m *MemStore) CreateCountry(
	ctx context.Context,
	c location.Country,
) (location.Country, error) {
	if err := ctx.Err(); err != nil {
		return location.Country{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = m.id(location.LevelCountry)
	}
	m.countries = append(m.countries, c)
	m.writes = append(m.writes, Write{
		Level: location.LevelCountry, ID: c.ID, Name: c.Name, CountryID: c.ID,
	})
	return c, nil
}

func (m *MemStore) RegionByWikiDataID(
	_ context.Context,
	wikiDataID string,
) (*location.Region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.regions {
		if v.WikiDataID == wikiDataID {
			return &v, nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateRegion(
	ctx context.Context,
	r location.Region,
) (location.Region, error) {
	if err := ctx.Err(); err != nil {
		return location.Region{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate[r.WikiDataID] {
		return location.Region{}, ErrCreateFailed
	}
	r.ID = m.id(location.LevelRegion)
	m.regions = append(m.regions, r)
	m.writes = append(m.writes, Write{
		Level: location.LevelRegion, ID: r.ID, Name: r.Name,
		CountryID: r.CountryID, WikiDataID: r.WikiDataID,
	})
	return r, nil
}

func (m *MemStore) DivisionByWikiDataID(
	_ context.Context,
	wikiDataID string,
) (*location.Division, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.divisions {
		if v.WikiDataID == wikiDataID {
			return &v, nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateDivision(
	ctx context.Context,
	d location.Division,
) (location.Division, error) {
	if err := ctx.Err(); err != nil {
		return location.Division{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate[d.WikiDataID] {
		return location.Division{}, ErrCreateFailed
	}
	d.ID = m.id(location.LevelDivision)
	m.divisions = append(m.divisions, d)
	m.writes = append(m.writes, Write{
		Level: location.LevelDivision, ID: d.ID, Name: d.Name,
		CountryID: d.CountryID, WikiDataID: d.WikiDataID,
	})
	return d, nil
}

func (m *MemStore) CityByWikiDataID(
	_ context.Context,
	wikiDataID string,
) (*location.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.cities {
		if v.WikiDataID == wikiDataID {
			return &v, nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateCity(
	ctx context.Context,
	c location.City,
) (location.City, error) {
	if err := ctx.Err(); err != nil {
		return location.City{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate[c.WikiDataID] {
		return location.City{}, ErrCreateFailed
	}
	c.ID = m.id(location.LevelCity)
	m.cities = append(m.cities, c)
	m.writes = append(m.writes, Write{
		Level: location.LevelCity, ID: c.ID, Name: c.Name,
		CountryID: c.CountryID, WikiDataID: c.WikiDataID,
	})
	return c, nil
}

// Sources returns option sources that filter records by ancestor names.
func (m *MemStore) Sources() location.Sources {
	return location.Sources{
		Country:  &memSource{level: location.LevelCountry, m: m},
		Region:   &memSource{level: location.LevelRegion, m: m},
		Division: &memSource{level: location.LevelDivision, m: m},
		City:     &memSource{level: location.LevelCity, m: m},
	}
}

// Close does nothing.
func (m *MemStore) Close() error {
	return nil
}

type memSource struct {
	level location.Level
	m     *MemStore
}

func (s *memSource) Level() location.Level {
	return s.level
}

func (s *memSource) Options(
	ctx context.Context,
	f location.Filter,
) ([]location.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	country := func(id string) string {
		for _, v := range m.countries {
			if v.ID == id {
				return v.Name
			}
		}
		return ""
	}
	region := func(id string) string {
		for _, v := range m.regions {
			if v.ID == id {
				return v.Name
			}
		}
		return ""
	}
	division := func(id string) string {
		for _, v := range m.divisions {
			if v.ID == id {
				return v.Name
			}
		}
		return ""
	}

	var res []location.Node
	switch s.level {
	case location.LevelCountry:
		for _, v := range m.countries {
			res = append(res, v.Node())
		}
	case location.LevelRegion:
		for _, v := range m.regions {
			if country(v.CountryID) == f.Country {
				res = append(res, v.Node())
			}
		}
	case location.LevelDivision:
		for _, v := range m.divisions {
			if country(v.CountryID) == f.Country && region(v.RegionID) == f.Region {
				res = append(res, v.Node())
			}
		}
	default:
		for _, v := range m.cities {
			if country(v.CountryID) != f.Country || region(v.RegionID) != f.Region {
				continue
			}
			if f.Division != "" && division(v.DivisionID) != f.Division {
				continue
			}
			res = append(res, v.Node())
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

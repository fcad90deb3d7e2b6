// Package location provides the data model of the location hierarchy
// (country, region, division, city) and the contracts used to read and
// write location records. This package is pure: it has no I/O.
package location

import "fmt"

// Level is a level of the location hierarchy.
type Level int

const (
	LevelCountry Level = iota
	LevelRegion
	LevelDivision
	LevelCity
)

// Levels lists all levels from the top of the hierarchy down.
var Levels = [...]Level{LevelCountry, LevelRegion, LevelDivision, LevelCity}

// String returns the singular name of the level.
func (l Level) String() string {
	switch l {
	case LevelCountry:
		return "country"
	case LevelRegion:
		return "region"
	case LevelDivision:
		return "division"
	case LevelCity:
		return "city"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Collection returns the name of the collection (table) that keeps
// records of the level.
func (l Level) Collection() string {
	switch l {
	case LevelCountry:
		return "countries"
	case LevelRegion:
		return "regions"
	case LevelDivision:
		return "divisions"
	case LevelCity:
		return "cities"
	default:
		return ""
	}
}

// Node is a selectable option of any level.
type Node struct {
	// ID is the local identifier of the record.
	ID string `json:"id" yaml:"id"`

	// Name is the display name, also used as a filter key for children.
	Name string `json:"name" yaml:"name"`

	// ParentID is the id of the record one level up. Empty for countries.
	// For cities it is the region, not the division.
	ParentID string `json:"parentId,omitempty" yaml:"parent_id,omitempty"`

	// DivisionID is the optional division of a city.
	DivisionID string `json:"divisionId,omitempty" yaml:"division_id,omitempty"`
}

// Country is a top level record.
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Code is ISO-3166 alpha-2 code used by the geo API.
	Code string `json:"code"`
}

// Node converts a country to a selectable option.
func (c Country) Node() Node {
	return Node{ID: c.ID, Name: c.Name}
}

// Region is a first-level administrative division of a country.
type Region struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CountryID  string `json:"country"`
	Code       string `json:"code"`
	WikiDataID string `json:"wikiDataId"`
}

// Node converts a region to a selectable option.
func (r Region) Node() Node {
	return Node{ID: r.ID, Name: r.Name, ParentID: r.CountryID}
}

// Division is a second-level administrative division within a region.
type Division struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CountryID  string `json:"country"`
	RegionID   string `json:"region"`
	WikiDataID string `json:"wikiDataId"`
}

// Node converts a division to a selectable option.
func (d Division) Node() Node {
	return Node{ID: d.ID, Name: d.Name, ParentID: d.RegionID}
}

// City is a populated place. It always belongs to a region and
// optionally to a division.
type City struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CountryID       string  `json:"country"`
	RegionID        string  `json:"region"`
	DivisionID      string  `json:"division,omitempty"`
	WikiDataID      string  `json:"wikiDataId"`
	CountryCode     string  `json:"countryCode"`
	RegionCode      string  `json:"regionCode,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Population      int     `json:"population"`
	ElevationMeters int     `json:"elevationMeters"`
	Timezone        string  `json:"timezone"`
	// CellToken is the S2 cell of the city location.
	CellToken string `json:"cellToken,omitempty"`
}

// Node converts a city to a selectable option.
func (c City) Node() Node {
	return Node{
		ID:         c.ID,
		Name:       c.Name,
		ParentID:   c.RegionID,
		DivisionID: c.DivisionID,
	}
}

// FindByID returns the node with the given id. Lookup in a nil
// slice reports "not found".
func FindByID(nodes []Node, id string) (Node, bool) {
	for _, v := range nodes {
		if v.ID == id {
			return v, true
		}
	}
	return Node{}, false
}

// FindByName returns the first node with the given name.
func FindByName(nodes []Node, name string) (Node, bool) {
	for _, v := range nodes {
		if v.Name == name {
			return v, true
		}
	}
	return Node{}, false
}

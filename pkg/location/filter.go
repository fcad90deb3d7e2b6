package location

import (
	"strconv"
	"strings"
)

// Filter keeps names of selected ancestors. Option sets are indexed by
// ancestor names, not ids.
type Filter struct {
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Division string `json:"division,omitempty" yaml:"division,omitempty"`
}

// IsZero is true when no ancestor is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Key returns a stable string form of the filter, usable as a cache key.
// Names are quoted, so different filters never share a key.
func (f Filter) Key() string {
	return strconv.Quote(f.Country) + "|" +
		strconv.Quote(f.Region) + "|" +
		strconv.Quote(f.Division)
}

// Expr renders the filter as a record-storage filter expression for
// the option set of the given level, for example
// country.name="USA"&&region.name="California".
//
// Regions are filtered by country, divisions by country and region,
// cities by country and region plus division when it is given.
func (f Filter) Expr(l Level) string {
	var parts []string
	add := func(field, val string) {
		parts = append(parts, field+".name="+quote(val))
	}
	switch l {
	case LevelRegion:
		add("country", f.Country)
	case LevelDivision:
		add("country", f.Country)
		add("region", f.Region)
	case LevelCity:
		add("country", f.Country)
		add("region", f.Region)
		if f.Division != "" {
			add("division", f.Division)
		}
	}
	return strings.Join(parts, "&&")
}

// ForLevel trims the filter to the ancestors relevant for the level.
func (f Filter) ForLevel(l Level) Filter {
	switch l {
	case LevelCountry:
		return Filter{}
	case LevelRegion:
		return Filter{Country: f.Country}
	case LevelDivision:
		return Filter{Country: f.Country, Region: f.Region}
	default:
		return f
	}
}

// WikiDataExpr renders a lookup expression by the external stable id.
func WikiDataExpr(wikiDataID string) string {
	return "wikiDataId=" + quote(wikiDataID)
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

package cascade

import (
	"net/url"
	"strings"

	"github.com/gnames/gnloc/pkg/location"
)

// External is selection state that comes from outside of the resolver,
// usually URL query parameters. Values are names, not ids.
// Service and Category are carried for the search form and are not
// resolved by the cascade.
type External struct {
	Country  string `yaml:"country,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Division string `yaml:"division,omitempty"`
	City     string `yaml:"city,omitempty"`
	Service  string `yaml:"service,omitempty"`
	Category string `yaml:"category,omitempty"`
}

// ExternalFromQuery reads selection names from query parameters
// country, region, division, city, service and category.
func ExternalFromQuery(q url.Values) External {
	get := func(k string) string {
		return strings.TrimSpace(q.Get(k))
	}
	return External{
		Country:  get("country"),
		Region:   get("region"),
		Division: get("division"),
		City:     get("city"),
		Service:  get("service"),
		Category: get("category"),
	}
}

// ParseExternal parses a raw query string, with or without the leading
// question mark, or a full URL.
func ParseExternal(raw string) (External, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return External{}, err
	}
	return ExternalFromQuery(q), nil
}

// Name returns the name given for a level.
func (e External) Name(l location.Level) string {
	switch l {
	case location.LevelCountry:
		return e.Country
	case location.LevelRegion:
		return e.Region
	case location.LevelDivision:
		return e.Division
	case location.LevelCity:
		return e.City
	default:
		return ""
	}
}

package iocrawl

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
	"github.com/gnames/gnloc/pkg/location"
)

// CountryNotFoundError is returned when the country to crawl is not in
// the local storage.
func CountryNotFoundError(countryID string) error {
	msg := `Country <em>%s</em> is not in the local storage

<em>How to fix:</em>
  1. List known countries: <em>gnloc country list</em>
  2. Add the country: <em>gnloc country add --name NAME --code CODE</em>`

	return &gn.Error{
		Code: errcode.CrawlCountryNotFoundError,
		Msg:  msg,
		Vars: []any{countryID},
		Err:  fmt.Errorf("country %s not found", countryID),
	}
}

// CountryCodeError is returned when a country has no ISO code, so it
// cannot be addressed in the geo API.
func CountryCodeError(name string) error {
	msg := "Country <em>%s</em> has no ISO code, cannot crawl it"

	return &gn.Error{
		Code: errcode.CrawlCountryCodeError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("country %s has no code", name),
	}
}

// EntitySkipError describes a record the crawl could not import.
func EntitySkipError(
	l location.Level,
	name, wikiDataID string,
	err error,
) error {
	msg := "Skipped %s <em>%s</em> (%s)"

	return &gn.Error{
		Code: errcode.CrawlEntitySkipError,
		Msg:  msg,
		Vars: []any{l, name, wikiDataID},
		Err:  fmt.Errorf("skip %s %s [%s]: %w", l, name, wikiDataID, err),
	}
}

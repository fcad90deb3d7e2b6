package lifecycle

import (
	"context"
	"time"
)

// Crawler backfills regions, divisions and cities of a country from the
// external geo-data API into the local record storage.
type Crawler interface {
	// Crawl imports all regions of a country and the cities of every
	// region. An empty countryID is a no-op. A new call cancels the
	// crawl that is still running on the same Crawler. Failures of
	// single records are collected in the report and do not stop the
	// crawl.
	Crawl(ctx context.Context, countryID string) (*Report, error)
}

// Report summarizes a crawl.
type Report struct {
	// RunID identifies the crawl in logs.
	RunID string `yaml:"run_id"`

	// Country is the name of the crawled country.
	Country string `yaml:"country"`

	Regions   Counter `yaml:"regions"`
	Divisions Counter `yaml:"divisions"`
	Cities    Counter `yaml:"cities"`

	// Skipped lists records that were not imported.
	Skipped []Skip `yaml:"skipped,omitempty"`

	// Cancelled is true if the crawl was stopped by its context or by a
	// newer crawl.
	Cancelled bool `yaml:"cancelled"`

	Duration time.Duration `yaml:"duration"`
}

// Counter counts records seen by a crawl.
type Counter struct {
	// Found is the number of records that already existed locally.
	Found int `yaml:"found"`

	// Created is the number of records created by the crawl.
	Created int `yaml:"created"`
}

// Total returns all records the crawl handled.
func (c Counter) Total() int {
	return c.Found + c.Created
}

// Skip describes a record the crawl could not import.
type Skip struct {
	Level      string `yaml:"level"`
	Name       string `yaml:"name"`
	WikiDataID string `yaml:"wiki_data_id"`
	Reason     string `yaml:"reason"`

	// Err is the failure that caused the skip.
	Err error `yaml:"-"`
}

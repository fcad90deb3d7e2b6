// Package iocrawl implements lifecycle.Crawler. It walks the regions of
// a country and the cities of every region in the geo API and creates
// missing records in the local storage.
//
// Records are matched by their wikiDataId, so repeated crawls only add
// what is new. Only one crawl runs per crawler: starting a new one
// cancels the previous run, and a cancelled run never writes again.
package iocrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/geodb"
	"github.com/gnames/gnloc/pkg/lifecycle"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/google/uuid"
)

// errMissingWikiData marks API records that cannot be deduplicated.
var errMissingWikiData = errors.New("missing wikiDataId")

// Option configures a crawler.
type Option func(*crawler)

// OptQuiet turns off the progress bar and terminal messages. Logs are
// still written.
func OptQuiet(b bool) Option {
	return func(c *crawler) {
		c.quiet = b
	}
}

type crawler struct {
	cfg   *config.Config
	store location.Store
	api   geodb.API
	quiet bool

	mu     sync.Mutex
	runs   int
	cancel context.CancelFunc
}

// New creates a Crawler that reads from api and writes into store.
func New(
	cfg *config.Config,
	store location.Store,
	api geodb.API,
	opts ...Option,
) lifecycle.Crawler {
	res := &crawler{cfg: cfg, store: store, api: api}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Crawl imports regions, divisions and cities of the country with the
// given local id.
func (c *crawler) Crawl(
	ctx context.Context,
	countryID string,
) (*lifecycle.Report, error) {
	if countryID == "" {
		slog.Info("No country selected, nothing to crawl")
		return nil, nil
	}

	ctx, done := c.start(ctx)
	defer done()

	country, err := c.store.Country(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, CountryNotFoundError(countryID)
	}
	if country.Code == "" {
		return nil, CountryCodeError(country.Name)
	}

	runID := uuid.NewString()
	r := &run{
		ctx:     ctx,
		store:   c.store,
		api:     c.api,
		limit:   c.cfg.GeoDB.PageSize,
		country: *country,
		report:  &lifecycle.Report{RunID: runID, Country: country.Name},
		log:     slog.With("run_id", runID, "country", country.Name),
	}
	if r.limit < 1 {
		r.limit = 10
	}

	startTime := time.Now()
	r.log.Info("Starting crawl", "code", country.Code)
	if !c.quiet {
		gn.Info("Crawling regions of <em>%s</em>", country.Name)
	}

	regions := r.regions()
	c.processRegions(r, regions)

	report := r.report
	report.Cancelled = ctx.Err() != nil
	report.Duration = time.Since(startTime)
	c.summary(r.log, report)
	return report, nil
}

// start cancels the crawl in progress and creates the context of a new
// run. The returned function releases the run.
func (c *crawler) start(ctx context.Context) (context.Context, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		slog.Info("Cancelling previous crawl")
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.runs++
	id := c.runs
	c.cancel = cancel

	return ctx, func() {
		c.mu.Lock()
		if c.runs == id {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}
}

func (c *crawler) processRegions(r *run, regions []geodb.RegionRef) {
	if len(regions) == 0 {
		return
	}

	var bar *pb.ProgressBar
	if !c.quiet {
		bar = pb.Full.Start(len(regions))
		bar.Set("prefix", fmt.Sprintf("%s regions: ", r.country.Name))
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for i, ref := range regions {
		select {
		case <-r.ctx.Done():
			r.log.Info("Crawl cancelled", "processed_regions", i)
			return
		default:
		}

		region, ok := r.region(ref)
		if ok {
			r.cities(ref, region)
		}
		if bar != nil {
			bar.Increment()
		}
	}
}

func (c *crawler) summary(log *slog.Logger, report *lifecycle.Report) {
	log.Info("Crawl complete",
		"regions_found", report.Regions.Found,
		"regions_created", report.Regions.Created,
		"divisions_found", report.Divisions.Found,
		"divisions_created", report.Divisions.Created,
		"cities_found", report.Cities.Found,
		"cities_created", report.Cities.Created,
		"skipped", len(report.Skipped),
		"cancelled", report.Cancelled,
		"duration", gnfmt.TimeString(report.Duration.Seconds()),
	)
	if c.quiet {
		return
	}

	status := "Crawl complete"
	if report.Cancelled {
		status = "Crawl cancelled"
	}
	gn.Info(`%s for <em>%s</em>
Regions: %s new, %s known.
Divisions: %s new, %s known.
Cities: %s new, %s known.
Skipped: %d. Elapsed time: <em>%s</em>
`,
		status,
		report.Country,
		humanize.Comma(int64(report.Regions.Created)),
		humanize.Comma(int64(report.Regions.Found)),
		humanize.Comma(int64(report.Divisions.Created)),
		humanize.Comma(int64(report.Divisions.Found)),
		humanize.Comma(int64(report.Cities.Created)),
		humanize.Comma(int64(report.Cities.Found)),
		len(report.Skipped),
		gnfmt.TimeString(report.Duration.Seconds()),
	)
}

/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnloc/internal/iocrawl"
	"github.com/gnames/gnloc/internal/iogeo"
	"github.com/gnames/gnloc/pkg/cascade"
	"github.com/gnames/gnloc/pkg/lifecycle"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// getCrawlCmd returns the crawl command.
func getCrawlCmd() *cobra.Command {
	var quiet bool

	crawlCmd := &cobra.Command{
		Use:   "crawl",
		Short: "Backfill regions, divisions and cities of a country",
		Long: `Crawl imports the location hierarchy of a country from the geo-data API.

The country is selected by name among the countries of the record
storage and must have an ISO code (see 'gnloc country add').

For every region of the country the crawler creates the region if it
is new, then walks the cities of the region. A city is linked to its
division (for example a county) when the API knows one. Records are
matched by wikiDataId, so repeated crawls only add what is missing.
A failure of a single record is reported and the crawl goes on.

Calls to the API are throttled by geodb.delay_ms, details are cached in
~/.cache/gnloc/geodb.sqlite. Ctrl-C stops the crawl, records created
so far are kept.

Examples:
  gnloc crawl --country USA
  gnloc crawl -c Canada --backend postgres`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(cmd, quiet)
		},
	}

	crawlCmd.Flags().StringP("country", "c", "", "name of the country to crawl")
	crawlCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"do not show progress")
	return crawlCmd
}

func runCrawl(cmd *cobra.Command, quiet bool) error {
	name := strings.TrimSpace(cfg.Crawl.Country)
	if name == "" {
		gn.Warn("Nothing to crawl, set the country with <em>--country</em>")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer b.Close()

	api, err := iogeo.New(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer api.Close()

	r := cascade.NewResolver(b.Sources(),
		cascade.OptOnError(func(err error) {
			slog.Error("Cannot load options", "error", err)
		}),
	)
	st := r.Start(ctx)
	if err = st.Err(); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	country, ok := findCountry(st.Options(location.LevelCountry), name)
	if !ok {
		var known []string
		for _, v := range st.Options(location.LevelCountry) {
			known = append(known, v.Name)
		}
		err = CountryNotFoundError(name, known)
		gn.PrintErrorMessage(err)
		return err
	}

	st = r.SelectCountry(ctx, country.ID)
	var countryID string
	if sel := st.Selected(location.LevelCountry); sel != nil {
		countryID = sel.ID
	}

	crawler := iocrawl.New(cfg, b, api, iocrawl.OptQuiet(quiet))
	report, err := crawler.Crawl(ctx, countryID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if report == nil {
		return nil
	}

	if err = b.cache.Invalidate(ctx); err != nil {
		slog.Warn("Cannot reset option cache", "error", err)
	}
	renderReport(os.Stdout, report)
	return nil
}

// findCountry finds a country option by its name, ignoring case when
// there is no exact match.
func findCountry(options []location.Node, name string) (location.Node, bool) {
	if res, ok := location.FindByName(options, name); ok {
		return res, true
	}
	for _, v := range options {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return location.Node{}, false
}

func renderReport(w io.Writer, report *lifecycle.Report) {
	t := newTable(w)
	t.SetTitle("%s, run %s", report.Country, report.RunID)
	t.AppendHeader(table.Row{"Level", "Known", "Created", "Total"})
	for _, v := range []struct {
		level string
		c     lifecycle.Counter
	}{
		{"regions", report.Regions},
		{"divisions", report.Divisions},
		{"cities", report.Cities},
	} {
		t.AppendRow(table.Row{
			v.level,
			humanize.Comma(int64(v.c.Found)),
			humanize.Comma(int64(v.c.Created)),
			humanize.Comma(int64(v.c.Total())),
		})
	}
	status := "complete"
	if report.Cancelled {
		status = "cancelled"
	}
	t.AppendFooter(table.Row{
		status, "", "", gnfmt.TimeString(report.Duration.Seconds()),
	})
	t.Render()

	if len(report.Skipped) == 0 {
		return
	}
	st := newTable(w)
	st.SetTitle("Skipped")
	st.AppendHeader(table.Row{"Level", "Name", "WikiData", "Reason"})
	for _, v := range report.Skipped {
		st.AppendRow(table.Row{v.Level, v.Name, v.WikiDataID, v.Reason})
	}
	st.Render()
}

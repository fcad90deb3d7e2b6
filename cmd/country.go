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
	"context"
	"io"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// getCountryCmd returns the country command with add and list
// subcommands.
func getCountryCmd() *cobra.Command {
	countryCmd := &cobra.Command{
		Use:   "country",
		Short: "Manage countries of the record storage",
		Long: `Countries are entered by hand, everything below them is
backfilled by 'gnloc crawl'. The crawler needs the ISO-3166 code of a
country to find it in the geo-data API.

Examples:
  gnloc country add --name USA --code US
  gnloc country list`,
	}
	countryCmd.AddCommand(getCountryAddCmd(), getCountryListCmd())
	return countryCmd
}

func getCountryAddCmd() *cobra.Command {
	var name, code string

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a country",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCountryAdd(cmd, name, code)
		},
	}
	addCmd.Flags().StringVarP(&name, "name", "n", "", "name of the country")
	addCmd.Flags().StringVarP(&code, "code", "c", "",
		"ISO-3166 alpha-2 code of the country")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("code")
	return addCmd
}

func getCountryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List countries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCountryList(cmd)
		},
	}
}

func runCountryAdd(cmd *cobra.Command, name, code string) error {
	ctx := cmdContext(cmd)
	b, err := openBackend(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer b.Close()

	country, err := b.CreateCountry(ctx, location.Country{
		Name: strings.TrimSpace(name),
		Code: strings.ToUpper(strings.TrimSpace(code)),
	})
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = b.cache.Invalidate(ctx); err != nil {
		gn.Warn("Cannot reset option cache: %s", err)
	}

	gn.Info("Added <em>%s</em> (%s), id %s", country.Name, country.Code, country.ID)
	return nil
}

func runCountryList(cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	b, err := openBackend(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer b.Close()

	countries, err := b.Countries(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	renderCountries(os.Stdout, countries)
	return nil
}

func renderCountries(w io.Writer, countries []location.Country) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Country", "Code", "ID"})
	for _, v := range countries {
		t.AppendRow(table.Row{v.Name, v.Code, v.ID})
	}
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetOutputMirror(w)
	return t
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

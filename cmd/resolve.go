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

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/cascade"
	"github.com/gnames/gnloc/pkg/location"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getResolveCmd returns the resolve command.
func getResolveCmd() *cobra.Command {
	var asYAML, withOptions bool

	resolveCmd := &cobra.Command{
		Use:   "resolve [QUERY]",
		Short: "Resolve location selections from a URL query",
		Long: `Resolve runs the location cascade against the record storage.

The query uses names, for example "country=USA&region=California&city=Fresno".
A full URL is accepted as well. Every level is resolved once: a name that
is not among the options of its level leaves the level unselected.
Parameters service and category are passed through unchanged.

Without a query only the country options are loaded.

Examples:
  gnloc resolve "country=USA&region=California"
  gnloc resolve "https://example.org/search?country=USA&service=plumbing" --yaml
  gnloc resolve "country=USA" --options`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, asYAML, withOptions)
		},
	}

	resolveCmd.Flags().BoolVarP(&asYAML, "yaml", "y", false,
		"print the result as YAML")
	resolveCmd.Flags().BoolVarP(&withOptions, "options", "o", false,
		"include option names of every level")
	return resolveCmd
}

func runResolve(
	cmd *cobra.Command,
	args []string,
	asYAML, withOptions bool,
) error {
	var ext cascade.External
	if len(args) > 0 {
		var err error
		if ext, err = cascade.ParseExternal(args[0]); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	ctx := cmdContext(cmd)
	b, err := openBackend(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer b.Close()

	r := cascade.NewResolver(b.Sources(),
		cascade.OptExternal(ext),
		cascade.OptOnCleared(func(l location.Level) {
			slog.Debug("Selection cleared", "level", l.String())
		}),
		cascade.OptOnError(func(err error) {
			slog.Warn("Cannot load options", "error", err)
		}),
	)
	st := r.Start(ctx)

	view := newResolveView(st, ext, withOptions)
	if asYAML {
		return renderResolveYAML(os.Stdout, view)
	}
	renderResolveTable(os.Stdout, view)
	if err := st.Err(); err != nil {
		gn.PrintErrorMessage(err)
	}
	return nil
}

type resolveView struct {
	Levels   []levelView `yaml:"levels"`
	Service  string      `yaml:"service,omitempty"`
	Category string      `yaml:"category,omitempty"`
}

type levelView struct {
	Level       string             `yaml:"level"`
	Requested   string             `yaml:"requested,omitempty"`
	Selected    *cascade.Selection `yaml:"selected,omitempty"`
	Options     int                `yaml:"options"`
	OptionNames []string           `yaml:"option_names,omitempty"`
	Error       string             `yaml:"error,omitempty"`
}

func newResolveView(
	st cascade.State,
	ext cascade.External,
	withOptions bool,
) resolveView {
	res := resolveView{Service: ext.Service, Category: ext.Category}
	for _, l := range location.Levels {
		ls := st.Level(l)
		v := levelView{
			Level:     l.String(),
			Requested: ext.Name(l),
			Selected:  ls.Selected,
			Options:   len(ls.Options),
		}
		if withOptions {
			for _, o := range ls.Options {
				v.OptionNames = append(v.OptionNames, o.Name)
			}
		}
		if ls.Err != nil {
			v.Error = ls.Err.Error()
		}
		res.Levels = append(res.Levels, v)
	}
	return res
}

func renderResolveTable(w io.Writer, view resolveView) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Level", "Requested", "Selected", "ID", "Options"})
	for _, v := range view.Levels {
		var name, id string
		if v.Selected != nil {
			name, id = v.Selected.Name, v.Selected.ID
		}
		opts := any(v.Options)
		if v.Error != "" {
			opts = "error"
		}
		t.AppendRow(table.Row{v.Level, v.Requested, name, id, opts})
	}
	if view.Service != "" || view.Category != "" {
		t.AppendFooter(table.Row{"service", view.Service, "category", view.Category, ""})
	}
	t.Render()

	for _, v := range view.Levels {
		if len(v.OptionNames) > 0 {
			ot := newTable(w)
			ot.AppendHeader(table.Row{v.Level + " options"})
			for _, name := range v.OptionNames {
				ot.AppendRow(table.Row{name})
			}
			ot.Render()
		}
	}
}

func renderResolveYAML(w io.Writer, view resolveView) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}

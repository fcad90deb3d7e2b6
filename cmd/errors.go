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
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnloc/pkg/errcode"
)

// UnknownBackendError is returned for an unsupported store.backend.
func UnknownBackendError(backend string) error {
	msg := `Unknown record storage backend <em>%s</em>

<em>How to fix:</em>
  Set <em>store.backend</em> to pocketbase or postgres`

	return &gn.Error{
		Code: errcode.StoreUnknownBackendError,
		Msg:  msg,
		Vars: []any{backend},
		Err:  fmt.Errorf("unknown backend %s", backend),
	}
}

// CountryNotFoundError is returned when a country name given on the
// command line is not among the countries of the storage.
func CountryNotFoundError(name string, known []string) error {
	msg := `Country <em>%s</em> is not found

Known countries: %s`

	list := strings.Join(known, ", ")
	if list == "" {
		list = "none, add one with 'gnloc country add'"
	}
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: []any{name, list},
		Err:  fmt.Errorf("country %s not found", name),
	}
}

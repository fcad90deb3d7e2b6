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

	"github.com/gnames/gnloc/internal/iocache"
	"github.com/gnames/gnloc/internal/iopg"
	"github.com/gnames/gnloc/internal/iopocket"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/location"
)

// backend bundles the record storage with the option sources, which
// read through the Redis cache when it is configured.
type backend struct {
	location.Backend
	sources location.Sources
	cache   *iocache.Cache
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	var b location.Backend
	var err error

	switch cfg.Store.Backend {
	case "pocketbase":
		b, err = iopocket.New(ctx, cfg)
	case "postgres":
		b, err = iopg.New(ctx, cfg)
	default:
		return nil, UnknownBackendError(cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}

	cache := iocache.New(cfg.Cache)
	return &backend{
		Backend: b,
		sources: cache.Wrap(b.Sources()),
		cache:   cache,
	}, nil
}

func (b *backend) Sources() location.Sources {
	return b.sources
}

func (b *backend) Close() error {
	_ = b.cache.Close()
	return b.Backend.Close()
}

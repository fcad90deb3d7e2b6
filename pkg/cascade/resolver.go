package cascade

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gnames/gnloc/pkg/location"
	"golang.org/x/sync/errgroup"
)

// Resolver drives a State: it performs fetch effects against
// location.Sources, applies their results and keeps resolving external
// selections until the state settles.
//
// Fetch failures are not returned from Resolver methods. They are kept
// in the state and reported through the error callback once, by the
// call whose fetches failed.
type Resolver struct {
	mu    sync.Mutex
	state State
	src   location.Sources
	ext   *External

	onCleared func(location.Level)
	onError   func(error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// OptOnCleared sets a callback called for every cleared selection.
func OptOnCleared(fn func(location.Level)) Option {
	return func(r *Resolver) {
		r.onCleared = fn
	}
}

// OptOnError sets a callback for fetch errors.
func OptOnError(fn func(error)) Option {
	return func(r *Resolver) {
		r.onError = fn
	}
}

// OptExternal sets external selection names resolved as soon as the
// corresponding option sets are loaded.
func OptExternal(ext External) Option {
	return func(r *Resolver) {
		r.ext = &ext
	}
}

// NewResolver creates a Resolver for the given sources.
func NewResolver(src location.Sources, opts ...Option) *Resolver {
	res := &Resolver{src: src}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Start resets the state and loads the country option set.
func (r *Resolver) Start(ctx context.Context) State {
	return r.apply(ctx, func(State) (State, []Effect) {
		return Init()
	})
}

// State returns a snapshot of the current state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SelectCountry selects a country by id.
func (r *Resolver) SelectCountry(ctx context.Context, id string) State {
	return r.apply(ctx, func(s State) (State, []Effect) {
		return s.SelectCountry(id)
	})
}

// SelectRegion selects a region by id.
func (r *Resolver) SelectRegion(ctx context.Context, id string) State {
	return r.apply(ctx, func(s State) (State, []Effect) {
		return s.SelectRegion(id)
	})
}

// SelectDivision selects a division by id.
func (r *Resolver) SelectDivision(ctx context.Context, id string) State {
	return r.apply(ctx, func(s State) (State, []Effect) {
		return s.SelectDivision(id)
	})
}

// SelectCity selects a city by id.
func (r *Resolver) SelectCity(ctx context.Context, id string) State {
	return r.apply(ctx, func(s State) (State, []Effect) {
		return s.SelectCity(id)
	})
}

// Populate replaces external selection names and resolves levels that
// are ready for it. Levels resolved earlier keep their selections.
func (r *Resolver) Populate(ctx context.Context, ext External) State {
	r.mu.Lock()
	r.ext = &ext
	r.mu.Unlock()
	return r.apply(ctx, func(s State) (State, []Effect) {
		return s.PopulateFromExternal(ext)
	})
}

type fetchResult struct {
	nodes []location.Node
	err   error
}

func (r *Resolver) apply(
	ctx context.Context,
	fn func(State) (State, []Effect),
) State {
	r.mu.Lock()
	st, effects := fn(r.state)
	r.state = st
	r.mu.Unlock()

	failed := r.run(ctx, effects)

	st = r.State()
	if r.onError == nil {
		return st
	}
	for _, l := range location.Levels {
		if failed[l] {
			if err := st.Level(l).Err; err != nil {
				r.onError(err)
				break
			}
		}
	}
	return st
}

// run executes effects until no new effects are produced. Cleared
// notifications go out before fetches of the same batch start. It
// returns levels whose fetch failed during this run.
func (r *Resolver) run(ctx context.Context, effects []Effect) map[location.Level]bool {
	failed := make(map[location.Level]bool)
	for len(effects) > 0 {
		var fetches []Effect
		for _, e := range effects {
			if e.Kind == EffectCleared {
				if r.onCleared != nil {
					r.onCleared(e.Level)
				}
				continue
			}
			fetches = append(fetches, e)
		}

		results := r.fetch(ctx, fetches)

		r.mu.Lock()
		st := r.state
		for i, e := range fetches {
			st = st.ApplyOptions(e.Level, e.Filter, results[i].nodes, results[i].err)
			if results[i].err != nil {
				failed[e.Level] = true
			}
		}
		effects = nil
		if r.ext != nil {
			st, effects = st.PopulateFromExternal(*r.ext)
		}
		r.state = st
		r.mu.Unlock()
	}
	return failed
}

func (r *Resolver) fetch(ctx context.Context, fetches []Effect) []fetchResult {
	res := make([]fetchResult, len(fetches))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range fetches {
		g.Go(func() error {
			src := r.src.For(e.Level)
			nodes, err := src.Options(gctx, e.Filter)
			if err != nil {
				slog.Warn("Cannot load options",
					"level", e.Level.String(),
					"filter", e.Filter.Expr(e.Level),
					"error", err,
				)
			}
			res[i] = fetchResult{nodes: nodes, err: err}
			// errors stay per level, siblings keep running
			return nil
		})
	}
	_ = g.Wait()
	return res
}

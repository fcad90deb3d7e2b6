// Package cascade keeps four dependent location selections (country,
// region, division, city) mutually consistent.
//
// State is a value. Every transition returns a new State together with
// a list of effects the caller has to perform: notify observers about
// cleared selections and fetch option sets. The package does no I/O;
// Resolver is a driver that executes effects against location.Sources.
//
// Invariants kept by every transition:
//   - a non-nil region has ParentID equal to the selected country id;
//   - a non-nil division has ParentID equal to the selected region id;
//   - a non-nil city has ParentID (its region) equal to the selected
//     region id, a city does not need a division;
//   - descendant selections are cleared before the fetch of the new
//     ancestor's children is issued.
package cascade

import (
	"github.com/gnames/gnloc/pkg/location"
)

// Selection is a selected node of a level.
type Selection struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	ParentID string `yaml:"parent_id,omitempty"`
	// IsLoading is true while the option set of the level reloads.
	IsLoading bool `yaml:"is_loading"`
}

// LevelState is everything the resolver knows about one level.
type LevelState struct {
	// Selected is nil when nothing is selected.
	Selected *Selection

	// Options is the currently loaded option set.
	Options []location.Node

	// Filter is the filter of the latest fetch issued for the level.
	Filter location.Filter

	// Loading is true while a fetch for Filter is in flight.
	Loading bool

	// Fetched is true when Options correspond to Filter.
	Fetched bool

	// Err is the error of the latest fetch.
	Err error

	// Resolved is true after the level had its one attempt to be
	// populated from external state.
	Resolved bool
}

// State is the selection state of all four levels.
type State struct {
	levels [len(location.Levels)]LevelState
}

// Init returns an empty state and the fetch of the country option set.
func Init() (State, []Effect) {
	var s State
	eff := s.fetch(location.LevelCountry, location.Filter{})
	return s, []Effect{eff}
}

// Level returns the state of a level.
func (s State) Level(l location.Level) LevelState {
	return s.levels[l]
}

// Selected returns the selection of a level or nil.
func (s State) Selected(l location.Level) *Selection {
	return s.levels[l].Selected
}

// Options returns the loaded option set of a level.
func (s State) Options(l location.Level) []location.Node {
	return s.levels[l].Options
}

// Resolved tells if the level already had its attempt of resolution
// from external state.
func (s State) Resolved(l location.Level) bool {
	return s.levels[l].Resolved
}

// IsLoading tells if the option set of a level is being fetched.
func (s State) IsLoading(l location.Level) bool {
	return s.levels[l].Loading
}

// IsLoadingLocations is true while any of the four option sets loads.
func (s State) IsLoadingLocations() bool {
	for _, v := range s.levels {
		if v.Loading {
			return true
		}
	}
	return false
}

// Err returns the first fetch error in the order country, region,
// division, city.
func (s State) Err() error {
	for _, v := range s.levels {
		if v.Err != nil {
			return v.Err
		}
	}
	return nil
}

// Filter returns names of the current selections.
func (s State) Filter() location.Filter {
	var res location.Filter
	if v := s.levels[location.LevelCountry].Selected; v != nil {
		res.Country = v.Name
	}
	if v := s.levels[location.LevelRegion].Selected; v != nil {
		res.Region = v.Name
	}
	if v := s.levels[location.LevelDivision].Selected; v != nil {
		res.Division = v.Name
	}
	return res
}

// Select dispatches to the select operation of the level.
func (s State) Select(l location.Level, id string) (State, []Effect) {
	switch l {
	case location.LevelCountry:
		return s.SelectCountry(id)
	case location.LevelRegion:
		return s.SelectRegion(id)
	case location.LevelDivision:
		return s.SelectDivision(id)
	default:
		return s.SelectCity(id)
	}
}

// SelectCountry selects a country from the loaded country options.
// Empty id or an id missing from the options leaves the country unset.
// If the selected region does not belong to the new country, region,
// division and city are cleared. Region options are fetched for the new
// country name.
func (s State) SelectCountry(id string) (State, []Effect) {
	var res []Effect
	sel := s.lookup(location.LevelCountry, id)
	s.levels[location.LevelCountry].Selected = sel

	if r := s.levels[location.LevelRegion].Selected; r != nil &&
		r.ParentID != selID(sel) {
		res = append(res, s.clear(
			location.LevelRegion,
			location.LevelDivision,
			location.LevelCity,
		)...)
	}

	if sel == nil {
		s.reset(location.LevelRegion)
	} else {
		f := location.Filter{Country: sel.Name}
		res = append(res, s.fetch(location.LevelRegion, f))
	}

	if s.levels[location.LevelRegion].Selected == nil {
		s.reset(location.LevelDivision)
		s.reset(location.LevelCity)
	}
	return s, res
}

// SelectRegion selects a region from the loaded region options.
// Division and city are cleared if they do not belong to the new region.
// Division and city options are fetched for country and region names.
func (s State) SelectRegion(id string) (State, []Effect) {
	var res []Effect
	sel := s.lookup(location.LevelRegion, id)
	s.levels[location.LevelRegion].Selected = sel

	if d := s.levels[location.LevelDivision].Selected; d != nil &&
		d.ParentID != selID(sel) {
		res = append(res, s.clear(location.LevelDivision)...)
	}
	if c := s.levels[location.LevelCity].Selected; c != nil &&
		c.ParentID != selID(sel) {
		res = append(res, s.clear(location.LevelCity)...)
	}

	if sel == nil {
		s.reset(location.LevelDivision)
		s.reset(location.LevelCity)
		return s, res
	}

	f := s.Filter()
	res = append(res, s.fetch(location.LevelDivision, f.ForLevel(location.LevelDivision)))
	res = append(res, s.fetch(location.LevelCity, f))
	return s, res
}

// SelectDivision selects a division from the loaded division options.
// The city is checked against the region of the new division (or the
// selected region when the division is unset), because a city belongs
// to a region and only optionally to a division. City options are
// refetched.
func (s State) SelectDivision(id string) (State, []Effect) {
	var res []Effect
	sel := s.lookup(location.LevelDivision, id)
	s.levels[location.LevelDivision].Selected = sel

	region := selID(s.levels[location.LevelRegion].Selected)
	if sel != nil {
		region = sel.ParentID
	}
	if c := s.levels[location.LevelCity].Selected; c != nil &&
		c.ParentID != region {
		res = append(res, s.clear(location.LevelCity)...)
	}

	if s.levels[location.LevelRegion].Selected != nil {
		res = append(res, s.fetch(location.LevelCity, s.Filter()))
	}
	return s, res
}

// SelectCity selects a city from the loaded city options.
func (s State) SelectCity(id string) (State, []Effect) {
	s.levels[location.LevelCity].Selected = s.lookup(location.LevelCity, id)
	return s, nil
}

// PopulateFromExternal selects levels by names taken from an external
// source, such as URL query parameters. A level is attempted once its
// option set is loaded and a name for it is given. After the attempt,
// successful or not, the level is marked as resolved and further
// external values for it are ignored.
func (s State) PopulateFromExternal(ext External) (State, []Effect) {
	var res []Effect
	for _, l := range location.Levels {
		name := ext.Name(l)
		ls := s.levels[l]
		if ls.Resolved || name == "" || !ls.Fetched || ls.Loading {
			continue
		}
		s.levels[l].Resolved = true
		n, ok := location.FindByName(ls.Options, name)
		if !ok {
			continue
		}
		var eff []Effect
		s, eff = s.Select(l, n.ID)
		res = append(res, eff...)
	}
	return s, res
}

// ApplyOptions stores the result of a fetch. Results of fetches that
// were superseded (a different filter or a reset level) are ignored.
func (s State) ApplyOptions(
	l location.Level,
	f location.Filter,
	nodes []location.Node,
	err error,
) State {
	ls := s.levels[l]
	if !ls.Loading || ls.Filter != f {
		return s
	}

	ls.Loading = false
	ls.Fetched = true
	if err != nil {
		ls.Options = nil
		ls.Err = FetchError(l, f, err)
	} else {
		ls.Options = nodes
		ls.Err = nil
	}
	if ls.Selected != nil {
		sel := *ls.Selected
		sel.IsLoading = false
		ls.Selected = &sel
	}
	s.levels[l] = ls
	return s
}

// lookup finds a node in the currently loaded options. Missing options
// (stale or not yet loaded) mean "not found".
func (s *State) lookup(l location.Level, id string) *Selection {
	if id == "" {
		return nil
	}
	n, ok := location.FindByID(s.levels[l].Options, id)
	if !ok {
		return nil
	}
	return &Selection{
		ID:        n.ID,
		Name:      n.Name,
		ParentID:  n.ParentID,
		IsLoading: s.levels[l].Loading,
	}
}

// clear unsets selections of the levels and returns notifications.
func (s *State) clear(levels ...location.Level) []Effect {
	res := make([]Effect, 0, len(levels))
	for _, l := range levels {
		s.levels[l].Selected = nil
		res = append(res, Effect{Kind: EffectCleared, Level: l})
	}
	return res
}

// fetch marks the level as loading for the filter. A new filter drops
// the old option set so that nothing stale can be selected while the
// new one loads.
func (s *State) fetch(l location.Level, f location.Filter) Effect {
	ls := s.levels[l]
	if ls.Filter != f || !ls.Fetched {
		ls.Options = nil
		ls.Fetched = false
	}
	ls.Filter = f
	ls.Loading = true
	ls.Err = nil
	if ls.Selected != nil {
		sel := *ls.Selected
		sel.IsLoading = true
		ls.Selected = &sel
	}
	s.levels[l] = ls
	return Effect{Kind: EffectFetch, Level: l, Filter: f}
}

// reset drops the option set of a level whose parent became unset,
// fetching is disabled for such level.
func (s *State) reset(l location.Level) {
	ls := s.levels[l]
	s.levels[l] = LevelState{
		Selected: ls.Selected,
		Resolved: ls.Resolved,
	}
}

func selID(s *Selection) string {
	if s == nil {
		return ""
	}
	return s.ID
}

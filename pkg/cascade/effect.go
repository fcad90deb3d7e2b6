package cascade

import (
	"fmt"

	"github.com/gnames/gnloc/pkg/location"
)

// EffectKind tells what the caller has to do with an Effect.
type EffectKind int

const (
	// EffectCleared reports that the selection of a level was cleared.
	EffectCleared EffectKind = iota

	// EffectFetch requests the option set of a level for a filter.
	EffectFetch
)

func (k EffectKind) String() string {
	switch k {
	case EffectCleared:
		return "cleared"
	case EffectFetch:
		return "fetch"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is a side effect produced by a state transition.
type Effect struct {
	Kind   EffectKind
	Level  location.Level
	Filter location.Filter
}

func (e Effect) String() string {
	if e.Kind == EffectFetch {
		return fmt.Sprintf("fetch %s [%s]", e.Level, e.Filter.Expr(e.Level))
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Level)
}

package iopg

import (
	"strings"
	"testing"

	"github.com/gnames/gnloc/pkg/location"
	"github.com/stretchr/testify/assert"
)

func TestOptionsQuery(t *testing.T) {
	f := location.Filter{Country: "USA", Region: "California"}
	tests := []struct {
		msg   string
		level location.Level
		f     location.Filter
		from  string
		args  []any
	}{
		{"country", location.LevelCountry, f, "FROM countries", nil},
		{"region", location.LevelRegion, f, "FROM regions r", []any{"USA"}},
		{"division", location.LevelDivision, f, "FROM divisions d",
			[]any{"USA", "California"}},
		{"city", location.LevelCity, f, "FROM cities ci",
			[]any{"USA", "California"}},
		{"city in division", location.LevelCity,
			location.Filter{Country: "USA", Region: "California", Division: "Marin"},
			"JOIN divisions d", []any{"USA", "California", "Marin"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			q, args := optionsQuery(v.level, v.f)
			assert.Contains(t, q, v.from)
			assert.True(t, strings.HasSuffix(q, "name"))
			assert.Equal(t, v.args, args)
		})
	}
}

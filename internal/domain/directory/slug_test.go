package directory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Upper Body", want: "upper-body"},
		{name: "accents", in: "Épaules & Dos", want: "epaules-dos"},
		{name: "punctuation runs", in: "  leg -- day!!  ", want: "leg-day"},
		{name: "digits", in: "Week 12", want: "week-12"},
		{name: "non latin letters kept", in: "Грудь", want: "грудь"},
		{name: "only symbols", in: "!!!", want: "directory"},
		{name: "empty", in: "", want: "directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	slug := Slugify(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len([]rune(slug)), maxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestDisambiguate(t *testing.T) {
	assert.Equal(t, "legs", Disambiguate("legs", nil))
	assert.Equal(t, "legs-2", Disambiguate("legs", []string{"legs"}))
	assert.Equal(t, "legs-4", Disambiguate("legs", []string{"legs", "legs-2", "legs-3"}))
	assert.Equal(t, "legs", Disambiguate("legs", []string{"legs-2"}))
}

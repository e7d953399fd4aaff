package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storekit/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"product name", "Sika MonoTop®-627 HP", "sika-monotop-627-hp"},
		{"italian accents", "Qualità Più", "qualita-piu"},
		{"category name", "Pavimenti in Resina", "pavimenti-in-resina"},
		{"collapses symbol runs", "A  --  B", "a-b"},
		{"trims edges", "  Piscine!  ", "piscine"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}

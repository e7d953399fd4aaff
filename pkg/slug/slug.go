// Package slug derives URL-safe identifiers from product and category
// names. Italian diacritics fold to their ASCII base letter so
// "Qualità Più" becomes "qualita-piu".
package slug

import (
	"strings"
	"unicode"
)

// diacritics maps the accented letters that appear in Italian product
// names to ASCII. Not a general transliteration table.
var diacritics = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u',
	'ç': 'c', 'ñ': 'n',
}

// Make converts a display name into a lowercase hyphen-separated slug.
// Runs of non-alphanumeric characters collapse into a single hyphen;
// leading and trailing hyphens are dropped.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastWasSep := true
	for _, r := range name {
		r = unicode.ToLower(r)
		if folded, ok := diacritics[r]; ok {
			r = folded
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasSep = false
			continue
		}
		if !lastWasSep {
			b.WriteByte('-')
			lastWasSep = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

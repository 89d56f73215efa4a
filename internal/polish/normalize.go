// Package polish canonicalizes Polish text into a comparable ASCII form.
// All matching in the search core happens on normalized strings; the
// original display strings are never modified.
package polish

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// polishASCII maps each Polish diacritic letter to its base Latin
// letter. The table is explicit rather than relying on Unicode
// decomposition because ł/Ł does not decompose under NFD and the source
// data mixes diacritic encodings (legacy CSV imports, non-Polish
// keyboards).
var polishASCII = map[rune]rune{
	'ą': 'a', 'Ą': 'a',
	'ć': 'c', 'Ć': 'c',
	'ę': 'e', 'Ę': 'e',
	'ł': 'l', 'Ł': 'l',
	'ń': 'n', 'Ń': 'n',
	'ó': 'o', 'Ó': 'o',
	'ś': 's', 'Ś': 's',
	'ź': 'z', 'Ź': 'z',
	'ż': 'z', 'Ż': 'z',
}

// stripMarks removes any combining marks left over after the explicit
// table, covering stray non-Polish diacritics in imported data.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, folds Polish diacritics to ASCII and trims
// surrounding whitespace. It is total (empty input yields "") and
// idempotent, and never fails.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if base, ok := polishASCII[r]; ok {
			r = base
		}
		b.WriteRune(r)
	}

	folded := b.String()
	if stripped, _, err := transform.String(stripMarks, folded); err == nil {
		folded = stripped
	}

	return strings.TrimSpace(strings.ToLower(folded))
}

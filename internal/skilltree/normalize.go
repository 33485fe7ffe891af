package skilltree

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize derives the canonical identifier for a label or file stem: only
// letters and digits survive, lowercased. It is used for both sides of every
// skill comparison so filenames and diagram labels meet on equality.
//
// Input is composed to NFC first so decomposed filenames (as written by some
// filesystems) match precomposed labels. Lowercasing runs before filtering
// because case mapping can emit combining marks.
func Normalize(label string) string {
	if label == "" {
		return ""
	}
	s := norm.NFC.String(label)
	s = cases.Lower(language.Und).String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return -1
	}, s)
	return norm.NFC.String(s)
}

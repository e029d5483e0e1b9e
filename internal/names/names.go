// Package names normalizes person names for search and comparison.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a name for matching: diacritics removed, lowercased,
// dashes treated as spaces (e.g. "Jiří Novák-Dvořák" -> "jiri novak dvorak").
func Fold(name string) string {
	folded, _, _ := transform.String(stripMarks, name)
	folded = strings.ToLower(folded)
	return strings.ReplaceAll(folded, "-", " ")
}

// Contains reports whether haystack contains needle after both are folded.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

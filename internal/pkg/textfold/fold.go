// Package textfold normalises free text for case- and accent-insensitive
// matching of customer labels and addresses ("Peñíscola" matches "peniscola").
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips combining marks and collapses inner whitespace.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(out)), " ")
}

// Contains reports whether needle occurs in haystack after folding both.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}

// Title renders s in Spanish title case, used for route display names.
func Title(s string) string {
	return cases.Title(language.Spanish).String(strings.TrimSpace(s))
}

package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeName rewrites a value to title-cased words separated by single spaces.
// Punctuation becomes a word break: "  Elesa-ganter  " -> "Elesa Ganter".
func NormalizeName(value string) string {
	value = nonWordPattern.ReplaceAllString(value, " ")
	value = whitespacePattern.ReplaceAllString(value, " ")
	value = strings.TrimSpace(value)
	return cases.Title(language.Und).String(value)
}

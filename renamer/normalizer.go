package renamer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer derives a whitespace-free schema name from the original.
type Normalizer func(name string) string

// StripWhitespace removes every Unicode whitespace character, keeping the
// remaining characters untouched.
//
// Examples:
//
//	"Order Response"  -> "OrderResponse"
//	"Banner V1"       -> "BannerV1"
//	" padded "        -> "padded"
func StripWhitespace(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}

// PascalCase splits the name on whitespace, title-cases the first letter of
// each word and joins them. Characters after the first letter of a word keep
// their casing, so acronyms and version suffixes survive.
//
// Examples:
//
//	"order response"  -> "OrderResponse"
//	"banner V1"       -> "BannerV1"
//	"API key"         -> "APIKey"
func PascalCase(name string) string {
	titleCaser := cases.Title(language.English, cases.NoLower)

	words := strings.FieldsFunc(name, unicode.IsSpace)
	var result strings.Builder
	result.Grow(len(name))

	for _, word := range words {
		runes := []rune(word)
		result.WriteString(titleCaser.String(string(runes[0])))
		if len(runes) > 1 {
			result.WriteString(string(runes[1:]))
		}
	}
	return result.String()
}

package common

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Email string

func (e Email) IsEmpty() bool {
	return e == ""
}

var unwanted = strings.NewReplacer("'", "", `"`, "", " ", "")

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean strips accents, quote characters and spaces from a user-supplied
// string. Cleaned values are the only ones allowed into directory search
// filters.
func Clean(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		// Removing combining marks cannot fail on valid UTF-8; fall back
		// to the raw string for anything else.
		folded = s
	}
	return unwanted.Replace(folded)
}

// CleanLower applies Clean and lowercases the result.
func CleanLower(s string) string {
	return strings.ToLower(Clean(s))
}

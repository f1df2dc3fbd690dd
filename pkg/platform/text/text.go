// Package text normalizes free-text fields (titles, motifs, comments) before
// they are stored or compared.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace, collapses internal runs of
// whitespace to a single space and converts to NFC so that "é" typed as
// e + combining accent compares equal to the precomposed form.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// IsBlank reports whether s has no visible content.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate limits s to max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

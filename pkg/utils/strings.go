package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// ToLowerCamel converts a function identifier to lowerCamelCase.
// "-" and "_" are dropped and the letter following them is upper-cased; the
// very first character is lower-cased. Other characters are kept as written,
// so "getUserByID" stays "getUserByID".
func ToLowerCamel(s string) string {
	s = RemoveAccents(strings.TrimSpace(s))

	var b strings.Builder
	upperNext := false
	for _, r := range s {
		if r == '-' || r == '_' {
			upperNext = b.Len() > 0
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if out == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToLower(first)) + out[size:]
}

// ToPascalCase is ToLowerCamel with the first character upper-cased.
func ToPascalCase(s string) string {
	out := ToLowerCamel(s)
	if out == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}

// IsIdentifier reports whether s can be written as a bare TypeSpec identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// QuoteIdentifier returns s unchanged when it is a valid identifier and
// wrapped in backticks otherwise.
func QuoteIdentifier(s string) string {
	if IsIdentifier(s) {
		return s
	}
	return "`" + strings.ReplaceAll(s, "`", "\\`") + "`"
}

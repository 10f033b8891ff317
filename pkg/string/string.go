package string

import (
	"strings"
	"unicode"
)

// TrimStrings trims each non-nil string in place.
func TrimStrings(ss ...*string) {
	for _, s := range ss {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

// RemoveSpace drops every whitespace rune, including ones inside the string.
// Korean addresses are compared this way because spacing between address
// tokens is not significant.
func RemoveSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// RemoveRune drops every occurrence of r.
func RemoveRune(s string, r rune) string {
	return strings.Map(func(c rune) rune {
		if c == r {
			return -1
		}
		return c
	}, s)
}

func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

package postgres

import (
	"regexp"
	"strings"
	"unicode"
)

var vowelClasses = map[rune]string{
	'a': "[aáàäâ]",
	'e': "[eéëè]",
	'i': "[iíïì]",
	'o': "[oóöò]",
	'u': "[uüúù]",
}

// diacriticPattern turns a free-text search term into a POSIX regex where
// each vowel also matches its accented variants, so "cafe" finds "Café".
// Matching is done with ~* so case is already folded; everything else is
// escaped literally.
func diacriticPattern(term string) string {
	var b strings.Builder
	for _, r := range term {
		if cls, ok := vowelClasses[unicode.ToLower(r)]; ok {
			b.WriteString(cls)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}

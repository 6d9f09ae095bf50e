package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases value and reduces it to letters, digits, underscores,
// and single hyphens. Without allowUnicode the text is folded to ASCII first
// (accents are stripped, other non-ASCII runes are dropped); with it the text
// is only NFKC-normalized.
func Slugify(value string, allowUnicode bool) string {
	if allowUnicode {
		value = norm.NFKC.String(value)
	} else {
		value = foldASCII(value)
	}
	value = strings.ToLower(value)

	var b strings.Builder
	b.Grow(len(value))
	pendingDash := false
	for _, r := range value {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
			if pendingDash {
				b.WriteByte('-')
				pendingDash = false
			}
			b.WriteRune(r)
		case r == '-', unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return strings.Trim(b.String(), "-_")
}

// SlugifyPath slugifies every segment of a slash-separated path and drops
// segments that slugify to nothing.
func SlugifyPath(value string) string {
	segments := strings.Split(value, "/")
	out := segments[:0]
	for _, segment := range segments {
		if slug := Slugify(segment, false); slug != "" {
			out = append(out, slug)
		}
	}
	return strings.Join(out, "/")
}

var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

func foldASCII(value string) string {
	folded, _, err := transform.String(asciiFold, value)
	if err != nil {
		return value
	}
	return folded
}

var titleCaser = cases.Title(language.English)

// Title converts a file stem such as "sweet_spot-builder" into "Sweet Spot Builder".
func Title(stem string) string {
	spaced := strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, stem)
	return titleCaser.String(strings.Join(strings.Fields(spaced), " "))
}

package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugFallback is returned when a name produces no usable slug.
const SlugFallback = "obra"

var (
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify turns a display name into the URL-safe identifier used by the
// catalog routes: lowercase, diacritics stripped, whitespace collapsed to
// single hyphens. Names with nothing usable left map to SlugFallback.
func Slugify(name string) string {
	if name == "" {
		return SlugFallback
	}

	s := strings.ToLower(name)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = nonSlugChars.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")

	if s == "" {
		return SlugFallback
	}
	return s
}

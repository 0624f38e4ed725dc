// Package slug derives URL path segments from free-text titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespace   = regexp.MustCompile(`\s+`)
	multiHyphen  = regexp.MustCompile(`-+`)
	validSlug    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// NFD decomposition followed by removal of combining marks folds
	// accented characters to their base letter (Café -> Cafe).
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Generate converts a title into a URL-friendly slug. It returns an
// empty string when the input contains no usable characters; callers
// must treat that as invalid.
func Generate(title string) string {
	s := strings.ToLower(title)
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid reports whether s is a well-formed slug: at least two
// characters of lowercase alphanumerics separated by single hyphens,
// with no leading or trailing hyphen.
func IsValid(s string) bool {
	if len(s) < 2 {
		return false
	}
	return validSlug.MatchString(s)
}

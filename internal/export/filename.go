package export

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRunRe  = regexp.MustCompile(`\s+`)
	unsafeRe    = regexp.MustCompile(`[^a-z0-9._-]`)
	dashRunRe   = regexp.MustCompile(`-+`)
	defaultName = "image"
)

// SanitizeFilename returns a predictable, URL-safe, lower-case file name:
// accents are folded, whitespace runs become a dash, and anything outside
// [a-z0-9._-] is dropped.
func SanitizeFilename(name string) string {
	if s := sanitize(name); s != "" {
		return s
	}
	return defaultName
}

// ArchiveName returns the download name of the image bundle for brand.
func ArchiveName(brand string) string {
	slug := sanitize(brand)
	if slug == "" {
		slug = "catalog"
	}
	return slug + "-images.zip"
}

func sanitize(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	s = spaceRunRe.ReplaceAllString(s, "-")
	s = unsafeRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	if s == "." || s == ".." {
		return ""
	}
	return s
}

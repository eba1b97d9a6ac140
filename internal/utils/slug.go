package utils

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Slugify derives a product's URL slug from its name: the first 30 characters
// of the name, lowercased, with whitespace runs and periods replaced by
// hyphens. The result is a pure function of the name and is idempotent once
// already slugified.
func Slugify(name string) string {
	runes := []rune(name)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	slug := strings.ToLower(string(runes))
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = strings.ReplaceAll(slug, ".", "-")
	return slug
}

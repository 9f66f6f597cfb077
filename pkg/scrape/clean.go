package scrape

import (
	"regexp"
	"strings"
)

var (
	// disallowedRe matches characters outside the permitted set:
	// word characters, whitespace, and common punctuation.
	disallowedRe = regexp.MustCompile(`[^\w\s.,!?;:()\-'/"]`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText normalizes extracted page text: strips characters outside the
// permitted set, collapses whitespace runs to a single space, and trims.
// The disallowed characters are removed before whitespace is collapsed so
// that the result is idempotent.
func CleanText(text string) (cleaned string) {
	cleaned = disallowedRe.ReplaceAllString(text, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	return cleaned
}

// Package output writes generated cover letters to disk as text and PDF,
// with a chain of PDF backends that degrades gracefully.
package output

import (
	"regexp"
	"strings"
)

// MaxBaseNameLength caps sanitized file base names.
const MaxBaseNameLength = 50

var (
	// illegalRe matches characters that are unsafe in file names on at
	// least one supported platform.
	illegalRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

	// separatorRe matches whitespace and punctuation runs collapsed to a
	// single underscore.
	separatorRe = regexp.MustCompile(`[\s.,;:!?()\[\]{}'"]+`)

	underscoreRe = regexp.MustCompile(`_+`)
)

// SanitizeBaseName turns arbitrary text (company names, position titles)
// into a safe file name fragment: illegal characters are removed,
// whitespace and punctuation collapse to single underscores, and the
// result is capped in length. Empty results become "unnamed".
func SanitizeBaseName(name string) (sanitized string) {
	sanitized = illegalRe.ReplaceAllString(name, "")
	sanitized = separatorRe.ReplaceAllString(sanitized, "_")
	sanitized = underscoreRe.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_")

	if len(sanitized) > MaxBaseNameLength {
		sanitized = sanitized[:MaxBaseNameLength]
		sanitized = strings.Trim(sanitized, "_")
	}

	if sanitized == "" {
		sanitized = "unnamed"
	}

	return sanitized
}

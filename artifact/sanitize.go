package artifact

import (
	"regexp"
	"strings"
)

// maxNameLen bounds sanitized file names.
const maxNameLen = 200

// fallbackName is used when sanitizing leaves nothing usable.
const fallbackName = "transcript"

// invalidNameRunes matches characters that are unsafe in file names
// across platforms, including control characters.
var invalidNameRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// multiSpace matches runs of whitespace for collapsing.
var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeName turns an arbitrary string (typically a video title) into
// a safe file name, without extension:
//   - forbidden characters are replaced with spaces
//   - whitespace runs collapse to a single space
//   - trailing dots are dropped
//   - length is capped
//   - an empty result falls back to "transcript"
func SanitizeName(name string) string {
	clean := invalidNameRunes.ReplaceAllString(name, " ")
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimRight(clean, ".")

	if clean == "" {
		return fallbackName
	}
	if len(clean) > maxNameLen {
		clean = strings.TrimSpace(clean[:maxNameLen])
	}
	return clean
}

package captions

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDPattern matches a bare video identifier. YouTube IDs are
// canonically 11 characters; a little slack is allowed on either side
// since the length is not contractually fixed by the service.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,12}$`)

// ExtractVideoID extracts the video identifier from a user-supplied URL
// or returns the input unchanged when it is already a bare identifier.
//
// Supported URL forms:
//   - https://www.youtube.com/watch?v=<id>
//   - https://youtu.be/<id>
//   - https://www.youtube.com/shorts/<id>
//   - https://www.youtube.com/embed/<id>
//   - https://www.youtube.com/live/<id>
//
// Returns a *ValidationError when no identifier can be extracted.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", &ValidationError{Field: "url", Message: "empty video reference"}
	}

	if videoIDPattern.MatchString(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return "", &ValidationError{Field: "url", Message: "not a video URL or identifier"}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			candidate = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"),
			strings.HasPrefix(u.Path, "/embed/"),
			strings.HasPrefix(u.Path, "/live/"):
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) == 2 {
				candidate = parts[1]
			}
		}
	case "youtu.be":
		candidate = strings.Trim(u.Path, "/")
	default:
		return "", &ValidationError{Field: "url", Message: "unrecognized video URL host '" + host + "'"}
	}

	if !videoIDPattern.MatchString(candidate) {
		return "", &ValidationError{Field: "url", Message: "could not extract a video identifier"}
	}
	return candidate, nil
}

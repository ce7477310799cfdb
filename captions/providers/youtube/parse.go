package youtube

import (
	"encoding/json"
	"encoding/xml"
	"html"
	"strings"

	"github.com/xifan2333/2transcript/captions"
)

// captionTrack mirrors one entry of the player response's caption track
// list. Only the fields the provider needs are mapped.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// checkPlayability inspects the player response's playability status and
// converts anything other than OK into an *captions.UnavailableError.
func checkPlayability(page []byte, videoID string) error {
	obj, ok := extractJSONObject(page, `"playabilityStatus":`)
	if !ok {
		// No playability status at all means the page is not a video
		// watch page (video deleted, or a consent/error interstitial).
		return &captions.UnavailableError{VideoID: videoID}
	}

	var status struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(obj, &status); err != nil {
		return &captions.FetchError{Step: "playability", Message: "failed to decode playability status", Err: err}
	}

	switch status.Status {
	case "", "OK":
		return nil
	default:
		// ERROR, UNPLAYABLE, LOGIN_REQUIRED, LIVE_STREAM_OFFLINE, ...
		return &captions.UnavailableError{VideoID: videoID, Reason: status.Reason}
	}
}

// parseCaptionTracks extracts the caption track list from the watch page.
//
// Returns *captions.NoCaptionsError when the video is playable but the
// player response carries no captions section or an empty track list.
func parseCaptionTracks(page []byte, videoID string) ([]captionTrack, error) {
	obj, ok := extractJSONObject(page, `"captions":`)
	if !ok {
		return nil, &captions.NoCaptionsError{VideoID: videoID}
	}

	var renderer struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal(obj, &renderer); err != nil {
		return nil, &captions.FetchError{Step: "parse_tracks", Message: "failed to decode caption track list", Err: err}
	}

	tracks := renderer.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, &captions.NoCaptionsError{VideoID: videoID}
	}
	return tracks, nil
}

// selectTrack picks a track by language preference: requested language
// prefix first, then an English track, then the first available one.
// Among tracks of the same language, author-uploaded tracks win over
// auto-generated ones.
func selectTrack(tracks []captionTrack, language string) captionTrack {
	pick := func(lang string) (captionTrack, bool) {
		var generated *captionTrack
		for i, t := range tracks {
			if !strings.HasPrefix(t.LanguageCode, lang) {
				continue
			}
			if t.Kind != "asr" {
				return t, true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
		return captionTrack{}, false
	}

	if language != "" {
		if t, ok := pick(language); ok {
			return t
		}
	}
	if t, ok := pick("en"); ok {
		return t
	}
	return tracks[0]
}

// parseVideoTitle extracts the video title from the player response's
// videoDetails section. Returns "" when the title cannot be found; the
// caller falls back to the video ID.
func parseVideoTitle(page []byte) string {
	obj, ok := extractJSONObject(page, `"videoDetails":`)
	if !ok {
		return ""
	}
	var details struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(obj, &details); err != nil {
		return ""
	}
	return details.Title
}

// extractJSONObject finds marker in doc and returns the brace-balanced
// JSON object that follows it. Brace counting skips string literals so
// braces inside values do not end the object early.
func extractJSONObject(doc []byte, marker string) ([]byte, bool) {
	start := strings.Index(string(doc), marker)
	if start == -1 {
		return nil, false
	}
	rest := doc[start+len(marker):]

	open := -1
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '{' {
			open = i
			break
		}
		// Only whitespace may precede the object.
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return nil, false
		}
	}
	if open == -1 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(rest); i++ {
		c := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[open : i+1], true
			}
		}
	}
	return nil, false
}

// timedText mirrors the timedtext XML document of a caption track.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText decodes a timedtext XML document into ordered fragments,
// unescaping the HTML entities YouTube embeds in caption text.
func parseTimedText(data []byte) ([]captions.Fragment, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &captions.FetchError{Step: "timedtext", Message: "failed to decode timedtext XML", Err: err}
	}

	fragments := make([]captions.Fragment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		fragments = append(fragments, captions.Fragment{
			Text:     html.UnescapeString(t.Text),
			Start:    t.Start,
			Duration: t.Dur,
		})
	}
	return fragments, nil
}

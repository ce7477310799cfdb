package youtube

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/xifan2333/2transcript/captions"
)

const watchURLFormat = "https://www.youtube.com/watch?v=%s"

// maxErrorBody bounds how much of an error response is kept for messages.
const maxErrorBody = 512

// fetchWatchPage downloads the watch page HTML for a video.
func fetchWatchPage(ctx context.Context, client *http.Client, videoID string) ([]byte, error) {
	return get(ctx, client, "watch_page", fmt.Sprintf(watchURLFormat, videoID), "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
}

// fetchTimedText downloads the timedtext XML document of a caption track.
func fetchTimedText(ctx context.Context, client *http.Client, trackURL string) ([]byte, error) {
	return get(ctx, client, "timedtext", trackURL, "text/xml,application/xml;q=0.9,*/*;q=0.8")
}

// get performs a single GET with browser-looking headers and returns the
// decompressed body. Non-200 statuses become *captions.APIError so the
// retry classifier can distinguish rate limiting from hard failures.
func get(ctx context.Context, client *http.Client, step, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &captions.FetchError{Step: step, Message: "failed to create HTTP request", Err: err}
	}

	// Use gofakeit to vary the browser fingerprint between requests.
	req.Header.Set("User-Agent", gofakeit.UserAgent())
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", acceptLanguage())
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &captions.FetchError{Step: step, Message: "HTTP request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &captions.APIError{StatusCode: resp.StatusCode, Response: string(body)}
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, &captions.FetchError{Step: step, Message: "failed to read response body", Err: err}
	}
	return body, nil
}

// readResponseBody reads the response body, handling gzip decompression
// if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	return io.ReadAll(resp.Body)
}

// acceptLanguage generates a plausible Accept-Language header.
func acceptLanguage() string {
	return fmt.Sprintf("%s,en;q=0.9", gofakeit.LanguageAbbreviation())
}

package punct

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkLen is the default per-chunk rune budget. It sits well
// inside the context window of every supported model while keeping the
// number of model calls low for long transcripts.
const DefaultMaxChunkLen = 2000

// splitChunks splits text at whitespace boundaries into chunks of at
// most maxRunes runes. Words are never split: a single word longer than
// the budget becomes its own oversized chunk rather than being broken
// mid-word. Joining the chunks with single spaces preserves every word
// of the input in order.
func splitChunks(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxChunkLen
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var b strings.Builder
	length := 0 // runes in b, including separating spaces

	flush := func() {
		if b.Len() > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
			length = 0
		}
	}

	for _, w := range words {
		wlen := utf8.RuneCountInString(w)
		switch {
		case length == 0:
			b.WriteString(w)
			length = wlen
		case length+1+wlen <= maxRunes:
			b.WriteByte(' ')
			b.WriteString(w)
			length += 1 + wlen
		default:
			flush()
			b.WriteString(w)
			length = wlen
		}
	}
	flush()

	return chunks
}

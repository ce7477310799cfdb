// Package transcript turns ordered caption fragments into continuous,
// readable text. It contains the pure text stages of the pipeline:
// assembly of raw fragments and sentence-level capitalization.
package transcript

import (
	"regexp"
	"strings"

	"github.com/xifan2333/2transcript/captions"
)

var (
	// inlineCuePattern matches inline cues like "[Music]" or "[Applause]"
	// that caption tracks embed as plain text.
	inlineCuePattern = regexp.MustCompile(`\[[^\]]*\]`)

	// escapePattern matches literal escape sequences ("\n", "\r\n", "\t",
	// "\b", "\r") that occasionally leak into caption text as two-character
	// sequences rather than control characters.
	escapePattern = regexp.MustCompile(`\\r\\n|\\[nrtb]`)

	// whitespacePattern collapses runs of whitespace, including real
	// newlines inside a fragment, to a single space.
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanFragmentText normalizes the raw text of a single caption fragment:
// inline cues, leaked escape sequences and ">>" speaker markers are
// removed, and internal whitespace is collapsed. Returns "" when nothing
// readable remains.
func CleanFragmentText(text string) string {
	text = inlineCuePattern.ReplaceAllString(text, "")
	text = escapePattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, ">>", "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Assemble concatenates caption fragments into a single continuous text
// blob, preserving temporal order and separating fragments with a single
// space. Fragments that clean down to nothing are skipped.
//
// Assemble is a pure function with no failure modes: an empty or nil
// fragment slice assembles to "".
func Assemble(fragments []captions.Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		text := CleanFragmentText(f.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String()
}

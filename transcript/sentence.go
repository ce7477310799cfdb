package transcript

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

// sentenceTokenizer lazily builds the punkt sentence tokenizer. The
// English training data is embedded in the library, so construction can
// only fail if that data is corrupt.
func sentenceTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	return tokenizer, tokenizerErr
}

// Sentences splits text into sentences using a punkt sentence-boundary
// tokenizer. Whitespace-only input yields nil. If the tokenizer cannot
// be built the whole text is returned as a single sentence, which keeps
// downstream capitalization best-effort instead of failing the request.
func Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	tok, err := sentenceTokenizer()
	if err != nil {
		return []string{text}
	}

	tokens := tok.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

// CapitalizeSentences upper-cases the first alphabetic rune of every
// sentence in text, leaving everything else untouched. The operation is
// idempotent: text whose sentences already start with an upper-case
// letter passes through unchanged.
func CapitalizeSentences(text string) string {
	sents := Sentences(text)
	if len(sents) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, s := range sents {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		rel := strings.Index(text[cursor:], trimmed)
		if rel < 0 {
			// Tokenizer output diverged from the input; leave the rest as is.
			continue
		}
		start := cursor + rel
		b.WriteString(text[cursor:start])
		b.WriteString(capitalizeFirstAlpha(trimmed))
		cursor = start + len(trimmed)
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// capitalizeFirstAlpha upper-cases the first letter of s, skipping any
// leading digits or punctuation.
func capitalizeFirstAlpha(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsUpper(r) {
			return s
		}
		return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
	}
	return s
}

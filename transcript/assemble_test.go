package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xifan2333/2transcript/captions"
)

func TestCleanFragmentText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "inline cue removed", in: "[Music] hello", want: "hello"},
		{name: "cue in the middle", in: "hello [Applause] world", want: "hello world"},
		{name: "cue only", in: "[Laughter]", want: ""},
		{name: "literal escapes removed", in: `hello\nworld`, want: "helloworld"},
		{name: "crlf escape removed", in: `hello\r\nworld`, want: "helloworld"},
		{name: "speaker marks removed", in: ">> SPEAKER: hello", want: "SPEAKER: hello"},
		{name: "real newline collapses to space", in: "hello\nworld", want: "hello world"},
		{name: "whitespace runs collapse", in: "hello    world\t!", want: "hello world !"},
		{name: "surrounding space trimmed", in: "  hello  ", want: "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanFragmentText(tc.in))
		})
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name      string
		fragments []captions.Fragment
		want      string
	}{
		{
			name:      "nil fragments",
			fragments: nil,
			want:      "",
		},
		{
			name:      "empty slice",
			fragments: []captions.Fragment{},
			want:      "",
		},
		{
			name: "fragments joined with single spaces",
			fragments: []captions.Fragment{
				{Text: "hello world", Start: 0, Duration: 1},
				{Text: "how are you", Start: 1, Duration: 2},
			},
			want: "hello world how are you",
		},
		{
			name: "temporal order preserved",
			fragments: []captions.Fragment{
				{Text: "first"},
				{Text: "second"},
				{Text: "third"},
			},
			want: "first second third",
		},
		{
			name: "cue-only fragments skipped",
			fragments: []captions.Fragment{
				{Text: "[Music]"},
				{Text: "hello"},
				{Text: "[Applause]"},
				{Text: "world"},
			},
			want: "hello world",
		},
		{
			name: "fragment-internal whitespace collapsed",
			fragments: []captions.Fragment{
				{Text: "hello\n  world "},
				{Text: " again"},
			},
			want: "hello world again",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Assemble(tc.fragments))
		})
	}
}

package render

import (
	"slices"
	"strings"
	"testing"

	"adventure/internal/transcript"
)

func TestRenderEntriesLayout(t *testing.T) {
	entries := []transcript.Entry{
		{Kind: transcript.Welcome, Text: transcript.WelcomeText},
		{Kind: transcript.UserCommand, Text: "look"},
		{Kind: transcript.SystemResponse, Text: transcript.ResponseFor("look")},
	}
	got := LinesToPlainStrings(RenderEntries(entries, 80))
	want := []string{
		transcript.WelcomeText,
		"",
		"> look",
		"You typed 'look', but nothing happens yet.",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("RenderEntries = %q\nwant %q", got, want)
	}
}

func TestRenderCommandContinuationIndent(t *testing.T) {
	lines := LinesToPlainStrings(RenderEntry(transcript.Entry{Kind: transcript.UserCommand, Text: "open the small mailbox"}, 12))
	want := []string{"", "> open the", "  small", "  mailbox"}
	if !slices.Equal(lines, want) {
		t.Fatalf("command lines = %q want %q", lines, want)
	}
}

func TestRenderCommandKeepsSpacingWhenWrapped(t *testing.T) {
	entry := transcript.Entry{Kind: transcript.UserCommand, Text: "go    north   then     west   quickly"}
	lines := LinesToPlainStrings(RenderEntry(entry, 20))
	want := []string{"", "> go    north   then", "  west   quickly"}
	if !slices.Equal(lines, want) {
		t.Fatalf("command lines = %q want %q", lines, want)
	}
}

func TestRenderEmptyCommand(t *testing.T) {
	lines := LinesToPlainStrings(RenderEntry(transcript.Entry{Kind: transcript.UserCommand}, 40))
	if !slices.Equal(lines, []string{"", "> "}) {
		t.Fatalf("empty command lines = %q", lines)
	}
}

func TestRenderKeepsMarkupLiteral(t *testing.T) {
	text := "<p class=\"x\">hi</p>"
	lines := LinesToPlainStrings(RenderEntry(transcript.Entry{Kind: transcript.SystemResponse, Text: text}, 80))
	if len(lines) != 1 || lines[0] != text {
		t.Fatalf("markup should render verbatim, got %q", lines)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "go north", want: "go north"},
		{name: "sgr stripped", in: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "clear screen stripped", in: "a\x1b[2Jb", want: "ab"},
		{name: "bell replaced", in: "ding\a", want: "ding\uFFFD"},
		{name: "carriage return replaced", in: "a\rb", want: "a\uFFFDb"},
		{name: "tab to space", in: "a\tb", want: "a b"},
		{name: "newline kept", in: "a\nb", want: "a\nb"},
		{name: "wide runes kept", in: "北へ行く", want: "北へ行く"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	entries := []transcript.Entry{
		{Kind: transcript.Welcome, Text: transcript.WelcomeText},
		{Kind: transcript.UserCommand, Text: "\x1b[1mxyzzy"},
		{Kind: transcript.SystemResponse, Text: transcript.ResponseFor("xyzzy")},
	}
	got := PlainText(entries)
	if strings.Contains(got, "\x1b") {
		t.Fatalf("plain text contains escape sequences: %q", got)
	}
	want := transcript.WelcomeText + "\n> xyzzy\n" + transcript.ResponseFor("xyzzy")
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

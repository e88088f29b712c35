package render

import (
	"strings"

	"adventure/internal/transcript"

	"github.com/charmbracelet/lipgloss"
)

var (
	welcomeStyle       = lipgloss.NewStyle().Faint(true).Italic(true)
	commandPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	commandStyle       = lipgloss.NewStyle().Bold(true)
	responseStyle      = lipgloss.NewStyle()
)

const commandPrefix = "> "

// RenderEntries 使用 ColumnRenderable 将 transcript 渲染为行。
func RenderEntries(entries []transcript.Entry, width int) []Line {
	col := NewColumn()
	for _, e := range entries {
		col.Push(entryRenderable{entry: e})
	}
	buf := Buffer{}
	height := col.DesiredHeight(width)
	col.Render(Rect{Width: width, Height: height}, &buf)
	return buf.Lines
}

// RenderEntry renders a single entry, for append-only outputs.
func RenderEntry(entry transcript.Entry, width int) []Line {
	return entryLines(entry, width)
}

// PlainText returns the transcript as unstyled text, one entry per line
// group, with commands prefixed like on screen.
func PlainText(entries []transcript.Entry) string {
	lines := make([]Line, 0, len(entries))
	for _, e := range entries {
		spans := []Span{{Text: Sanitize(e.Text)}}
		if e.Kind == transcript.UserCommand {
			spans = append([]Span{{Text: commandPrefix}}, spans...)
		}
		lines = append(lines, Line{Spans: spans})
	}
	return strings.Join(LinesToPlainStrings(lines), "\n")
}

type entryRenderable struct {
	entry transcript.Entry
}

func (r entryRenderable) Render(area Rect, buf *Buffer) {
	buf.WriteLines(entryLines(r.entry, area.Width)...)
}

func (r entryRenderable) DesiredHeight(width int) int {
	return len(entryLines(r.entry, width))
}

func entryLines(e transcript.Entry, width int) []Line {
	text := Sanitize(e.Text)
	switch e.Kind {
	case transcript.Welcome:
		return styledLines(text, width, welcomeStyle)
	case transcript.UserCommand:
		return commandLines(text, width)
	default:
		return styledLines(text, width, responseStyle)
	}
}

func commandLines(text string, width int) []Line {
	wrapWidth := width - len(commandPrefix)
	if wrapWidth < 1 {
		wrapWidth = width
	}
	body := styledLines(text, wrapWidth, commandStyle)
	prefixed := PrefixLines(body,
		Span{Text: commandPrefix, Style: commandPrefixStyle},
		Span{Text: strings.Repeat(" ", len(commandPrefix))},
	)
	lines := make([]Line, 0, len(prefixed)+1)
	lines = append(lines, Line{})
	return append(lines, prefixed...)
}

func styledLines(text string, width int, style lipgloss.Style) []Line {
	if width <= 0 {
		width = maxInt(1, len(text))
	}
	wrapped := wrapText(text, width)
	out := make([]Line, 0, len(wrapped))
	for _, l := range wrapped {
		out = append(out, Line{Spans: []Span{{Text: l, Style: style}}})
	}
	return out
}

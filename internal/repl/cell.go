package repl

import (
	"adventure/internal/transcript"
	tuirender "adventure/internal/tui/render"
)

// HistoryCell is an append-only render block for terminal output.
type HistoryCell interface {
	// Render returns styled lines for the given terminal width.
	Render(width int) []tuirender.Line
}

type entryCell struct {
	entry transcript.Entry
}

func (c entryCell) Render(width int) []tuirender.Line {
	return tuirender.RenderEntry(c.entry, width)
}

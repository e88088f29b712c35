package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"adventure/internal/transcript"
	tuirender "adventure/internal/tui/render"
)

// Scrollback 是行模式下的显示面：条目一旦产生就作为不可变的 block
// 追加写入终端的自然滚动缓冲（或任意 io.Writer）。
type Scrollback struct {
	w     *bufio.Writer
	width int
	err   error
}

type ScrollbackOptions struct {
	Writer io.Writer
	Width  int
}

func NewScrollback(opts ScrollbackOptions) *Scrollback {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	return &Scrollback{w: bufio.NewWriter(w), width: width}
}

// AppendCell 将一个已完成的 HistoryCell 写入 scrollback。
func (s *Scrollback) AppendCell(cell HistoryCell) {
	if s == nil || cell == nil || s.w == nil {
		return
	}
	for _, line := range tuirender.LinesToStrings(cell.Render(s.width)) {
		if _, err := fmt.Fprintln(s.w, line); err != nil && s.err == nil {
			s.err = err
		}
	}
}

// Append implements transcript.Display.
func (s *Scrollback) Append(entry transcript.Entry) {
	s.AppendCell(entryCell{entry: entry})
}

// ScrollToNewest flushes buffered output; the terminal follows the newest
// line on its own.
func (s *Scrollback) ScrollToNewest() {
	s.Flush()
}

// Flush writes pending output and returns the first write error seen.
func (s *Scrollback) Flush() error {
	if s == nil || s.w == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil && s.err == nil {
		s.err = err
	}
	return s.err
}

// WriteString writes raw text (prompts) without a trailing newline.
func (s *Scrollback) WriteString(text string) {
	if s == nil || s.w == nil {
		return
	}
	if _, err := s.w.WriteString(text); err != nil && s.err == nil {
		s.err = err
	}
}

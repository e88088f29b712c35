package repl

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Line is one line of input without its terminator ("\n" or "\r\n").
// Err is set on the last line delivered: io.EOF at end of input, or the
// read error.
type Line struct {
	Text string
	Err  error
}

// ReadLines reads r on its own goroutine so callers can select on ctx.
// The channel is closed after the line carrying Err, or once ctx is done.
func ReadLines(ctx context.Context, r io.Reader) <-chan Line {
	out := make(chan Line)
	go func() {
		defer close(out)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			select {
			case out <- Line{Text: text, Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

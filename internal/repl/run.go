package repl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"adventure/internal/logger"
	"adventure/internal/transcript"
)

// Options configures the plain line mode.
type Options struct {
	In  io.Reader
	Out io.Writer
	// Prompt is written before each line is read; empty disables it.
	Prompt string
	Width  int
	Logger *logger.LogEntry
}

// Run drives a controller from lines read on In until EOF or ctx is done.
// Each line is submitted verbatim, minus its line terminator.
func Run(ctx context.Context, opts Options) ([]transcript.Entry, error) {
	if opts.In == nil {
		return nil, errors.New("repl: input reader must be set")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("repl")
	}

	out := NewScrollback(ScrollbackOptions{Writer: opts.Out, Width: opts.Width})
	buf := &transcript.Buffer{}
	ctrl := transcript.New(out, buf, transcript.WithLogger(log))
	ctrl.Initialize()
	if err := out.Flush(); err != nil {
		return ctrl.Entries(), fmt.Errorf("write transcript: %w", err)
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := ReadLines(readCtx, opts.In)

	for {
		if opts.Prompt != "" {
			out.WriteString(opts.Prompt)
			if err := out.Flush(); err != nil {
				return ctrl.Entries(), fmt.Errorf("write prompt: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			log.Debug("line mode cancelled")
			return ctrl.Entries(), nil
		case line, ok := <-lines:
			if !ok {
				return ctrl.Entries(), nil
			}
			if line.Err != nil && !errors.Is(line.Err, io.EOF) {
				return ctrl.Entries(), fmt.Errorf("read input: %w", line.Err)
			}
			if line.Text != "" || line.Err == nil {
				buf.Set(line.Text)
				ctrl.Press(transcript.KeyEnter)
				if err := out.Flush(); err != nil {
					return ctrl.Entries(), fmt.Errorf("write transcript: %w", err)
				}
			}
			if line.Err != nil {
				return ctrl.Entries(), nil
			}
		}
	}
}

package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"adventure/internal/logger"
	"adventure/internal/repl"
	"adventure/internal/tui/render"
)

// ExitCommand ends the session, matched case-insensitively.
const ExitCommand = "exit"

type Options struct {
	In       io.Reader
	Out      io.Writer
	Provider Provider
	// Prompt is written before each read; empty disables it.
	Prompt string
	Logger *logger.LogEntry
}

// Run reads prompts line by line, asks the provider and prints each reply,
// until "exit", end of input or ctx is done. Provider failures are printed
// as the reply and do not end the session.
func Run(ctx context.Context, opts Options) error {
	if opts.In == nil || opts.Out == nil {
		return errors.New("helper: input and output must be set")
	}
	if opts.Provider == nil {
		return errors.New("helper: provider must be set")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("helper")
	}
	name := opts.Provider.Name()
	out := opts.Out

	fmt.Fprintln(out, "--- AI helper ---")
	fmt.Fprintf(out, "Using AI provider: %s\n", name)
	fmt.Fprintf(out, "Enter your question or prompt below. Type '%s' to quit.\n", ExitCommand)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := repl.ReadLines(readCtx, opts.In)

	for {
		if opts.Prompt != "" {
			fmt.Fprintf(out, "\n%s", opts.Prompt)
		}
		var line repl.Line
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}
		if line.Err != nil && !errors.Is(line.Err, io.EOF) {
			return fmt.Errorf("read input: %w", line.Err)
		}
		prompt := strings.TrimSpace(line.Text)
		if strings.EqualFold(prompt, ExitCommand) {
			return nil
		}
		if prompt != "" {
			reply, err := opts.Provider.Assist(ctx, line.Text)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.WithError(err).Warn("provider request failed")
				reply = fmt.Sprintf("An error occurred with the %s provider: %v", name, err)
			}
			fmt.Fprintf(out, "\nAI Assistant:\n%s\n", render.Sanitize(reply))
		}
		if line.Err != nil {
			return nil
		}
	}
}

package repl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"adventure/internal/logger"
	"adventure/internal/transcript"
)

func TestRunSubmitsEachLine(t *testing.T) {
	var out bytes.Buffer
	entries, err := Run(context.Background(), Options{
		In:     strings.NewReader("look\n\r\n<b>open</b> door"),
		Out:    &out,
		Logger: logger.Discard(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	commands := []string{}
	for _, e := range entries {
		if e.Kind == transcript.UserCommand {
			commands = append(commands, e.Text)
		}
	}
	want := []string{"look", "", "<b>open</b> door"}
	if strings.Join(commands, "|") != strings.Join(want, "|") {
		t.Fatalf("commands = %q, want %q", commands, want)
	}
	if len(entries) != 1+2*len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), 1+2*len(want))
	}

	wantOut := strings.Join([]string{
		transcript.WelcomeText,
		"",
		"> look",
		"You typed 'look', but nothing happens yet.",
		"",
		"> ",
		"You typed '', but nothing happens yet.",
		"",
		"> <b>open</b> door",
		"You typed '<b>open</b> door', but nothing happens yet.",
		"",
	}, "\n")
	if out.String() != wantOut {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", wantOut, out.String())
	}
}

func TestRunEmptyInputOnlyWelcomes(t *testing.T) {
	var out bytes.Buffer
	entries, err := Run(context.Background(), Options{In: strings.NewReader(""), Out: &out, Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != transcript.Welcome {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRunWritesPrompt(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), Options{In: strings.NewReader("x\n"), Out: &out, Prompt: "? ", Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Count(out.String(), "? "); got != 2 {
		t.Fatalf("prompt written %d times, want 2: %q", got, out.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := Run(ctx, Options{In: pr, Out: io.Discard, Logger: logger.Discard()})
		errCh <- err
	}()

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestRunRequiresInput(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error for nil input")
	}
}

func TestScrollbackWrapsToWidth(t *testing.T) {
	var out bytes.Buffer
	sb := NewScrollback(ScrollbackOptions{Writer: &out, Width: 12})
	sb.Append(transcript.Entry{Kind: transcript.UserCommand, Text: "open the small mailbox"})
	if out.Len() != 0 {
		t.Fatalf("output should be buffered until scroll")
	}
	sb.ScrollToNewest()
	want := "\n> open the\n  small\n  mailbox\n"
	if out.String() != want {
		t.Fatalf("scrollback = %q, want %q", out.String(), want)
	}
}

func TestReadLinesTrimsTerminatorsAndCloses(t *testing.T) {
	var got []Line
	for line := range ReadLines(context.Background(), strings.NewReader("a\r\nb\n\nc")) {
		got = append(got, line)
	}
	want := []string{"a", "b", "", "c"}
	if len(got) != len(want) {
		t.Fatalf("lines = %+v", got)
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Fatalf("line %d = %q, want %q", i, got[i].Text, w)
		}
	}
	if got[len(got)-1].Err != io.EOF {
		t.Fatalf("last line err = %v, want EOF", got[len(got)-1].Err)
	}
}

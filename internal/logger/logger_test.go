package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestPlainFormatter_ComponentAndFieldOrdering(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name    string
		data    logrus.Fields
		message string
		want    string
	}{
		{
			name: "with component",
			data: logrus.Fields{
				"component": "transcript",
				"caller":    "x.go:1",
				"kind":      "command",
				"length":    4,
			},
			message: "submit",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] [transcript] submit kind=command length=4\n",
		},
		{
			name: "without component",
			data: logrus.Fields{
				"caller": "x.go:1",
				"foo":    "bar",
			},
			message: "hello",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] hello foo=bar\n",
		},
		{
			name: "quoted values",
			data: logrus.Fields{
				"caller":   "x.go:1",
				"error":    "open logs: permission denied",
				"duration": "",
			},
			message: "failed",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [INFO] failed duration=\"\" error=\"open logs: permission denied\"\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Logger:  logrus.New(),
				Time:    ts,
				Level:   logrus.InfoLevel,
				Message: tc.message,
				Data:    tc.data,
			}
			out, err := (PlainFormatter{}).Format(entry)
			if err != nil {
				t.Fatalf("Format() error: %v", err)
			}
			if got := string(out); got != tc.want {
				t.Fatalf("unexpected format:\nwant: %q\ngot:  %q", tc.want, got)
			}
		})
	}
}

func TestSetupFileRedirectsRootLogger(t *testing.T) {
	l := logrus.New()
	SetRoot(l)
	defer SetRoot(nil)
	Configure()

	path := filepath.Join(t.TempDir(), "nested", "adventure.log")
	closer, resolved, err := SetupFile(path)
	if err != nil {
		t.Fatalf("SetupFile: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	Named("web").Info("listening")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[web] listening") {
		t.Fatalf("log file missing entry: %q", string(data))
	}
}

func TestSetupFileRequiresPath(t *testing.T) {
	if _, _, err := SetupFile("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestTrimSourcePath(t *testing.T) {
	cases := map[string]string{
		"/home/u/adventure/internal/web/server.go": "internal/web/server.go",
		"/home/u/adventure/cmd/adventure/root.go":  "cmd/adventure/root.go",
		"/usr/lib/go/src/net/http/server.go":       "server.go",
	}
	for in, want := range cases {
		if got := trimSourcePath(in); got != want {
			t.Fatalf("trimSourcePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	l := logrus.New()
	SetRoot(l)
	defer SetRoot(nil)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug): %v", err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", l.GetLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("unknown level should leave level unchanged, got %v", l.GetLevel())
	}
	if err := SetLevel(""); err != nil {
		t.Fatalf("empty level should be ignored: %v", err)
	}
}

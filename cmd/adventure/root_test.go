package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"adventure/internal/config"
	"adventure/internal/logger"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ADVENTURE_ADDR", "ADVENTURE_LOG_LEVEL", "ADVENTURE_HELPER_PROVIDER", "OLLAMA_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Cleanup(func() { logger.Root().SetOutput(os.Stderr) })
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)

	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "config.toml"),
		"-c", "log.path=" + filepath.Join(dir, "logs", "adventure.log"),
	}
	cmd, opts := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(base, args...))
	err := execute(cmd, opts)
	return out.String(), err
}

func TestPlainModeEchoesCommands(t *testing.T) {
	out, err := runCLI(t, "look\n<i>x</i>\n", "--plain")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	wants := []string{
		"Welcome to your text adventure! It's dark here.",
		"> look",
		"You typed 'look', but nothing happens yet.",
		"> <i>x</i>",
		"You typed '<i>x</i>', but nothing happens yet.",
	}
	last := -1
	for _, want := range wants {
		idx := strings.Index(out, want)
		if idx == -1 {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
		if idx < last {
			t.Fatalf("%q out of order:\n%s", want, out)
		}
		last = idx
	}
}

func TestConfigOverridesApply(t *testing.T) {
	out, err := runCLI(t, "", "-c", "web.addr=:9999", "-c", "tui.copyable_output=true", "config")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, ":9999") {
		t.Fatalf("override not reflected:\n%s", out)
	}
	if !strings.Contains(out, "copyable_output = true") {
		t.Fatalf("bool override not reflected:\n%s", out)
	}
}

func TestConfigInitWritesOnce(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	run := func(args ...string) (*rootOptions, error) {
		cmd, opts := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--config", path, "-c", "log.path=" + filepath.Join(dir, "a.log"), "-c", "web.addr=:4242"}, args...))
		return opts, execute(cmd, opts)
	}

	if _, err := run("config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Web.Addr != ":4242" {
		t.Fatalf("saved addr = %q", cfg.Web.Addr)
	}
	opts, err := run("config", "init")
	if err == nil {
		t.Fatalf("second init should refuse to overwrite")
	}
	if opts.logFile != nil {
		t.Fatalf("log file left open after a failing command")
	}
	if _, err := run("config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}

func TestInvalidLogLevelFails(t *testing.T) {
	if _, err := runCLI(t, "", "-c", "log.level=loud", "config"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestServeRejectsBadSessionTTL(t *testing.T) {
	out, err := runCLI(t, "", "-c", "web.session_ttl=forever", "serve", "--addr", "127.0.0.1:0")
	if err == nil {
		t.Fatalf("expected error for bad session ttl")
	}
	if !strings.Contains(out, "web.session_ttl") {
		t.Fatalf("error should name the key:\n%s", out)
	}
}

func TestHelperTalksToOllamaCompatibleEndpoint(t *testing.T) {
	var (
		mu      sync.Mutex
		prompts []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		prompts = append(prompts, string(body))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"llama3",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Four."}}]}`)
	}))
	defer srv.Close()

	out, err := runCLI(t, "what is 2+2\nexit\n", "helper", "--provider", "ollama", "--base-url", srv.URL)
	if err != nil {
		t.Fatalf("helper: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Using AI provider: ollama") || !strings.Contains(out, "AI Assistant:\nFour.") {
		t.Fatalf("unexpected helper output:\n%s", out)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(prompts) != 1 || !strings.Contains(prompts[0], "what is 2+2") {
		t.Fatalf("requests = %q", prompts)
	}
}

func TestHelperUnknownProvider(t *testing.T) {
	if _, err := runCLI(t, "", "helper", "--provider", "clippy"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultAddr        = "127.0.0.1:8080"
	DefaultLogLevel    = "info"
	DefaultLogPath     = "logs/adventure.log"
	DefaultSessionTTL  = "30m"
	DefaultMaxSessions = 1000
	DefaultProvider    = "gemini"
)

// Config is the persisted config file schema.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Web    WebConfig    `toml:"web"`
	TUI    TUIConfig    `toml:"tui"`
	Helper HelperConfig `toml:"helper"`
	Source string       `toml:"-"`
}

type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type WebConfig struct {
	Addr string `toml:"addr"`
	// SessionTTL is a Go duration ("30m"); idle browser sessions older than
	// this are dropped.
	SessionTTL  string `toml:"session_ttl"`
	MaxSessions int    `toml:"max_sessions"`
}

// SessionIdle parses SessionTTL.
func (w WebConfig) SessionIdle() (time.Duration, error) {
	if strings.TrimSpace(w.SessionTTL) == "" {
		return time.ParseDuration(DefaultSessionTTL)
	}
	d, err := time.ParseDuration(strings.TrimSpace(w.SessionTTL))
	if err != nil {
		return 0, fmt.Errorf("web.session_ttl: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("web.session_ttl must be positive, got %s", d)
	}
	return d, nil
}

// HelperConfig selects the OpenAI-compatible endpoint used by the AI helper.
// Empty Model and BaseURL fall back to the provider's preset.
type HelperConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

type TUIConfig struct {
	// CopyableOutput keeps the primary screen so the transcript stays in
	// the terminal scrollback and can be selected with the mouse.
	CopyableOutput bool `toml:"copyable_output"`
}

func Default() Config {
	return Config{
		Log: LogConfig{Path: DefaultLogPath, Level: DefaultLogLevel},
		Web: WebConfig{
			Addr:        DefaultAddr,
			SessionTTL:  DefaultSessionTTL,
			MaxSessions: DefaultMaxSessions,
		},
		Helper: HelperConfig{Provider: DefaultProvider},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".adventure", "config.toml")
}

// Load reads the TOML file at path (DefaultPath when empty). A missing file
// yields Default(); environment overrides apply in both cases.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("ADVENTURE_ADDR")); env != "" {
		cfg.Web.Addr = env
	}
	if env := strings.TrimSpace(os.Getenv("ADVENTURE_LOG_LEVEL")); env != "" {
		cfg.Log.Level = env
	}
	if env := strings.TrimSpace(os.Getenv("ADVENTURE_HELPER_PROVIDER")); env != "" {
		cfg.Helper.Provider = env
	}
	return cfg
}

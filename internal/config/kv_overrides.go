package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "log.path", "log_path":
			cfg.Log.Path = val
		case "log.level", "log_level":
			cfg.Log.Level = val
		case "web.addr", "addr":
			cfg.Web.Addr = val
		case "web.session_ttl", "session_ttl":
			cfg.Web.SessionTTL = val
		case "web.max_sessions", "max_sessions":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.Web.MaxSessions = n
			}
		case "helper.provider", "provider":
			cfg.Helper.Provider = val
		case "helper.model", "model":
			cfg.Helper.Model = val
		case "helper.base_url", "base_url":
			cfg.Helper.BaseURL = val
		case "tui.copyable_output", "copyable_output":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.TUI.CopyableOutput = b
			}
		}
	}
	return cfg
}

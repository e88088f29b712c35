// Package helper is a line-mode AI assistant: every prompt is sent to an
// OpenAI-compatible chat endpoint (Gemini, Ollama, OpenAI) and the reply
// is printed back.
package helper

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Provider answers a single prompt.
type Provider interface {
	Name() string
	Assist(ctx context.Context, prompt string) (string, error)
}

// Preset is the endpoint a provider name resolves to.
type Preset struct {
	BaseURL string
	Model   string
	// KeyEnv names the environment variable holding the API key.
	KeyEnv string
	// KeyRequired is false for local servers that ignore Authorization.
	KeyRequired bool
}

var presets = map[string]Preset{
	"gemini": {
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta/openai",
		Model:       "gemini-2.0-flash",
		KeyEnv:      "GEMINI_API_KEY",
		KeyRequired: true,
	},
	"ollama": {
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3",
		KeyEnv:  "OLLAMA_API_KEY",
	},
	"openai": {
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		KeyEnv:      "OPENAI_API_KEY",
		KeyRequired: true,
	},
}

// ProviderNames lists the known provider names, sorted.
func ProviderNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a provider name plus optional model/base URL overrides into
// client options. getenv supplies the API key lookup.
func Resolve(name, model, baseURL string, getenv func(string) string) (ClientOptions, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	preset, ok := presets[name]
	if !ok {
		return ClientOptions{}, fmt.Errorf("unknown provider %q (known: %s)", name, strings.Join(ProviderNames(), ", "))
	}
	opts := ClientOptions{
		Name:    name,
		BaseURL: preset.BaseURL,
		Model:   preset.Model,
	}
	if m := strings.TrimSpace(model); m != "" {
		opts.Model = m
	}
	if u := strings.TrimSpace(baseURL); u != "" {
		opts.BaseURL = u
	}
	if getenv != nil {
		opts.APIKey = strings.TrimSpace(getenv(preset.KeyEnv))
	}
	if opts.APIKey == "" && preset.KeyRequired {
		return ClientOptions{}, fmt.Errorf("%s provider needs an API key in $%s", name, preset.KeyEnv)
	}
	return opts, nil
}

package helper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// localKey is sent to servers that do not check keys; the SDK always sets
// an Authorization header.
const localKey = "unused"

type ClientOptions struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// Client is a Provider backed by the chat completions API.
type Client struct {
	api   *openai.Client
	name  string
	model string
}

var _ Provider = (*Client)(nil)

func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("helper: model is required")
	}
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		key = localKey
	}
	cfg := []option.RequestOption{option.WithAPIKey(key)}
	if base := normalizeBaseURL(opts.BaseURL); base != "" {
		cfg = append(cfg, option.WithBaseURL(base))
	}
	api := openai.NewClient(cfg...)
	name := opts.Name
	if name == "" {
		name = "openai"
	}
	return &Client{api: &api, name: name, model: opts.Model}, nil
}

func (c *Client) Name() string { return c.name }

func (c *Client) Assist(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		return "", wrapHTTPError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// normalizeBaseURL accepts a bare host ("http://localhost:11434") or a full
// endpoint URL and returns the API root the SDK expects. Hosts without a
// path get /v1; explicit paths such as Gemini's /v1beta/openai are kept.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/chat/completions")
	if path == "" {
		path = "/v1"
	}
	parsed.Path = path + "/"
	return parsed.String()
}

func wrapHTTPError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		if raw := strings.TrimSpace(apiErr.RawJSON()); raw != "" {
			return fmt.Errorf("http_%d: %s", apiErr.StatusCode, raw)
		}
		return fmt.Errorf("http_%d: %v", apiErr.StatusCode, err)
	}
	return err
}

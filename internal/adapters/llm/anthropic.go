// Package llm talks to the external text-generation service that
// proposes candidate names. It implements suggest.Generator.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/namedeck/namedeck/internal/domain/suggest"
)

// Default client configuration constants.
const (
	defaultBaseURL   = "https://api.anthropic.com/v1/messages"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
	apiVersion       = "2023-06-01"
)

// Client calls the messages API and parses the JSON-list reply.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a Client for the given API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key not set")
	}
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		maxTokens:  defaultMaxTokens,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Suggest sends the summary and returns the proposed names.
// Transport and status failures map to suggest.ErrUnavailable; a reply
// that arrives but cannot be parsed maps to suggest.ErrBadPayload.
func (c *Client) Suggest(ctx context.Context, summary string, _ int) ([]string, error) {
	body, err := json.Marshal(apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    "You are a helpful baby name consultant. Return only JSON.",
		Messages: []apiMessage{
			{Role: "user", Content: summary},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", suggest.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", suggest.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", suggest.ErrUnavailable, resp.StatusCode, string(raw))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", suggest.ErrBadPayload, err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", suggest.ErrUnavailable, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return nil, fmt.Errorf("%w: empty content", suggest.ErrBadPayload)
	}

	return parseNames(apiResp.Content[0].Text)
}

// parseNames extracts the JSON list, tolerating markdown code fences
// and the {"names": [...]} wrapper some models emit.
func parseNames(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err == nil {
		return names, nil
	}

	var wrapped struct {
		Names []string `json:"names"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Names != nil {
		return wrapped.Names, nil
	}

	return nil, fmt.Errorf("%w: not a JSON name list: %s", suggest.ErrBadPayload, text)
}

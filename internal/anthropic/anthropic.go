// Package anthropic summarizes notes through the Anthropic messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/deckbrief/deckbrief/internal/config"
	"github.com/deckbrief/deckbrief/internal/providers"
)

const (
	providerName = "anthropic"
	messagesURL  = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
)

type Client struct {
	cfg    config.AnthropicConfig
	client *http.Client
	url    string
}

// New returns an Anthropic-backed summarizer.
func New(cfg config.AnthropicConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
		url:    messagesURL,
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (c *Client) Summarize(ctx context.Context, text string, level int) ([]string, error) {
	body, err := json.Marshal(messageRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		System:    providers.SystemPrompt,
		Messages: []message{
			{Role: "user", Content: providers.Prompt(text, level)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindRemote, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindRemote, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(respBody)
		var errResp messageResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != nil {
			msg = errResp.Error.Message
		}
		return nil, providers.FromStatus(providerName, resp.StatusCode, msg)
	}

	var parsed messageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: err.Error()}
	}

	var raw string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			raw = block.Text
			break
		}
	}
	if raw == "" {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "no text content in response"}
	}

	bullets := providers.ParseBullets(raw, level)
	if len(bullets) == 0 {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "no bullet points in response"}
	}
	return bullets, nil
}

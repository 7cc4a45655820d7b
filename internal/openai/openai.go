// Package openai summarizes notes through the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/deckbrief/deckbrief/internal/config"
	"github.com/deckbrief/deckbrief/internal/providers"
)

const providerName = "openai"

type Client struct {
	api openai.Client
	cfg config.OpenAIConfig
}

// New returns an OpenAI-backed summarizer.
func New(cfg config.OpenAIConfig) *Client {
	return &Client{
		api: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg: cfg,
	}
}

func (c *Client) Summarize(ctx context.Context, text string, level int) ([]string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(providers.SystemPrompt),
			openai.UserMessage(providers.Prompt(text, level)),
		},
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
		Temperature: openai.Float(c.cfg.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, providers.FromStatus(providerName, apiErr.StatusCode, apiErr.Message)
		}
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindRemote, Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "no choices in response"}
	}

	bullets := providers.ParseBullets(resp.Choices[0].Message.Content, level)
	if len(bullets) == 0 {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "no bullet points in response"}
	}
	return bullets, nil
}

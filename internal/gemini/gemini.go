// Package gemini summarizes notes through the Google Gemini API.
package gemini

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/deckbrief/deckbrief/internal/config"
	"github.com/deckbrief/deckbrief/internal/providers"
)

const providerName = "gemini"

type Client struct {
	cfg config.GeminiConfig
}

// New returns a Gemini-backed summarizer.
func New(cfg config.GeminiConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Summarize(ctx context.Context, text string, level int) ([]string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindRemote, Message: err.Error()}
	}
	defer client.Close()

	model := client.GenerativeModel(c.cfg.Model)

	prompt := providers.SystemPrompt + "\n\n" + providers.Prompt(text, level)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, providers.FromStatus(providerName, apiErr.Code, apiErr.Message)
		}
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindRemote, Message: err.Error()}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "empty response"}
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "unexpected response part type"}
	}

	bullets := providers.ParseBullets(string(txt), level)
	if len(bullets) == 0 {
		return nil, &providers.Error{Provider: providerName, Kind: providers.KindInvalidResponse, Message: "no bullet points in response"}
	}
	return bullets, nil
}

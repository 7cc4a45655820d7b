package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/deckbrief/deckbrief/internal/config"
	"github.com/deckbrief/deckbrief/internal/providers"
)

// newTestClient points the SDK at a local server with its own retrying
// disabled, so error-path tests see exactly one request.
func newTestClient(url string) *Client {
	cfg := config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", MaxTokens: 256, Temperature: 0.2}
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(url),
			option.WithMaxRetries(0),
		),
		cfg: cfg,
	}
}

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

func TestSummarize(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "- first\n- second\n- third\n- fourth"}
			}]
		}`))
	}))
	defer server.Close()

	bullets, err := newTestClient(server.URL).Summarize(context.Background(), "note text", 3)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if len(bullets) != 3 {
		t.Fatalf("Expected 3 bullets (level cap), got %d: %v", len(bullets), bullets)
	}
	if bullets[0] != "first" || bullets[2] != "third" {
		t.Errorf("Unexpected bullets: %v", bullets)
	}
	if gotReq.Model != "gpt-4o-mini" || gotReq.MaxTokens != 256 || gotReq.Temperature != 0.2 {
		t.Errorf("Request not shaped from config: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("Expected system+user messages, got %+v", gotReq.Messages)
	}
}

func TestSummarizeErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantKind  providers.Kind
		retryable bool
	}{
		{"auth failure", http.StatusUnauthorized, providers.KindAuth, false},
		{"rate limited", http.StatusTooManyRequests, providers.KindRateLimit, true},
		{"server error", http.StatusInternalServerError, providers.KindRemote, true},
		{"bad request", http.StatusBadRequest, providers.KindRemote, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(`{"error": {"message": "nope", "type": "invalid_request_error", "param": null, "code": null}}`))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Summarize(context.Background(), "note", 3)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var pe *providers.Error
			if !errors.As(err, &pe) {
				t.Fatalf("Expected classified provider error, got %v", err)
			}
			if pe.Kind != test.wantKind {
				t.Errorf("Expected kind %v, got %v", test.wantKind, pe.Kind)
			}
			if pe.Retryable() != test.retryable {
				t.Errorf("Expected retryable=%v, got %v", test.retryable, pe.Retryable())
			}
		})
	}
}

func TestSummarizeEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "note", 3)

	var pe *providers.Error
	if !errors.As(err, &pe) || pe.Kind != providers.KindInvalidResponse {
		t.Errorf("Expected invalid response error, got %v", err)
	}
}

func TestSummarizeEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": ""}}]
		}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "note", 3)

	var pe *providers.Error
	if !errors.As(err, &pe) || pe.Kind != providers.KindInvalidResponse {
		t.Errorf("Expected invalid response error, got %v", err)
	}
}

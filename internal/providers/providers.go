// Package providers defines the contract shared by the summarization
// backends and the error taxonomy callers use to tell retryable failures
// from fatal ones.
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Summarizer condenses note text into at most level bullet points.
type Summarizer interface {
	Summarize(ctx context.Context, text string, level int) ([]string, error)
}

// SystemPrompt primes the chat-style backends for bullet summarization.
const SystemPrompt = "You are a helpful assistant, skilled in summarizing complex documents into simple bullet points."

// Prompt builds the per-note user prompt for a target bullet count.
func Prompt(text string, level int) string {
	return fmt.Sprintf(
		"Summarize the following notes into approximately %d bullet points. "+
			"Start each bullet point with '-' and ensure each is complete. "+
			"Do not include any introductory text:\n\n%s",
		level, text)
}

// Kind classifies a backend failure.
type Kind int

const (
	// KindAuth covers rejected or missing credentials. Never retryable.
	KindAuth Kind = iota
	// KindRateLimit means the vendor refused the call for pacing reasons.
	KindRateLimit
	// KindRemote covers transport failures and server-side errors.
	KindRemote
	// KindInvalidResponse means the vendor answered with something the
	// adapter could not turn into bullets.
	KindInvalidResponse
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth error"
	case KindRateLimit:
		return "rate limit exceeded"
	case KindRemote:
		return "remote error"
	case KindInvalidResponse:
		return "invalid response"
	default:
		return "unknown error"
	}
}

// Error is a classified summarization failure. Status is the vendor's HTTP
// status code when one was received, 0 otherwise.
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// Retryable reports whether a later attempt may succeed. Rate limits always
// are; remote errors only when server-side (5xx) or when no status was
// received at all (transport failure).
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimit:
		return true
	case KindRemote:
		return e.Status == 0 || e.Status >= 500
	default:
		return false
	}
}

// Retryable reports whether err is a provider error worth retrying.
func Retryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return false
}

// FromStatus classifies an HTTP status code returned by a vendor API.
func FromStatus(provider string, status int, message string) *Error {
	kind := KindRemote
	switch {
	case status == 401 || status == 403:
		kind = KindAuth
	case status == 429:
		kind = KindRateLimit
	}
	return &Error{Provider: provider, Kind: kind, Status: status, Message: message}
}

// ParseBullets normalizes raw model output into at most level bullet
// strings. Leading list markers are stripped so writers control the final
// formatting; models sometimes double them ("- - point"), so markers and
// the spaces between them are trimmed together. Blank lines are dropped.
func ParseBullets(raw string, level int) []string {
	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
		if len(bullets) == level {
			break
		}
	}
	return bullets
}

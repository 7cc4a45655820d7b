// Package config loads and validates the YAML run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Summary   SummaryConfig   `yaml:"summary"`
	Throttle  ThrottleConfig  `yaml:"throttle"`
}

type OpenAIConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type AnthropicConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type SummaryConfig struct {
	// DefaultLevel is the target bullet count per slide when no
	// --summarization-level override is given.
	DefaultLevel int `yaml:"default_level"`
	// MinCharacters is the minimum note length worth summarizing; shorter
	// notes are marked skipped in the output. Zero (or absent) selects the
	// default; set 1 to summarize every non-empty note.
	MinCharacters int `yaml:"min_characters"`
}

type ThrottleConfig struct {
	// RateLimit is the maximum sustained remote call rate in calls/second.
	RateLimit float64 `yaml:"rate_limit"`
	// MaxRetries is the total attempt budget per note, first try included.
	MaxRetries int `yaml:"max_retries"`
}

// Load reads the configuration file, fills defaults, and resolves API keys
// from the environment when the file leaves them empty. Zero-valued numeric
// fields select their defaults, the same as leaving them out. The returned
// Config is read-only for the rest of the run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Anthropic.APIKey == "" {
		c.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o"
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = 1024
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-3-5-sonnet-latest"
	}
	if c.Anthropic.MaxTokens == 0 {
		c.Anthropic.MaxTokens = 1024
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Summary.DefaultLevel == 0 {
		c.Summary.DefaultLevel = 5
	}
	if c.Summary.MinCharacters == 0 {
		c.Summary.MinCharacters = 50
	}
	if c.Throttle.RateLimit == 0 {
		c.Throttle.RateLimit = 1
	}
	if c.Throttle.MaxRetries == 0 {
		c.Throttle.MaxRetries = 3
	}
}

func (c *Config) validate() error {
	if c.Summary.DefaultLevel < 1 {
		return fmt.Errorf("summary.default_level must be at least 1")
	}
	if c.Summary.MinCharacters < 0 {
		return fmt.Errorf("summary.min_characters must not be negative")
	}
	if c.Throttle.RateLimit <= 0 {
		return fmt.Errorf("throttle.rate_limit must be positive")
	}
	if c.Throttle.MaxRetries < 1 {
		return fmt.Errorf("throttle.max_retries must be at least 1")
	}
	return nil
}

// ValidateBackend checks that the keys required by the selected backend are
// present. Called before any remote call is made, so extract-only runs skip
// it.
func (c *Config) ValidateBackend(backend string) error {
	switch backend {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required (or set OPENAI_API_KEY)")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("anthropic.api_key is required (or set ANTHROPIC_API_KEY)")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key is required (or set GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
	return nil
}

package transcribe

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

// Config holds all transcription configuration.
type Config struct {
	// Provider selects the backend: "none", "openai", "gemini" or "mock".
	// "none" disables audio answers; typed answers still work.
	Provider string `yaml:"provider"`

	OpenAI OpenAIConfig `yaml:"openai"`
	Gemini GeminiConfig `yaml:"gemini"`
	Retry  RetryConfig  `yaml:"retry"`

	// Language is the recognition hint passed with every request.
	Language string `yaml:"language"`

	// Timeout bounds a single transcription including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "whisper"
	BaseURL string `yaml:"base_url"` // Optional Whisper-compatible server.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with transcription disabled and sensible
// backend defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderNone,
		OpenAI: OpenAIConfig{
			Model: "whisper",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Language: "ko",
		Timeout:  30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from PHONASSESS_* environment variables.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Provider, "PHONASSESS_TRANSCRIBE_PROVIDER")
	setFromEnv(&c.Language, "PHONASSESS_TRANSCRIBE_LANGUAGE")

	setFromEnv(&c.OpenAI.APIKey, "PHONASSESS_OPENAI_API_KEY")
	setFromEnv(&c.OpenAI.Model, "PHONASSESS_OPENAI_MODEL")
	setFromEnv(&c.OpenAI.BaseURL, "PHONASSESS_OPENAI_BASE_URL")

	setFromEnv(&c.Gemini.APIKey, "PHONASSESS_GEMINI_API_KEY")
	setFromEnv(&c.Gemini.Model, "PHONASSESS_GEMINI_MODEL")

	if v := os.Getenv("PHONASSESS_TRANSCRIBE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// Discover enables a backend from the standard API key variables when no
// provider is configured. Gemini is checked before OpenAI. It reports
// whether a key was found.
func (c *Config) Discover() bool {
	if c.Enabled() {
		return false
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = ProviderGemini
		c.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = ProviderOpenAI
		c.OpenAI.APIKey = k
		return true
	}
	return false
}

// Enabled reports whether a transcription backend is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PHONASSESS_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PHONASSESS_GEMINI_API_KEY is required for the gemini provider")
		}
	case "", ProviderNone, ProviderMock:
	default:
		return fmt.Errorf("unknown transcription provider: %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("transcription timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

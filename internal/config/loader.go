package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration. It loads an optional .env file, decodes
// the YAML file at path over the defaults, applies environment overrides
// and validates the result. An empty path uses DefaultPath when that file
// exists, and the defaults otherwise.
func Load(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if cfg.Transcription.Discover() {
		slog.Debug("transcription provider discovered from environment", "provider", cfg.Transcription.Provider)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over the defaults and
// validates the result. The environment is not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decode(r, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from PHONASSESS_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PHONASSESS_LOG_LEVEL"); v != "" {
		c.LogLevel = LogLevel(v)
	}
	if v := os.Getenv("PHONASSESS_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("PHONASSESS_QUESTIONS"); v != "" {
		c.Questions = v
	}
	if v := os.Getenv("PHONASSESS_SCORE_MAIN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Scoring.ScoreMain = b
		} else {
			slog.Warn("ignoring invalid PHONASSESS_SCORE_MAIN", "value", v)
		}
	}
	c.Transcription.ApplyEnv()
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if err := cfg.Transcription.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("transcription: %w", err))
	}
	if cfg.Questions != "" {
		if _, err := os.Stat(cfg.Questions); err != nil {
			errs = append(errs, fmt.Errorf("questions: %w", err))
		}
	}

	return errors.Join(errs...)
}

// DefaultPath returns $XDG_CONFIG_HOME/phonassess/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "phonassess", "config.yaml"), nil
}

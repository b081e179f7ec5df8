// Package config holds the runtime configuration: a YAML file, then
// PHONASSESS_* environment overrides, then command-line flags.
package config

import (
	"github.com/abhisek/phonassess/internal/transcribe"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the top-level configuration.
type Config struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`

	// LogFile receives log output. Empty selects the default state path
	// for the TUI and stderr for other commands.
	LogFile string `yaml:"log_file"`

	// Questions is the path to a question-set JSON document. Empty uses
	// the built-in set.
	Questions string `yaml:"questions"`

	Scoring ScoringConfig `yaml:"scoring"`

	Transcription transcribe.Config `yaml:"transcription"`
}

// ScoringConfig controls which responses are scored.
type ScoringConfig struct {
	// ScoreMain enables scoring of main-phase responses. When false, main
	// responses are recorded unscored and only practice responses get
	// feedback.
	ScoreMain bool `yaml:"score_main"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:      LogInfo,
		Transcription: transcribe.DefaultConfig(),
	}
}

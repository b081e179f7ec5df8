package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonassess/internal/config"
	"github.com/abhisek/phonassess/internal/questions"
	"github.com/abhisek/phonassess/internal/session"
	"github.com/abhisek/phonassess/internal/transcribe"
)

// env bundles what every command needs once flags and config are resolved.
type env struct {
	cfg         *config.Config
	logger      *slog.Logger
	set         *questions.Set
	transcriber transcribe.Provider
	logFile     *os.File
}

func (e *env) Close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// newSession starts a run over the loaded set.
func (e *env) newSession() *session.Session {
	return session.New(e.set, session.Options{
		Transcriber: e.transcriber,
		Logger:      e.logger,
		ScoreMain:   e.cfg.Scoring.ScoreMain,
		Language:    e.cfg.Transcription.Language,
	})
}

// setup loads config, applies flag overrides, opens the log file and builds
// the question set and transcriber. Logs go to a file so they never draw
// over the terminal UI.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	logFile, err := config.OpenLogFile(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	e := &env{cfg: cfg, logFile: logFile}
	e.logger = config.NewLogger(cfg.LogLevel, logFile)
	slog.SetDefault(e.logger)

	if e.set, err = loadQuestions(cfg.Questions); err != nil {
		e.Close()
		return nil, err
	}

	e.transcriber, err = transcribe.NewProvider(cmd.Context(), cfg.Transcription, e.logger)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("transcription provider: %w", err)
	}
	if e.transcriber == nil {
		e.logger.Info("transcription disabled; typed answers only")
	}
	return e, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if v, _ := flags.GetString("questions"); v != "" {
		cfg.Questions = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = config.LogLevel(v)
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if flags.Changed("score-main") {
		cfg.Scoring.ScoreMain, _ = flags.GetBool("score-main")
	}
	return config.Validate(cfg)
}

// loadQuestions reads the set at path, or the embedded default when path
// is empty.
func loadQuestions(path string) (*questions.Set, error) {
	if path == "" {
		return questions.Default()
	}
	set, err := questions.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return set, nil
}

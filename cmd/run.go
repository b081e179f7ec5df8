package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/phonassess/internal/app"
)

// runApp resolves the environment and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	sess := e.newSession()
	e.logger.Info("starting assessment",
		"session_id", sess.ID,
		"items", e.set.Len(),
		"transcription", e.cfg.Transcription.Provider,
	)

	return app.Run(cmd.Context(), app.Options{Session: sess, Logger: e.logger})
}
